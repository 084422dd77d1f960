package dialogue

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/aokiyuki/cocoro/backend/internal/analysis/emotion"
	"github.com/aokiyuki/cocoro/backend/internal/lexicon"
	model "github.com/aokiyuki/cocoro/backend/internal/model/dialogue"
)

// fallbackResponse covers the never-expected case of a stage without any
// configured pool. Refusing to respond is worse than a generic response.
const fallbackResponse = "もう少し詳しく教えてください。"

// Responder renders one response for a (stage, emotion) pair from the
// configured template pools. Selection is randomized for conversational
// variety; the random source is injected so tests can pin the seed.
type Responder struct {
	mu  sync.Mutex
	rng *rand.Rand
	lex *lexicon.Set
}

// NewResponder builds a responder over the given data set. A nil rng gets
// a time-seeded source.
func NewResponder(lex *lexicon.Set, rng *rand.Rand) *Responder {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Responder{rng: rng, lex: lex}
}

// Respond never fails: an emotion without a dedicated pool falls back to
// the stage's generic pool, and a stage without a generic pool falls back
// to a fixed prompt.
func (r *Responder) Respond(stage model.Stage, label emotion.Label) string {
	pool := r.lex.Pool(stage)

	if responses := pool.ByEmotion[label]; len(responses) > 0 {
		return r.pick(responses)
	}

	if len(pool.Questions) == 0 {
		return fallbackResponse
	}

	var b strings.Builder
	if len(pool.Prefixes) > 0 {
		b.WriteString(r.pick(pool.Prefixes))
		b.WriteString(" ")
	}
	b.WriteString(r.pick(pool.Questions))
	if len(pool.FollowUps) > 0 {
		b.WriteString("\n\n")
		b.WriteString(pool.Connector)
		b.WriteString(r.pick(pool.FollowUps))
	}
	return b.String()
}

func (r *Responder) pick(pool []string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return pool[r.rng.Intn(len(pool))]
}
