package dialogue

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/aokiyuki/cocoro/backend/internal/analysis/emotion"
	"github.com/aokiyuki/cocoro/backend/internal/lexicon"
	model "github.com/aokiyuki/cocoro/backend/internal/model/dialogue"
)

func TestRespondSeededDeterminism(t *testing.T) {
	lex := lexicon.Seed()
	a := NewResponder(lex, rand.New(rand.NewSource(42)))
	b := NewResponder(lex, rand.New(rand.NewSource(42)))

	for i := 0; i < 20; i++ {
		stage := model.StageForUserTurn(i + 1)
		got := a.Respond(stage, emotion.Anxiety)
		want := b.Respond(stage, emotion.Anxiety)
		if got != want {
			t.Fatalf("same seed diverged at turn %d:\n%q\n%q", i+1, got, want)
		}
	}
}

func TestRespondUsesEmotionPool(t *testing.T) {
	lex := lexicon.Seed()
	r := NewResponder(lex, rand.New(rand.NewSource(1)))

	pool := lex.Pool(model.StageOpening).ByEmotion[emotion.Anger]
	got := r.Respond(model.StageOpening, emotion.Anger)

	found := false
	for _, candidate := range pool {
		if got == candidate {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("response not drawn from the anger pool: %q", got)
	}
}

func TestRespondFallsBackToGenericPool(t *testing.T) {
	lex := lexicon.Seed()
	r := NewResponder(lex, rand.New(rand.NewSource(1)))

	// Unknown has no dedicated pool at any stage.
	got := r.Respond(model.StageEvidenceExamination, emotion.Unknown)
	if got == "" {
		t.Fatal("expected a rendered response")
	}

	pool := lex.Pool(model.StageEvidenceExamination)
	matched := false
	for _, q := range pool.Questions {
		if strings.Contains(got, q) {
			matched = true
			break
		}
	}
	if !matched {
		t.Fatalf("generic response does not contain a stage question: %q", got)
	}
	if !strings.Contains(got, pool.Connector) {
		t.Fatalf("expected stage connector %q in %q", pool.Connector, got)
	}
}

func TestRespondNeverFails(t *testing.T) {
	// Empty data set simulates a misconfigured stage pool.
	r := NewResponder(&lexicon.Set{}, rand.New(rand.NewSource(1)))

	for _, stage := range model.Stages() {
		for _, label := range emotion.Labels() {
			if got := r.Respond(stage, label); got == "" {
				t.Fatalf("empty response for stage=%s emotion=%s", stage, label)
			}
		}
	}
}
