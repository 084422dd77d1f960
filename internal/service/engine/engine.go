package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/aokiyuki/cocoro/backend/internal/analysis/crisis"
	"github.com/aokiyuki/cocoro/backend/internal/analysis/emotion"
	"github.com/aokiyuki/cocoro/backend/internal/lexicon"
	model "github.com/aokiyuki/cocoro/backend/internal/model/dialogue"
	"github.com/aokiyuki/cocoro/backend/internal/quality"
	dialogueservice "github.com/aokiyuki/cocoro/backend/internal/service/dialogue"
	"github.com/aokiyuki/cocoro/backend/internal/service/session"
	"github.com/aokiyuki/cocoro/backend/internal/transcript"
	"github.com/aokiyuki/cocoro/backend/pkg/logx"
)

var (
	ErrUserRequired    = errors.New("user id is required")
	ErrEmptyMessage    = errors.New("message is empty")
	ErrSessionClosed   = session.ErrSessionClosed
	ErrSessionNotFound = session.ErrSessionNotFound
)

// Started is the result of opening a new session.
type Started struct {
	SessionID      string `json:"sessionId"`
	OpeningMessage string `json:"openingMessage"`
	CrisisDetected bool   `json:"crisisDetected"`
}

// Reply is the result of one processed message.
type Reply struct {
	ResponseText   string        `json:"responseText"`
	Emotion        emotion.Label `json:"emotionLabel"`
	CrisisDetected bool          `json:"crisisDetected"`
	Stage          model.Stage   `json:"stage"`
}

// Summary is the result of closing a session.
type Summary struct {
	Text      string `json:"summary"`
	UserTurns int    `json:"userTurns"`
	Persisted bool   `json:"persisted"`
	Warning   string `json:"warning,omitempty"`
}

// Engine wires the crisis detector, emotion classifier, progression
// controller, session store and quality monitor into the conversational
// loop. One engine value is constructed at process start and shared by
// all request handlers; it keeps no implicit global state.
type Engine struct {
	lex        *lexicon.Set
	detector   *crisis.Detector
	classifier *emotion.Classifier
	responder  *dialogueservice.Responder
	sessions   *session.Store
	monitor    *quality.Monitor
	recorder   transcript.Recorder
}

// New assembles an engine from a validated lexicon set. A nil recorder
// disables transcript persistence; a nil rng gets a time-seeded source.
func New(lex *lexicon.Set, sessions *session.Store, recorder transcript.Recorder, rng *rand.Rand) *Engine {
	if recorder == nil {
		recorder = transcript.Noop{}
	}
	return &Engine{
		lex:        lex,
		detector:   crisis.NewDetector(lex.CrisisKeywords, lex.SafetyResponse),
		classifier: emotion.NewClassifier(lex.EmotionKeywords),
		responder:  dialogueservice.NewResponder(lex, rng),
		sessions:   sessions,
		monitor:    quality.NewMonitor(),
		recorder:   recorder,
	}
}

// StartSession opens a session for the user and renders the opening
// message. An optional initial thought is folded into the opening text,
// not counted as a turn — but it is still crisis-checked first, and a
// positive result replaces the opening with the fixed safety response.
func (e *Engine) StartSession(_ context.Context, userID, initialMessage string) (Started, error) {
	if strings.TrimSpace(userID) == "" {
		return Started{}, ErrUserRequired
	}

	sessionID := uuid.NewString()
	initialMessage = strings.TrimSpace(initialMessage)

	opening := e.lex.OpeningMessage
	detected := false
	if initialMessage != "" {
		if eval := e.detector.Evaluate(initialMessage); eval.Detected {
			opening = eval.Response
			detected = true
		} else {
			opening = fmt.Sprintf(e.lex.OpeningWithThought, initialMessage)
		}
	}

	err := e.sessions.Update(sessionID, userID, func(sess *model.Session) error {
		sess.Append(model.Turn{
			Role:      model.RoleAssistant,
			Content:   opening,
			CreatedAt: time.Now().UTC(),
		}, e.retention())
		return nil
	})
	if err != nil {
		return Started{}, err
	}

	if detected {
		e.monitor.Record(emotion.Unknown, utf8.RuneCountInString(opening), true)
		logx.Warn().Str("sessionID", sessionID).Msg("crisis detected in initial message")
	}

	return Started{SessionID: sessionID, OpeningMessage: opening, CrisisDetected: detected}, nil
}

// Submit processes one user message. The crisis check always runs first
// and its positive result short-circuits classification, stage
// progression and template rendering; the session stays open either way.
func (e *Engine) Submit(_ context.Context, sessionID, userID, message string) (Reply, error) {
	if strings.TrimSpace(userID) == "" {
		return Reply{}, ErrUserRequired
	}
	if strings.TrimSpace(message) == "" {
		return Reply{}, ErrEmptyMessage
	}

	eval := e.detector.Evaluate(message)

	var reply Reply
	err := e.sessions.Update(sessionID, userID, func(sess *model.Session) error {
		if sess.Completed() {
			return ErrSessionClosed
		}

		stage := model.StageForUserTurn(sess.UserTurns + 1)

		var label emotion.Label
		var response string
		if eval.Detected {
			label = emotion.Unknown
			response = eval.Response
		} else {
			label = e.classifier.Classify(message)
			response = e.responder.Respond(stage, label)
		}

		now := time.Now().UTC()
		sess.Append(model.Turn{Role: model.RoleUser, Content: message, Emotion: string(label), CreatedAt: now}, e.retention())
		sess.Append(model.Turn{Role: model.RoleAssistant, Content: response, Emotion: string(label), CreatedAt: now}, e.retention())

		reply = Reply{
			ResponseText:   response,
			Emotion:        label,
			CrisisDetected: eval.Detected,
			Stage:          stage,
		}
		return nil
	})
	if err != nil {
		return Reply{}, err
	}

	e.monitor.Record(reply.Emotion, utf8.RuneCountInString(reply.ResponseText), reply.CrisisDetected)
	if reply.CrisisDetected {
		logx.Warn().Str("sessionID", sessionID).Msg("crisis detected, safety response returned")
	}

	return reply, nil
}

// EndSession closes the session, builds a summary and hands the full
// visible history to the transcript recorder exactly once, outside any
// session lock. A failed save is logged and reported as a non-fatal
// warning; it never invalidates turns the user has already received.
func (e *Engine) EndSession(ctx context.Context, sessionID string) (Summary, error) {
	sess, err := e.sessions.Complete(sessionID)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{
		Text:      summarize(sess),
		UserTurns: sess.UserTurns,
		Persisted: true,
	}

	if err := e.recorder.Save(ctx, sess); err != nil {
		logx.Warn().Err(err).Str("sessionID", sessionID).Msg("transcript save failed")
		summary.Persisted = false
		summary.Warning = "対話内容の保存に失敗しましたが、セッションは正常に終了しました。"
	}

	return summary, nil
}

// QualityReport returns the process-wide aggregate statistics.
func (e *Engine) QualityReport() quality.Report {
	return e.monitor.Snapshot()
}

func (e *Engine) retention() int {
	if e.sessions == nil {
		return 0
	}
	return e.sessions.Retention()
}

// summarize names the exchange count and the dominant emotion across the
// visible user turns.
func summarize(sess model.Session) string {
	counts := make(map[string]int)
	for _, turn := range sess.Turns {
		if turn.Role == model.RoleUser && turn.Emotion != "" {
			counts[turn.Emotion]++
		}
	}

	dominant := string(emotion.Unknown)
	best := 0
	for label, n := range counts {
		if n > best {
			best = n
			dominant = label
		}
	}

	return fmt.Sprintf(
		"対話セッションが完了しました。\n\n対話回数: %d回\n主要な感情: %s\n\nこのセッションの内容は記録されました。",
		sess.UserTurns, dominant,
	)
}
