package lexicon

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/aokiyuki/cocoro/backend/internal/analysis/emotion"
	"github.com/aokiyuki/cocoro/backend/internal/model/dialogue"
)

// StagePool holds the response material for one dialogue stage.
//
// ByEmotion pools are full responses picked verbatim. The generic path
// assembles prefix + question (+ connector + follow-up) so a stage keeps
// its own empathetic register regardless of which question is drawn.
type StagePool struct {
	ByEmotion map[emotion.Label][]string
	Questions []string
	Prefixes  []string
	FollowUps []string
	Connector string
}

// Set aggregates every read-only data set the engine consumes: the
// crisis lexicon, per-emotion keyword buckets and the per-stage response
// pools. Sets are loaded once at startup and never mutated afterwards.
type Set struct {
	CrisisKeywords []string
	SafetyResponse string

	EmotionKeywords map[emotion.Label][]string

	StagePools map[dialogue.Stage]StagePool

	OpeningMessage     string
	OpeningWithThought string // fmt template, %s receives the initial thought
}

// Pool returns the stage pool, zero-valued when the stage is unknown.
func (s *Set) Pool(stage dialogue.Stage) StagePool {
	return s.StagePools[stage]
}

// Validate rejects a set the engine must not run with: an empty crisis
// lexicon, a missing safety response, or a stage without a generic
// question pool.
func (s *Set) Validate() error {
	if len(s.CrisisKeywords) == 0 {
		return fmt.Errorf("lexicon: crisis keyword list is empty")
	}
	if s.SafetyResponse == "" {
		return fmt.Errorf("lexicon: safety response is empty")
	}
	if len(s.EmotionKeywords) == 0 {
		return fmt.Errorf("lexicon: emotion keyword buckets are empty")
	}
	for _, stage := range dialogue.Stages() {
		pool, ok := s.StagePools[stage]
		if !ok || len(pool.Questions) == 0 {
			return fmt.Errorf("lexicon: stage %s has no generic question pool", stage)
		}
	}
	if s.OpeningMessage == "" {
		return fmt.Errorf("lexicon: opening message is empty")
	}
	return nil
}

// fileSet mirrors Set with plain string keys for the on-disk JSON form.
type fileSet struct {
	CrisisKeywords     []string                  `json:"crisisKeywords"`
	SafetyResponse     string                    `json:"safetyResponse"`
	EmotionKeywords    map[string][]string       `json:"emotionKeywords"`
	Stages             map[string]fileStagePool  `json:"stages"`
	OpeningMessage     string                    `json:"openingMessage"`
	OpeningWithThought string                    `json:"openingWithThought"`
}

type fileStagePool struct {
	ByEmotion map[string][]string `json:"byEmotion,omitempty"`
	Questions []string            `json:"questions"`
	Prefixes  []string            `json:"prefixes,omitempty"`
	FollowUps []string            `json:"followUps,omitempty"`
	Connector string              `json:"connector,omitempty"`
}

// Load reads a data set from a JSON file so lexicons and templates can be
// updated without a rebuild. The result is validated by the caller.
func Load(path string) (*Set, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lexicon: read %s: %w", path, err)
	}

	var file fileSet
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("lexicon: parse %s: %w", path, err)
	}

	set := &Set{
		CrisisKeywords:     file.CrisisKeywords,
		SafetyResponse:     file.SafetyResponse,
		EmotionKeywords:    make(map[emotion.Label][]string, len(file.EmotionKeywords)),
		StagePools:         make(map[dialogue.Stage]StagePool, len(file.Stages)),
		OpeningMessage:     file.OpeningMessage,
		OpeningWithThought: file.OpeningWithThought,
	}

	for name, keywords := range file.EmotionKeywords {
		label, ok := emotion.ParseLabel(name)
		if !ok {
			return nil, fmt.Errorf("lexicon: unknown emotion %q in %s", name, path)
		}
		set.EmotionKeywords[label] = keywords
	}

	for name, filePool := range file.Stages {
		stage, err := dialogue.ParseStage(name)
		if err != nil {
			return nil, fmt.Errorf("lexicon: %w in %s", err, path)
		}
		pool := StagePool{
			Questions: filePool.Questions,
			Prefixes:  filePool.Prefixes,
			FollowUps: filePool.FollowUps,
			Connector: filePool.Connector,
		}
		if len(filePool.ByEmotion) > 0 {
			pool.ByEmotion = make(map[emotion.Label][]string, len(filePool.ByEmotion))
			for emotionName, responses := range filePool.ByEmotion {
				label, ok := emotion.ParseLabel(emotionName)
				if !ok {
					return nil, fmt.Errorf("lexicon: unknown emotion %q in %s", emotionName, path)
				}
				pool.ByEmotion[label] = responses
			}
		}
		set.StagePools[stage] = pool
	}

	return set, nil
}
