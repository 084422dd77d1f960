package lexicon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aokiyuki/cocoro/backend/internal/analysis/emotion"
	"github.com/aokiyuki/cocoro/backend/internal/model/dialogue"
)

func TestSeedValidates(t *testing.T) {
	if err := Seed().Validate(); err != nil {
		t.Fatalf("built-in data set rejected: %v", err)
	}
}

func TestValidateRejectsEmptyCrisisLexicon(t *testing.T) {
	set := Seed()
	set.CrisisKeywords = nil

	if err := set.Validate(); err == nil {
		t.Fatal("expected validation error for empty crisis lexicon")
	}
}

func TestValidateRejectsMissingStagePool(t *testing.T) {
	set := Seed()
	delete(set.StagePools, dialogue.StageConstructiveClosure)

	if err := set.Validate(); err == nil {
		t.Fatal("expected validation error for missing stage pool")
	}
}

func TestLoadFromFile(t *testing.T) {
	raw := `{
		"crisisKeywords": ["hopeless"],
		"safetyResponse": "please call 0120-000-000",
		"emotionKeywords": {"anxiety": ["worried"], "joy": ["glad"]},
		"stages": {
			"opening": {"questions": ["tell me more"], "prefixes": ["i hear you."]},
			"evidence_examination": {"questions": ["what evidence?"], "followUps": ["is it certain?"], "connector": "and "},
			"alternative_perspective": {"questions": ["another view?"]},
			"constructive_closure": {"questions": ["what next?"], "byEmotion": {"joy": ["keep going!"]}}
		},
		"openingMessage": "welcome",
		"openingWithThought": "let's explore %s"
	}`

	path := filepath.Join(t.TempDir(), "dialogue.json")
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	set, err := Load(path)
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if err := set.Validate(); err != nil {
		t.Fatalf("loaded set rejected: %v", err)
	}

	if len(set.EmotionKeywords[emotion.Anxiety]) != 1 {
		t.Fatalf("anxiety keywords not loaded: %+v", set.EmotionKeywords)
	}
	closure := set.Pool(dialogue.StageConstructiveClosure)
	if len(closure.ByEmotion[emotion.Joy]) != 1 {
		t.Fatalf("byEmotion pool not loaded: %+v", closure)
	}
}

func TestLoadRejectsUnknownEmotion(t *testing.T) {
	raw := `{
		"crisisKeywords": ["x"],
		"safetyResponse": "y",
		"emotionKeywords": {"melancholy": ["z"]},
		"stages": {},
		"openingMessage": "hi"
	}`

	path := filepath.Join(t.TempDir(), "dialogue.json")
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown emotion label")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
