package dialogue

import "fmt"

// Stage is a phase of the Socratic questioning protocol. It is always
// recomputed from the session's user-turn count and never stored, so it
// cannot drift out of sync with history.
type Stage int

const (
	StageOpening Stage = iota
	StageEvidenceExamination
	StageAlternativePerspective
	StageConstructiveClosure
)

var stageNames = map[Stage]string{
	StageOpening:                "opening",
	StageEvidenceExamination:    "evidence_examination",
	StageAlternativePerspective: "alternative_perspective",
	StageConstructiveClosure:    "constructive_closure",
}

// Stages lists every stage in protocol order.
func Stages() []Stage {
	return []Stage{
		StageOpening,
		StageEvidenceExamination,
		StageAlternativePerspective,
		StageConstructiveClosure,
	}
}

// StageForUserTurn derives the stage for the n-th user turn: 1-2 opening,
// 3-4 evidence, 5-6 alternative perspective, 7+ constructive closure.
func StageForUserTurn(n int) Stage {
	switch {
	case n <= 2:
		return StageOpening
	case n <= 4:
		return StageEvidenceExamination
	case n <= 6:
		return StageAlternativePerspective
	default:
		return StageConstructiveClosure
	}
}

// ParseStage resolves a stage from its wire name.
func ParseStage(name string) (Stage, error) {
	for stage, n := range stageNames {
		if n == name {
			return stage, nil
		}
	}
	return StageOpening, fmt.Errorf("unknown dialogue stage %q", name)
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// MarshalJSON encodes the stage by name.
func (s Stage) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}
