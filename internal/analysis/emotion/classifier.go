package emotion

import "strings"

// Label is the closed set of emotion categories the engine understands.
type Label string

const (
	Anxiety Label = "anxiety"
	Anger   Label = "anger"
	Sadness Label = "sadness"
	Fatigue Label = "fatigue"
	Joy     Label = "joy"
	Unknown Label = "unknown"
)

// Labels lists every category, Unknown included.
func Labels() []Label {
	return []Label{Anxiety, Anger, Sadness, Fatigue, Joy, Unknown}
}

// ParseLabel resolves a label from its wire name.
func ParseLabel(name string) (Label, bool) {
	for _, label := range Labels() {
		if string(label) == name {
			return label, true
		}
	}
	return Unknown, false
}

// Classifier scores text against per-emotion keyword buckets. Classify is
// a pure function of (text, buckets): it always returns a label and never
// fails.
type Classifier struct {
	buckets map[Label][]string
}

// NewClassifier builds a classifier over the supplied keyword buckets.
// Keywords are matched case-insensitively as substrings.
func NewClassifier(buckets map[Label][]string) *Classifier {
	normalized := make(map[Label][]string, len(buckets))
	for label, keywords := range buckets {
		list := make([]string, 0, len(keywords))
		for _, word := range keywords {
			word = strings.ToLower(strings.TrimSpace(word))
			if word == "" {
				continue
			}
			list = append(list, word)
		}
		normalized[label] = list
	}
	return &Classifier{buckets: normalized}
}

// Classify returns the category with the strictly highest keyword hit
// count. A tie at the top, or no hit at all, yields Unknown.
func (c *Classifier) Classify(text string) Label {
	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized == "" {
		return Unknown
	}

	scores := make(map[Label]int)
	for label, keywords := range c.buckets {
		for _, word := range keywords {
			if strings.Contains(normalized, word) {
				scores[label]++
			}
		}
	}

	best := Unknown
	bestScore := 0
	tied := false
	for label, s := range scores {
		switch {
		case s > bestScore:
			bestScore = s
			best = label
			tied = false
		case s == bestScore && s > 0:
			tied = true
		}
	}

	if bestScore == 0 || tied {
		return Unknown
	}
	return best
}
