package crisis

import "strings"

// Evaluation is the binary outcome of a crisis scan. There is no
// uncertain state: a false positive is preferred over a miss.
type Evaluation struct {
	Detected bool
	Response string
}

// Detector scans message text against a fixed crisis-keyword lexicon.
// It runs before every other component and its positive result overrides
// all downstream processing.
type Detector struct {
	keywords []string
	response string
}

// NewDetector builds a detector over the supplied keywords. The safety
// response is a constant so the crisis path can never fail to render.
func NewDetector(keywords []string, response string) *Detector {
	list := make([]string, 0, len(keywords))
	for _, word := range keywords {
		word = strings.ToLower(strings.TrimSpace(word))
		if word == "" {
			continue
		}
		list = append(list, word)
	}
	return &Detector{keywords: list, response: response}
}

// Evaluate performs a case-insensitive substring match of text against
// the crisis lexicon.
func (d *Detector) Evaluate(text string) Evaluation {
	normalized := strings.ToLower(text)
	for _, word := range d.keywords {
		if strings.Contains(normalized, word) {
			return Evaluation{Detected: true, Response: d.response}
		}
	}
	return Evaluation{}
}
