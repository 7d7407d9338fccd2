// Package guidance produces the AI-generated content surfaces: relationship
// guidance tips and the emotional profile. Generation is expensive, so both
// are memoized through contentcache with their own TTLs and key shapes.
package guidance

import "fmt"

// Subject is the journaling context the generator works from.
type Subject struct {
	Ref         string // stable subject identifier
	MoodSummary string // condensed recent journal themes/moods
}

// Tip is one relationship guidance entry.
type Tip struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// EmotionalProfile is the generated emotional self-portrait.
type EmotionalProfile struct {
	Summary          string         `json:"summary"`
	DominantEmotions []string       `json:"dominant_emotions"`
	Scores           map[string]int `json:"scores"` // emotion -> 0..100
}

// ParseError means the model answered with a payload that is not valid
// JSON or not the expected shape.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("guidance: unparseable generation payload: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
