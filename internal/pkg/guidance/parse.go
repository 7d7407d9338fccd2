package guidance

import (
	"encoding/json"
	"errors"
	"strings"
)

// ParseTips decodes a model answer into a guidance list.
func ParseTips(raw string) ([]Tip, error) {
	cleaned := stripCodeFence(raw)

	var tips []Tip
	if err := json.Unmarshal([]byte(cleaned), &tips); err != nil {
		return nil, &ParseError{Raw: raw, Err: err}
	}
	if len(tips) == 0 {
		return nil, &ParseError{Raw: raw, Err: errors.New("empty guidance list")}
	}
	for _, tip := range tips {
		if strings.TrimSpace(tip.Body) == "" {
			return nil, &ParseError{Raw: raw, Err: errors.New("guidance entry without body")}
		}
	}
	return tips, nil
}

// ParseEmotionalProfile decodes a model answer into the profile structure.
func ParseEmotionalProfile(raw string) (EmotionalProfile, error) {
	cleaned := stripCodeFence(raw)

	var profile EmotionalProfile
	if err := json.Unmarshal([]byte(cleaned), &profile); err != nil {
		return EmotionalProfile{}, &ParseError{Raw: raw, Err: err}
	}
	if strings.TrimSpace(profile.Summary) == "" {
		return EmotionalProfile{}, &ParseError{Raw: raw, Err: errors.New("profile without summary")}
	}
	return profile, nil
}

// stripCodeFence removes a surrounding markdown fence; models wrap JSON in
// ```json blocks despite instructions.
func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
