package guidance

import (
	"errors"
	"testing"
)

func TestParseTips(t *testing.T) {
	raw := `[{"title":"Listen first","body":"Let them finish before answering."},{"title":"Small rituals","body":"Share one meal a week without phones."}]`
	tips, err := ParseTips(raw)
	if err != nil {
		t.Fatalf("ParseTips: %v", err)
	}
	if len(tips) != 2 || tips[0].Title != "Listen first" {
		t.Fatalf("tips = %+v", tips)
	}
}

func TestParseTipsFenced(t *testing.T) {
	raw := "```json\n[{\"title\":\"t\",\"body\":\"b\"}]\n```"
	tips, err := ParseTips(raw)
	if err != nil {
		t.Fatalf("ParseTips: %v", err)
	}
	if len(tips) != 1 || tips[0].Body != "b" {
		t.Fatalf("tips = %+v", tips)
	}
}

func TestParseTipsRejectsBadPayloads(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"not json", "here are some tips"},
		{"empty list", "[]"},
		{"entry without body", `[{"title":"t","body":"  "}]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseTips(tc.raw)
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("err = %v, want *ParseError", err)
			}
			if perr.Raw != tc.raw {
				t.Fatalf("Raw = %q", perr.Raw)
			}
		})
	}
}

func TestParseEmotionalProfile(t *testing.T) {
	raw := `{"summary":"Mostly calm with bursts of worry.","dominant_emotions":["calm","anxiety"],"scores":{"calm":70,"anxiety":40}}`
	profile, err := ParseEmotionalProfile(raw)
	if err != nil {
		t.Fatalf("ParseEmotionalProfile: %v", err)
	}
	if profile.Summary == "" || len(profile.DominantEmotions) != 2 || profile.Scores["calm"] != 70 {
		t.Fatalf("profile = %+v", profile)
	}
}

func TestParseEmotionalProfileRejectsEmptySummary(t *testing.T) {
	_, err := ParseEmotionalProfile(`{"summary":"","dominant_emotions":[]}`)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("err = %v, want *ParseError", err)
	}
}
