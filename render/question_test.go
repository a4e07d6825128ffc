package render

import (
	"strings"
	"testing"

	"github.com/lixenwraith/offerboard/network"
)

func TestFormatQuestion(t *testing.T) {
	cases := []struct {
		name   string
		q      network.PendingQuestion
		title  string
		body   []string
		submit string
	}{
		{
			name:   "coding",
			q:      network.PendingQuestion{Kind: "LC_MED", Payload: []byte(`{"question":"Two sum","hints":["hash map","one pass"]}`)},
			title:  "LeetCode Challenge (medium)",
			body:   []string{"Two sum", "Hints:", "- hash map", "- one pass"},
			submit: "Submit answer",
		},
		{
			name:   "systems",
			q:      network.PendingQuestion{Kind: "SYS_DESIGN", Difficulty: "easy", Payload: []byte(`{"prompt":"Design a cache","rubric":["eviction"]}`)},
			title:  "System Design Mini (easy)",
			body:   []string{"Design a cache", "What I'm looking for:", "- eviction"},
			submit: "Submit design",
		},
		{
			name:   "behavioural",
			q:      network.PendingQuestion{Kind: "behavioral", Payload: []byte(`{"prompt":"Conflict","tip":"Use STAR"}`)},
			title:  "Behavioral (STAR)",
			body:   []string{"Conflict\n\nUse STAR"},
			submit: "Submit behavioral answer",
		},
		{
			name:   "bare string payload",
			q:      network.PendingQuestion{Kind: "TRIVIA", Payload: []byte(`"What is DNS?"`)},
			title:  "TRIVIA",
			body:   []string{"What is DNS?"},
			submit: "Submit answer",
		},
		{
			name:   "missing payload",
			q:      network.PendingQuestion{Kind: "LC_HARD"},
			title:  "LeetCode Challenge (hard)",
			submit: "Submit answer",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := FormatQuestion(tc.q)
			if c.Title != tc.title {
				t.Errorf("title = %q, want %q", c.Title, tc.title)
			}
			for _, want := range tc.body {
				if !strings.Contains(c.Body, want) {
					t.Errorf("body %q missing %q", c.Body, want)
				}
			}
			if c.SubmitLabel != tc.submit {
				t.Errorf("submit = %q, want %q", c.SubmitLabel, tc.submit)
			}
		})
	}
}

func TestFormatQuestion_EmptyHints(t *testing.T) {
	c := FormatQuestion(network.PendingQuestion{Kind: "LC_EASY", Payload: []byte(`{"question":"Reverse","hints":[]}`)})
	if c.Body != "Reverse" {
		t.Errorf("body = %q", c.Body)
	}
}
