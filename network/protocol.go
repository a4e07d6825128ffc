package network

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/lixenwraith/offerboard/board"
)

// Outcome summarises the consequence of the most recently settled turn
type Outcome struct {
	Kind     string `json:"kind"`
	Title    string `json:"title"`
	Feedback string `json:"feedback"`
}

// Signature identifies an outcome by value; outcomes are rebuilt on every fetch
func (o Outcome) Signature() string {
	return o.Kind + "\x1f" + o.Title + "\x1f" + o.Feedback
}

// PendingQuestion blocks further turns until answered
type PendingQuestion struct {
	Kind       string          `json:"kind"`
	Difficulty string          `json:"difficulty,omitempty"`
	Payload    json.RawMessage `json:"payload,omitempty"`
}

// UnmarshalJSON accepts both {kind,payload} and the engine's {type,question} spelling
func (q *PendingQuestion) UnmarshalJSON(data []byte) error {
	var aux struct {
		Kind       string          `json:"kind"`
		Type       string          `json:"type"`
		Difficulty string          `json:"difficulty"`
		Payload    json.RawMessage `json:"payload"`
		Question   json.RawMessage `json:"question"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	q.Kind = aux.Kind
	if q.Kind == "" {
		q.Kind = aux.Type
	}
	q.Kind = strings.ToUpper(strings.TrimSpace(q.Kind))
	q.Difficulty = aux.Difficulty
	q.Payload = aux.Payload
	if isNull(q.Payload) {
		q.Payload = aux.Question
	}
	if isNull(q.Payload) {
		q.Payload = nil
	}
	return nil
}

// Snapshot is the authoritative game state
type Snapshot struct {
	Position         int              `json:"pos"`
	PreviousPosition int              `json:"pos_prev"`
	Cash             int              `json:"cash"`
	Offers           int              `json:"offers"`
	Turns            int              `json:"turns"`
	Owned            []string         `json:"owned"`
	Houses           map[string]int   `json:"houses"`
	Board            []board.Tile     `json:"board"`
	LastOutcome      *Outcome         `json:"last_outcome"`
	Pending          *PendingQuestion `json:"pending,omitempty"`
}

// TurnResult is the engine's answer to a roll
type TurnResult struct {
	PreviousPosition int
	Position         int
	Dice             []int
	Path             []int
	Skipped          bool
	Message          string
}

// Total returns the sum of the dice faces
func (r TurnResult) Total() int {
	total := 0
	for _, d := range r.Dice {
		total += d
	}
	return total
}

// UnmarshalJSON decodes both the two-dice and the single-die roll shapes
// A path that is absent or not a list of integers decodes as empty
func (r *TurnResult) UnmarshalJSON(data []byte) error {
	var aux struct {
		Skipped bool            `json:"skipped"`
		Message string          `json:"message"`
		Pos     int             `json:"pos"`
		PosPrev int             `json:"pos_prev"`
		Path    json.RawMessage `json:"path"`
		D1      int             `json:"d1"`
		D2      int             `json:"d2"`
		Die     int             `json:"die"`
		Dice    []int           `json:"dice"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	*r = TurnResult{
		PreviousPosition: aux.PosPrev,
		Position:         aux.Pos,
		Skipped:          aux.Skipped,
		Message:          aux.Message,
	}

	switch {
	case len(aux.Dice) > 0:
		r.Dice = aux.Dice
	case aux.D1 > 0 && aux.D2 > 0:
		r.Dice = []int{aux.D1, aux.D2}
	case aux.D1 > 0:
		r.Dice = []int{aux.D1}
	case aux.Die > 0:
		r.Dice = []int{aux.Die}
	}

	var path []int
	if !isNull(aux.Path) && json.Unmarshal(aux.Path, &path) == nil {
		r.Path = path
	}
	return nil
}

// ResolveResult is the engine's answer to resolving a landing
type ResolveResult struct {
	Pending *PendingQuestion `json:"pending"`
}

// SubmitResult is the engine's grading of an answer
type SubmitResult struct {
	OK          bool     `json:"ok"`
	Cash        int      `json:"cash"`
	Offers      int      `json:"offers"`
	Turns       int      `json:"turns"`
	LastOutcome *Outcome `json:"last_outcome"`
}

type prefetchRequest struct {
	Pos int `json:"pos"`
}

type answerRequest struct {
	Text string `json:"text"`
}

type ackResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
