// Package turn sequences one animated turn against the rules engine and keeps the board in sync.
//
// A turn runs synchronously on the caller's goroutine: roll, dice spin, token walk, board
// rotation, resolve, then either the question flow or a state refresh. The only concurrent work
// is the detached prefetch started when the token lands on a question-bearing tile.
package turn

import (
	"context"

	"github.com/lixenwraith/offerboard/board"
	"github.com/lixenwraith/offerboard/network"
)

// Collaborator is the rules engine
type Collaborator interface {
	Snapshot(ctx context.Context) (*network.Snapshot, error)
	Reset(ctx context.Context) error
	Roll(ctx context.Context) (*network.TurnResult, error)
	Prefetch(ctx context.Context, pos int) error
	Resolve(ctx context.Context) (*network.ResolveResult, error)
	Submit(ctx context.Context, text string) (*network.SubmitResult, error)
}

// Board renders tiles with ownership and development
type Board interface {
	SetBoard(tiles []board.Tile, owned []string, houses map[string]int)
}

// Stats are the HUD counters
// GameOver is set once the engine reports no turns left
type Stats struct {
	Cash     int
	Offers   int
	Turns    int
	Owned    int
	GameOver bool
}

// HUD shows counters, a status line and the preparing indicator
type HUD interface {
	SetStats(s Stats)
	SetStatus(msg string, isErr bool)
	SetPreparing(show bool)
}

// Control is the turn-initiation affordance
type Control interface {
	SetRollEnabled(enabled bool)
}

// QuestionView is the modal question flow
type QuestionView interface {
	OpenQuestion(q network.PendingQuestion)
	CloseQuestion()
	QuestionError(err error)
}
