package turn

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/offerboard/board"
	"github.com/lixenwraith/offerboard/network"
	"github.com/lixenwraith/offerboard/outcome"
	"github.com/lixenwraith/offerboard/status"
	"github.com/lixenwraith/offerboard/token"
)

// StateSync reconciles every render concern to the authoritative snapshot
type StateSync struct {
	client  Collaborator
	session *Session
	board   Board
	hud     HUD
	token   *token.Animator
	gate    *outcome.Gate
	metrics *status.Registry
	logger  zerolog.Logger
}

// Refresh fetches the snapshot and redraws from it
// The board is snapped to the token's side only on the first refresh of a session
func (s *StateSync) Refresh(ctx context.Context) (*network.Snapshot, error) {
	start := time.Now()
	snap, err := s.client.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("refresh: %w", err)
	}
	s.session.store(snap)

	if s.board != nil {
		s.board.SetBoard(snap.Board, snap.Owned, snap.Houses)
	}
	if s.hud != nil {
		s.hud.SetStats(Stats{
			Cash:     snap.Cash,
			Offers:   snap.Offers,
			Turns:    snap.Turns,
			Owned:    len(snap.Owned),
			GameOver: snap.Turns <= 0,
		})
	}

	if !s.session.markInitialized() {
		s.session.Orientation.SnapToSide(board.SideOf(snap.Position))
	}

	if s.token != nil {
		s.token.SetVisible(true)
		s.token.MoveTo(snap.Position, true)
	}

	s.gate.Show(snap.LastOutcome)

	s.metrics.Inc(status.Refreshes)
	s.metrics.Observe(status.LastRefresh, time.Since(start))
	s.logger.Debug().
		Int("pos", snap.Position).
		Int("cash", snap.Cash).
		Bool("pending", snap.Pending != nil).
		Bool("outcome", snap.LastOutcome != nil).
		Msg("state refreshed")

	return snap, nil
}
