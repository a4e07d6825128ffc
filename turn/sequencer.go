package turn

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/offerboard/animation"
	"github.com/lixenwraith/offerboard/board"
	"github.com/lixenwraith/offerboard/core"
	"github.com/lixenwraith/offerboard/dice"
	"github.com/lixenwraith/offerboard/network"
	"github.com/lixenwraith/offerboard/outcome"
	"github.com/lixenwraith/offerboard/status"
	"github.com/lixenwraith/offerboard/token"
)

// relocationSteps is the fixed half turn issued after a forced relocation
// The relocation trigger sits on the top edge and detention on the bottom edge
const relocationSteps = 2

// Timing holds the pacing of one turn
type Timing struct {
	Spin  time.Duration
	Pause time.Duration
	Step  time.Duration
}

// DefaultTiming returns the standard pacing
func DefaultTiming() Timing {
	return Timing{
		Spin:  dice.DefaultSpinDuration,
		Pause: 450 * time.Millisecond,
		Step:  token.DefaultStepDuration,
	}
}

// Deps wires a sequencer to its collaborators; nil views are tolerated
type Deps struct {
	Client    Collaborator
	Session   *Session
	Token     *token.Animator
	Dice      *dice.Animator
	Board     Board
	HUD       HUD
	Control   Control
	Banner    outcome.Banner
	Questions QuestionView
	Metrics   *status.Registry
	Logger    zerolog.Logger
	Timing    Timing
}

// sessionBinder is implemented by collaborators that tag requests with the session id
type sessionBinder interface {
	BindSession(id string)
}

// Sequencer drives turns through the state machine
type Sequencer struct {
	client    Collaborator
	session   *Session
	token     *token.Animator
	dice      *dice.Animator
	hud       HUD
	control   Control
	questions QuestionView
	metrics   *status.Registry
	logger    zerolog.Logger
	timing    Timing

	machine *Machine
	gate    *outcome.Gate
	sync    *StateSync

	inFlight atomic.Bool

	mu      sync.Mutex
	pending *network.PendingQuestion
	landing int

	prefetches sync.WaitGroup
}

// NewSequencer creates a sequencer in Idle
func NewSequencer(d Deps) *Sequencer {
	if d.Session == nil {
		d.Session = NewSession(nil)
	}
	if d.Token == nil {
		d.Token = token.New(nil, d.Timing.Step)
	}
	if d.Dice == nil {
		d.Dice = dice.New(nil)
	}
	if d.Timing == (Timing{}) {
		d.Timing = DefaultTiming()
	}

	s := &Sequencer{
		client:    d.Client,
		session:   d.Session,
		token:     d.Token,
		dice:      d.Dice,
		hud:       d.HUD,
		control:   d.Control,
		questions: d.Questions,
		metrics:   d.Metrics,
		logger:    d.Logger.With().Str("component", "turn").Logger(),
		timing:    d.Timing,
		machine:   NewMachine(),
	}
	s.gate = outcome.NewGate(d.Banner, gateControl{s})
	s.sync = &StateSync{
		client:  d.Client,
		session: d.Session,
		board:   d.Board,
		hud:     d.HUD,
		token:   d.Token,
		gate:    s.gate,
		metrics: d.Metrics,
		logger:  s.logger,
	}
	s.machine.OnChange(func(from, to State) {
		s.metrics.SetLabel(status.TurnState, to.String())
		s.logger.Debug().Stringer("from", from).Stringer("to", to).Msg("turn state")
	})
	return s
}

// State returns the current turn state
func (s *Sequencer) State() State {
	return s.machine.State()
}

// Gate returns the outcome gate
func (s *Sequencer) Gate() *outcome.Gate {
	return s.gate
}

// Session returns the game session
func (s *Sequencer) Session() *Session {
	return s.session
}

// Pending returns the open question, nil when none
func (s *Sequencer) Pending() *network.PendingQuestion {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Start binds the session and renders the resting state
// A snapshot carrying a pending question resumes the question flow
// Holds the turn slot so no roll can run against an unsynced board
func (s *Sequencer) Start(ctx context.Context) error {
	if !s.inFlight.CompareAndSwap(false, true) {
		return ErrTurnInFlight
	}
	defer s.syncControl()
	defer s.inFlight.Store(false)
	s.setControl(false)

	s.bindSession()
	return s.refresh(ctx)
}

// InitiateTurn runs one full turn
// Rejected while an outcome is showing, another turn runs or no turns are left; in
// PendingQuestion the question is reopened; in ResolveFailed the resolve is retried
// instead of rolling. A board that never synced is synced first.
func (s *Sequencer) InitiateTurn(ctx context.Context) error {
	if s.gate.Showing() {
		return ErrOutcomeShowing
	}
	if !s.inFlight.CompareAndSwap(false, true) {
		return ErrTurnInFlight
	}
	defer s.syncControl()
	defer s.inFlight.Store(false)
	s.setControl(false)

	if !s.session.Initialized() {
		if err := s.refresh(ctx); err != nil {
			s.status("engine unreachable: "+err.Error(), true)
			return fmt.Errorf("%w: %w", ErrNotSynced, err)
		}
		if s.gate.Showing() {
			return ErrOutcomeShowing
		}
		if s.machine.State() == PendingQuestion {
			return ErrQuestionPending
		}
	}

	switch st := s.machine.State(); st {
	case Idle:
		if s.gameOver() {
			s.status("game over, press n for a new game", false)
			return ErrGameOver
		}
	case PendingQuestion:
		s.ReopenQuestion()
		return ErrQuestionPending
	case ResolveFailed:
		s.mu.Lock()
		landing := s.landing
		s.mu.Unlock()
		s.logger.Info().Int("pos", landing).Msg("retrying resolve")
		return s.resolveAndSettle(ctx, landing)
	default:
		return fmt.Errorf("%w: turn requested in %s", ErrInvalidTransition, st)
	}

	start := time.Now()
	s.metrics.Inc(status.TurnsStarted)
	defer func() { s.metrics.Observe(status.LastTurnDuration, time.Since(start)) }()

	if err := s.machine.Transition(Rolling); err != nil {
		return err
	}
	s.status("rolling...", false)

	res, err := s.client.Roll(ctx)
	if err != nil {
		s.metrics.Inc(status.RollFailures)
		s.metrics.SetLabel(status.LastError, err.Error())
		s.logger.Warn().Err(err).Msg("roll failed")
		if terr := s.machine.Transition(Idle); terr != nil {
			return terr
		}
		if rerr := s.refresh(ctx); rerr != nil {
			s.logger.Debug().Err(rerr).Msg("refresh after failed roll")
		}
		s.status("roll failed: "+err.Error(), true)
		return err
	}

	if res.Skipped {
		s.metrics.Inc(status.TurnsSkipped)
		if err := s.machine.Transition(Idle); err != nil {
			return err
		}
		msg := res.Message
		if msg == "" {
			msg = "turn skipped"
		}
		s.status(msg, false)
		s.logger.Info().Str("message", msg).Msg("turn skipped")
		if err := s.refresh(ctx); err != nil {
			s.status(err.Error(), true)
		}
		return nil
	}

	if err := s.machine.Transition(Animating); err != nil {
		return err
	}
	s.logger.Info().
		Ints("dice", res.Dice).
		Int("from", res.PreviousPosition).
		Int("to", res.Position).
		Int("steps", len(res.Path)).
		Msg("rolled")

	if len(res.Dice) > 0 {
		s.dice.Spin(ctx, s.timing.Spin, res.Dice)
		s.status(fmt.Sprintf("rolled %d", res.Total()), false)
		if err := animation.Sleep(ctx, s.timing.Pause); err != nil {
			return err
		}
	}

	if err := s.token.Walk(ctx, res.Path, s.timing.Step); err != nil {
		return err
	}
	s.dice.Hide()

	s.token.SetVisible(false)
	rotations := s.session.Orientation.PlanRotationsForPath(ctx, res.PreviousPosition, res.Path)
	s.addRotations(rotations)

	s.token.MoveTo(res.Position, true)
	s.token.SetVisible(true)

	if err := s.machine.Transition(AwaitingResolve); err != nil {
		return err
	}
	return s.settle(ctx, res.Position)
}

// resolveAndSettle re-enters the resolve phase after a failed attempt
func (s *Sequencer) resolveAndSettle(ctx context.Context, landing int) error {
	if err := s.machine.Transition(AwaitingResolve); err != nil {
		return err
	}
	return s.settle(ctx, landing)
}

// settle runs the resolve phase: prefetch hint, resolve, relocation, hand-off
func (s *Sequencer) settle(ctx context.Context, landing int) error {
	tile := s.tileAt(landing)

	preparing := tile.QuestionBearing()
	if preparing {
		s.setPreparing(true)
		s.prefetch(ctx, landing)
	}

	res, err := s.client.Resolve(ctx)
	if err != nil {
		if preparing {
			s.setPreparing(false)
		}
		s.mu.Lock()
		s.landing = landing
		s.mu.Unlock()
		s.metrics.Inc(status.ResolveFailures)
		s.metrics.SetLabel(status.LastError, err.Error())
		s.logger.Warn().Err(err).Int("pos", landing).Msg("resolve failed")
		if terr := s.machine.Transition(ResolveFailed); terr != nil {
			return terr
		}
		s.status("resolve failed, press r to retry: "+err.Error(), true)
		return err
	}

	if tile.IsForcedRelocation() {
		s.relocate(ctx)
	}

	if preparing {
		s.setPreparing(false)
	}

	if res.Pending != nil {
		if err := s.machine.Transition(PendingQuestion); err != nil {
			return err
		}
		s.openQuestion(*res.Pending)
		s.metrics.Inc(status.TurnsCompleted)
		return nil
	}

	if err := s.machine.Transition(Idle); err != nil {
		return err
	}
	s.metrics.Inc(status.TurnsCompleted)
	if err := s.refresh(ctx); err != nil {
		s.status(err.Error(), true)
		return err
	}
	return nil
}

// relocate flips the board to the opposite side and drops the token on the detention tile
func (s *Sequencer) relocate(ctx context.Context) {
	detention := board.DefaultDetentionIndex
	if snap := s.session.Snapshot(); snap != nil {
		detention = board.DetentionIndex(snap.Board)
	}

	s.token.SetVisible(false)
	for i := 0; i < relocationSteps; i++ {
		s.session.Orientation.RotateOneStepCCW(ctx)
	}
	s.addRotations(relocationSteps)
	s.token.MoveTo(detention, true)
	s.token.SetVisible(true)

	s.metrics.Inc(status.Relocations)
	s.logger.Info().Int("to", detention).Msg("forced relocation")
}

// prefetch hints the engine to prepare the question; never awaited, failures are dropped
func (s *Sequencer) prefetch(ctx context.Context, pos int) {
	s.metrics.Inc(status.PrefetchStarted)
	detached := context.WithoutCancel(ctx)

	s.prefetches.Add(1)
	core.Go(func() {
		defer s.prefetches.Done()
		if err := s.client.Prefetch(detached, pos); err != nil {
			s.metrics.Inc(status.PrefetchFailures)
			s.logger.Debug().Err(err).Int("pos", pos).Msg("prefetch failed")
		}
	})
}

// WaitPrefetches blocks until every detached prefetch has returned
func (s *Sequencer) WaitPrefetches() {
	s.prefetches.Wait()
}

// AnswerQuestion submits an answer; on failure the question stays open with the error
func (s *Sequencer) AnswerQuestion(ctx context.Context, text string) error {
	if s.machine.State() != PendingQuestion {
		return ErrNoQuestion
	}
	if !s.inFlight.CompareAndSwap(false, true) {
		return ErrTurnInFlight
	}
	defer s.syncControl()
	defer s.inFlight.Store(false)

	res, err := s.client.Submit(ctx, text)
	if err != nil {
		s.metrics.Inc(status.SubmitFailures)
		s.metrics.SetLabel(status.LastError, err.Error())
		s.logger.Warn().Err(err).Msg("submit failed")
		if s.questions != nil {
			s.questions.QuestionError(err)
		}
		return err
	}

	if s.questions != nil {
		s.questions.CloseQuestion()
	}
	s.mu.Lock()
	s.pending = nil
	s.mu.Unlock()
	s.metrics.Inc(status.QuestionsAnswered)
	s.logger.Info().Bool("ok", res.OK).Msg("answer graded")

	if err := s.machine.Transition(Idle); err != nil {
		return err
	}
	if err := s.refresh(ctx); err != nil {
		s.status(err.Error(), true)
	}
	s.gate.Show(res.LastOutcome)
	return nil
}

// CancelQuestion closes the question view; the question stays pending
func (s *Sequencer) CancelQuestion() {
	if s.questions != nil {
		s.questions.CloseQuestion()
	}
	if s.machine.State() == PendingQuestion {
		s.status("question pending, press r to answer", false)
	}
}

// ReopenQuestion shows the pending question again
func (s *Sequencer) ReopenQuestion() {
	s.mu.Lock()
	q := s.pending
	s.mu.Unlock()
	if q != nil && s.questions != nil {
		s.questions.OpenQuestion(*q)
	}
}

// DismissOutcome hides the result banner and re-enables turns
func (s *Sequencer) DismissOutcome() {
	s.gate.Dismiss()
	s.syncControl()
}

// NewGame resets the engine and the session, then renders the fresh state
func (s *Sequencer) NewGame(ctx context.Context) error {
	if !s.inFlight.CompareAndSwap(false, true) {
		return ErrTurnInFlight
	}
	defer s.syncControl()
	defer s.inFlight.Store(false)
	s.setControl(false)

	if err := s.client.Reset(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("new game failed")
		s.status("new game failed: "+err.Error(), true)
		return err
	}

	s.machine.Reset()
	s.session.Reset()
	s.bindSession()
	s.gate.Reset()

	s.mu.Lock()
	s.pending = nil
	s.landing = 0
	s.mu.Unlock()

	if s.questions != nil {
		s.questions.CloseQuestion()
	}
	s.setPreparing(false)
	s.dice.Hide()
	s.status("new game", false)
	s.logger.Info().Str("session", s.session.ID()).Msg("new game")

	return s.refresh(ctx)
}

// refresh runs StateSync and hands a resumed pending question to the question flow
func (s *Sequencer) refresh(ctx context.Context) error {
	snap, err := s.sync.Refresh(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("refresh failed")
		return err
	}
	if snap.Pending != nil && s.machine.State() == Idle {
		if err := s.machine.Transition(PendingQuestion); err != nil {
			return err
		}
		s.openQuestion(*snap.Pending)
		return nil
	}
	if snap.Turns <= 0 && s.machine.State() == Idle {
		s.logger.Info().Int("cash", snap.Cash).Int("offers", snap.Offers).Int("owned", len(snap.Owned)).Msg("game over")
	}
	return nil
}

func (s *Sequencer) openQuestion(q network.PendingQuestion) {
	s.mu.Lock()
	s.pending = &q
	s.mu.Unlock()

	s.logger.Info().Str("kind", q.Kind).Str("difficulty", q.Difficulty).Msg("question pending")
	s.status("question: "+q.Kind, false)
	if s.questions != nil {
		s.questions.OpenQuestion(q)
	}
}

func (s *Sequencer) tileAt(i int) board.Tile {
	snap := s.session.Snapshot()
	if snap == nil {
		return board.Tile{}
	}
	tile, _ := board.At(snap.Board, i)
	return tile
}

func (s *Sequencer) bindSession() {
	if b, ok := s.client.(sessionBinder); ok {
		b.BindSession(s.session.ID())
	}
}

func (s *Sequencer) addRotations(n int) {
	if s.metrics == nil {
		return
	}
	s.metrics.Counters.Get(status.Rotations).Add(int64(n))
}

// idle reports whether a new turn may start, ignoring the gate
func (s *Sequencer) idle() bool {
	return s.machine.State() == Idle && !s.inFlight.Load() && !s.gameOver()
}

// gameOver reports whether the last snapshot had no turns left
func (s *Sequencer) gameOver() bool {
	snap := s.session.Snapshot()
	return snap != nil && snap.Turns <= 0
}

// syncControl enables the roll control iff Idle with no outcome showing
func (s *Sequencer) syncControl() {
	s.setControl(s.idle() && !s.gate.Showing())
}

func (s *Sequencer) setControl(enabled bool) {
	if s.control != nil {
		s.control.SetRollEnabled(enabled)
	}
}

func (s *Sequencer) setPreparing(show bool) {
	if s.hud != nil {
		s.hud.SetPreparing(show)
	}
}

func (s *Sequencer) status(msg string, isErr bool) {
	if s.hud != nil {
		s.hud.SetStatus(msg, isErr)
	}
}

// gateControl lets the gate enable turns only when the sequencer is idle
type gateControl struct {
	s *Sequencer
}

func (g gateControl) SetRollEnabled(enabled bool) {
	g.s.setControl(enabled && g.s.idle())
}

// IsRejection reports errors that mean the request was ignored, not that something failed
func IsRejection(err error) bool {
	return errors.Is(err, ErrTurnInFlight) ||
		errors.Is(err, ErrOutcomeShowing) ||
		errors.Is(err, ErrQuestionPending) ||
		errors.Is(err, ErrGameOver)
}
