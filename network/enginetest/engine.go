// Package enginetest provides a scripted in-process rules engine for client tests
package enginetest

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lixenwraith/offerboard/board"
	"github.com/lixenwraith/offerboard/network"
)

// Roll is one scripted roll response in wire shape
type Roll struct {
	Skipped bool   `json:"skipped"`
	Message string `json:"message,omitempty"`
	Pos     int    `json:"pos"`
	PosPrev int    `json:"pos_prev"`
	Path    []int  `json:"path"`
	D1      int    `json:"d1,omitempty"`
	D2      int    `json:"d2,omitempty"`
	Die     int    `json:"die,omitempty"`
}

// Resolution is one scripted resolve step
// Outcome is published in the snapshot when no question is pending
// A forced-relocation landing moves the position to the detention tile
type Resolution struct {
	Pending *network.PendingQuestion
	Outcome *network.Outcome
}

// Engine is a deterministic fake of the rules engine
// Scripts are consumed in order; an exhausted script answers 500
type Engine struct {
	mu sync.Mutex

	initial network.Snapshot
	state   network.Snapshot

	rolls       []Roll
	resolutions []Resolution
	submit      network.SubmitResult

	failures map[string]int
	calls    []string
	sessions []string
	answers  []string

	prefetched    chan int
	prefetchBlock chan struct{}
}

// New creates an engine serving initial as the starting snapshot
func New(initial network.Snapshot) *Engine {
	if initial.Board == nil {
		initial.Board = ClassicBoard()
	}
	return &Engine{
		initial:    initial,
		state:      initial,
		failures:   make(map[string]int),
		prefetched: make(chan int, 16),
	}
}

// Handler returns the chi router implementing the engine endpoints
func (e *Engine) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(e.record)

	r.Get("/state", e.handleState)
	r.Post("/new", e.handleNew)
	r.Post("/roll", e.handleRoll)
	r.Post("/prefetch", e.handlePrefetch)
	r.Post("/resolve", e.handleResolve)
	r.Post("/submit_answer", e.handleSubmit)
	return r
}

// QueueRolls appends scripted roll responses
func (e *Engine) QueueRolls(rolls ...Roll) {
	e.mu.Lock()
	e.rolls = append(e.rolls, rolls...)
	e.mu.Unlock()
}

// QueueResolutions appends scripted resolve responses
func (e *Engine) QueueResolutions(res ...Resolution) {
	e.mu.Lock()
	e.resolutions = append(e.resolutions, res...)
	e.mu.Unlock()
}

// SetSubmitResult sets the grading returned by every submit
func (e *Engine) SetSubmitResult(res network.SubmitResult) {
	e.mu.Lock()
	e.submit = res
	e.mu.Unlock()
}

// SetPending places a question in the current snapshot, as a resumed session would
func (e *Engine) SetPending(p *network.PendingQuestion) {
	e.mu.Lock()
	e.state.Pending = p
	e.mu.Unlock()
}

// FailNext makes the next n calls to path answer with status
func (e *Engine) FailNext(path string, status, n int) {
	e.mu.Lock()
	e.failures[path+"#status"] = status
	e.failures[path] = n
	e.mu.Unlock()
}

// BlockPrefetch holds prefetch requests until the returned func is called
func (e *Engine) BlockPrefetch() (release func()) {
	ch := make(chan struct{})
	e.mu.Lock()
	e.prefetchBlock = ch
	e.mu.Unlock()
	var once sync.Once
	return func() { once.Do(func() { close(ch) }) }
}

// Prefetched delivers the position of every prefetch request received
func (e *Engine) Prefetched() <-chan int {
	return e.prefetched
}

// Calls returns the request paths received so far, in order
func (e *Engine) Calls() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.calls...)
}

// Sessions returns the session header of every request, in order
func (e *Engine) Sessions() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.sessions...)
}

// Answers returns every submitted answer text
func (e *Engine) Answers() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.answers...)
}

// State returns a copy of the current snapshot
func (e *Engine) State() network.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *Engine) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		e.mu.Lock()
		e.calls = append(e.calls, r.URL.Path)
		e.sessions = append(e.sessions, r.Header.Get("X-Game-Session"))
		n := e.failures[r.URL.Path]
		status := e.failures[r.URL.Path+"#status"]
		if n > 0 {
			e.failures[r.URL.Path] = n - 1
		}
		e.mu.Unlock()

		if n > 0 {
			http.Error(w, "scripted failure", status)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (e *Engine) handleState(w http.ResponseWriter, _ *http.Request) {
	e.mu.Lock()
	snap := e.state
	e.mu.Unlock()
	writeJSON(w, http.StatusOK, snap)
}

func (e *Engine) handleNew(w http.ResponseWriter, _ *http.Request) {
	e.mu.Lock()
	e.state = e.initial
	e.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (e *Engine) handleRoll(w http.ResponseWriter, _ *http.Request) {
	e.mu.Lock()
	if len(e.rolls) == 0 {
		e.mu.Unlock()
		http.Error(w, "no scripted roll", http.StatusInternalServerError)
		return
	}
	roll := e.rolls[0]
	e.rolls = e.rolls[1:]
	if !roll.Skipped {
		e.state.PreviousPosition = roll.PosPrev
		e.state.Position = roll.Pos
		e.state.LastOutcome = nil
	}
	if e.state.Turns > 0 {
		e.state.Turns--
	}
	e.mu.Unlock()
	writeJSON(w, http.StatusOK, roll)
}

func (e *Engine) handlePrefetch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Pos int `json:"pos"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	select {
	case e.prefetched <- req.Pos:
	default:
	}

	e.mu.Lock()
	block := e.prefetchBlock
	e.mu.Unlock()
	if block != nil {
		select {
		case <-block:
		case <-r.Context().Done():
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (e *Engine) handleResolve(w http.ResponseWriter, _ *http.Request) {
	e.mu.Lock()
	var res Resolution
	if len(e.resolutions) > 0 {
		res = e.resolutions[0]
		e.resolutions = e.resolutions[1:]
	}
	e.state.Pending = res.Pending
	if tile, ok := board.At(e.state.Board, e.state.Position); ok && tile.IsForcedRelocation() {
		e.state.PreviousPosition = e.state.Position
		e.state.Position = board.DetentionIndex(e.state.Board)
	}
	if res.Pending == nil && res.Outcome != nil {
		e.state.LastOutcome = res.Outcome
	}
	e.mu.Unlock()
	writeJSON(w, http.StatusOK, network.ResolveResult{Pending: res.Pending})
}

func (e *Engine) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	e.mu.Lock()
	e.answers = append(e.answers, req.Text)
	res := e.submit
	e.state.Pending = nil
	if res.LastOutcome != nil {
		e.state.LastOutcome = res.LastOutcome
	}
	if res.Cash != 0 {
		e.state.Cash = res.Cash
	}
	e.mu.Unlock()
	writeJSON(w, http.StatusOK, res)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
