// Package outcome gates turn initiation behind a dismissible result banner
package outcome

import (
	"sync"

	"github.com/lixenwraith/offerboard/network"
)

// Banner renders the result overlay
type Banner interface {
	ShowOutcome(o network.Outcome)
	HideOutcome()
}

// Control is the turn-initiation control the gate enables and disables
type Control interface {
	SetRollEnabled(enabled bool)
}

// Gate shows each distinct outcome at most once and blocks turns while it is visible
type Gate struct {
	mu            sync.Mutex
	banner        Banner
	control       Control
	showing       bool
	current       string
	lastDismissed string
}

// NewGate creates a gate; nil banner or control are tolerated
func NewGate(banner Banner, control Control) *Gate {
	return &Gate{banner: banner, control: control}
}

// Show presents o unless it is nil or was already dismissed
func (g *Gate) Show(o *network.Outcome) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if o == nil || o.Signature() == g.lastDismissed {
		g.hideLocked()
		return
	}

	g.showing = true
	g.current = o.Signature()
	if g.banner != nil {
		g.banner.ShowOutcome(*o)
	}
	g.setEnabled(false)
}

// Dismiss hides the banner and remembers the outcome so later snapshots do not re-show it
func (g *Gate) Dismiss() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.showing {
		g.lastDismissed = g.current
	}
	g.hideLocked()
}

// Showing reports whether an undismissed outcome is visible
func (g *Gate) Showing() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.showing
}

// Reset forgets the last dismissed outcome and hides the banner
func (g *Gate) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.lastDismissed = ""
	g.hideLocked()
}

func (g *Gate) hideLocked() {
	g.showing = false
	g.current = ""
	if g.banner != nil {
		g.banner.HideOutcome()
	}
	g.setEnabled(true)
}

func (g *Gate) setEnabled(enabled bool) {
	if g.control != nil {
		g.control.SetRollEnabled(enabled)
	}
}
