package render

import (
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/lixenwraith/offerboard/turn"
)

// HUD shows counters, the status line and key help
type HUD struct {
	*tview.TextView

	mu      sync.Mutex
	theme   *Theme
	printer *message.Printer
	redraw  func()

	stats       turn.Stats
	status      string
	statusErr   bool
	preparing   bool
	rollEnabled bool
}

// NewHUD creates the HUD text view
func NewHUD(theme *Theme, mode ColorMode) *HUD {
	if theme == nil {
		theme = DefaultTheme()
	}
	h := &HUD{
		TextView: tview.NewTextView(),
		theme:    theme,
		printer:  message.NewPrinter(language.English),
	}
	h.SetDynamicColors(true).
		SetWrap(false).
		SetBackgroundColor(RGBToTcell(theme.Color("background"), mode.Resolve()))
	h.SetBorder(true).SetTitle(" offerboard ")
	return h
}

// SetRedraw installs the refresh callback
func (h *HUD) SetRedraw(fn func()) {
	h.mu.Lock()
	h.redraw = fn
	h.mu.Unlock()
}

func (h *HUD) update(fn func()) {
	h.mu.Lock()
	fn()
	redraw := h.redraw
	h.mu.Unlock()
	if redraw != nil {
		redraw()
	}
}

// SetStats updates the counters
func (h *HUD) SetStats(s turn.Stats) {
	h.update(func() { h.stats = s })
}

// SetStatus replaces the status line
func (h *HUD) SetStatus(msg string, isErr bool) {
	h.update(func() {
		h.status = msg
		h.statusErr = isErr
	})
}

// SetPreparing toggles the question preparation indicator
func (h *HUD) SetPreparing(show bool) {
	h.update(func() { h.preparing = show })
}

// SetRollEnabled marks the roll key as available
func (h *HUD) SetRollEnabled(enabled bool) {
	h.update(func() { h.rollEnabled = enabled })
}

// RollEnabled reports the last roll availability
func (h *HUD) RollEnabled() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.rollEnabled
}

// Text renders the HUD content with colour tags
func (h *HUD) Text() string {
	h.mu.Lock()
	defer h.mu.Unlock()

	text := tag(h.theme.Color("foreground"))
	muted := tag(h.theme.Color("muted"))
	errc := tag(h.theme.Color("error"))

	var b strings.Builder
	b.WriteString(h.printer.Sprintf("%sCash %s$%d%s   Offers %s%d%s   Turns %s%d%s   Owned %s%d[-]\n",
		muted, text, h.stats.Cash, muted,
		text, h.stats.Offers, muted,
		text, h.stats.Turns, muted,
		text, h.stats.Owned))

	switch {
	case h.preparing:
		b.WriteString(muted + "preparing question...[-]")
	case h.status != "" && h.statusErr:
		b.WriteString(errc + tview.Escape(h.status) + "[-]")
	case h.stats.GameOver:
		b.WriteString(tag(h.theme.OutcomeColor("success")) + h.printer.Sprintf("Game over! Final: Cash $%d | Offers %d | Companies %d",
			h.stats.Cash, h.stats.Offers, h.stats.Owned) + "[-]")
	case h.status != "":
		b.WriteString(text + tview.Escape(h.status) + "[-]")
	}
	b.WriteString("\n")

	// No roll key once the game is over
	if h.stats.GameOver {
		b.WriteString(text + tview.Escape("[n] new game") + "  " + muted +
			tview.Escape("[enter/esc] dismiss  [q] quit") + "[-]")
		return b.String()
	}

	roll := muted
	if h.rollEnabled {
		roll = text
	}
	b.WriteString(roll + tview.Escape("[r/space] roll") + "  " + muted +
		tview.Escape("[n] new game  [enter/esc] dismiss  [q] quit") + "[-]")
	return b.String()
}

// Draw refreshes the text before drawing
func (h *HUD) Draw(screen tcell.Screen) {
	h.TextView.SetText(h.Text())
	h.TextView.Draw(screen)
}

func tag(c RGB) string {
	return "[" + c.Hex() + "]"
}
