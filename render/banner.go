package render

import (
	"strings"
	"sync"

	"github.com/rivo/tview"

	"github.com/lixenwraith/offerboard/network"
)

const bannerPage = "banner"

// Banner is the dismissible result overlay
type Banner struct {
	modal *tview.Modal
	host  host
	theme *Theme
	mode  ColorMode

	mu        sync.Mutex
	visible   bool
	onDismiss func()
	onShow    func(kind string)
}

// NewBanner creates a hidden banner
func NewBanner(h host, theme *Theme, mode ColorMode) *Banner {
	if theme == nil {
		theme = DefaultTheme()
	}
	b := &Banner{
		modal: tview.NewModal().AddButtons([]string{"OK"}),
		host:  h,
		theme: theme,
		mode:  mode.Resolve(),
	}
	b.modal.SetDoneFunc(func(int, string) { b.dismissed() })
	return b
}

// SetDismissHandler installs the callback fired when the user closes the banner
func (b *Banner) SetDismissHandler(fn func()) {
	b.mu.Lock()
	b.onDismiss = fn
	b.mu.Unlock()
}

// SetShowHook installs a callback fired with the outcome kind each time a banner opens
func (b *Banner) SetShowHook(fn func(kind string)) {
	b.mu.Lock()
	b.onShow = fn
	b.mu.Unlock()
}

// ShowOutcome opens the banner over the board
func (b *Banner) ShowOutcome(o network.Outcome) {
	b.mu.Lock()
	b.visible = true
	hook := b.onShow
	b.mu.Unlock()

	bg := b.theme.OutcomeColor(o.Kind)
	text := BannerText(o)
	b.host.queue(func() {
		b.modal.SetText(text).
			SetBackgroundColor(RGBToTcell(bg, b.mode)).
			SetTextColor(RGBToTcell(bg.Contrast(), b.mode))
		b.host.showLayer(bannerPage, b.modal)
	})
	if hook != nil {
		hook(o.Kind)
	}
}

// HideOutcome closes the banner
func (b *Banner) HideOutcome() {
	b.mu.Lock()
	b.visible = false
	b.mu.Unlock()
	b.host.queue(func() { b.host.hideLayer(bannerPage) })
}

// Visible reports whether the banner is open
func (b *Banner) Visible() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.visible
}

// Dismiss behaves as if the user pressed the banner button
func (b *Banner) Dismiss() {
	if b.Visible() {
		b.dismissed()
	}
}

func (b *Banner) dismissed() {
	b.mu.Lock()
	fn := b.onDismiss
	b.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// BannerText joins the outcome title and feedback
func BannerText(o network.Outcome) string {
	title := strings.TrimSpace(o.Title)
	feedback := strings.TrimSpace(o.Feedback)
	switch {
	case title == "":
		return feedback
	case feedback == "":
		return title
	default:
		return title + "\n\n" + feedback
	}
}
