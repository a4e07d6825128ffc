package render

import (
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/offerboard/core"
)

const mainPage = "main"

// hudHeight is the HUD height including its border
const hudHeight = 5

// host runs widget mutations on the event loop and manages overlay layers
type host interface {
	queue(fn func())
	showLayer(name string, p tview.Primitive)
	hideLayer(name string)
}

// Actions are the user commands; each runs on its own goroutine, off the event loop
type Actions struct {
	Roll    func()
	NewGame func()
	Dismiss func()
	Submit  func(text string)
	Cancel  func()
	Quit    func()
}

// Options configures the terminal adapter
type Options struct {
	Theme  *Theme
	Mode   ColorMode
	Screen tcell.Screen
	Logger zerolog.Logger
}

// UI owns the tview application and every widget
type UI struct {
	app    *tview.Application
	pages  *tview.Pages
	logger zerolog.Logger

	Board    *BoardView
	HUD      *HUD
	Banner   *Banner
	Question *QuestionForm

	actions Actions
	pending atomic.Bool
	running atomic.Bool
}

// NewUI builds the widget tree; Run starts the event loop
func NewUI(opts Options) *UI {
	theme := opts.Theme
	if theme == nil {
		theme = DefaultTheme()
	}
	mode := opts.Mode.Resolve()

	u := &UI{
		app:    tview.NewApplication(),
		pages:  tview.NewPages(),
		logger: opts.Logger.With().Str("component", "render").Logger(),
	}
	if opts.Screen != nil {
		u.app.SetScreen(opts.Screen)
	}

	u.Board = NewBoardView(theme, mode)
	u.HUD = NewHUD(theme, mode)
	u.Banner = NewBanner(u, theme, mode)
	u.Question = NewQuestionForm(u, theme, mode)

	u.Board.SetRedraw(u.Redraw)
	u.HUD.SetRedraw(u.Redraw)

	main := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(u.Board, 0, 1, false).
		AddItem(u.HUD, hudHeight, 0, false)
	u.pages.AddPage(mainPage, main, true, true)

	u.app.SetRoot(u.pages, true).
		SetFocus(u.Board).
		SetInputCapture(u.handleKey)
	return u
}

// Bind installs the user commands
func (u *UI) Bind(a Actions) {
	u.actions = a
	u.Banner.SetDismissHandler(func() { u.dispatch("dismiss", a.Dismiss) })
	u.Question.SetHandlers(
		func(text string) {
			if a.Submit != nil {
				u.dispatch("submit", func() { a.Submit(text) })
			}
		},
		func() { u.dispatch("cancel", a.Cancel) },
	)
}

// Run blocks in the event loop until Stop; ready runs on its own goroutine once the loop is live
func (u *UI) Run(ready func()) error {
	u.running.Store(true)
	defer u.running.Store(false)
	if ready != nil {
		u.app.QueueUpdate(func() { u.dispatch("ready", ready) })
	}
	return u.app.Run()
}

// Stop ends the event loop and restores the terminal
func (u *UI) Stop() {
	u.app.Stop()
}

// Redraw schedules one refresh; requests made before it runs are folded into it
func (u *UI) Redraw() {
	if !u.running.Load() {
		return
	}
	if u.pending.CompareAndSwap(false, true) {
		u.app.QueueUpdateDraw(func() { u.pending.Store(false) })
	}
}

func (u *UI) queue(fn func()) {
	if !u.running.Load() {
		fn()
		return
	}
	u.app.QueueUpdateDraw(fn)
}

func (u *UI) showLayer(name string, p tview.Primitive) {
	if u.pages.HasPage(name) {
		u.pages.ShowPage(name)
	} else {
		u.pages.AddPage(name, overlay(name, p), true, true)
	}
	u.pages.SendToFront(name)
	u.app.SetFocus(p)
}

func (u *UI) hideLayer(name string) {
	if !u.pages.HasPage(name) {
		return
	}
	u.pages.HidePage(name)
	if front, _ := u.pages.GetFrontPage(); front == questionPage {
		u.app.SetFocus(u.Question.form)
		return
	}
	u.app.SetFocus(u.Board)
}

// overlay centres the question form; the modal centres itself
func overlay(name string, p tview.Primitive) tview.Primitive {
	if name != questionPage {
		return p
	}
	return tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(p, 0, 4, true).
			AddItem(nil, 0, 1, false), 0, 3, true).
		AddItem(nil, 0, 1, false)
}

// handleKey maps keys to commands while no overlay owns the keyboard
func (u *UI) handleKey(ev *tcell.EventKey) *tcell.EventKey {
	if ev.Key() == tcell.KeyCtrlC {
		u.dispatch("quit", u.actions.Quit)
		return nil
	}

	front, _ := u.pages.GetFrontPage()
	switch front {
	case questionPage:
		return ev
	case bannerPage:
		if ev.Key() == tcell.KeyRune && ev.Rune() == 'q' {
			u.dispatch("quit", u.actions.Quit)
			return nil
		}
		return ev
	}

	switch ev.Key() {
	case tcell.KeyEnter, tcell.KeyEscape:
		u.dispatch("dismiss", u.actions.Dismiss)
		return nil
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'r', ' ':
			u.dispatch("roll", u.actions.Roll)
		case 'n':
			u.dispatch("new game", u.actions.NewGame)
		case 'q':
			u.dispatch("quit", u.actions.Quit)
		default:
			return ev
		}
		return nil
	}
	return ev
}

func (u *UI) dispatch(name string, fn func()) {
	if fn == nil {
		return
	}
	u.logger.Debug().Str("action", name).Msg("key action")
	core.Go(fn)
}
