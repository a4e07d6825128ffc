package render

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/offerboard/network"
)

// fakeHost runs queued work inline and records layers
type fakeHost struct {
	shown  []string
	hidden []string
}

func (h *fakeHost) queue(fn func())                          { fn() }
func (h *fakeHost) showLayer(name string, _ tview.Primitive) { h.shown = append(h.shown, name) }
func (h *fakeHost) hideLayer(name string)                    { h.hidden = append(h.hidden, name) }

func waitAction(t *testing.T, ch <-chan string, want string) {
	t.Helper()
	select {
	case got := <-ch:
		if got != want {
			t.Errorf("action = %q, want %q", got, want)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("action %q not dispatched", want)
	}
}

func newTestUI(t *testing.T) (*UI, chan string) {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	u := NewUI(Options{Mode: Color256, Screen: screen, Logger: zerolog.Nop()})
	ch := make(chan string, 8)
	u.Bind(Actions{
		Roll:    func() { ch <- "roll" },
		NewGame: func() { ch <- "new" },
		Dismiss: func() { ch <- "dismiss" },
		Submit:  func(text string) { ch <- "submit:" + text },
		Cancel:  func() { ch <- "cancel" },
		Quit:    func() { ch <- "quit" },
	})
	return u, ch
}

func TestUI_KeyMapping(t *testing.T) {
	u, ch := newTestUI(t)

	cases := []struct {
		ev   *tcell.EventKey
		want string
	}{
		{tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone), "roll"},
		{tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), "roll"},
		{tcell.NewEventKey(tcell.KeyRune, 'n', tcell.ModNone), "new"},
		{tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), "dismiss"},
		{tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), "quit"},
		{tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), "quit"},
	}
	for _, tc := range cases {
		if out := u.handleKey(tc.ev); out != nil {
			t.Errorf("key %v not consumed", tc.ev.Name())
		}
		waitAction(t, ch, tc.want)
	}

	if out := u.handleKey(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)); out == nil {
		t.Error("unmapped key consumed")
	}
}

func TestUI_BannerOwnsKeyboard(t *testing.T) {
	u, ch := newTestUI(t)
	u.Banner.ShowOutcome(network.Outcome{Kind: "warning", Title: "Go to Jail!"})

	if front, _ := u.pages.GetFrontPage(); front != bannerPage {
		t.Fatalf("front page = %q", front)
	}
	if out := u.handleKey(tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone)); out == nil {
		t.Error("roll key swallowed by capture while banner is up")
	}
	select {
	case a := <-ch:
		t.Errorf("unexpected action %q", a)
	case <-time.After(50 * time.Millisecond):
	}

	u.Banner.Dismiss()
	waitAction(t, ch, "dismiss")

	u.Banner.HideOutcome()
	if front, _ := u.pages.GetFrontPage(); front != mainPage {
		t.Errorf("front page after hide = %q", front)
	}
}

func TestUI_QuestionSubmit(t *testing.T) {
	u, ch := newTestUI(t)
	u.Question.OpenQuestion(network.PendingQuestion{Kind: "BEHAVIORAL", Payload: []byte(`{"prompt":"Tell me"}`)})
	if front, _ := u.pages.GetFrontPage(); front != questionPage {
		t.Fatalf("front page = %q", front)
	}

	u.Question.submit()
	select {
	case a := <-ch:
		t.Fatalf("empty answer dispatched %q", a)
	case <-time.After(50 * time.Millisecond):
	}

	u.Question.answer.SetText("  situation, task  ", true)
	u.Question.submit()
	waitAction(t, ch, "submit:situation, task")

	u.Question.cancel()
	waitAction(t, ch, "cancel")
}

func TestBanner_ShowAndHide(t *testing.T) {
	h := &fakeHost{}
	b := NewBanner(h, nil, Color256)
	var kinds []string
	b.SetShowHook(func(kind string) { kinds = append(kinds, kind) })
	dismissed := 0
	b.SetDismissHandler(func() { dismissed++ })

	b.Dismiss()
	if dismissed != 0 {
		t.Error("dismiss fired while hidden")
	}

	b.ShowOutcome(network.Outcome{Kind: "success", Title: "PASS", Feedback: "clean"})
	if !b.Visible() || len(h.shown) != 1 || h.shown[0] != bannerPage {
		t.Fatalf("banner not shown: %v", h.shown)
	}
	if len(kinds) != 1 || kinds[0] != "success" {
		t.Errorf("show hook kinds = %v", kinds)
	}
	b.Dismiss()
	if dismissed != 1 {
		t.Errorf("dismissed = %d", dismissed)
	}
	b.HideOutcome()
	if b.Visible() || len(h.hidden) != 1 {
		t.Error("banner not hidden")
	}
}

func TestBannerText(t *testing.T) {
	if got := BannerText(network.Outcome{Title: "PASS", Feedback: "good"}); got != "PASS\n\ngood" {
		t.Errorf("text = %q", got)
	}
	if got := BannerText(network.Outcome{Title: " Go to Jail! "}); got != "Go to Jail!" {
		t.Errorf("text = %q", got)
	}
}

func TestQuestionForm_Error(t *testing.T) {
	h := &fakeHost{}
	q := NewQuestionForm(h, nil, Color256)
	q.OpenQuestion(network.PendingQuestion{Kind: "LC_EASY"})
	q.QuestionError(errors.New("upstream: status 500"))
	if !strings.Contains(q.status.GetText(true), "status 500") {
		t.Errorf("status = %q", q.status.GetText(true))
	}
	if !q.IsOpen() {
		t.Error("form closed on error")
	}
	q.answer.SetText("draft", true)
	q.CloseQuestion()
	if q.IsOpen() || q.Answer() != "" {
		t.Error("close kept state")
	}
}
