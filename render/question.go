package render

import (
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/tidwall/gjson"

	"github.com/lixenwraith/offerboard/network"
)

const questionPage = "question"

// Question kinds as served by the engine
const (
	kindCodingPrefix = "LC_"
	kindSystems      = "SYS_DESIGN"
	kindBehavioural  = "BEHAVIORAL"
)

var codingDifficulty = map[string]string{
	"LC_EASY": "EASY",
	"LC_MED":  "MEDIUM",
	"LC_HARD": "HARD",
}

// QuestionContent is the presentable form of a pending question
type QuestionContent struct {
	Title       string
	Body        string
	Placeholder string
	SubmitLabel string
}

// FormatQuestion extracts the prompt, hints and rubric of a pending question
func FormatQuestion(q network.PendingQuestion) QuestionContent {
	kind := strings.ToUpper(q.Kind)
	payload := gjson.ParseBytes(q.Payload)
	difficulty := strings.ToUpper(strings.TrimSpace(q.Difficulty))

	switch {
	case strings.HasPrefix(kind, kindCodingPrefix):
		if difficulty == "" {
			difficulty = codingDifficulty[kind]
		}
		return QuestionContent{
			Title:       withDifficulty("LeetCode Challenge", difficulty),
			Body:        section(payloadText(payload, "question"), "Hints", payload.Get("hints")),
			Placeholder: "Describe your approach (no full code needed)",
			SubmitLabel: "Submit answer",
		}
	case kind == kindSystems:
		return QuestionContent{
			Title:       withDifficulty("System Design Mini", difficulty),
			Body:        section(payloadText(payload, "prompt"), "What I'm looking for", payload.Get("rubric")),
			Placeholder: "Write 5-8 bullets outlining your design",
			SubmitLabel: "Submit design",
		}
	case kind == kindBehavioural:
		body := payloadText(payload, "prompt")
		if tip := strings.TrimSpace(payload.Get("tip").String()); tip != "" {
			body += "\n\n" + tip
		}
		return QuestionContent{
			Title:       withDifficulty("Behavioral (STAR)", difficulty),
			Body:        body,
			Placeholder: "Your STAR answer",
			SubmitLabel: "Submit behavioral answer",
		}
	default:
		title := "Question"
		if kind != "" {
			title = kind
		}
		return QuestionContent{
			Title:       withDifficulty(title, difficulty),
			Body:        payloadText(payload, "prompt", "question"),
			Placeholder: "Your answer",
			SubmitLabel: "Submit answer",
		}
	}
}

// payloadText returns the first present string field, or the payload itself when it is a bare string
func payloadText(payload gjson.Result, fields ...string) string {
	if payload.Type == gjson.String {
		return payload.String()
	}
	for _, f := range fields {
		if v := payload.Get(f); v.Exists() && v.String() != "" {
			return strings.TrimSpace(v.String())
		}
	}
	return ""
}

func section(body, heading string, items gjson.Result) string {
	if !items.IsArray() {
		return body
	}
	var lines []string
	for _, it := range items.Array() {
		if s := strings.TrimSpace(it.String()); s != "" {
			lines = append(lines, "- "+s)
		}
	}
	if len(lines) == 0 {
		return body
	}
	return body + "\n\n" + heading + ":\n" + strings.Join(lines, "\n")
}

func withDifficulty(title, difficulty string) string {
	if difficulty == "" {
		return title
	}
	return title + " (" + strings.ToLower(difficulty) + ")"
}

// QuestionForm is the modal answer flow
type QuestionForm struct {
	root   *tview.Flex
	body   *tview.TextView
	form   *tview.Form
	answer *tview.TextArea
	status *tview.TextView
	host   host
	theme  *Theme

	mu       sync.Mutex
	open     bool
	onSubmit func(text string)
	onCancel func()
}

// NewQuestionForm builds the hidden question layer
func NewQuestionForm(h host, theme *Theme, mode ColorMode) *QuestionForm {
	if theme == nil {
		theme = DefaultTheme()
	}
	mode = mode.Resolve()
	q := &QuestionForm{
		body:   tview.NewTextView(),
		form:   tview.NewForm(),
		answer: tview.NewTextArea(),
		status: tview.NewTextView(),
		host:   h,
		theme:  theme,
	}
	q.body.SetWordWrap(true).SetScrollable(true)
	q.answer.SetLabel("Answer").SetSize(8, 0)
	q.status.SetTextColor(RGBToTcell(theme.Color("error"), mode))

	q.form.AddFormItem(q.answer).
		AddButton("Submit", q.submit).
		AddButton("Cancel", q.cancel).
		SetButtonsAlign(tview.AlignRight).
		SetCancelFunc(q.cancel)

	q.root = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(q.body, 0, 1, false).
		AddItem(q.form, 12, 0, true).
		AddItem(q.status, 1, 0, false)
	q.root.SetBorder(true).SetBackgroundColor(RGBToTcell(theme.Color("background"), mode))
	q.root.SetInputCapture(func(ev *tcell.EventKey) *tcell.EventKey {
		if ev.Key() == tcell.KeyCtrlS {
			q.submit()
			return nil
		}
		return ev
	})
	return q
}

// SetHandlers installs the submit and cancel callbacks
func (q *QuestionForm) SetHandlers(submit func(text string), cancel func()) {
	q.mu.Lock()
	q.onSubmit = submit
	q.onCancel = cancel
	q.mu.Unlock()
}

// OpenQuestion shows a question, keeping a draft when the same flow is reopened
func (q *QuestionForm) OpenQuestion(pq network.PendingQuestion) {
	c := FormatQuestion(pq)
	q.mu.Lock()
	q.open = true
	q.mu.Unlock()
	q.host.queue(func() {
		q.root.SetTitle(" " + c.Title + " ")
		q.body.SetText(c.Body).ScrollToBeginning()
		q.answer.SetPlaceholder(c.Placeholder)
		if b := q.form.GetButton(0); b != nil {
			b.SetLabel(c.SubmitLabel)
		}
		q.status.SetText("")
		q.host.showLayer(questionPage, q.root)
	})
}

// CloseQuestion hides the form and clears the draft
func (q *QuestionForm) CloseQuestion() {
	q.mu.Lock()
	q.open = false
	q.mu.Unlock()
	q.host.queue(func() {
		q.answer.SetText("", false)
		q.status.SetText("")
		q.host.hideLayer(questionPage)
	})
}

// QuestionError shows a submit failure; the form stays open
func (q *QuestionForm) QuestionError(err error) {
	if err == nil {
		return
	}
	msg := err.Error()
	q.host.queue(func() { q.status.SetText(msg) })
}

// IsOpen reports whether the form is showing
func (q *QuestionForm) IsOpen() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.open
}

// Answer returns the current draft
func (q *QuestionForm) Answer() string {
	return q.answer.GetText()
}

func (q *QuestionForm) submit() {
	text := strings.TrimSpace(q.answer.GetText())
	if text == "" {
		q.status.SetText("answer is empty")
		return
	}
	q.status.SetText("submitting...")
	q.mu.Lock()
	fn := q.onSubmit
	q.mu.Unlock()
	if fn != nil {
		fn(text)
	}
}

func (q *QuestionForm) cancel() {
	q.mu.Lock()
	fn := q.onCancel
	q.mu.Unlock()
	if fn != nil {
		fn()
	}
}
