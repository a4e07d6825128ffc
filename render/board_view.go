package render

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/lixenwraith/offerboard/animation"
	"github.com/lixenwraith/offerboard/board"
	"github.com/lixenwraith/offerboard/core"
	"github.com/lixenwraith/offerboard/token"
)

// Marker glyphs
const (
	tokenGlyph = '●'
	ownedGlyph = '◆'
	houseGlyph = '▪'
)

var dieFaces = [...]rune{'⚀', '⚁', '⚂', '⚃', '⚄', '⚅'}

// BoardView draws the rotating board, the token and the dice
// It serves as the rotation surface, token stage, dice display and board sink
type BoardView struct {
	*tview.Box

	mu     sync.Mutex
	theme  *Theme
	mode   ColorMode
	tp     animation.TimeProvider
	redraw func()

	tiles  []board.Tile
	owned  map[string]bool
	houses map[string]int
	angle  float64

	tokenPos   token.Point
	tokenShown bool
	tokenGen   uint64

	dice []int
}

// NewBoardView creates an empty board view
func NewBoardView(theme *Theme, mode ColorMode) *BoardView {
	if theme == nil {
		theme = DefaultTheme()
	}
	v := &BoardView{
		Box:    tview.NewBox(),
		theme:  theme,
		mode:   mode.Resolve(),
		tp:     animation.NewMonotonicTimeProvider(),
		owned:  make(map[string]bool),
		houses: make(map[string]int),
	}
	v.SetBackgroundColor(RGBToTcell(theme.Color("background"), v.mode))
	return v
}

// SetRedraw installs the callback that schedules a screen refresh
func (v *BoardView) SetRedraw(fn func()) {
	v.mu.Lock()
	v.redraw = fn
	v.mu.Unlock()
}

func (v *BoardView) requestRedraw() {
	v.mu.Lock()
	fn := v.redraw
	v.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// SetAngle sets the board rotation in degrees
func (v *BoardView) SetAngle(deg float64) {
	v.mu.Lock()
	v.angle = deg
	v.mu.Unlock()
	v.requestRedraw()
}

// Angle returns the rendered rotation
func (v *BoardView) Angle() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.angle
}

// SetBoard replaces tiles, ownership and development
func (v *BoardView) SetBoard(tiles []board.Tile, owned []string, houses map[string]int) {
	o := make(map[string]bool, len(owned))
	for _, name := range owned {
		o[name] = true
	}
	h := make(map[string]int, len(houses))
	for k, n := range houses {
		h[k] = n
	}

	v.mu.Lock()
	v.tiles = append(v.tiles[:0:0], tiles...)
	v.owned = o
	v.houses = h
	v.mu.Unlock()
	v.requestRedraw()
}

// Anchor returns the unrotated centre of a tile
func (v *BoardView) Anchor(tile int) (token.Point, bool) {
	v.mu.Lock()
	n := len(v.tiles)
	v.mu.Unlock()
	if tile < 0 || tile >= board.Size || (n > 0 && tile >= n) {
		return token.Point{}, false
	}
	return TileCenter(tile), true
}

// PlaceToken moves the token, tweening over transition
// A newer placement supersedes a running tween, whose channel still closes on schedule
func (v *BoardView) PlaceToken(p token.Point, transition time.Duration) <-chan struct{} {
	v.mu.Lock()
	v.tokenGen++
	gen := v.tokenGen
	from := v.tokenPos
	if transition <= 0 {
		v.tokenPos = p
		v.mu.Unlock()
		v.requestRedraw()
		return animation.Closed()
	}
	v.mu.Unlock()

	done := make(chan struct{})
	core.Go(func() {
		defer close(done)
		_ = animation.Drive(context.Background(), v.tp, transition, animation.StepEasing, func(pr float64) {
			v.mu.Lock()
			if v.tokenGen != gen {
				v.mu.Unlock()
				return
			}
			v.tokenPos = token.Point{
				X: animation.Lerp(from.X, p.X, pr),
				Y: animation.Lerp(from.Y, p.Y, pr),
			}
			v.mu.Unlock()
			v.requestRedraw()
		})
	})
	return done
}

// ShowToken toggles the token
func (v *BoardView) ShowToken(show bool) {
	v.mu.Lock()
	v.tokenShown = show
	v.mu.Unlock()
	v.requestRedraw()
}

// TokenPosition returns the current token point in board units
func (v *BoardView) TokenPosition() token.Point {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.tokenPos
}

// ShowDice displays dice faces in the board centre
func (v *BoardView) ShowDice(faces []int) {
	v.mu.Lock()
	v.dice = append(v.dice[:0:0], faces...)
	v.mu.Unlock()
	v.requestRedraw()
}

// HideDice clears the dice
func (v *BoardView) HideDice() {
	v.mu.Lock()
	v.dice = nil
	v.mu.Unlock()
	v.requestRedraw()
}

// Draw renders the board
func (v *BoardView) Draw(screen tcell.Screen) {
	v.Box.DrawForSubclass(screen, v)
	x, y, w, h := v.GetInnerRect()
	l := ComputeLayout(x, y, w, h)
	if !l.Valid() {
		tview.Print(screen, "terminal too small", x, y+h/2, w, tview.AlignCenter, RGBToTcell(v.theme.Color("muted"), v.mode))
		return
	}

	v.mu.Lock()
	tiles := v.tiles
	owned := v.owned
	houses := v.houses
	angle := v.angle
	tokenPos := v.tokenPos
	tokenShown := v.tokenShown
	dice := v.dice
	v.mu.Unlock()

	clip := clipRect{x, y, w, h}
	v.drawFelt(screen, l, angle, clip)
	for i, t := range tiles {
		if i >= board.Size {
			break
		}
		v.drawTile(screen, l, i, t, owned[t.Name], houses[t.Name], angle, clip)
	}
	if tokenShown {
		tx, ty := l.Project(Rotate(tokenPos, angle))
		bg := v.cellBackground(screen, tx, ty)
		clip.set(screen, tx, ty, tokenGlyph, v.style(v.theme.Color("token"), bg))
	}
	if len(dice) > 0 {
		v.drawDice(screen, l, dice, clip)
	}
}

// drawFelt fills the inner square of the board
func (v *BoardView) drawFelt(screen tcell.Screen, l Layout, angle float64, clip clipRect) {
	felt := v.style(v.theme.Color("text"), v.theme.Color("board"))
	for row := 1; row < board.GridSpan-1; row++ {
		for col := 1; col < board.GridSpan-1; col++ {
			rx, ry, rw, rh := l.Rect(row, col, angle)
			clip.fill(screen, rx, ry, rw, rh, felt)
		}
	}
}

func (v *BoardView) drawTile(screen tcell.Screen, l Layout, i int, t board.Tile, isOwned bool, nHouses int, angle float64, clip clipRect) {
	row, col := board.GridPosition(i)
	rx, ry, rw, rh := l.Rect(row, col, angle)
	fill := v.theme.TileFill(t)
	text := v.theme.Color("text")
	clip.fill(screen, rx, ry, rw, rh, v.style(text, fill))

	// Colour stripe along the first row
	if stripe, ok := v.theme.GroupColor(t.Payload.Group); ok && t.Type == board.TypeCompany {
		clip.fill(screen, rx, ry, rw, 1, v.style(stripe.Contrast(), stripe))
	}

	cy := ry + rh/2
	if glyph := []rune(v.theme.Glyph(t)); len(glyph) > 0 {
		clip.set(screen, rx+rw/2, cy, glyph[0], v.style(text, fill))
	}
	if q := t.QualifierKind(); q != "" && rw >= 6 {
		clip.print(screen, q, rx+rw-len(q), cy, v.style(v.theme.Color("muted"), fill))
	}
	if isOwned {
		clip.set(screen, rx, cy, ownedGlyph, v.style(v.theme.Color("owned"), fill))
	}
	if rh >= 3 && rw >= 4 {
		label := abbreviate(t.Name, rw)
		clip.print(screen, label, rx+(rw-len([]rune(label)))/2, ry+rh-1, v.style(text, fill))
	}
	for k := 0; k < nHouses && k < rw; k++ {
		clip.set(screen, rx+rw-1-k, ry+rh-1, houseGlyph, v.style(v.theme.Color("owned"), fill))
	}
}

func (v *BoardView) drawDice(screen tcell.Screen, l Layout, faces []int, clip clipRect) {
	var b strings.Builder
	for i, f := range faces {
		if i > 0 {
			b.WriteRune(' ')
		}
		if f >= 1 && f <= len(dieFaces) {
			b.WriteRune(dieFaces[f-1])
		} else {
			fmt.Fprintf(&b, "%d", f)
		}
	}
	s := b.String()
	cx, cy := l.Project(token.Point{X: pivot, Y: pivot})
	clip.print(screen, s, cx-len([]rune(s))/2, cy, v.style(v.theme.Color("dice"), v.theme.Color("board").Blend(RGBBlack, 0.6)))
}

func (v *BoardView) style(fg, bg RGB) tcell.Style {
	return tcell.StyleDefault.Foreground(RGBToTcell(fg, v.mode)).Background(RGBToTcell(bg, v.mode))
}

// cellBackground reads back what is already drawn under a cell
func (v *BoardView) cellBackground(screen tcell.Screen, x, y int) RGB {
	_, _, st, _ := screen.GetContent(x, y)
	_, bg, _ := st.Decompose()
	if bg == tcell.ColorDefault {
		return v.theme.Color("background")
	}
	return TcellToRGB(bg)
}

// abbreviate shortens a tile name to fit width cells
func abbreviate(name string, width int) string {
	r := []rune(name)
	if len(r) <= width {
		return name
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "…"
}

// clipRect keeps writes inside the view
type clipRect struct {
	x, y, w, h int
}

func (c clipRect) contains(x, y int) bool {
	return x >= c.x && y >= c.y && x < c.x+c.w && y < c.y+c.h
}

func (c clipRect) set(screen tcell.Screen, x, y int, r rune, st tcell.Style) {
	if c.contains(x, y) {
		screen.SetContent(x, y, r, nil, st)
	}
}

func (c clipRect) fill(screen tcell.Screen, x, y, w, h int, st tcell.Style) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			c.set(screen, xx, yy, ' ', st)
		}
	}
}

func (c clipRect) print(screen tcell.Screen, s string, x, y int, st tcell.Style) {
	for i, r := range []rune(s) {
		c.set(screen, x+i, y, r, st)
	}
}
