package render

import (
	"math"

	"github.com/lixenwraith/offerboard/board"
	"github.com/lixenwraith/offerboard/token"
)

// CellAspect is the width to height ratio of a terminal cell, in cells per board unit
const CellAspect = 2.0

// pivot is the rotation centre in board units
const pivot = board.GridSpan / 2.0

// Layout maps board units onto screen cells
type Layout struct {
	OriginX, OriginY float64
	CellW, CellH     float64
}

// ComputeLayout fits the grid into a rectangle, centred, keeping the cell aspect
// A zero layout means the rectangle is too small to hold one cell per tile
func ComputeLayout(x, y, w, h int) Layout {
	unitH := math.Floor(float64(h) / board.GridSpan)
	unitW := math.Floor(float64(w) / board.GridSpan)
	if unitW > unitH*CellAspect {
		unitW = unitH * CellAspect
	} else {
		unitH = math.Floor(unitW / CellAspect)
		unitW = unitH * CellAspect
	}
	if unitH < 1 {
		return Layout{}
	}
	spanW := unitW * board.GridSpan
	spanH := unitH * board.GridSpan
	return Layout{
		OriginX: float64(x) + math.Floor((float64(w)-spanW)/2),
		OriginY: float64(y) + math.Floor((float64(h)-spanH)/2),
		CellW:   unitW,
		CellH:   unitH,
	}
}

// Valid reports whether the layout can draw anything
func (l Layout) Valid() bool {
	return l.CellW > 0 && l.CellH > 0
}

// Project converts a board-unit point to a screen cell
func (l Layout) Project(p token.Point) (int, int) {
	return snap(l.OriginX + p.X*l.CellW), snap(l.OriginY + p.Y*l.CellH)
}

// Rect returns the screen rectangle of one grid cell at the given angle
func (l Layout) Rect(row, col int, deg float64) (x, y, w, h int) {
	c := Rotate(token.Point{X: float64(col) + 0.5, Y: float64(row) + 0.5}, deg)
	cx := l.OriginX + c.X*l.CellW
	cy := l.OriginY + c.Y*l.CellH
	w, h = int(l.CellW), int(l.CellH)
	return snap(cx - l.CellW/2), snap(cy - l.CellH/2), w, h
}

// Rotate turns a board-unit point around the board centre
// Positive angles turn clockwise on screen
func Rotate(p token.Point, deg float64) token.Point {
	rad := deg * math.Pi / 180
	sin, cos := math.Sincos(rad)
	dx, dy := p.X-pivot, p.Y-pivot
	return token.Point{
		X: pivot + dx*cos - dy*sin,
		Y: pivot + dx*sin + dy*cos,
	}
}

// TileCenter returns the unrotated centre of a tile in board units
func TileCenter(i int) token.Point {
	row, col := board.GridPosition(i)
	return token.Point{X: float64(col) + 0.5, Y: float64(row) + 0.5}
}

// snap floors a screen coordinate, absorbing trigonometric noise
func snap(v float64) int {
	return int(math.Floor(v + 1e-6))
}
