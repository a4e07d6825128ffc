// Package board maps linear tile indices onto the square 11x11 grid and classifies tiles.
package board

// Size is the number of tiles around the board
const Size = 40

// GridSpan is the number of grid rows and columns (corners are shared between sides)
const GridSpan = 11

// corner indices, one per side start
var corners = [4]int{0, 10, 20, 30}

// Side is a board edge, ordered counter-clockwise
type Side int

const (
	Bottom Side = iota
	Left
	Top
	Right
)

// SideCount is the number of board edges
const SideCount = 4

func (s Side) String() string {
	switch s {
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	case Top:
		return "top"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Next returns the side one counter-clockwise step after s
func (s Side) Next() Side {
	return Side((int(s)%SideCount + 1 + SideCount) % SideCount)
}

// Normalize reduces any integer onto [0, Size)
func Normalize(i int) int {
	return ((i % Size) + Size) % Size
}

// GridPosition returns the grid cell of a tile
// Bottom row runs right to left from the start corner, the left column bottom to top,
// the top row left to right and the right column top to bottom
func GridPosition(i int) (row, col int) {
	i = Normalize(i)
	switch {
	case i <= 9:
		return 10, 10 - i
	case i <= 19:
		return 10 - (i - 10), 0
	case i <= 29:
		return 0, i - 20
	default:
		return i - 30, 10
	}
}

// SideOf returns the edge a tile belongs to; corners belong to the side they start
func SideOf(i int) Side {
	return Side(Normalize(i) / 10)
}

// IsCorner reports whether the tile sits on a board corner
func IsCorner(i int) bool {
	i = Normalize(i)
	for _, c := range corners {
		if i == c {
			return true
		}
	}
	return false
}
