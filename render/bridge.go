package render

import (
	"fmt"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// ColorMode selects how RGB values reach the terminal
type ColorMode uint8

const (
	ColorAuto ColorMode = iota
	Color256
	ColorTrue
)

// ParseColorMode reads auto, 256 or truecolor
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ColorAuto, nil
	case "256":
		return Color256, nil
	case "truecolor", "24bit":
		return ColorTrue, nil
	default:
		return ColorAuto, fmt.Errorf("unknown color mode %q", s)
	}
}

// Resolve turns auto into a concrete mode from the environment
func (m ColorMode) Resolve() ColorMode {
	if m != ColorAuto {
		return m
	}
	ct := strings.ToLower(os.Getenv("COLORTERM"))
	if ct == "truecolor" || ct == "24bit" {
		return ColorTrue
	}
	return Color256
}

// RGBToTcell converts RGB to a tcell colour in the given mode
func RGBToTcell(rgb RGB, mode ColorMode) tcell.Color {
	if mode == Color256 {
		return tcell.PaletteColor(xterm256(rgb))
	}
	return tcell.NewRGBColor(int32(rgb.R), int32(rgb.G), int32(rgb.B))
}

// TcellToRGB converts a tcell colour to RGB; the default colour maps to black
func TcellToRGB(c tcell.Color) RGB {
	if c == tcell.ColorDefault {
		return RGBBlack
	}
	r, g, b := c.RGB()
	return RGB{uint8(r), uint8(g), uint8(b)}
}

// xterm256 maps to the 6x6x6 cube or the grey ramp, whichever is closer
func xterm256(c RGB) int {
	cube := func(v uint8) int {
		if v < 48 {
			return 0
		}
		if v < 115 {
			return 1
		}
		return int(v-35) / 40
	}
	levels := [6]int{0, 95, 135, 175, 215, 255}

	ri, gi, bi := cube(c.R), cube(c.G), cube(c.B)
	cubeIdx := 16 + 36*ri + 6*gi + bi
	cr, cg, cb := levels[ri], levels[gi], levels[bi]

	avg := (int(c.R) + int(c.G) + int(c.B)) / 3
	greyIdx := 23
	if avg < 238 {
		greyIdx = max(0, (avg-3)/10)
	}
	gv := 8 + 10*greyIdx

	dist := func(r, g, b int) int {
		dr, dg, db := int(c.R)-r, int(c.G)-g, int(c.B)-b
		return dr*dr + dg*dg + db*db
	}
	if dist(gv, gv, gv) < dist(cr, cg, cb) {
		return 232 + greyIdx
	}
	return cubeIdx
}
