package render

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/offerboard/board"
)

// Theme holds the palette and tile glyphs
type Theme struct {
	Background string            `yaml:"background"`
	Board      string            `yaml:"board"`
	Tile       string            `yaml:"tile"`
	Special    string            `yaml:"special"`
	Text       string            `yaml:"text"`
	Foreground string            `yaml:"foreground"`
	Token      string            `yaml:"token"`
	Dice       string            `yaml:"dice"`
	Owned      string            `yaml:"owned"`
	Error      string            `yaml:"error"`
	Muted      string            `yaml:"muted"`
	Groups     map[string]string `yaml:"groups"`
	Glyphs     map[string]string `yaml:"glyphs"`

	palette map[string]RGB
}

// DefaultTheme returns the built-in palette
func DefaultTheme() *Theme {
	t := &Theme{
		Background: "#1A1B26",
		Board:      "#CFEFE9",
		Tile:       "#FFFFFF",
		Special:    "#CFEFE9",
		Text:       "#111111",
		Foreground: "#E0E0E0",
		Token:      "#E53935",
		Dice:       "#FFFFFF",
		Owned:      "#FFD54F",
		Error:      "#FF5252",
		Muted:      "#7A7F99",
		Groups: map[string]string{
			"BROWN":      "#8B4513",
			"LIGHT_BLUE": "#ADD8E6",
			"PINK":       "#FF69B4",
			"ORANGE":     "#FFA500",
			"RED":        "#D32F2F",
			"YELLOW":     "#F7D154",
			"GREEN":      "#2E7D32",
			"DARK_BLUE":  "#0D47A1",
			"RR":         "#000000",
		},
		Glyphs: map[string]string{
			string(board.TypeStart):       "▶",
			string(board.TypeJail):        "#",
			string(board.TypeFreeParking): "P",
			string(board.TypeGoToJail):    "!",
			string(board.TypeChance):      "?",
			string(board.TypeCommunity):   "$",
			string(board.TypeTax):         "%",
			"RR":                          "=",
			"UTIL":                        "*",
			"PROPERTY":                    "⌂",
		},
	}
	// Built-in values are valid
	_ = t.compile()
	return t
}

// LoadTheme reads a YAML theme; missing keys keep their defaults
func LoadTheme(path string) (*Theme, error) {
	t := DefaultTheme()
	if path == "" {
		return t, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theme: %w", err)
	}
	if err := yaml.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("parse theme %s: %w", path, err)
	}
	if err := t.compile(); err != nil {
		return nil, fmt.Errorf("theme %s: %w", path, err)
	}
	return t, nil
}

func (t *Theme) compile() error {
	p := make(map[string]RGB, 11+len(t.Groups))
	named := map[string]string{
		"background": t.Background,
		"board":      t.Board,
		"tile":       t.Tile,
		"special":    t.Special,
		"text":       t.Text,
		"foreground": t.Foreground,
		"token":      t.Token,
		"dice":       t.Dice,
		"owned":      t.Owned,
		"error":      t.Error,
		"muted":      t.Muted,
	}
	for k, v := range named {
		c, err := ParseHex(v)
		if err != nil {
			return fmt.Errorf("%s: %w", k, err)
		}
		p[k] = c
	}
	for g, v := range t.Groups {
		c, err := ParseHex(v)
		if err != nil {
			return fmt.Errorf("group %s: %w", g, err)
		}
		p["group:"+strings.ToUpper(g)] = c
	}
	t.palette = p
	return nil
}

// Color returns a named palette entry
func (t *Theme) Color(name string) RGB {
	return t.palette[name]
}

// GroupColor returns the stripe colour of a group, false for groups without one
func (t *Theme) GroupColor(group string) (RGB, bool) {
	c, ok := t.palette["group:"+strings.ToUpper(group)]
	return c, ok
}

// TileFill returns the background of a tile
func (t *Theme) TileFill(tile board.Tile) RGB {
	if tile.Type == board.TypeChance || tile.Type == board.TypeCommunity {
		return t.Color("special")
	}
	return t.Color("tile")
}

// Glyph returns the marker drawn on a tile
func (t *Theme) Glyph(tile board.Tile) string {
	switch {
	case tile.IsRailroad():
		return t.Glyphs["RR"]
	case tile.IsUtility():
		return t.Glyphs["UTIL"]
	case tile.IsProperty():
		return t.Glyphs["PROPERTY"]
	default:
		return t.Glyphs[string(tile.Type)]
	}
}

// OutcomeColor returns the banner background for an outcome kind
func (t *Theme) OutcomeColor(kind string) RGB {
	group := "DARK_BLUE"
	switch strings.ToLower(kind) {
	case "success":
		group = "GREEN"
	case "warning":
		group = "ORANGE"
	case "error":
		group = "RED"
	}
	c, _ := t.GroupColor(group)
	return c
}
