package board

import "strings"

// TileType classifies what happens when the token lands on a tile
type TileType string

const (
	TypeStart       TileType = "START"
	TypeJail        TileType = "JAIL"
	TypeFreeParking TileType = "FREE_PARKING"
	TypeGoToJail    TileType = "GOTO_JAIL"
	TypeChance      TileType = "CHANCE"
	TypeCommunity   TileType = "COMMUNITY"
	TypeTax         TileType = "TAX"
	TypeCompany     TileType = "COMPANY"
)

// Purchasable groups that are not colour sets
const (
	GroupRailroad = "RR"
	GroupUtility  = "UTIL"
)

// Question qualifiers carried by company tiles
const (
	QKindCoding      = "LC"
	QKindSystems     = "SD"
	QKindBehavioural = "BH"
)

// DefaultDetentionIndex is used when the board carries no jail tile
const DefaultDetentionIndex = 10

// Payload holds the optional metadata of company tiles
type Payload struct {
	Price int    `json:"price,omitempty"`
	Gate  string `json:"gate,omitempty"`
	Group string `json:"group,omitempty"`
	QKind string `json:"qkind,omitempty"`
}

// Tile is one board square as served by the engine
type Tile struct {
	Name    string   `json:"name"`
	Type    TileType `json:"ttype"`
	Payload Payload  `json:"payload"`
}

// IsRailroad reports a railroad company
func (t Tile) IsRailroad() bool {
	return t.Type == TypeCompany && strings.EqualFold(t.Payload.Group, GroupRailroad)
}

// IsUtility reports a utility company
func (t Tile) IsUtility() bool {
	return t.Type == TypeCompany && strings.EqualFold(t.Payload.Group, GroupUtility)
}

// IsProperty reports a colour-set company
func (t Tile) IsProperty() bool {
	return t.Type == TypeCompany && !t.IsRailroad() && !t.IsUtility()
}

// QualifierKind returns the upper-cased question qualifier, or "" when none is recognised
func (t Tile) QualifierKind() string {
	switch q := strings.ToUpper(strings.TrimSpace(t.Payload.QKind)); q {
	case QKindCoding, QKindSystems, QKindBehavioural:
		return q
	default:
		return ""
	}
}

// QuestionBearing reports whether landing here makes the engine produce a question
// Any company except utilities qualifies, as does any tile carrying a question qualifier
func (t Tile) QuestionBearing() bool {
	if t.Type == TypeCompany && !t.IsUtility() {
		return true
	}
	return t.QualifierKind() != ""
}

// IsForcedRelocation reports a tile that sends the token to detention
func (t Tile) IsForcedRelocation() bool {
	return t.Type == TypeGoToJail
}

// At returns the tile at index i, ok=false when the board does not cover it
func At(tiles []Tile, i int) (Tile, bool) {
	if len(tiles) == 0 {
		return Tile{}, false
	}
	i = Normalize(i)
	if i >= len(tiles) {
		return Tile{}, false
	}
	return tiles[i], true
}

// DetentionIndex returns the index of the first jail tile
func DetentionIndex(tiles []Tile) int {
	for i, t := range tiles {
		if t.Type == TypeJail {
			return i
		}
	}
	return DefaultDetentionIndex
}
