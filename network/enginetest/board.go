package enginetest

import "github.com/lixenwraith/offerboard/board"

func company(name string, price int, gate, group, qkind string) board.Tile {
	return board.Tile{
		Name: name,
		Type: board.TypeCompany,
		Payload: board.Payload{
			Price: price,
			Gate:  gate,
			Group: group,
			QKind: qkind,
		},
	}
}

func plain(name string, t board.TileType) board.Tile {
	return board.Tile{Name: name, Type: t}
}

// ClassicBoard returns a 40-tile board with corners at 0, 10, 20 and 30
func ClassicBoard() []board.Tile {
	return []board.Tile{
		plain("GO", board.TypeStart),
		company("FedEx", 60, "LC_EASY", "BROWN", "SD"),
		plain("Community Chest", board.TypeCommunity),
		company("Starbucks", 60, "LC_EASY", "BROWN", "BH"),
		company("Target", 70, "LC_EASY", "BROWN", "LC"),
		company("NYC", 200, "LC_MED", "RR", "LC"),
		company("Enterprise", 100, "LC_EASY", "LIGHT_BLUE", "BH"),
		plain("Chance", board.TypeChance),
		company("Nokia", 100, "LC_MED", "LIGHT_BLUE", "SD"),
		company("Hertz", 120, "LC_MED", "LIGHT_BLUE", "LC"),

		plain("Jail", board.TypeJail),
		company("Odoo", 140, "LC_MED", "PINK", "LC"),
		company("Utility 1", 150, "LC_MED", "UTIL", ""),
		company("Adobe", 140, "LC_MED", "PINK", "BH"),
		company("eBay", 160, "LC_HARD", "PINK", "SD"),
		company("SF", 200, "LC_MED", "RR", "LC"),
		company("Moog", 180, "LC_MED", "ORANGE", "SD"),
		plain("Community Chest", board.TypeCommunity),
		company("Valmar", 180, "LC_MED", "ORANGE", "LC"),
		company("M&T", 200, "LC_HARD", "ORANGE", "BH"),

		plain("Free Parking", board.TypeFreeParking),
		company("IBM", 220, "LC_MED", "RED", "LC"),
		plain("Chance", board.TypeChance),
		company("AMD", 220, "LC_HARD", "RED", "SD"),
		company("Palantir", 240, "LC_HARD", "RED", "BH"),
		company("Austin", 200, "LC_MED", "RR", "LC"),
		company("Tesla", 260, "LC_HARD", "YELLOW", "LC"),
		company("Netflix", 260, "LC_HARD", "YELLOW", "BH"),
		company("Utility 2", 150, "LC_MED", "UTIL", ""),
		company("Samsung", 280, "LC_HARD", "YELLOW", "SD"),

		plain("Go To Jail", board.TypeGoToJail),
		company("Meta", 300, "SYS_DESIGN", "GREEN", "BH"),
		company("Amazon", 300, "SYS_DESIGN", "GREEN", "LC"),
		plain("Community Chest", board.TypeCommunity),
		company("Google", 320, "SYS_DESIGN", "GREEN", "SD"),
		company("Boston", 200, "LC_MED", "RR", "LC"),
		plain("Chance", board.TypeChance),
		company("Nvidia", 350, "SYS_DESIGN", "DARK_BLUE", "BH"),
		company("Microsoft", 380, "SYS_DESIGN", "DARK_BLUE", "SD"),
		company("Apple", 400, "BEHAVIORAL", "DARK_BLUE", "LC"),
	}
}
