package domain

// BoardSchemaVersion is the current persisted board record shape
const BoardSchemaVersion = 1

// TileType is the payout category of one maze tile
type TileType string

const (
	TileEmpty TileType = "empty"
	TileCoin  TileType = "coin"
	TileMedal TileType = "medal"
	TileDice  TileType = "dice"
	TileBonus TileType = "bonus"
)

// Board is a player's maze board: a fixed-length tile sequence walked with
// dice. Position only increases within one board lifetime; completing the
// board regenerates an entirely new tile sequence and resets position to 0.
type Board struct {
	SchemaVersion int        `json:"schema_version"`
	Tiles         []TileType `json:"tiles"`
	Position      int        `json:"position"`
	Dice          int        `json:"dice"`
}

// Normalize clamps a possibly corrupted record back into its invariants.
// A board with no tiles is left empty; the service regenerates it on read.
func (b *Board) Normalize() {
	if b.SchemaVersion == 0 {
		b.SchemaVersion = BoardSchemaVersion
	}
	if b.Position < 0 {
		b.Position = 0
	}
	if len(b.Tiles) > 0 && b.Position >= len(b.Tiles) {
		b.Position = len(b.Tiles) - 1
	}
	if b.Dice < 0 {
		b.Dice = 0
	}
}
