package content

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/pawprintgames/gachapet/internal/domain"
)

//go:embed defaults/content.json
var defaultFS embed.FS

// Load reads and validates content tables from the given JSON file. An empty
// path loads the embedded default tables.
func Load(path string) (*Tables, error) {
	var data []byte
	var err error
	if path == "" {
		data, err = defaultFS.ReadFile("defaults/content.json")
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read content tables: %w", err)
	}

	var tables Tables
	if err := json.Unmarshal(data, &tables); err != nil {
		return nil, fmt.Errorf("failed to parse content tables: %w", err)
	}

	if err := Validate(&tables); err != nil {
		return nil, fmt.Errorf("invalid content tables: %w", err)
	}
	return &tables, nil
}

// Validate checks structural tags plus the cross-field rules the tags cannot
// express: every grade in the roster must be configured, the total roll
// weight must be positive, and skin shop items must reference a known skin.
func Validate(t *Tables) error {
	if err := validator.New().Struct(t); err != nil {
		return err
	}

	totalWeight := 0
	for _, g := range domain.GradeOrder {
		cfg, ok := t.Grades[g]
		if !ok {
			return fmt.Errorf("grade %q missing from grade table", g)
		}
		totalWeight += cfg.Weight
	}
	if totalWeight <= 0 {
		return fmt.Errorf("grade weights sum to zero")
	}

	for _, c := range t.Roster {
		if !c.Grade.Valid() {
			return fmt.Errorf("character %q has unknown grade %q", c.ID, c.Grade)
		}
	}

	for _, it := range t.ShopItems {
		if it.SkinID != "" {
			if _, ok := t.Skin(it.SkinID); !ok {
				return fmt.Errorf("shop item %q references unknown skin %q", it.Key, it.SkinID)
			}
		}
	}

	tileWeight := 0
	for _, td := range t.BoardTiles {
		tileWeight += td.Weight
	}
	if tileWeight <= 0 {
		return fmt.Errorf("board tile weights sum to zero")
	}

	return nil
}
