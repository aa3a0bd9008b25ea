package gacha

import (
	"github.com/pawprintgames/gachapet/internal/content"
	"github.com/pawprintgames/gachapet/internal/domain"
)

// rollGrade draws a grade with probability weight/totalWeight. It walks the
// declared grade order subtracting each weight from a uniform draw in
// [0, totalWeight); the grade that drives the remainder negative wins.
func rollGrade(tables *content.Tables, intn func(int) int) domain.Grade {
	total := 0
	for _, g := range domain.GradeOrder {
		total += tables.Grade(g).Weight
	}

	r := intn(total)
	for _, g := range domain.GradeOrder {
		r -= tables.Grade(g).Weight
		if r < 0 {
			return g
		}
	}
	// Unreachable while weights sum to total; keep the draw total anyway.
	return domain.GradeOrder[len(domain.GradeOrder)-1]
}

// rollCharacter picks a uniform member of the grade's pool. An empty pool
// falls back to a uniform draw over the entire roster - a documented
// degenerate case, not an error.
func rollCharacter(tables *content.Tables, grade domain.Grade, intn func(int) int) content.Character {
	pool := tables.CharactersByGrade()[grade]
	if len(pool) == 0 {
		pool = tables.Roster
	}
	return pool[intn(len(pool))]
}
