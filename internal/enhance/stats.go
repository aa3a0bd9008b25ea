package enhance

import (
	"github.com/pawprintgames/gachapet/internal/content"
	"github.com/pawprintgames/gachapet/internal/domain"
)

// StatsAt computes the effective stats for a grade configuration at the
// given enhancement level. Each stat improves linearly by its per-level
// increment.
func StatsAt(cfg content.GradeConfig, level int) domain.DerivedStats {
	if level < 0 {
		level = 0
	}
	if level > domain.MaxEnhancementLevel {
		level = domain.MaxEnhancementLevel
	}
	return domain.DerivedStats{
		ScorePerTap:    cfg.BaseStats.ScorePerTap + level*cfg.Growth.ScorePerTap,
		CoinDropChance: cfg.BaseStats.CoinDropChance + float64(level)*cfg.Growth.CoinDropChance,
		CritChance:     cfg.BaseStats.CritChance + float64(level)*cfg.Growth.CritChance,
		HPLossInterval: cfg.BaseStats.HPLossInterval + level*cfg.Growth.HPLossInterval,
	}
}
