package expedition

import (
	"math"

	"github.com/pawprintgames/gachapet/internal/domain"
)

// RewardFor computes an expedition payout:
//
//	floor(baseReward × gradeMultiplier × (1 + 0.2 × enhancementLevel))
//
// The enhancement level is whatever the character has at computation time,
// so enhancing mid-expedition raises the eventual payout.
func RewardFor(baseReward int, gradeMultiplier float64, enhancementLevel int) int {
	if enhancementLevel < 0 {
		enhancementLevel = 0
	}
	bonus := 1 + domain.EnhancementRewardBonus*float64(enhancementLevel)
	return int(math.Floor(float64(baseReward) * gradeMultiplier * bonus))
}
