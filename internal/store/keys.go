package store

import "fmt"

// Entity key builders. Every durable record a player owns lives under the
// player's prefix; per-character records append the character ID.

// WalletKey addresses a player's currency balances
func WalletKey(playerID string) string {
	return fmt.Sprintf("player:%s:wallet", playerID)
}

// CollectionKey addresses a player's owned characters and selection
func CollectionKey(playerID string) string {
	return fmt.Sprintf("player:%s:collection", playerID)
}

// VitalityKey addresses one character's HP record
func VitalityKey(playerID, characterID string) string {
	return fmt.Sprintf("player:%s:vitality:%s", playerID, characterID)
}

// EnhancementKey addresses one character's enhancement record
func EnhancementKey(playerID, characterID string) string {
	return fmt.Sprintf("player:%s:enhance:%s", playerID, characterID)
}

// AchievementsKey addresses a player's achievement sets
func AchievementsKey(playerID string) string {
	return fmt.Sprintf("player:%s:achievements", playerID)
}

// QuestsKey addresses a player's daily and weekly quest progress
func QuestsKey(playerID string) string {
	return fmt.Sprintf("player:%s:quests", playerID)
}

// AttendanceKey addresses a player's attendance streak
func AttendanceKey(playerID string) string {
	return fmt.Sprintf("player:%s:attendance", playerID)
}

// ShopKey addresses a player's weekly shop purchase counters
func ShopKey(playerID string) string {
	return fmt.Sprintf("player:%s:shop", playerID)
}

// ExpeditionKey addresses one of a player's expedition slots
func ExpeditionKey(playerID string, slot int) string {
	return fmt.Sprintf("player:%s:expedition:%d", playerID, slot)
}

// BoardKey addresses a player's maze board
func BoardKey(playerID string) string {
	return fmt.Sprintf("player:%s:board", playerID)
}

// SkinsKey addresses a player's skin ownership and equipment
func SkinsKey(playerID string) string {
	return fmt.Sprintf("player:%s:skins", playerID)
}

// TutorialKey addresses a player's tutorial state
func TutorialKey(playerID string) string {
	return fmt.Sprintf("player:%s:tutorial", playerID)
}
