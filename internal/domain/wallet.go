package domain

// WalletSchemaVersion is the current persisted wallet record shape
const WalletSchemaVersion = 1

// Wallet holds a player's currency balances. Writes are absolute-value sets;
// balances are never negative.
type Wallet struct {
	SchemaVersion int `json:"schema_version"`
	Coins         int `json:"coins"`
	Medals        int `json:"medals"`
}

// NewWallet returns the default wallet materialized on first read
func NewWallet() *Wallet {
	return &Wallet{SchemaVersion: WalletSchemaVersion}
}

// Normalize clamps a possibly corrupted record back into its invariants.
// Called on every read; stored values are never trusted as-is.
func (w *Wallet) Normalize() {
	if w.SchemaVersion == 0 {
		w.SchemaVersion = WalletSchemaVersion
	}
	if w.Coins < 0 {
		w.Coins = 0
	}
	if w.Medals < 0 {
		w.Medals = 0
	}
}

// CanAfford reports whether the wallet covers the given price
func (w *Wallet) CanAfford(coins, medals int) bool {
	return w.Coins >= coins && w.Medals >= medals
}
