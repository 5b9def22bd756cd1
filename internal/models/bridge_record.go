package models

import "time"

// BridgeRecord is the canonical record emitted for every successful deposit.
// The relayer treats RecordID as an idempotency key when minting on the
// foreign ledger. Rows are append-only: never updated, never deleted.
type BridgeRecord struct {
	// RecordID is the keccak-256 digest over (chain id, block height,
	// caller, token, amount, timestamp), hex encoded with 0x prefix.
	RecordID    string `gorm:"primaryKey;type:varchar(66)" json:"record_id"`
	Caller      string `gorm:"index;not null;type:varchar(42)" json:"caller"`
	Destination string `gorm:"not null" json:"destination"`
	Token       string `gorm:"index;not null;type:varchar(42)" json:"token"`
	// Amount is the burned token amount in base units, as a decimal string.
	Amount      string    `gorm:"not null" json:"amount"`
	ChainID     string    `gorm:"not null" json:"chain_id"`
	BlockHeight uint64    `gorm:"not null" json:"block_height"`
	Timestamp   int64     `gorm:"not null" json:"timestamp"`
	CreatedAt   time.Time `json:"created_at"`
}
