package models

import "time"

// SupportedToken is a whitelist entry. Membership is the sole gate for
// deposit eligibility; the whitelist is empty until the owner adds entries.
type SupportedToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Address   string    `gorm:"uniqueIndex;not null;type:varchar(42)" json:"address"`
	AddedBy   string    `gorm:"not null;type:varchar(42)" json:"added_by"`
	CreatedAt time.Time `json:"created_at"`
}
