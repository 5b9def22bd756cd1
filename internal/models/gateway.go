package models

import (
	"time"

	"github.com/google/uuid"
)

// GatewaySettings is a singleton row holding the gateway's administrative
// state. Exactly one identity holds admin rights at a time.
type GatewaySettings struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Owner string `gorm:"not null;type:varchar(42)" json:"owner"`
	// Relayer is recorded for future reverse-flow use and has no effect
	// on deposits.
	Relayer string `gorm:"type:varchar(42)" json:"relayer"`
	Paused  bool   `gorm:"default:false" json:"paused"`
	// BridgeFeeWei is the required native-currency fee as a decimal string.
	// "0" disables the fee requirement.
	BridgeFeeWei string `gorm:"not null;default:'0'" json:"bridge_fee_wei"`
	// FeeReceiver empty means unset: a required fee is then retained by the
	// gateway instead of forwarded.
	FeeReceiver string `gorm:"type:varchar(42)" json:"fee_receiver"`
	// RetainedFeesWei tracks native currency kept by the gateway when no
	// receiver is configured or the caller over-attached. There is no
	// withdrawal path; the counter keeps the locked total observable.
	RetainedFeesWei string    `gorm:"not null;default:'0'" json:"retained_fees_wei"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// AdminAction is an audit row appended for every successful administrative
// mutation.
type AdminAction struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Caller    string    `gorm:"index;not null;type:varchar(42)" json:"caller"`
	Action    string    `gorm:"not null" json:"action"`
	Params    JSON      `gorm:"type:text" json:"params"`
	CreatedAt time.Time `json:"created_at"`
}

// NewAdminAction builds an audit row with a fresh uuid.
func NewAdminAction(caller, action string, params JSON) *AdminAction {
	return &AdminAction{
		ID:     uuid.New().String(),
		Caller: caller,
		Action: action,
		Params: params,
	}
}
