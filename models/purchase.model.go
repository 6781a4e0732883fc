package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PurchaseStatus defines the status of a purchase attempt
type PurchaseStatus string

const (
	PurchaseStatusPending   PurchaseStatus = "PENDING"
	PurchaseStatusCompleted PurchaseStatus = "COMPLETED"
	PurchaseStatusFailed    PurchaseStatus = "FAILED"
)

// Purchase records one checkout attempt. COMPLETED and FAILED are terminal;
// a row never leaves a terminal status and is never deleted (audit trail).
// Payment retries create a fresh row with a fresh correlation id.
type Purchase struct {
	gorm.Model
	CorrelationID string         `gorm:"type:varchar(64);uniqueIndex;not null" json:"correlationId"` // opaque token echoed back by the payment gateway
	UserID        uint           `gorm:"not null;index" json:"userId"`
	CourseID      uint           `gorm:"not null;index" json:"courseId"`
	Amount        float64        `gorm:"not null" json:"amount"` // discounted price, two decimals
	Status        PurchaseStatus `gorm:"type:varchar(20);default:'PENDING';index" json:"status"`

	// Raw gateway event that settled this purchase, kept for audits
	GatewayPayload datatypes.JSON `json:"gatewayPayload"`
	SettledAt      *time.Time     `json:"settledAt"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Purchase) TableName() string {
	return "purchases"
}
