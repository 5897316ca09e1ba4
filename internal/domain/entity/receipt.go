package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Receipt is the persisted record of a customer payment, the sole domain
// entity. Receipts are created once, read many times and deleted permanently;
// there is no update flow.
type Receipt struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	ReceiptNumber string          `gorm:"size:20;not null;index" json:"receipt_number"`
	CustomerName  string          `gorm:"size:255;not null" json:"customer_name"`
	CustomerEmail *string         `gorm:"size:255" json:"customer_email,omitempty"`
	CustomerPhone *string         `gorm:"size:50" json:"customer_phone,omitempty"`
	Date          time.Time       `gorm:"not null" json:"date"`
	TotalAmount   decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"total_amount"`
	AmountPaid    decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"amount_paid"`
	PaymentMethod *string         `gorm:"size:100" json:"payment_method,omitempty"`
	PaymentFor    string          `gorm:"size:255;not null" json:"payment_for"`
	Notes         *string         `gorm:"type:text" json:"notes,omitempty"`
	Currency      string          `gorm:"size:3;not null" json:"currency"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new receipt
func (r *Receipt) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Receipt model
func (Receipt) TableName() string {
	return "receipts"
}

// RemainingAmount is the unpaid balance, clamped to zero for overpayments.
func (r *Receipt) RemainingAmount() decimal.Decimal {
	remaining := r.TotalAmount.Sub(r.AmountPaid)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// PaidPercentage is the paid share rounded to the nearest integer.
// A zero total yields 0 to keep the division defined.
func (r *Receipt) PaidPercentage() int {
	if r.TotalAmount.IsZero() {
		return 0
	}
	pct := r.AmountPaid.Div(r.TotalAmount).Mul(decimal.NewFromInt(100))
	return int(pct.Round(0).IntPart())
}

// RemainingPercentage is derived as 100 minus the paid share rather than
// rounded independently, so the two segments always sum to exactly 100.
func (r *Receipt) RemainingPercentage() int {
	if r.TotalAmount.IsZero() {
		return 0
	}
	return 100 - r.PaidPercentage()
}
