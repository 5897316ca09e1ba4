package request

import "github.com/shopspring/decimal"

// CreateReceiptRequest represents a receipt creation request. Amounts decode
// through decimal.Decimal, which accepts JSON numbers and strings alike, so
// precision survives the trip. The date uses the 2006-01-02 form.
type CreateReceiptRequest struct {
	ReceiptNumber string          `json:"receipt_number" binding:"omitempty,max=20"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail *string         `json:"customer_email"`
	CustomerPhone *string         `json:"customer_phone"`
	Date          string          `json:"date"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	PaymentMethod *string         `json:"payment_method"`
	PaymentFor    string          `json:"payment_for"`
	Notes         *string         `json:"notes"`
	Currency      string          `json:"currency" binding:"omitempty,len=3"`
}

// ReceiptFilterRequest represents receipt list filter parameters
type ReceiptFilterRequest struct {
	Search string `form:"search"`
}
