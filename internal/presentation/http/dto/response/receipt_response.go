package response

import (
	"time"

	"github.com/clancy-dev/receipts-api/internal/domain/entity"
	"github.com/clancy-dev/receipts-api/pkg/currency"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReceiptResponse is a stored receipt plus its derived payment figures, so
// clients never recompute balances or percentages themselves.
type ReceiptResponse struct {
	ID            uuid.UUID `json:"id"`
	ReceiptNumber string    `json:"receipt_number"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail *string   `json:"customer_email,omitempty"`
	CustomerPhone *string   `json:"customer_phone,omitempty"`
	Date          time.Time `json:"date"`

	TotalAmount     decimal.Decimal `json:"total_amount"`
	AmountPaid      decimal.Decimal `json:"amount_paid"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`

	TotalAmountDisplay     string `json:"total_amount_display"`
	AmountPaidDisplay      string `json:"amount_paid_display"`
	RemainingAmountDisplay string `json:"remaining_amount_display"`

	PaidPercentage      int `json:"paid_percentage"`
	RemainingPercentage int `json:"remaining_percentage"`

	PaymentMethod *string   `json:"payment_method,omitempty"`
	PaymentFor    string    `json:"payment_for"`
	Notes         *string   `json:"notes,omitempty"`
	Currency      string    `json:"currency"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewReceiptResponse converts a receipt entity into its API shape.
func NewReceiptResponse(r *entity.Receipt) ReceiptResponse {
	remaining := r.RemainingAmount()
	return ReceiptResponse{
		ID:            r.ID,
		ReceiptNumber: r.ReceiptNumber,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CustomerPhone: r.CustomerPhone,
		Date:          r.Date,

		TotalAmount:     r.TotalAmount,
		AmountPaid:      r.AmountPaid,
		RemainingAmount: remaining,

		TotalAmountDisplay:     currency.Format(r.TotalAmount, r.Currency),
		AmountPaidDisplay:      currency.Format(r.AmountPaid, r.Currency),
		RemainingAmountDisplay: currency.Format(remaining, r.Currency),

		PaidPercentage:      r.PaidPercentage(),
		RemainingPercentage: r.RemainingPercentage(),

		PaymentMethod: r.PaymentMethod,
		PaymentFor:    r.PaymentFor,
		Notes:         r.Notes,
		Currency:      r.Currency,
		CreatedAt:     r.CreatedAt,
	}
}

// NewReceiptListResponse converts a slice of receipts.
func NewReceiptListResponse(receipts []entity.Receipt) []ReceiptResponse {
	out := make([]ReceiptResponse, 0, len(receipts))
	for i := range receipts {
		out = append(out, NewReceiptResponse(&receipts[i]))
	}
	return out
}
