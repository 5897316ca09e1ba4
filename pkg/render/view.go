package render

import (
	"fmt"

	"github.com/clancy-dev/receipts-api/internal/domain/entity"
	"github.com/clancy-dev/receipts-api/pkg/currency"
)

// dateLayout matches the M/D/YYYY display format used everywhere a receipt
// date is shown to a person.
const dateLayout = "1/2/2006"

// BusinessView is the issuer identity block on every rendered receipt.
type BusinessView struct {
	Name    string
	Title   string
	Address string
	Phone   string
	Footer  string
}

// ReceiptView is the deterministic input for every renderer (PNG, PDF,
// ESC/POS). It is computed once from a fetched receipt, so all artifacts of
// one receipt identity agree on every displayed value.
type ReceiptView struct {
	ReceiptNumber string
	CustomerName  string
	CustomerEmail string // empty when absent
	CustomerPhone string // empty when absent
	Date          string

	TotalAmount     string
	AmountPaid      string
	RemainingAmount string
	// HasRemaining gates the remaining-balance section; an overpayment never
	// shows a negative balance.
	HasRemaining bool

	PaidPercentage      int
	RemainingPercentage int
	// PaidFraction drives the proportion chart, clamped to [0, 1].
	PaidFraction float64

	PaymentMethod string // empty when absent
	PaymentFor    string
	Notes         string // empty when absent

	// Verification is the payload encoded into the QR code.
	Verification string
}

// NewReceiptView builds the render input for one receipt.
func NewReceiptView(r *entity.Receipt) ReceiptView {
	v := ReceiptView{
		ReceiptNumber:       r.ReceiptNumber,
		CustomerName:        r.CustomerName,
		Date:                r.Date.Format(dateLayout),
		TotalAmount:         currency.Format(r.TotalAmount, r.Currency),
		AmountPaid:          currency.Format(r.AmountPaid, r.Currency),
		PaidPercentage:      r.PaidPercentage(),
		RemainingPercentage: r.RemainingPercentage(),
		PaymentFor:          r.PaymentFor,
		Verification:        VerificationPayload(r),
	}

	if remaining := r.RemainingAmount(); remaining.IsPositive() {
		v.HasRemaining = true
		v.RemainingAmount = currency.Format(remaining, r.Currency)
	}

	if !r.TotalAmount.IsZero() {
		frac, _ := r.AmountPaid.Div(r.TotalAmount).Float64()
		if frac < 0 {
			frac = 0
		}
		if frac > 1 {
			frac = 1
		}
		v.PaidFraction = frac
	}

	if r.CustomerEmail != nil {
		v.CustomerEmail = *r.CustomerEmail
	}
	if r.CustomerPhone != nil {
		v.CustomerPhone = *r.CustomerPhone
	}
	if r.PaymentMethod != nil {
		v.PaymentMethod = *r.PaymentMethod
	}
	if r.Notes != nil {
		v.Notes = *r.Notes
	}
	return v
}

// VerificationPayload is the text a scanner sees when reading the receipt QR
// code. The shape is fixed; external verifiers depend on it.
func VerificationPayload(r *entity.Receipt) string {
	return fmt.Sprintf("Receipt: %s\nCustomer: %s\nAmount: %s\nDate: %s",
		r.ReceiptNumber,
		r.CustomerName,
		currency.Format(r.AmountPaid, r.Currency),
		r.Date.Format(dateLayout),
	)
}
