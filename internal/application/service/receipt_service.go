package service

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/clancy-dev/receipts-api/internal/domain/entity"
	"github.com/clancy-dev/receipts-api/internal/domain/repository"
	"github.com/clancy-dev/receipts-api/pkg/apperror"
	"github.com/clancy-dev/receipts-api/pkg/currency"
	"github.com/clancy-dev/receipts-api/pkg/receiptnumber"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var emailPattern = regexp.MustCompile(`(?i)^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)

// ReceiptService owns receipt lifecycle: validation, numbering,
// persistence and retrieval.
type ReceiptService struct {
	receiptRepo repository.ReceiptRepository
	numbers     *receiptnumber.Generator
}

func NewReceiptService(receiptRepo repository.ReceiptRepository, numbers *receiptnumber.Generator) *ReceiptService {
	return &ReceiptService{
		receiptRepo: receiptRepo,
		numbers:     numbers,
	}
}

// CreateReceiptInput carries the raw fields of a receipt submission.
// Optional fields arrive as pointers; empty strings are normalized to nil.
type CreateReceiptInput struct {
	ReceiptNumber string
	CustomerName  string
	CustomerEmail *string
	CustomerPhone *string
	Date          time.Time
	TotalAmount   decimal.Decimal
	AmountPaid    decimal.Decimal
	PaymentMethod *string
	PaymentFor    string
	Notes         *string
	Currency      string
}

func (s *ReceiptService) CreateReceipt(ctx context.Context, input CreateReceiptInput) (*entity.Receipt, error) {
	if fieldErrors := validateCreateInput(input); len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	number := strings.TrimSpace(input.ReceiptNumber)
	if number == "" {
		number = s.numbers.Next()
	}

	code := strings.ToUpper(strings.TrimSpace(input.Currency))
	if code == "" {
		code = currency.DefaultCode
	}

	receipt := &entity.Receipt{
		ReceiptNumber: number,
		CustomerName:  strings.TrimSpace(input.CustomerName),
		CustomerEmail: normalizeOptional(input.CustomerEmail),
		CustomerPhone: normalizeOptional(input.CustomerPhone),
		Date:          input.Date,
		TotalAmount:   input.TotalAmount,
		AmountPaid:    input.AmountPaid,
		PaymentMethod: normalizeOptional(input.PaymentMethod),
		PaymentFor:    strings.TrimSpace(input.PaymentFor),
		Notes:         normalizeOptional(input.Notes),
		Currency:      code,
	}

	if err := s.receiptRepo.Create(ctx, receipt); err != nil {
		return nil, err
	}

	return receipt, nil
}

func (s *ReceiptService) GetReceipt(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	receipt, err := s.receiptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, apperror.NewNotFoundError("Receipt")
	}
	return receipt, nil
}

// ListReceipts returns receipts newest first. A non-empty search term
// keeps only receipts whose number, customer name or payment reason
// contains the term, case-insensitively.
func (s *ReceiptService) ListReceipts(ctx context.Context, search string) ([]entity.Receipt, error) {
	receipts, err := s.receiptRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(receipts, func(i, j int) bool {
		return receipts[i].CreatedAt.After(receipts[j].CreatedAt)
	})

	term := strings.TrimSpace(search)
	if term == "" {
		return receipts, nil
	}

	filtered := make([]entity.Receipt, 0, len(receipts))
	for _, r := range receipts {
		if matchesSearch(&r, term) {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

// DeleteReceipt removes the receipt if it exists. Deleting an unknown
// id is not an error.
func (s *ReceiptService) DeleteReceipt(ctx context.Context, id uuid.UUID) error {
	if err := s.receiptRepo.Delete(ctx, id); err != nil {
		return err
	}
	return nil
}

func matchesSearch(r *entity.Receipt, term string) bool {
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(r.ReceiptNumber), term) ||
		strings.Contains(strings.ToLower(r.CustomerName), term) ||
		strings.Contains(strings.ToLower(r.PaymentFor), term)
}

func validateCreateInput(input CreateReceiptInput) []apperror.FieldError {
	var fieldErrors []apperror.FieldError

	if strings.TrimSpace(input.CustomerName) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "customer_name", Message: "Customer name is required"})
	}
	if input.Date.IsZero() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "date", Message: "Date is required"})
	}
	if !input.TotalAmount.IsPositive() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "total_amount", Message: "Total amount must be greater than zero"})
	}
	if !input.AmountPaid.IsPositive() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "amount_paid", Message: "Amount paid must be greater than zero"})
	}
	if strings.TrimSpace(input.PaymentFor) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "payment_for", Message: "Payment reason is required"})
	}
	if code := strings.TrimSpace(input.Currency); code != "" && !currency.IsSupported(code) {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field:   "currency",
			Message: "Currency must be one of " + strings.Join(currency.SupportedCodes(), ", "),
		})
	}
	if input.CustomerEmail != nil {
		if email := strings.TrimSpace(*input.CustomerEmail); email != "" && !emailPattern.MatchString(email) {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "customer_email", Message: "Customer email is not a valid email address"})
		}
	}

	return fieldErrors
}

func normalizeOptional(p *string) *string {
	if p == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*p)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
