package service

import (
	"context"
	"time"

	"github.com/clancy-dev/receipts-api/internal/domain/repository"
	"github.com/clancy-dev/receipts-api/pkg/currency"
	"github.com/shopspring/decimal"
)

// DashboardService provides summary statistics over stored receipts. loc is
// the business timezone, so "today" rolls over at local midnight rather than
// an epoch-day boundary.
type DashboardService struct {
	receiptRepo repository.ReceiptRepository
	loc         *time.Location
}

func NewDashboardService(receiptRepo repository.ReceiptRepository, loc *time.Location) *DashboardService {
	if loc == nil {
		loc = time.Local
	}
	return &DashboardService{receiptRepo: receiptRepo, loc: loc}
}

// CurrencyTotals aggregates receipts issued in one currency. Amounts in
// different currencies are never summed together.
type CurrencyTotals struct {
	Currency         string          `json:"currency"`
	Receipts         int             `json:"receipts"`
	TotalBilled      decimal.Decimal `json:"total_billed"`
	TotalPaid        decimal.Decimal `json:"total_paid"`
	TotalOutstanding decimal.Decimal `json:"total_outstanding"`
}

// DashboardStats is the dashboard summary payload.
type DashboardStats struct {
	TotalReceipts  int              `json:"total_receipts"`
	ReceiptsToday  int              `json:"receipts_today"`
	FullyPaidCount int              `json:"fully_paid_count"`
	Currencies     []CurrencyTotals `json:"currencies"`
}

// GetDashboardStats returns receipt counts and per-currency totals.
func (s *DashboardService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	receipts, err := s.receiptRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{TotalReceipts: len(receipts)}
	now := time.Now().In(s.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)

	byCurrency := make(map[string]*CurrencyTotals)
	for i := range receipts {
		r := &receipts[i]

		if !r.CreatedAt.Before(today) {
			stats.ReceiptsToday++
		}
		if !r.RemainingAmount().IsPositive() {
			stats.FullyPaidCount++
		}

		totals, ok := byCurrency[r.Currency]
		if !ok {
			totals = &CurrencyTotals{Currency: r.Currency}
			byCurrency[r.Currency] = totals
		}
		totals.Receipts++
		totals.TotalBilled = totals.TotalBilled.Add(r.TotalAmount)
		totals.TotalPaid = totals.TotalPaid.Add(r.AmountPaid)
		totals.TotalOutstanding = totals.TotalOutstanding.Add(r.RemainingAmount())
	}

	// Stable ordering: supported currencies first, in their canonical order.
	for _, code := range currency.SupportedCodes() {
		if totals, ok := byCurrency[code]; ok {
			stats.Currencies = append(stats.Currencies, *totals)
			delete(byCurrency, code)
		}
	}
	for _, totals := range byCurrency {
		stats.Currencies = append(stats.Currencies, *totals)
	}

	return stats, nil
}
