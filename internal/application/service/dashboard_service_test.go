package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/clancy-dev/receipts-api/internal/application/service"
	"github.com/clancy-dev/receipts-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDashboardStats_PerCurrencyTotals(t *testing.T) {
	repo := new(MockReceiptRepository)
	old := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	repo.On("List", context.Background()).Return([]entity.Receipt{
		{
			ReceiptNumber: "REC-100001",
			Currency:      "UGX",
			TotalAmount:   decimal.NewFromInt(100000),
			AmountPaid:    decimal.NewFromInt(40000),
			CreatedAt:     old,
		},
		{
			ReceiptNumber: "REC-100002",
			Currency:      "UGX",
			TotalAmount:   decimal.NewFromInt(50000),
			AmountPaid:    decimal.NewFromInt(50000),
			CreatedAt:     old,
		},
		{
			ReceiptNumber: "REC-100003",
			Currency:      "USD",
			TotalAmount:   decimal.NewFromInt(200),
			AmountPaid:    decimal.NewFromInt(250),
			CreatedAt:     time.Now(),
		},
	}, nil).Once()

	svc := service.NewDashboardService(repo, time.UTC)
	stats, err := svc.GetDashboardStats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalReceipts)
	assert.Equal(t, 1, stats.ReceiptsToday)
	// REC-100002 is exactly paid, REC-100003 is overpaid; both count as settled.
	assert.Equal(t, 2, stats.FullyPaidCount)

	require.Len(t, stats.Currencies, 2)
	ugx := stats.Currencies[0]
	assert.Equal(t, "UGX", ugx.Currency)
	assert.Equal(t, 2, ugx.Receipts)
	assert.True(t, ugx.TotalBilled.Equal(decimal.NewFromInt(150000)))
	assert.True(t, ugx.TotalPaid.Equal(decimal.NewFromInt(90000)))
	assert.True(t, ugx.TotalOutstanding.Equal(decimal.NewFromInt(60000)))

	usd := stats.Currencies[1]
	assert.Equal(t, "USD", usd.Currency)
	// Overpayment never produces a negative outstanding balance.
	assert.True(t, usd.TotalOutstanding.IsZero())
}

func TestGetDashboardStats_Empty(t *testing.T) {
	repo := new(MockReceiptRepository)
	repo.On("List", context.Background()).Return([]entity.Receipt{}, nil).Once()

	svc := service.NewDashboardService(repo, time.UTC)
	stats, err := svc.GetDashboardStats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalReceipts)
	assert.Empty(t, stats.Currencies)
}

func TestGetDashboardStats_TodayUsesBusinessTimezone(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	now := time.Now().In(loc)
	localMidnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	repo := new(MockReceiptRepository)
	repo.On("List", context.Background()).Return([]entity.Receipt{
		{
			ReceiptNumber: "REC-100010",
			Currency:      "UGX",
			TotalAmount:   decimal.NewFromInt(1000),
			AmountPaid:    decimal.NewFromInt(1000),
			// First minute of the local day; still yesterday in UTC.
			CreatedAt: localMidnight.Add(time.Minute),
		},
		{
			ReceiptNumber: "REC-100011",
			Currency:      "UGX",
			TotalAmount:   decimal.NewFromInt(1000),
			AmountPaid:    decimal.NewFromInt(1000),
			CreatedAt:     localMidnight.Add(-time.Minute),
		},
	}, nil).Once()

	svc := service.NewDashboardService(repo, loc)
	stats, err := svc.GetDashboardStats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, stats.ReceiptsToday)
}
