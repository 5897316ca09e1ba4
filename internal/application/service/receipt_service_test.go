package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/clancy-dev/receipts-api/internal/application/service"
	"github.com/clancy-dev/receipts-api/internal/domain/entity"
	"github.com/clancy-dev/receipts-api/pkg/apperror"
	"github.com/clancy-dev/receipts-api/pkg/receiptnumber"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ReceiptRepository ---
type MockReceiptRepository struct {
	mock.Mock
}

func (m *MockReceiptRepository) Create(ctx context.Context, receipt *entity.Receipt) error {
	args := m.Called(ctx, receipt)
	return args.Error(0)
}

func (m *MockReceiptRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Receipt), args.Error(1)
}

func (m *MockReceiptRepository) List(ctx context.Context) ([]entity.Receipt, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Receipt), args.Error(1)
}

func (m *MockReceiptRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- Test Suite ---
type ReceiptServiceTestSuite struct {
	suite.Suite
	mockRepo *MockReceiptRepository
	service  *service.ReceiptService
}

func (s *ReceiptServiceTestSuite) SetupTest() {
	s.mockRepo = new(MockReceiptRepository)
	s.service = service.NewReceiptService(s.mockRepo, receiptnumber.NewSeeded(1))
}

func validInput() service.CreateReceiptInput {
	return service.CreateReceiptInput{
		CustomerName: "Alice Mirembe",
		Date:         time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC),
		TotalAmount:  decimal.NewFromInt(100),
		AmountPaid:   decimal.NewFromInt(40),
		PaymentFor:   "Website development",
		Currency:     "UGX",
	}
}

func (s *ReceiptServiceTestSuite) TestCreateReceipt_Success() {
	ctx := context.Background()
	input := validInput()

	s.mockRepo.On("Create", ctx, mock.MatchedBy(func(r *entity.Receipt) bool {
		return r.CustomerName == input.CustomerName &&
			r.PaymentFor == input.PaymentFor &&
			r.Currency == "UGX" &&
			r.TotalAmount.Equal(input.TotalAmount) &&
			r.AmountPaid.Equal(input.AmountPaid)
	})).Return(nil).Once()

	receipt, err := s.service.CreateReceipt(ctx, input)

	s.Require().NoError(err)
	s.Require().NotNil(receipt)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *ReceiptServiceTestSuite) TestCreateReceipt_GeneratesNumberWhenBlank() {
	ctx := context.Background()
	input := validInput()
	input.ReceiptNumber = "  "

	s.mockRepo.On("Create", ctx, mock.MatchedBy(func(r *entity.Receipt) bool {
		return receiptnumber.IsValid(r.ReceiptNumber)
	})).Return(nil).Once()

	receipt, err := s.service.CreateReceipt(ctx, input)

	s.Require().NoError(err)
	s.True(receiptnumber.IsValid(receipt.ReceiptNumber))
}

func (s *ReceiptServiceTestSuite) TestCreateReceipt_KeepsProvidedNumber() {
	ctx := context.Background()
	input := validInput()
	input.ReceiptNumber = "REC-777001"

	s.mockRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

	receipt, err := s.service.CreateReceipt(ctx, input)

	s.Require().NoError(err)
	s.Equal("REC-777001", receipt.ReceiptNumber)
}

func (s *ReceiptServiceTestSuite) TestCreateReceipt_DefaultsCurrency() {
	ctx := context.Background()
	input := validInput()
	input.Currency = ""

	s.mockRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

	receipt, err := s.service.CreateReceipt(ctx, input)

	s.Require().NoError(err)
	s.Equal("UGX", receipt.Currency)
}

func (s *ReceiptServiceTestSuite) TestCreateReceipt_ValidationBlocksStore() {
	ctx := context.Background()
	input := validInput()
	input.CustomerName = "   "
	input.TotalAmount = decimal.Zero

	_, err := s.service.CreateReceipt(ctx, input)

	s.Require().Error(err)
	appErr := apperror.GetAppError(err)
	s.Equal(422, appErr.Code)

	fields := make([]string, 0, len(appErr.Errors))
	for _, fe := range appErr.Errors {
		fields = append(fields, fe.Field)
	}
	s.Contains(fields, "customer_name")
	s.Contains(fields, "total_amount")
	s.mockRepo.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *ReceiptServiceTestSuite) TestCreateReceipt_RejectsBadEmailAndCurrency() {
	ctx := context.Background()
	input := validInput()
	badEmail := "not-an-email"
	input.CustomerEmail = &badEmail
	input.Currency = "GBP"

	_, err := s.service.CreateReceipt(ctx, input)

	s.Require().Error(err)
	appErr := apperror.GetAppError(err)
	fields := make([]string, 0, len(appErr.Errors))
	for _, fe := range appErr.Errors {
		fields = append(fields, fe.Field)
	}
	s.Contains(fields, "customer_email")
	s.Contains(fields, "currency")
}

func (s *ReceiptServiceTestSuite) TestCreateReceipt_NormalizesEmptyOptionals() {
	ctx := context.Background()
	input := validInput()
	empty := "   "
	phone := " +256 700 000000 "
	input.CustomerEmail = &empty
	input.CustomerPhone = &phone

	s.mockRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

	receipt, err := s.service.CreateReceipt(ctx, input)

	s.Require().NoError(err)
	s.Nil(receipt.CustomerEmail)
	s.Require().NotNil(receipt.CustomerPhone)
	s.Equal("+256 700 000000", *receipt.CustomerPhone)
}

func (s *ReceiptServiceTestSuite) TestGetReceipt_NotFound() {
	ctx := context.Background()
	id := uuid.New()

	s.mockRepo.On("GetByID", ctx, id).Return(nil, nil).Once()

	_, err := s.service.GetReceipt(ctx, id)

	s.Require().Error(err)
	s.True(apperror.IsNotFound(err))
}

func (s *ReceiptServiceTestSuite) TestListReceipts_SortsNewestFirst() {
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	stored := []entity.Receipt{
		{ReceiptNumber: "REC-100001", CustomerName: "Alice", PaymentFor: "Web design", CreatedAt: base},
		{ReceiptNumber: "REC-100002", CustomerName: "Brian", PaymentFor: "Hosting", CreatedAt: base.Add(time.Hour)},
		{ReceiptNumber: "REC-100003", CustomerName: "Cathy", PaymentFor: "Logo", CreatedAt: base.Add(2 * time.Hour)},
	}

	s.mockRepo.On("List", ctx).Return(stored, nil).Once()

	receipts, err := s.service.ListReceipts(ctx, "")

	s.Require().NoError(err)
	s.Require().Len(receipts, 3)
	s.Equal("REC-100003", receipts[0].ReceiptNumber)
	s.Equal("REC-100001", receipts[2].ReceiptNumber)
}

func (s *ReceiptServiceTestSuite) TestListReceipts_FiltersCaseInsensitively() {
	ctx := context.Background()
	stored := []entity.Receipt{
		{ReceiptNumber: "REC-100001", CustomerName: "Alice Mirembe", PaymentFor: "Website development"},
		{ReceiptNumber: "REC-100002", CustomerName: "Brian Okello", PaymentFor: "Hosting renewal"},
	}

	s.mockRepo.On("List", ctx).Return(stored, nil).Twice()

	byReason, err := s.service.ListReceipts(ctx, "WEB")
	s.Require().NoError(err)
	s.Require().Len(byReason, 1)
	s.Equal("Alice Mirembe", byReason[0].CustomerName)

	byNumber, err := s.service.ListReceipts(ctx, "100002")
	s.Require().NoError(err)
	s.Require().Len(byNumber, 1)
	s.Equal("Brian Okello", byNumber[0].CustomerName)
}

func (s *ReceiptServiceTestSuite) TestDeleteReceipt_MissingIDSucceeds() {
	ctx := context.Background()
	id := uuid.New()

	s.mockRepo.On("Delete", ctx, id).Return(nil).Once()

	err := s.service.DeleteReceipt(ctx, id)

	s.NoError(err)
}

func TestReceiptServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReceiptServiceTestSuite))
}
