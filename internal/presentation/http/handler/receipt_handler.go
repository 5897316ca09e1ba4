package handler

import (
	"time"

	"github.com/clancy-dev/receipts-api/internal/application/service"
	"github.com/clancy-dev/receipts-api/internal/presentation/http/dto/request"
	"github.com/clancy-dev/receipts-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// ReceiptHandler handles receipt-related HTTP requests
type ReceiptHandler struct {
	receiptService *service.ReceiptService
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(receiptService *service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// Create handles creating a receipt
func (h *ReceiptHandler) Create(c *gin.Context) {
	var req request.CreateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := service.CreateReceiptInput{
		ReceiptNumber: req.ReceiptNumber,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		TotalAmount:   req.TotalAmount,
		AmountPaid:    req.AmountPaid,
		PaymentMethod: req.PaymentMethod,
		PaymentFor:    req.PaymentFor,
		Notes:         req.Notes,
		Currency:      req.Currency,
	}

	if req.Date != "" {
		date, err := time.Parse(dateLayout, req.Date)
		if err != nil {
			response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
			return
		}
		input.Date = date
	}

	receipt, err := h.receiptService.CreateReceipt(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Receipt created successfully", response.NewReceiptResponse(receipt))
}

// List handles listing receipts, newest first, optionally filtered by search
func (h *ReceiptHandler) List(c *gin.Context) {
	var filter request.ReceiptFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid filter parameters")
		return
	}

	receipts, err := h.receiptService.ListReceipts(c.Request.Context(), filter.Search)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipts retrieved successfully", response.NewReceiptListResponse(receipts))
}

// Get handles retrieving a single receipt
func (h *ReceiptHandler) Get(c *gin.Context) {
	id, ok := ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	receipt, err := h.receiptService.GetReceipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt retrieved successfully", response.NewReceiptResponse(receipt))
}

// Delete handles deleting a receipt. Deleting an unknown id still
// returns 204; the end state is the same.
func (h *ReceiptHandler) Delete(c *gin.Context) {
	id, ok := ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.receiptService.DeleteReceipt(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
