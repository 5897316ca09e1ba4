package handler

import (
	"fmt"
	"net/http"

	"github.com/clancy-dev/receipts-api/internal/application/service"
	"github.com/clancy-dev/receipts-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// ExportHandler serves receipt artifacts: PNG, PDF, QR code, spreadsheet,
// print jobs and email delivery.
type ExportHandler struct {
	exportService *service.ExportService
}

// NewExportHandler creates a new export handler
func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

func serveArtifact(c *gin.Context, artifact *service.Artifact) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	c.Data(http.StatusOK, artifact.ContentType, artifact.Data)
}

// Image serves the receipt rendered as a PNG download
func (h *ExportHandler) Image(c *gin.Context) {
	id, ok := ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	artifact, err := h.exportService.ExportImage(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	serveArtifact(c, artifact)
}

// PDF serves the receipt rendered as a PDF download
func (h *ExportHandler) PDF(c *gin.Context) {
	id, ok := ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	artifact, err := h.exportService.ExportPDF(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	serveArtifact(c, artifact)
}

// QR serves the standalone verification QR code as a PNG download
func (h *ExportHandler) QR(c *gin.Context) {
	id, ok := ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	artifact, err := h.exportService.ExportQR(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	serveArtifact(c, artifact)
}

// Excel serves all receipts as a spreadsheet download
func (h *ExportHandler) Excel(c *gin.Context) {
	artifact, err := h.exportService.ExportExcel(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	serveArtifact(c, artifact)
}

// Print sends the receipt to the configured thermal printer
func (h *ExportHandler) Print(c *gin.Context) {
	id, ok := ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.exportService.PrintReceipt(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt sent to printer", nil)
}

// Email sends the receipt PDF to the customer's email address
func (h *ExportHandler) Email(c *gin.Context) {
	id, ok := ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.exportService.EmailReceipt(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt emailed successfully", nil)
}

// PrinterStatus reports printer configuration and connectivity
func (h *ExportHandler) PrinterStatus(c *gin.Context) {
	response.OK(c, "Printer status retrieved", h.exportService.GetPrinterStatus())
}
