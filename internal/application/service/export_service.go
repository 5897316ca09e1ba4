package service

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/clancy-dev/receipts-api/internal/domain/entity"
	"github.com/clancy-dev/receipts-api/internal/domain/repository"
	"github.com/clancy-dev/receipts-api/pkg/apperror"
	"github.com/clancy-dev/receipts-api/pkg/email"
	"github.com/clancy-dev/receipts-api/pkg/printer"
	"github.com/clancy-dev/receipts-api/pkg/render"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

const qrExportSize = 512

// ExportService turns stored receipts into shareable artifacts: PNG image,
// PDF document, standalone QR code, spreadsheet, thermal print job and email.
type ExportService struct {
	receiptRepo   repository.ReceiptRepository
	imageRenderer *render.ImageRenderer
	pdfRenderer   *render.PDFRenderer
	emailService  *email.EmailService
	printer       printer.Printer
	printerType   string
	printerWidth  int
	business      render.BusinessView
}

func NewExportService(
	receiptRepo repository.ReceiptRepository,
	imageRenderer *render.ImageRenderer,
	pdfRenderer *render.PDFRenderer,
	emailService *email.EmailService,
	p printer.Printer,
	printerType string,
	printerWidth int,
	business render.BusinessView,
) *ExportService {
	if printerWidth <= 0 {
		printerWidth = 32
	}
	return &ExportService{
		receiptRepo:   receiptRepo,
		imageRenderer: imageRenderer,
		pdfRenderer:   pdfRenderer,
		emailService:  emailService,
		printer:       p,
		printerType:   printerType,
		printerWidth:  printerWidth,
		business:      business,
	}
}

// Artifact is a downloadable export: raw bytes plus the filename and content
// type the handler should serve them under.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

func (s *ExportService) getReceipt(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	receipt, err := s.receiptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, apperror.NewNotFoundError("Receipt")
	}
	return receipt, nil
}

// ExportImage renders the full receipt as a PNG.
func (s *ExportService) ExportImage(ctx context.Context, id uuid.UUID) (*Artifact, error) {
	receipt, err := s.getReceipt(ctx, id)
	if err != nil {
		return nil, err
	}

	data, err := s.imageRenderer.Render(render.NewReceiptView(receipt), s.business)
	if err != nil {
		return nil, fmt.Errorf("failed to render receipt image: %w", err)
	}

	return &Artifact{
		Filename:    fmt.Sprintf("Receipt-%s.png", receipt.ReceiptNumber),
		ContentType: "image/png",
		Data:        data,
	}, nil
}

// ExportPDF renders the receipt as an A4 PDF document.
func (s *ExportService) ExportPDF(ctx context.Context, id uuid.UUID) (*Artifact, error) {
	receipt, err := s.getReceipt(ctx, id)
	if err != nil {
		return nil, err
	}

	data, err := s.pdfRenderer.Render(render.NewReceiptView(receipt), s.business)
	if err != nil {
		return nil, fmt.Errorf("failed to render receipt PDF: %w", err)
	}

	return &Artifact{
		Filename:    fmt.Sprintf("Receipt-%s.pdf", receipt.ReceiptNumber),
		ContentType: "application/pdf",
		Data:        data,
	}, nil
}

// ExportQR renders the standalone verification QR code as a PNG.
func (s *ExportService) ExportQR(ctx context.Context, id uuid.UUID) (*Artifact, error) {
	receipt, err := s.getReceipt(ctx, id)
	if err != nil {
		return nil, err
	}

	data, err := render.QRPNG(render.VerificationPayload(receipt), qrExportSize)
	if err != nil {
		return nil, fmt.Errorf("failed to render QR code: %w", err)
	}

	return &Artifact{
		Filename:    fmt.Sprintf("Receipt-%s-qr.png", receipt.ReceiptNumber),
		ContentType: "image/png",
		Data:        data,
	}, nil
}

// ExportExcel writes every stored receipt into a spreadsheet, newest first.
func (s *ExportService) ExportExcel(ctx context.Context) (*Artifact, error) {
	receipts, err := s.receiptRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(receipts, func(i, j int) bool {
		return receipts[i].CreatedAt.After(receipts[j].CreatedAt)
	})

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Receipts"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to build spreadsheet: %w", err)
	}

	headers := []string{
		"Receipt Number", "Customer Name", "Customer Email", "Customer Phone",
		"Date", "Currency", "Total Amount", "Amount Paid", "Remaining",
		"Paid %", "Payment For", "Payment Method", "Notes", "Created At",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("failed to build spreadsheet: %w", err)
		}
	}

	for row, r := range receipts {
		values := []interface{}{
			r.ReceiptNumber,
			r.CustomerName,
			optionalString(r.CustomerEmail),
			optionalString(r.CustomerPhone),
			r.Date.Format("2006-01-02"),
			r.Currency,
			r.TotalAmount.InexactFloat64(),
			r.AmountPaid.InexactFloat64(),
			r.RemainingAmount().InexactFloat64(),
			r.PaidPercentage(),
			r.PaymentFor,
			optionalString(r.PaymentMethod),
			optionalString(r.Notes),
			r.CreatedAt.Format("2006-01-02 15:04"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to build spreadsheet: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write spreadsheet: %w", err)
	}

	return &Artifact{
		Filename:    "Receipts.xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        buf.Bytes(),
	}, nil
}

// PrinterStatus reports printer configuration and connectivity.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

func (s *ExportService) GetPrinterStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// PrintReceipt formats the receipt for thermal paper and sends it to the
// configured printer.
func (s *ExportService) PrintReceipt(ctx context.Context, id uuid.UUID) error {
	receipt, err := s.getReceipt(ctx, id)
	if err != nil {
		return err
	}

	data := FormatThermalReceipt(render.NewReceiptView(receipt), s.business, s.printerWidth)
	if err := s.printer.Print(data); err != nil {
		log.Printf("Printer error (receipt %s): %v", receipt.ReceiptNumber, err)
		return fmt.Errorf("failed to print receipt: %w", err)
	}
	return nil
}

// EmailReceipt sends the receipt PDF to the customer's email address.
func (s *ExportService) EmailReceipt(ctx context.Context, id uuid.UUID) error {
	receipt, err := s.getReceipt(ctx, id)
	if err != nil {
		return err
	}

	if receipt.CustomerEmail == nil || *receipt.CustomerEmail == "" {
		return apperror.NewUnprocessableError("Receipt has no customer email address")
	}
	if !s.emailService.Enabled() {
		return apperror.NewUnprocessableError("Email delivery is not configured")
	}

	v := render.NewReceiptView(receipt)
	pdf, err := s.pdfRenderer.Render(v, s.business)
	if err != nil {
		return fmt.Errorf("failed to render receipt PDF: %w", err)
	}

	data := email.ReceiptEmailData{
		CustomerName:  v.CustomerName,
		ReceiptNumber: v.ReceiptNumber,
		AmountPaid:    v.AmountPaid,
		PaymentFor:    v.PaymentFor,
		Date:          v.Date,
		BusinessName:  s.business.Name,
	}
	filename := fmt.Sprintf("Receipt-%s.pdf", receipt.ReceiptNumber)
	if err := s.emailService.SendReceiptEmail(*receipt.CustomerEmail, data, pdf, filename); err != nil {
		return fmt.Errorf("failed to send receipt email: %w", err)
	}
	return nil
}

// FormatThermalReceipt converts a receipt view into ESC/POS bytes.
func FormatThermalReceipt(v render.ReceiptView, b render.BusinessView, width int) []byte {
	doc := printer.NewDocument(width)

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text("RECEIPT").
		SetFontSize(printer.FontNormal).
		SetBold(false).
		Text(v.ReceiptNumber)

	if b.Name != "" {
		doc.Text(b.Name)
	}
	if b.Address != "" {
		doc.Text(b.Address)
	}
	if b.Phone != "" {
		doc.Text(b.Phone)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	doc.KeyValue("Customer:", v.CustomerName).
		KeyValue("Date:", v.Date).
		KeyValue("For:", v.PaymentFor)

	if v.PaymentMethod != "" {
		doc.KeyValue("Method:", v.PaymentMethod)
	}

	doc.Separator('-')

	doc.KeyValue("Total:", v.TotalAmount).
		KeyValue("Paid:", v.AmountPaid)

	if v.HasRemaining {
		doc.KeyValue("Remaining:", v.RemainingAmount)
	}

	doc.Separator('-')

	doc.SetAlign(printer.AlignCenter).
		Text("Payment Progress").
		SetAlign(printer.AlignLeft).
		ProgressBar(v.PaidPercentage)

	if v.Notes != "" {
		doc.Separator('-').
			Text(v.Notes)
	}

	doc.LineFeed().
		SetAlign(printer.AlignCenter)
	if b.Footer != "" {
		doc.Text(b.Footer)
	}
	doc.FeedLines(3).
		Cut()

	return doc.Bytes()
}

func optionalString(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
