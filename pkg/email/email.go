package email

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"net/smtp"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
}

// EmailService handles email sending
type EmailService struct {
	config EmailConfig
}

// NewEmailService creates a new email service
func NewEmailService(config EmailConfig) *EmailService {
	return &EmailService{config: config}
}

// Enabled reports whether SMTP delivery is configured.
func (s *EmailService) Enabled() bool {
	return s.config.SMTPHost != "" && s.config.FromEmail != ""
}

// ReceiptEmailData carries the values rendered into the receipt email body.
type ReceiptEmailData struct {
	CustomerName  string
	ReceiptNumber string
	AmountPaid    string
	PaymentFor    string
	Date          string
	BusinessName  string
}

// SendReceiptEmail sends the receipt PDF to the customer as an attachment.
func (s *EmailService) SendReceiptEmail(toEmail string, data ReceiptEmailData, pdf []byte, filename string) error {
	if !s.Enabled() {
		return fmt.Errorf("email: SMTP delivery is not configured")
	}

	htmlContent, err := s.renderReceiptEmail(data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("Your Receipt %s from %s", data.ReceiptNumber, data.BusinessName)
	message := s.buildEmailWithAttachment(toEmail, subject, htmlContent, pdf, filename)

	return s.sendEmail(toEmail, message)
}

// sendEmail sends an email using SMTP
func (s *EmailService) sendEmail(to string, message []byte) error {
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)

	auth := smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)

	if err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// buildEmailWithAttachment builds a multipart/mixed message with an HTML body
// and a single PDF attachment.
func (s *EmailService) buildEmailWithAttachment(to, subject, htmlBody string, pdf []byte, filename string) []byte {
	const boundary = "receipt-boundary-7f3a9c"

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s <%s>\r\n", s.config.FromName, s.config.FromEmail)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n", boundary)
	buf.WriteString("\r\n")

	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	buf.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
	buf.WriteString(htmlBody)
	buf.WriteString("\r\n")

	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	buf.WriteString("Content-Type: application/pdf\r\n")
	buf.WriteString("Content-Transfer-Encoding: base64\r\n")
	fmt.Fprintf(&buf, "Content-Disposition: attachment; filename=%q\r\n\r\n", filename)

	encoded := base64.StdEncoding.EncodeToString(pdf)
	// RFC 2045 caps encoded lines at 76 characters.
	for len(encoded) > 76 {
		buf.WriteString(encoded[:76])
		buf.WriteString("\r\n")
		encoded = encoded[76:]
	}
	buf.WriteString(encoded)
	buf.WriteString("\r\n")

	fmt.Fprintf(&buf, "--%s--\r\n", boundary)
	return buf.Bytes()
}

// renderReceiptEmail renders the receipt email template
func (s *EmailService) renderReceiptEmail(data ReceiptEmailData) (string, error) {
	tmpl, err := template.New("receipt_email").Parse(receiptEmailTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// receiptEmailTemplate is the HTML template for receipt delivery emails
const receiptEmailTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Your Receipt</title>
</head>
<body style="margin: 0; padding: 0; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f4f7fa;">
    <table role="presentation" style="width: 100%; border-collapse: collapse;">
        <tr>
            <td style="padding: 40px 0;">
                <table role="presentation" style="max-width: 600px; margin: 0 auto; background-color: #ffffff; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 6px rgba(0, 0, 0, 0.1);">
                    <tr>
                        <td style="background-color: #4f46e5; padding: 32px 30px; text-align: center;">
                            <h1 style="color: #ffffff; margin: 0; font-size: 24px; font-weight: 600;">{{.BusinessName}}</h1>
                        </td>
                    </tr>
                    <tr>
                        <td style="padding: 40px 30px;">
                            <h2 style="color: #1a1a2e; margin: 0 0 20px 0; font-size: 20px; font-weight: 600;">Receipt {{.ReceiptNumber}}</h2>
                            <p style="color: #4a5568; font-size: 16px; line-height: 1.6; margin: 0 0 20px 0;">
                                Hello {{.CustomerName}},
                            </p>
                            <p style="color: #4a5568; font-size: 16px; line-height: 1.6; margin: 0 0 20px 0;">
                                Thank you for your payment of <strong>{{.AmountPaid}}</strong> for
                                <strong>{{.PaymentFor}}</strong> on {{.Date}}.
                            </p>
                            <p style="color: #4a5568; font-size: 16px; line-height: 1.6; margin: 0;">
                                Your receipt is attached to this email as a PDF. The QR code on it
                                can be scanned to verify the payment details.
                            </p>
                        </td>
                    </tr>
                    <tr>
                        <td style="background-color: #f8fafc; padding: 24px; text-align: center; border-top: 1px solid #e2e8f0;">
                            <p style="color: #a0aec0; font-size: 13px; margin: 0;">
                                This email was sent by {{.BusinessName}}'s Receipt Generator
                            </p>
                        </td>
                    </tr>
                </table>
            </td>
        </tr>
    </table>
</body>
</html>
`
