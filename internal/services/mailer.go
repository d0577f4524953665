package services

import (
	"context"
	"fmt"
	"html"
	"log"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/profast/parcel-api/internal/models"
)

const (
	mailSendPath       = "/v3/mail/send"
	defaultMailTimeout = 10 * time.Second
)

// Notifier tells customers and applicants about outcomes that concern them.
type Notifier interface {
	PaymentReceipt(ctx context.Context, payment *models.Payment) error
	RiderReviewed(ctx context.Context, application *models.RiderApplication) error
}

type MailConfig struct {
	APIKey    string
	FromEmail string
	FromName  string
	// BaseURL overrides the SendGrid host; empty means the public API.
	BaseURL string
	// Timeout bounds one send, including connect and response.
	Timeout time.Duration
}

// Mailer sends transactional email through SendGrid.
type Mailer struct {
	cfg MailConfig
}

func NewMailer(cfg MailConfig) *Mailer {
	if cfg.FromName == "" {
		cfg.FromName = "ProFast"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultMailTimeout
	}
	return &Mailer{cfg: cfg}
}

// Common header template for all emails
const emailHeader = `
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; margin: 0; padding: 0;">
	<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
		<div style="text-align: center; margin-bottom: 30px; background-color: #f9f9f9; padding: 20px;">
			<h2 style="color: #CAEB66; margin: 0;">ProFast</h2>
		</div>
`

// Common footer template for all emails
const emailFooter = `
		<div style="text-align: center; margin-top: 20px; font-size: 12px; color: #666; border-top: 1px solid #eee; padding-top: 20px;">
			<p>This is an automated message, please do not reply to this email.</p>
		</div>
	</div>
</body>
</html>
`

func (m *Mailer) PaymentReceipt(ctx context.Context, payment *models.Payment) error {
	subject := fmt.Sprintf("Payment received for %s", payment.ParcelTitle)
	body := fmt.Sprintf(`
		<p>Hello %s,</p>
		<p>We received your payment of <strong>%.2f %s</strong> for the parcel <strong>%s</strong>.</p>
		<p>Transaction ID: %s</p>
	`,
		html.EscapeString(displayName(payment.CustomerName, payment.CustomerEmail)),
		payment.Amount,
		html.EscapeString(payment.Currency),
		html.EscapeString(payment.ParcelTitle),
		html.EscapeString(payment.TransactionID),
	)

	return m.send(ctx, payment.CustomerName, payment.CustomerEmail, subject, body)
}

func (m *Mailer) RiderReviewed(ctx context.Context, application *models.RiderApplication) error {
	var subject, message string
	switch application.Status {
	case models.ApplicationApproved:
		subject = "Your rider application was approved"
		message = "Welcome aboard! You can now pick up deliveries from your rider dashboard."
	case models.ApplicationDenied:
		subject = "Your rider application was not approved"
		message = "Unfortunately we cannot accept your application right now. You are welcome to apply again."
	default:
		// Reset to pending; nothing to tell the applicant.
		return nil
	}

	body := fmt.Sprintf(`
		<p>Hello %s,</p>
		<p>%s</p>
	`, html.EscapeString(displayName(application.Name, application.Email)), message)

	return m.send(ctx, application.Name, application.Email, subject, body)
}

func (m *Mailer) send(ctx context.Context, toName, toEmail, subject, body string) error {
	if toEmail == "" {
		return fmt.Errorf("no recipient for %q", subject)
	}

	message := mail.NewSingleEmail(
		mail.NewEmail(m.cfg.FromName, m.cfg.FromEmail),
		subject,
		mail.NewEmail(toName, toEmail),
		subject,
		emailHeader+body+emailFooter,
	)

	request := sendgrid.GetRequest(m.cfg.APIKey, mailSendPath, m.cfg.BaseURL)
	request.Method = "POST"
	request.Body = mail.GetRequestBody(message)

	ctx, cancel := context.WithTimeout(ctx, m.cfg.Timeout)
	defer cancel()

	// A single attempt; rate limited sends fail instead of sleeping until reset.
	response, err := sendgrid.MakeRequestWithContext(ctx, request)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	if response.StatusCode >= 300 {
		return fmt.Errorf("send email: sendgrid returned %d: %s", response.StatusCode, response.Body)
	}

	log.Printf("Successfully sent %q to %s", subject, toEmail)
	return nil
}

func displayName(name, email string) string {
	if name != "" {
		return name
	}
	return email
}
