package email

import (
	"context"
	"fmt"
	"net"
	"time"

	gomail "github.com/wneessen/go-mail"
)

// SMTPSender implements the Sender interface using a direct SMTP connection
// via go-mail.
type SMTPSender struct {
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
}

// NewSMTPSender creates a new SMTPSender with the given SMTP credentials.
func NewSMTPSender(host string, port int, username, password, fromEmail, fromName string) *SMTPSender {
	return &SMTPSender{
		host:      host,
		port:      port,
		username:  username,
		password:  password,
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

func (s *SMTPSender) send(ctx context.Context, toEmail, subject, htmlContent string) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}

func (s *SMTPSender) SendBookingConfirmationEmail(ctx context.Context, toEmail, customerName, tenantName, serviceName, startTime, manageURL string) error {
	subject := fmt.Sprintf(subjectBookingConfirmationFmt, tenantName)
	content, err := renderEmailTemplate("booking_confirmation.html", bookingConfirmationEmailData{
		baseEmailData: baseEmailData{
			Title:    "Booking confirmed",
			Heading:  "Your booking is confirmed",
			CTALabel: "Manage booking",
			CTAURL:   manageURL,
		},
		CustomerName: customerName,
		TenantName:   tenantName,
		ServiceName:  serviceName,
		StartTime:    startTime,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subject, content)
}

func (s *SMTPSender) SendBookingCancelledEmail(ctx context.Context, toEmail, customerName, tenantName, serviceName, startTime string) error {
	subject := fmt.Sprintf(subjectBookingCancelledFmt, tenantName)
	content, err := renderEmailTemplate("booking_cancelled.html", bookingCancelledEmailData{
		baseEmailData: baseEmailData{
			Title:   "Booking cancelled",
			Heading: "Your booking was cancelled",
		},
		CustomerName: customerName,
		TenantName:   tenantName,
		ServiceName:  serviceName,
		StartTime:    startTime,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subject, content)
}

// SendCustomEmail delivers a pre-rendered HTML body. Reminder emails use
// this path since tenants control the reminder template.
func (s *SMTPSender) SendCustomEmail(ctx context.Context, toEmail, subject, htmlContent string) error {
	return s.send(ctx, toEmail, subject, htmlContent)
}

var _ Sender = (*SMTPSender)(nil)
