// Package email delivers transactional booking mail over SMTP.
package email

import "context"

// Sender delivers customer-facing booking emails. Implementations render
// HTML bodies themselves; callers only supply the facts.
type Sender interface {
	SendBookingConfirmationEmail(ctx context.Context, toEmail, customerName, tenantName, serviceName, startTime, manageURL string) error
	SendBookingCancelledEmail(ctx context.Context, toEmail, customerName, tenantName, serviceName, startTime string) error
	SendCustomEmail(ctx context.Context, toEmail, subject, htmlContent string) error
}

// NoopSender drops all mail. Used when no SMTP server is configured so the
// rest of the app never has to nil-check.
type NoopSender struct{}

func (NoopSender) SendBookingConfirmationEmail(ctx context.Context, toEmail, customerName, tenantName, serviceName, startTime, manageURL string) error {
	return nil
}

func (NoopSender) SendBookingCancelledEmail(ctx context.Context, toEmail, customerName, tenantName, serviceName, startTime string) error {
	return nil
}

func (NoopSender) SendCustomEmail(ctx context.Context, toEmail, subject, htmlContent string) error {
	return nil
}

var _ Sender = NoopSender{}
