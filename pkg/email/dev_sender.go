package email

import (
	"context"
	"log/slog"
)

// DevSender implements EmailSender for local development. Instead of calling
// a provider it logs the message, token URLs included, so reset and
// verification flows can be exercised end to end without a Postmark account.
type DevSender struct {
	log *slog.Logger
}

// NewDevSender creates a development email sender that logs outbound mail.
func NewDevSender(log *slog.Logger) EmailSender {
	return &DevSender{log: log}
}

// SendEmail validates the parameters and logs the email instead of sending it.
func (d *DevSender) SendEmail(ctx context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	d.log.InfoContext(ctx, "dev mail (not sent)",
		slog.String("send_to", params.SendTo),
		slog.String("subject", params.Subject),
		slog.String("tag", params.Tag),
		slog.String("body_html", params.BodyHTML),
	)
	return nil
}
