package identity

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/inventorly/identity/pkg/email"
	"github.com/inventorly/identity/pkg/logger"
)

// Dispatch deadline for a single outgoing mail.
const notifyTimeout = 10 * time.Second

// Notifier delivers reset and verification mail. Sends run on their own
// goroutine with a recover guard so a slow or failing mail provider never
// blocks or fails the request that triggered it; failures are logged and
// dropped.
type Notifier struct {
	sender  email.EmailSender
	baseURL string
	log     *slog.Logger
}

// NewNotifier creates a Notifier. baseURL is the externally reachable root
// links are built on, without a trailing slash.
func NewNotifier(sender email.EmailSender, baseURL string, log *slog.Logger) *Notifier {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Notifier{sender: sender, baseURL: baseURL, log: log}
}

// PasswordReset mails the reset link for the token to addr.
func (n *Notifier) PasswordReset(addr, token string) {
	link := fmt.Sprintf("%s/v1/auth/reset-password/%s", n.baseURL, token)
	n.dispatch(email.SendEmailParams{
		SendTo:  addr,
		Subject: "Reset your password",
		BodyHTML: fmt.Sprintf(
			"<p>We received a request to reset your password.</p>"+
				"<p><a href=%q>Reset password</a></p>"+
				"<p>If you did not request this, you can safely ignore this email.</p>",
			link,
		),
		Tag: "password-reset",
	})
}

// EmailVerification mails the verification link for the token to addr.
func (n *Notifier) EmailVerification(addr, token string, primary bool) {
	kind := "primary"
	if !primary {
		kind = "backup"
	}
	link := fmt.Sprintf("%s/v1/auth/verify-email/%s/%s", n.baseURL, kind, token)
	n.dispatch(email.SendEmailParams{
		SendTo:  addr,
		Subject: "Verify your email address",
		BodyHTML: fmt.Sprintf(
			"<p>Please confirm that this is your %s email address.</p>"+
				"<p><a href=%q>Verify email</a></p>",
			kind, link,
		),
		Tag: "email-verification",
	})
}

func (n *Notifier) dispatch(params email.SendEmailParams) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				n.log.Error("mail dispatch panicked",
					slog.Any("panic", r),
					logger.Email(params.SendTo),
					logger.Component("notifier"),
				)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := n.sender.SendEmail(ctx, params); err != nil {
			n.log.Error("failed to send email",
				logger.Error(err),
				logger.Email(params.SendTo),
				slog.String("tag", params.Tag),
				logger.Component("notifier"),
			)
		}
	}()
}
