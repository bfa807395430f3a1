// Package email provides a provider-agnostic interface for sending
// transactional mail, with a Postmark implementation for production and a
// log-only sender for development.
//
// The package is built around the EmailSender interface so providers can be
// swapped without touching application code. All implementations validate
// parameters before sending and report failures through the same sentinel
// errors (ErrInvalidConfig, ErrInvalidParams, ErrFailedToSendEmail), checked
// with errors.Is.
//
//	cfg := email.Config{
//	    PostmarkServerToken:  "server-token",
//	    PostmarkAccountToken: "account-token",
//	    SenderEmail:          "noreply@example.com",
//	    SupportEmail:         "support@example.com",
//	}
//
//	sender, err := email.NewPostmarkClient(cfg)
//	if err != nil {
//	    // configuration error
//	}
//
//	err = sender.SendEmail(ctx, email.SendEmailParams{
//	    SendTo:   "user@example.com",
//	    Subject:  "Reset your password",
//	    BodyHTML: body,
//	    Tag:      "password-reset",
//	})
//
// Delivery is best effort by design: callers that must not block on the
// gateway dispatch sends from a goroutine and log failures.
package email
