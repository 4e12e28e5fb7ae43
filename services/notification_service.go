package services

import (
	"context"
	"fmt"
	"log"

	"github.com/eventra-api/config"
	"github.com/eventra-api/lib/mailer"
	"github.com/eventra-api/models"
)

// Notifier dispatches transactional email after successful mutations.
// Dispatch is fire-and-forget with at-most-once semantics: a failed send is
// logged distinctly and never rolls back or fails the store mutation that
// preceded it. There are no retries.
type Notifier struct {
	mailer mailer.Mailer
}

// NewNotifier creates a notification dispatcher around the given mailer
func NewNotifier(m mailer.Mailer) *Notifier {
	return &Notifier{mailer: m}
}

// Enabled reports whether email actually goes out (drives the
// inactive-until-verified account flow)
func (n *Notifier) Enabled() bool {
	return n.mailer.Enabled()
}

// SendVerificationEmail sends the address-verification link to a new user
func (n *Notifier) SendVerificationEmail(ctx context.Context, user models.User) {
	link := fmt.Sprintf("%s/api/v1/auth/verify-email?token=%s",
		config.GetEnv("APP_URL", "http://localhost:8080"), user.ID)
	html := fmt.Sprintf(`
		<h1>Hello %s,</h1>
		<p>Thank you for registering. Please click the link below to verify your email address:</p>
		<a href="%s">Verify Email</a>
		<p>If you did not request this, please ignore this email.</p>`,
		user.Name, link)

	n.dispatch(ctx, user.Email, "Verify Your Email Address", html)
}

// SendAccountDeleted notifies a user that their account was removed
func (n *Notifier) SendAccountDeleted(ctx context.Context, user models.User) {
	subject := "Your Account Has Been Deleted"
	message := fmt.Sprintf("Hello %s, your account has been successfully deleted. If you did not request this, please contact us.", user.Name)
	n.dispatch(ctx, user.Email, subject, genericHTML(subject, message))
}

// SendRegistrationConfirmed notifies a participant of a successful
// event registration
func (n *Notifier) SendRegistrationConfirmed(ctx context.Context, user models.User, event models.Event) {
	subject := "Registration Confirmed"
	message := fmt.Sprintf("Hello %s, your registration for %q on %s is confirmed.",
		user.Name, event.Name, event.Date.Format("2006-01-02 15:04"))
	n.dispatch(ctx, user.Email, subject, genericHTML(subject, message))
}

// SendRegistrationCancelled notifies a participant of a cancelled registration
func (n *Notifier) SendRegistrationCancelled(ctx context.Context, user models.User, event models.Event) {
	subject := "Registration Cancelled"
	message := fmt.Sprintf("Hello %s, your registration for %q has been cancelled.", user.Name, event.Name)
	n.dispatch(ctx, user.Email, subject, genericHTML(subject, message))
}

func (n *Notifier) dispatch(ctx context.Context, to, subject, html string) {
	if err := n.mailer.Send(ctx, to, subject, html, ""); err != nil {
		log.Printf("notification: failed to send %q to %s: %v", subject, to, err)
	}
}

func genericHTML(subject, message string) string {
	return fmt.Sprintf("<h1>%s</h1>\n<p>%s</p>", subject, message)
}
