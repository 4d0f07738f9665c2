// Package notify delivers the outbound side effects of the complaint
// workflow: the resolution email to the complainant and the optional
// Telegram alert to the admin channel. Everything here is best-effort --
// delivery failures are logged and never surfaced to the operation that
// triggered them.
package notify

import (
	"fmt"
	"log"

	"complaintwall/backend/internal/models"

	gomail "gopkg.in/gomail.v2"
)

// Mailer sends the resolution notice over SMTP.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewMailer creates a mailer, or nil when no SMTP host is configured
// (emails are then skipped with a log line).
func NewMailer(host string, port int, user, pass, from string) *Mailer {
	if host == "" {
		return nil
	}
	return &Mailer{dialer: gomail.NewDialer(host, port, user, pass), from: from}
}

// NotifyResolved sends the resolution email for a complaint. The note
// falls back to a stock line when the admin left none.
func (m *Mailer) NotifyResolved(c *models.Complaint, note string) error {
	if m == nil {
		log.Printf("notify: SMTP not configured, skipping email for %s", c.ComplaintNumber)
		return nil
	}
	if note == "" {
		note = "No additional notes provided."
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", c.ContactEmail)
	msg.SetHeader("Subject", fmt.Sprintf("Complaint %s has been resolved", c.ComplaintNumber))
	msg.SetBody("text/html", fmt.Sprintf(`<h2>Complaint Resolution Notification</h2>
<p>Dear Complainant,</p>
<p>Your complaint <strong>%s</strong> regarding "%s" has been resolved.</p>
<p><strong>Resolution Note:</strong> %s</p>
<p>You can check the status of your complaint anytime using the complaint number: <strong>%s</strong></p>
<p>Thank you for using our Digital Complaint Wall system.</p>`,
		c.ComplaintNumber, c.Category, note, c.ComplaintNumber))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send resolution email for %s: %w", c.ComplaintNumber, err)
	}
	log.Printf("notify: resolution email sent for %s", c.ComplaintNumber)
	return nil
}
