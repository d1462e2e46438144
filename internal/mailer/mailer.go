package mailer

import (
	"fmt"
	"net/smtp"

	"github.com/rs/zerolog"
)

// SMTP carries the credentials and addressing for organizer notifications.
type SMTP struct {
	Host      string
	Port      int
	From      string
	Password  string
	Organizer string
}

func (s SMTP) addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SendAttendanceEmail notifies the event organizer that an attendance record
// was created or removed.
func SendAttendanceEmail(log *zerolog.Logger, cfg SMTP, action, employeeName, eventDescription string) error {
	var subject, body string
	switch action {
	case "created":
		subject = fmt.Sprintf("New attendee for %q", eventDescription)
		body = fmt.Sprintf("%s has signed up to attend %q.", employeeName, eventDescription)
	case "deleted":
		subject = fmt.Sprintf("Attendee withdrawn from %q", eventDescription)
		body = fmt.Sprintf("%s is no longer attending %q.", employeeName, eventDescription)
	default:
		return fmt.Errorf("unknown attendance action %q", action)
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		cfg.From, cfg.Organizer, subject, body,
	)

	auth := smtp.PlainAuth("", cfg.From, cfg.Password, cfg.Host)
	if err := smtp.SendMail(cfg.addr(), auth, cfg.From, []string{cfg.Organizer}, []byte(msg)); err != nil {
		log.Warn().Msgf("failed to send email to %s: %v", cfg.Organizer, err)
		return fmt.Errorf("send email: %w", err)
	}

	log.Info().Msgf("notification email sent to %s (action: %s)", cfg.Organizer, action)
	return nil
}
