package services

import (
	"fmt"
	"html"
	"time"

	"gopkg.in/gomail.v2"
)

// dueDateLongForm is the human-readable due date used in reminder emails.
const dueDateLongForm = "Monday, January 2, 2006 3:04 PM"

type EmailService interface {
	SendDueSoonReminder(email, fullName, taskTitle string, due time.Time) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
	loc    *time.Location
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string, loc *time.Location) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
		loc:    loc,
	}
}

func (s *emailService) SendDueSoonReminder(email, fullName, taskTitle string, due time.Time) error {
	if fullName == "" {
		fullName = "there"
	}
	formatted := due.In(s.loc).Format(dueDateLongForm)

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "⏰ Task Due Soon: "+taskTitle)

	body := fmt.Sprintf(`
		<h2>⏰ Task Reminder</h2>
		<p>Hi %s,</p>
		<p>This is a friendly reminder that you have a task due soon:</p>
		<p><strong>%s</strong></p>
		<p>Due Date: <strong>%s</strong></p>
		<p>Stay productive!</p>
	`, html.EscapeString(fullName), html.EscapeString(taskTitle), formatted)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send reminder email: %w", err)
	}
	return nil
}
