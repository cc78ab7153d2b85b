package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendSummaryReady(toEmail, filename string) error
	SendSummaryFailed(toEmail, filename, reason string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
}

func NewEmailService(host string, port int, username, password, senderEmail, senderName string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		senderName:  senderName,
	}
}

func (s *emailService) SendSummaryReady(toEmail, filename string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.senderEmail, s.senderName))
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Your document summary is ready")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Summary ready</h2>
			<p>The summary for <strong>%s</strong> has finished generating.</p>
			<p>Open your workspace to read the bullet points and suggested questions.</p>
		</div>
	`, filename)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send summary-ready mail to %s: %v\n", toEmail, err)
		return err
	}
	return nil
}

func (s *emailService) SendSummaryFailed(toEmail, filename, reason string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.senderEmail, s.senderName))
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Document summary failed")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Summary failed</h2>
			<p>We could not generate a summary for <strong>%s</strong>.</p>
			<p>Reason: %s</p>
			<p>You can retry from your workspace at any time.</p>
		</div>
	`, filename, reason)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send summary-failed mail to %s: %v\n", toEmail, err)
		return err
	}
	return nil
}
