package utils

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

//go:embed templates/send-mail.html
var mailTemplates embed.FS

// Mailer sends the templated OTP email. Controllers depend on this
// interface so tests can stub delivery.
type Mailer interface {
	SendOTPEmail(toEmail, otp string) error
}

// SendGridMailer delivers mail through SendGrid.
type SendGridMailer struct {
	client *sendgrid.Client
	sender string
	tmpl   *template.Template
}

// NewSendGridMailer builds a mailer from the API key and sender address.
func NewSendGridMailer(apiKey, sender string) (*SendGridMailer, error) {
	tmpl, err := template.ParseFS(mailTemplates, "templates/send-mail.html")
	if err != nil {
		return nil, err
	}
	return &SendGridMailer{
		client: sendgrid.NewSendClient(apiKey),
		sender: sender,
		tmpl:   tmpl,
	}, nil
}

// SendOTPEmail renders the OTP template and sends it to the recipient.
func (m *SendGridMailer) SendOTPEmail(toEmail, otp string) error {
	var body bytes.Buffer
	if err := m.tmpl.Execute(&body, struct{ OTP string }{OTP: otp}); err != nil {
		return fmt.Errorf("render otp mail: %w", err)
	}

	from := mail.NewEmail("Shoes Store", m.sender)
	to := mail.NewEmail("", toEmail)
	message := mail.NewSingleEmail(from, "Verify Your OTP", to, "Your OTP is "+otp, body.String())

	resp, err := m.client.Send(message)
	if err != nil {
		return fmt.Errorf("send otp mail: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("send otp mail: sendgrid responded %d", resp.StatusCode)
	}
	return nil
}
