package email

import (
	"bytes"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"
)

type Sender struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailSender(host string, port int, username, password, from string) *Sender {
	dialer := gomail.NewDialer(host, port, username, password)
	return &Sender{
		dialer: dialer,
		from:   from,
	}
}

func (s *Sender) sendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	return s.dialer.DialAndSend(m)
}

var otpTemplate = template.Must(template.New("otp").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #4CAF50;">FestX Authentication</h2>
  <p>Hello,</p>
  <p>Your one-time password (OTP) for logging into FestX is:</p>
  <div style="background-color: #f5f5f5; padding: 15px; text-align: center; font-size: 24px; font-weight: bold; letter-spacing: 5px; margin: 20px 0;">
    {{.Code}}
  </div>
  <p>This code will expire in 10 minutes.</p>
  <p>If you did not request this code, please ignore this email.</p>
  <p>Best regards,<br>FestX Team</p>
</div>`))

func (s *Sender) SendOTPEmail(to, code string) error {
	buf := new(bytes.Buffer)
	if err := otpTemplate.Execute(buf, map[string]string{"Code": code}); err != nil {
		return fmt.Errorf("failed to render OTP email: %w", err)
	}
	return s.sendEmail(to, "Your FestX Login OTP", buf.String())
}
