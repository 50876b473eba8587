package services

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"mime"
	"net"
	"net/smtp"
	"strings"
	"time"

	"go.uber.org/zap"

	"foodbridge/internal/config"
)

type IMailService interface {
	SendMailToNotifyUser(to, subject, body string) error
	SendMailWithOtp(to, otp string, ttl time.Duration) error
}

type smtpMailService struct {
	cfg     config.SMTPConfig
	htmlTpl *template.Template
	textTpl *template.Template
}

func NewSMTPMailService(cfg config.SMTPConfig) IMailService {
	return &smtpMailService{
		cfg:     cfg,
		htmlTpl: template.Must(template.New("html").Parse(baseHTMLTemplate)),
		textTpl: template.Must(template.New("text").Parse(plainTextTemplate)),
	}
}

// NewLogMailService is used when SMTP is not configured: mails are logged
// instead of sent.
func NewLogMailService(logger *zap.Logger) IMailService {
	return &logMailService{logger: logger}
}

// ------------------- Public API -------------------

func (s *smtpMailService) SendMailToNotifyUser(to, subject, body string) error {
	html, text, err := s.renderEmail(EmailData{
		Title:   subject,
		Intro:   body,
		AppName: s.appName(),
		Year:    time.Now().Year(),
	})
	if err != nil {
		return err
	}
	return s.send(to, subject, html, text)
}

func (s *smtpMailService) SendMailWithOtp(to, otp string, ttl time.Duration) error {
	subject := "Your password reset code"

	html, text, err := s.renderEmail(EmailData{
		Title:   subject,
		Intro:   fmt.Sprintf("Use this code to reset your password. It expires in %d minutes. If you didn't request this, you can safely ignore this email.", int(ttl.Minutes())),
		Code:    otp,
		AppName: s.appName(),
		Year:    time.Now().Year(),
	})
	if err != nil {
		return err
	}
	return s.send(to, subject, html, text)
}

func (s *smtpMailService) appName() string {
	if s.cfg.FromName != "" {
		return s.cfg.FromName
	}
	return "FoodBridge"
}

// ------------------- Rendering -------------------

type EmailData struct {
	Title   string
	Intro   string
	Code    string
	AppName string
	Year    int
}

const baseHTMLTemplate = `<!doctype html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width,initial-scale=1">
  <title>{{.Title}}</title>
  <style>
    body { margin: 0; padding: 0; background: #f1f5f4; color: #0f172a; font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif; }
    .container { max-width: 600px; margin: 32px auto; background: #ffffff; border-radius: 12px; overflow: hidden; box-shadow: 0 8px 24px rgba(0, 0, 0, 0.06); }
    .header { padding: 24px 32px; border-bottom: 1px solid #e2e8f0; font-weight: 700; font-size: 20px; color: #15803d; }
    .hero { padding: 32px; }
    h1 { margin: 0 0 16px; font-size: 24px; }
    p { margin: 0 0 16px; line-height: 1.6; color: #475569; }
    .code { display: inline-block; padding: 12px 24px; font-size: 28px; letter-spacing: 6px; font-weight: 700; background: #f0fdf4; border: 1px solid #bbf7d0; border-radius: 8px; color: #166534; }
    .footer { padding: 16px 32px; color: #94a3b8; font-size: 12px; text-align: center; border-top: 1px solid #e2e8f0; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">{{.AppName}}</div>
    <div class="hero">
      <h1>{{.Title}}</h1>
      <p>{{.Intro}}</p>
      {{if .Code}}<div class="code">{{.Code}}</div>{{end}}
    </div>
    <div class="footer">© {{.Year}} {{.AppName}}</div>
  </div>
</body>
</html>`

const plainTextTemplate = `{{.Title}}

{{.Intro}}
{{if .Code}}
Code: {{.Code}}
{{end}}
-- {{.AppName}} (c) {{.Year}}
`

func (s *smtpMailService) renderEmail(data EmailData) (html string, text string, err error) {
	var hb, tb bytes.Buffer

	if err = s.htmlTpl.Execute(&hb, data); err != nil {
		return "", "", err
	}
	if err = s.textTpl.Execute(&tb, data); err != nil {
		return "", "", err
	}
	return hb.String(), tb.String(), nil
}

// ------------------- SMTP Send -------------------

func (s *smtpMailService) buildMessage(to, subject, htmlBody, textBody string) []byte {
	boundary := fmt.Sprintf("mixed_%d", time.Now().UnixNano())

	var msg bytes.Buffer
	write := func(format string, a ...any) { _, _ = msg.WriteString(fmt.Sprintf(format, a...)) }

	write("From: %s\r\n", s.formatFromHeader())
	write("To: %s\r\n", to)
	write("Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject))
	write("Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	write("MIME-Version: 1.0\r\n")
	write("Content-Type: multipart/alternative; boundary=%q\r\n", boundary)
	write("\r\n")

	write("--%s\r\n", boundary)
	write("Content-Type: text/plain; charset=UTF-8\r\n")
	write("Content-Transfer-Encoding: 8bit\r\n\r\n")
	write("%s\r\n\r\n", textBody)

	write("--%s\r\n", boundary)
	write("Content-Type: text/html; charset=UTF-8\r\n")
	write("Content-Transfer-Encoding: 8bit\r\n\r\n")
	write("%s\r\n\r\n", htmlBody)

	write("--%s--\r\n", boundary)
	return msg.Bytes()
}

func (s *smtpMailService) send(to, subject, htmlBody, textBody string) error {
	msg := s.buildMessage(to, subject, htmlBody, textBody)

	addr := net.JoinHostPort(s.cfg.Host, fmt.Sprint(s.cfg.Port))
	tlsCfg := &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}

	var conn net.Conn
	var err error
	dialer := &net.Dialer{Timeout: 10 * time.Second}
	if s.cfg.UseSSL {
		// SMTPS (implicit TLS, usually port 465)
		conn, err = tls.DialWithDialer(dialer, "tcp", addr, tlsCfg)
	} else {
		conn, err = dialer.Dial("tcp", addr)
	}
	if err != nil {
		return err
	}
	defer conn.Close()

	c, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		return err
	}
	defer c.Quit()

	if !s.cfg.UseSSL {
		ok, _ := c.Extension("STARTTLS")
		if !ok {
			return fmt.Errorf("server does not support STARTTLS")
		}
		if err = c.StartTLS(tlsCfg); err != nil {
			return err
		}
	}

	if s.cfg.Username != "" {
		if err = c.Auth(smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)); err != nil {
			return err
		}
	}
	if err = c.Mail(s.cfg.From); err != nil {
		return err
	}
	if err = c.Rcpt(to); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err = w.Write(msg); err != nil {
		return err
	}
	return w.Close()
}

func (s *smtpMailService) formatFromHeader() string {
	name := strings.TrimSpace(s.cfg.FromName)
	if name == "" {
		return s.cfg.From
	}
	return fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("UTF-8", name), s.cfg.From)
}

// ------------------- Log fallback -------------------

type logMailService struct {
	logger *zap.Logger
}

func (l *logMailService) SendMailToNotifyUser(to, subject, body string) error {
	l.logger.Info("mail (smtp disabled)", zap.String("to", to), zap.String("subject", subject), zap.String("body", body))
	return nil
}

func (l *logMailService) SendMailWithOtp(to, otp string, ttl time.Duration) error {
	// the code itself is never logged
	l.logger.Info("otp mail (smtp disabled)", zap.String("to", to), zap.Duration("ttl", ttl))
	return nil
}
