package notification

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/frahmantamala/grievance-management/internal"
)

// StatusKind values accepted by Notify.
const (
	KindResolved = "resolved"
	KindClosed   = "closed"
)

// GrievanceSummary carries the fields rendered into the status email.
type GrievanceSummary struct {
	ID          int64
	Title       string
	Description string
}

// Dispatcher sends a status notification to the submitter. Implementations
// must treat delivery as best-effort; callers log failures and move on.
type Dispatcher interface {
	Notify(ctx context.Context, email string, grievance GrievanceSummary, kind string) error
}

const statusHTMLTemplate = `<html>
    <head>
        <style>
            body {
                font-family: Arial, sans-serif;
                margin: 0;
                padding: 0;
                background-color: #f4f8ff;
                color: #333;
            }
            .container {
                width: 100%;
                max-width: 600px;
                margin: 20px auto;
                background-color: #ffffff;
                padding: 20px;
                border-radius: 8px;
                box-shadow: 0 4px 8px rgba(0,0,0,0.1);
                border: 1px solid #dbe4ff;
            }
            h2 {
                color: #1a73e8;
                margin-bottom: 16px;
                font-size: 24px;
                border-bottom: 2px solid #1a73e8;
                padding-bottom: 8px;
            }
            p {
                color: #555;
                line-height: 1.6;
                font-size: 16px;
                margin-bottom: 12px;
            }
            .footer {
                margin-top: 20px;
                font-size: 14px;
                color: #999;
                text-align: center;
            }
        </style>
    </head>
    <body>
        <div class="container">
            <h2>{{.Heading}}</h2>
            <p><strong>Title:</strong> {{.Title}}</p>
            <p><strong>Description:</strong> {{.Description}}</p>
            <div class="footer">
                This is an automated message. Please do not reply.
            </div>
        </div>
    </body>
</html>
`

type templateData struct {
	Heading     string
	Title       string
	Description string
}

// SMTPMailer sends status emails over SMTPS or STARTTLS depending on config.
type SMTPMailer struct {
	cfg internal.MailConfig
	tpl *template.Template
}

func NewSMTPMailer(cfg internal.MailConfig) *SMTPMailer {
	return &SMTPMailer{
		cfg: cfg,
		tpl: template.Must(template.New("status").Parse(statusHTMLTemplate)),
	}
}

// Notify renders and sends the status email. The send runs under the
// configured timeout so a stuck SMTP server never blocks a request.
func (m *SMTPMailer) Notify(ctx context.Context, email string, g GrievanceSummary, kind string) error {
	heading := "Your Grievance is Resolved"
	if kind == KindClosed {
		heading = "Your Grievance is Closed"
	}

	var body bytes.Buffer
	if err := m.tpl.Execute(&body, templateData{
		Heading:     heading,
		Title:       g.Title,
		Description: g.Description,
	}); err != nil {
		return fmt.Errorf("render status email: %w", err)
	}

	msg := m.buildMessage(email, heading, body.String())

	timeout := m.cfg.SendTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- m.send(email, msg)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("mail send timed out: %w", ctx.Err())
	}
}

func (m *SMTPMailer) buildMessage(to, subject, htmlBody string) []byte {
	boundary := fmt.Sprintf("alt_%d", time.Now().UnixNano())

	var msg bytes.Buffer
	write := func(format string, a ...any) { _, _ = msg.WriteString(fmt.Sprintf(format, a...)) }

	write("From: %s\r\n", m.fromHeader())
	write("To: %s\r\n", to)
	write("Subject: %s\r\n", subject)
	write("Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	write("MIME-Version: 1.0\r\n")
	write("Content-Type: multipart/alternative; boundary=%q\r\n", boundary)
	write("\r\n")

	write("--%s\r\n", boundary)
	write("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	write("Your email client does not support HTML content.\r\n\r\n")

	write("--%s\r\n", boundary)
	write("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	write("%s\r\n\r\n", htmlBody)

	write("--%s--\r\n", boundary)

	return msg.Bytes()
}

func (m *SMTPMailer) fromHeader() string {
	name := strings.TrimSpace(m.cfg.FromName)
	if name == "" {
		return m.cfg.From
	}
	return fmt.Sprintf("%s <%s>", name, m.cfg.From)
}

func (m *SMTPMailer) send(to string, msg []byte) error {
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	tlsCfg := &tls.Config{ServerName: m.cfg.Host, MinVersion: tls.VersionTLS12}

	var c *smtp.Client

	if m.cfg.UseSSL {
		conn, err := tls.Dial("tcp", addr, tlsCfg)
		if err != nil {
			return err
		}
		c, err = smtp.NewClient(conn, m.cfg.Host)
		if err != nil {
			conn.Close()
			return err
		}
	} else {
		dialer := &net.Dialer{Timeout: 10 * time.Second}
		conn, err := dialer.Dial("tcp", addr)
		if err != nil {
			return err
		}
		c, err = smtp.NewClient(conn, m.cfg.Host)
		if err != nil {
			conn.Close()
			return err
		}
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err := c.StartTLS(tlsCfg); err != nil {
				c.Close()
				return err
			}
		}
	}
	defer c.Quit()

	if err := c.Auth(auth); err != nil {
		return err
	}
	if err := c.Mail(m.cfg.From); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	return w.Close()
}
