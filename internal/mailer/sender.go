package mailer

import (
	"context"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/config"
	"github.com/businessgurujee/businessgurujee/backend/go-services/pkg/logger"
)

// SMTPSender delivers mail through an SMTP relay with PLAIN auth when a username is set.
type SMTPSender struct {
	addr string
	host string
	auth smtp.Auth
	from string
}

func NewSMTPSender(cfg config.MailConfig) *SMTPSender {
	s := &SMTPSender{
		addr: net.JoinHostPort(cfg.SMTPHost, strconv.Itoa(cfg.SMTPPort)),
		host: cfg.SMTPHost,
		from: cfg.From,
	}
	if cfg.Username != "" {
		s.auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.SMTPHost)
	}
	return s
}

func envelopeAddress(from string) string {
	if i := strings.LastIndexByte(from, '<'); i >= 0 {
		return strings.TrimSuffix(from[i+1:], ">")
	}
	return from
}

func buildMessage(from string, m Message) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + m.To + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", m.Subject) + "\r\n")
	b.WriteString("Date: " + time.Now().UTC().Format(time.RFC1123Z) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(m.HTML)
	return []byte(b.String())
}

func (s *SMTPSender) Send(ctx context.Context, m Message) error {
	if strings.ContainsAny(m.To, "\r\n") {
		return fmt.Errorf("invalid recipient")
	}
	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(s.addr, s.auth, envelopeAddress(s.from), []string{m.To}, buildMessage(s.from, m))
	}()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// LogSender writes mails to the log; used when SMTP is not configured.
type LogSender struct {
	mu   sync.Mutex
	sent []Message
}

func (l *LogSender) Send(ctx context.Context, m Message) error {
	l.mu.Lock()
	l.sent = append(l.sent, m)
	l.mu.Unlock()
	logger.Infof("mail (not sent, SMTP disabled) to=%s subject=%q bytes=%d", m.To, m.Subject, len(m.HTML))
	return nil
}

// Sent returns the messages seen so far.
func (l *LogSender) Sent() []Message {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Message(nil), l.sent...)
}

// NewSender picks SMTP when a host is configured.
func NewSender(cfg config.MailConfig) Sender {
	if cfg.SMTPHost == "" {
		return &LogSender{}
	}
	return NewSMTPSender(cfg)
}
