// Package mailer renders HTML notification mails and hands them to a Sender.
package mailer

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/config"
	"github.com/businessgurujee/businessgurujee/backend/go-services/pkg/metrics"
)

//go:embed templates/*.html
var templateFS embed.FS

// Template names.
const (
	InquiryNotification = "inquiry_notification"
	WelcomeVendor       = "welcome_vendor"
)

// Message is a rendered mail.
type Message struct {
	To      string
	Subject string
	HTML    string
}

type Sender interface {
	Send(ctx context.Context, m Message) error
}

// InquiryData feeds the inquiry_notification template.
type InquiryData struct {
	BusinessName string
	Name         string
	Email        string
	Phone        string
	Message      string
}

// WelcomeData feeds the welcome_vendor template.
type WelcomeData struct {
	Name string
}

type page struct {
	Subject  string
	SiteName string
	SiteURL  string
	Data     interface{}
}

type Mailer struct {
	sender    Sender
	site      config.SiteConfig
	templates map[string]*template.Template
}

func New(sender Sender, site config.SiteConfig) (*Mailer, error) {
	m := &Mailer{sender: sender, site: site, templates: map[string]*template.Template{}}
	for _, name := range []string{InquiryNotification, WelcomeVendor} {
		t, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		m.templates[name] = t
	}
	return m, nil
}

// Render executes a named template inside the shared layout.
func (m *Mailer) Render(name, subject string, data interface{}) (string, error) {
	t, ok := m.templates[name]
	if !ok {
		return "", fmt.Errorf("unknown template %q", name)
	}
	var buf bytes.Buffer
	err := t.ExecuteTemplate(&buf, "layout", page{Subject: subject, SiteName: m.site.Name, SiteURL: m.site.BaseURL, Data: data})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (m *Mailer) send(ctx context.Context, name, to, subject string, data interface{}) error {
	html, err := m.Render(name, subject, data)
	if err != nil {
		metrics.MailsSent.WithLabelValues(name, "error").Inc()
		return err
	}
	if err := m.sender.Send(ctx, Message{To: to, Subject: subject, HTML: html}); err != nil {
		metrics.MailsSent.WithLabelValues(name, "error").Inc()
		return fmt.Errorf("send %s: %w", name, err)
	}
	metrics.MailsSent.WithLabelValues(name, "ok").Inc()
	return nil
}

// NotifyInquiry mails the business contact about a new inquiry.
func (m *Mailer) NotifyInquiry(ctx context.Context, to string, d InquiryData) error {
	return m.send(ctx, InquiryNotification, to, "New inquiry for "+d.BusinessName, d)
}

func (m *Mailer) Welcome(ctx context.Context, to string, d WelcomeData) error {
	return m.send(ctx, WelcomeVendor, to, "Welcome to "+m.site.Name, d)
}
