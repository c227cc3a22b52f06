// Package email sends the post-persistence notifications: a discount
// confirmation to the lead and an alert to the internal follow-up list.
// Every send is best-effort; the submission pipeline succeeds or fails on
// the sheet write alone.
package email

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"strings"
	"time"

	"lead-capture-backend/config"
	"lead-capture-backend/internal/domain"

	"gopkg.in/gomail.v2"
)

// DiscountCode is interpolated into the confirmation templates. Fixed for
// the current campaign.
const DiscountCode = "SERENE2025"

// Dialer abstracts gomail's DialAndSend so tests can capture messages
// without a live SMTP server.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// Service implements domain.Notifier over a shared SMTP transport.
type Service struct {
	dialer    Dialer
	from      string
	notifyTo  []string
	now       func() time.Time
	questions []domain.Question
}

// NewService builds the dispatcher from environment configuration. The
// notification list is comma-separated; entries are trimmed and empty ones
// dropped. Transport timeouts are gomail's dial defaults — no explicit
// per-send deadline is configured.
func NewService(cfg *config.Config, questions []domain.Question) *Service {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	dialer.SSL = cfg.SMTPSecure
	if !cfg.SMTPSecure {
		dialer.TLSConfig = &tls.Config{ServerName: cfg.SMTPHost}
	}
	return &Service{
		dialer:    dialer,
		from:      cfg.EmailFrom,
		notifyTo:  SplitRecipients(cfg.NotifyEmails),
		now:       time.Now,
		questions: questions,
	}
}

// NewServiceWithDialer is the test seam: same wiring, custom transport.
func NewServiceWithDialer(dialer Dialer, from string, notifyTo []string, questions []domain.Question) *Service {
	return &Service{
		dialer:    dialer,
		from:      from,
		notifyTo:  notifyTo,
		now:       time.Now,
		questions: questions,
	}
}

// SplitRecipients parses a comma-separated recipient list, trimming entries
// and dropping empty ones.
func SplitRecipients(list string) []string {
	var out []string
	for _, entry := range strings.Split(list, ",") {
		if addr := strings.TrimSpace(entry); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}

// Dispatch runs both sends and reports per-send outcomes. Neither failure
// stops the other, and callers discard the report by contract.
func (s *Service) Dispatch(ctx context.Context, lead domain.LeadContact, answers domain.Answers) domain.DispatchReport {
	return domain.DispatchReport{
		ConfirmationErr: s.sendConfirmation(lead),
		AlertErr:        s.sendInternalAlert(lead, answers),
	}
}

const confirmationSubject = "Your Serenity Med Spa 10% Offer"

const confirmationText = `Hi %s,

Thanks for your interest in Serenity Med Spa. Your 10%% discount is locked in.

Use the discount code: %s

— Serenity Med Spa, Ikoyi
https://www.serenityspang.com/`

const confirmationHTML = `<p>Hi {{.Name}},</p>
<p>Thanks for your interest in <strong>Serenity Med Spa</strong>. Your <strong>10% discount</strong> is locked in.</p>
<p>Use the discount code: <b>{{.Code}}</b>.</p>
<p>— Serenity Med Spa, Ikoyi<br/>
<a href="https://www.serenityspang.com/">serenityspang.com</a></p>`

// sendConfirmation emails the discount code to the lead. Skipped when the
// trimmed address is empty.
func (s *Service) sendConfirmation(lead domain.LeadContact) error {
	to := strings.TrimSpace(lead.Email)
	if to == "" {
		return nil
	}

	name := lead.Name
	if strings.TrimSpace(name) == "" {
		name = "there"
	}

	html, err := renderConfirmationHTML(name)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", confirmationSubject)
	m.SetBody("text/plain", fmt.Sprintf(confirmationText, name, DiscountCode))
	m.AddAlternative("text/html", html)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}
	return nil
}

func renderConfirmationHTML(name string) (string, error) {
	tmpl, err := template.New("confirmation").Parse(confirmationHTML)
	if err != nil {
		return "", fmt.Errorf("failed to parse confirmation template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, struct {
		Name string
		Code string
	}{Name: name, Code: DiscountCode}); err != nil {
		return "", fmt.Errorf("failed to execute confirmation template: %w", err)
	}
	return buf.String(), nil
}

// internalAlertTemplate is the HTML body of the team alert.
const internalAlertTemplate = `<h3>New lead: {{.Name}}</h3>
<p><b>Email:</b> {{.Email}}<br/>
<b>Phone:</b> {{.Phone}}</p>
<table cellpadding="4">
{{range .Rows}}<tr><td><b>{{.Label}}</b></td><td>{{.Value}}</td></tr>
{{end}}</table>
<p>Submitted: {{.SubmittedAt}}</p>`

type alertRow struct {
	Label string
	Value string
}

// sendInternalAlert notifies the follow-up list. Skipped when the list is
// empty. Reply-To points at the lead so the team can answer directly.
func (s *Service) sendInternalAlert(lead domain.LeadContact, answers domain.Answers) error {
	if len(s.notifyTo) == 0 {
		return nil
	}

	submittedAt := s.now().UTC().Format(time.RFC1123)
	rows := make([]alertRow, 0, len(s.questions))
	var text strings.Builder
	fmt.Fprintf(&text, "New lead: %s\nEmail: %s\nPhone: %s\n\n", lead.Name, lead.Email, lead.Phone)
	for _, q := range s.questions {
		value := answers[q.ID]
		if value == "" {
			value = "-"
		}
		rows = append(rows, alertRow{Label: q.Label, Value: value})
		fmt.Fprintf(&text, "%s: %s\n", q.Label, value)
	}
	fmt.Fprintf(&text, "\nSubmitted: %s\n", submittedAt)

	tmpl, err := template.New("alert").Parse(internalAlertTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse alert template: %w", err)
	}
	var html bytes.Buffer
	if err := tmpl.Execute(&html, struct {
		Name, Email, Phone, SubmittedAt string
		Rows                            []alertRow
	}{lead.Name, lead.Email, lead.Phone, submittedAt, rows}); err != nil {
		return fmt.Errorf("failed to execute alert template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", s.notifyTo...)
	m.SetHeader("Reply-To", lead.Email)
	m.SetHeader("Subject", fmt.Sprintf("New lead: %s", lead.Name))
	m.SetBody("text/plain", text.String())
	m.AddAlternative("text/html", html.String())

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send internal alert: %w", err)
	}
	return nil
}

// IsConfigured checks if the service has a usable SMTP configuration.
func (s *Service) IsConfigured() bool {
	d, ok := s.dialer.(*gomail.Dialer)
	if !ok {
		return true
	}
	return d.Host != "" && d.Username != ""
}
