package service

import (
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"contact-book/internal/apperr"
	"contact-book/internal/core/config"
	"contact-book/internal/domain"
)

const defaultSubject = "Contacts"

// Dialer is the slice of gomail the service needs; tests substitute a fake.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type SendInput struct {
	To         string   `json:"to"`
	Subject    string   `json:"subject"`
	Text       string   `json:"text"`
	ContactIDs []string `json:"contactIds"`
}

type MailService struct {
	dialer Dialer
	from   string
	repo   domain.ContactRepository
}

// NewMailService wires the SMTP relay. A missing host leaves the dialer nil
// and Send degrades to a runtime error instead of failing startup.
func NewMailService(cfg config.SMTP, repo domain.ContactRepository) *MailService {
	s := &MailService{repo: repo, from: cfg.From}
	if s.from == "" {
		s.from = cfg.Username
	}
	if cfg.Host != "" {
		s.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	}
	return s
}

// NewMailServiceWithDialer injects a prebuilt dialer (tests).
func NewMailServiceWithDialer(d Dialer, from string, repo domain.ContactRepository) *MailService {
	return &MailService{dialer: d, from: from, repo: repo}
}

// Send composes and dispatches an email with the selected contacts' details
// appended to the free text. Unknown contact ids are dropped silently.
func (s *MailService) Send(in SendInput) error {
	to := strings.TrimSpace(in.To)
	if to == "" {
		return apperr.BadRequest("to required")
	}
	if strings.TrimSpace(in.Text) == "" && len(in.ContactIDs) == 0 {
		return apperr.BadRequest("text or contactIds required")
	}

	var contacts []domain.Contact
	if len(in.ContactIDs) > 0 {
		var err error
		contacts, err = s.repo.FindByIDs(in.ContactIDs)
		if err != nil {
			return apperr.Internal("failed to resolve contacts", err)
		}
	}
	body := composeBody(in.Text, contacts)

	if s.dialer == nil {
		return apperr.Unavailable("mail relay not configured")
	}

	subject := strings.TrimSpace(in.Subject)
	if subject == "" {
		subject = defaultSubject
	}
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return apperr.Internal("failed to send email", err)
	}
	return nil
}

func composeBody(text string, contacts []domain.Contact) string {
	var parts []string
	if t := strings.TrimSpace(text); t != "" {
		parts = append(parts, t)
	}
	if len(contacts) > 0 {
		lines := make([]string, 0, len(contacts))
		for _, c := range contacts {
			lines = append(lines, fmt.Sprintf("%s — %s", c.Name, c.Number))
		}
		parts = append(parts, strings.Join(lines, "\n"))
	}
	return strings.Join(parts, "\n\n")
}
