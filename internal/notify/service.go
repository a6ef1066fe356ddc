package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sluzebnosc-pro/lead-platform/internal/contact"
	"github.com/sluzebnosc-pro/lead-platform/internal/leads"
	"github.com/sluzebnosc-pro/lead-platform/pkg/logging"
)

// Service sends new-lead notifications to the sales inbox. Notification is
// best-effort: failures are logged and never surfaced to the submitter.
type Service struct {
	email      EmailSender
	recipients []string
	timeout    time.Duration
	logger     *logging.Logger
}

// NewService creates a notification service for the given recipients.
func NewService(email EmailSender, recipients []string, timeout time.Duration, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Service{
		email:      email,
		recipients: recipients,
		timeout:    timeout,
		logger:     logger,
	}
}

var infraLabels = map[contact.InfraType]string{
	contact.InfraSlup: "Słup elektroenergetyczny",
	contact.InfraGaz:  "Gazociąg",
	contact.InfraRopa: "Ropociąg",
	contact.InfraInne: "Inne urządzenie przesyłowe",
}

var statusLabels = map[contact.Status]string{
	contact.StatusExisting:      "Istniejące",
	contact.StatusPlanned:       "Planowane / w trakcie",
	contact.StatusModernization: "Modernizacja",
}

// NotifyNewLead sends the new-lead email to every configured recipient and
// returns the aggregated error. Callers on the request path use
// NotifyNewLeadAsync instead.
func (s *Service) NotifyNewLead(ctx context.Context, lead *leads.Lead) error {
	if s.email == nil || len(s.recipients) == 0 {
		s.logger.Debug("notify: email not configured, skipping lead notification", "lead_id", lead.ID)
		return nil
	}

	subject := fmt.Sprintf("Nowy lead: %s", lead.FullName())
	body := s.buildBody(lead)

	var failed int
	for _, recipient := range s.recipients {
		msg := EmailMessage{
			To:      recipient,
			Subject: subject,
			Body:    body,
			ReplyTo: lead.Email,
		}
		if err := s.email.Send(ctx, msg); err != nil {
			s.logger.Error("notify: failed to send lead email", "error", err, "to", recipient, "lead_id", lead.ID)
			failed++
			continue
		}
		s.logger.Info("notify: lead email sent", "to", recipient, "lead_id", lead.ID)
	}
	if failed > 0 {
		return fmt.Errorf("notify: %d of %d lead emails failed", failed, len(s.recipients))
	}
	return nil
}

// NotifyNewLeadAsync dispatches the notification on a detached goroutine
// with its own deadline and error boundary. The request path never waits on
// it and never sees its failures.
func (s *Service) NotifyNewLeadAsync(lead *leads.Lead) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("notify: panic in lead notification", "panic", r, "lead_id", lead.ID)
			}
		}()
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		if err := s.NotifyNewLead(ctx, lead); err != nil {
			s.logger.Error("notify: lead notification failed", "error", err, "lead_id", lead.ID)
		}
	}()
}

func (s *Service) buildBody(lead *leads.Lead) string {
	var infra []string
	for _, t := range lead.Infrastructure {
		if label, ok := infraLabels[t]; ok {
			infra = append(infra, label)
		} else {
			infra = append(infra, string(t))
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Nowe zgłoszenie z formularza kontaktowego.\n\n")
	fmt.Fprintf(&b, "Lead ID: %s\n", lead.ID)
	fmt.Fprintf(&b, "Imię i nazwisko: %s\n", lead.FullName())
	fmt.Fprintf(&b, "Telefon: %s\n", lead.Phone)
	fmt.Fprintf(&b, "E-mail: %s\n", lead.Email)
	fmt.Fprintf(&b, "Adres: %s %s\n", lead.PostalCode, lead.City)
	fmt.Fprintf(&b, "Infrastruktura: %s\n", strings.Join(infra, ", "))
	if lead.SlupParams != "" {
		fmt.Fprintf(&b, "Parametry słupa: %s\n", lead.SlupParams)
	}
	if lead.GazParams != "" {
		fmt.Fprintf(&b, "Parametry gazociągu: %s\n", lead.GazParams)
	}
	if label, ok := statusLabels[lead.Status]; ok {
		fmt.Fprintf(&b, "Status urządzenia: %s\n", label)
	}
	if lead.HasKW != "" {
		kw := "Nie"
		if lead.HasKW == contact.KWYes {
			kw = "Tak"
		}
		fmt.Fprintf(&b, "Księga wieczysta: %s\n", kw)
	}
	fmt.Fprintf(&b, "Zgoda marketingowa: tak\n")
	fmt.Fprintf(&b, "Zgłoszono: %s\n", lead.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	return b.String()
}
