package leads

import (
	"strings"
	"time"

	"github.com/sluzebnosc-pro/lead-platform/internal/contact"
)

// Lead is a validated, normalized contact-form submission plus the
// generated identifier and creation timestamp.
type Lead struct {
	ID        string    `json:"leadId"`
	CreatedAt time.Time `json:"createdAt"`

	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	PostalCode string `json:"postalCode"`
	City       string `json:"city"`

	Infrastructure []contact.InfraType `json:"infrastructure"`
	SlupParams     string              `json:"slupParams,omitempty"`
	GazParams      string              `json:"gazParams,omitempty"`
	Status         contact.Status      `json:"status,omitempty"`
	HasKW          contact.KWAnswer    `json:"hasKW,omitempty"`

	MarketingConsent bool   `json:"marketingConsent"`
	Source           string `json:"source,omitempty"`
}

// maxPhoneLen caps the canonical phone form.
const maxPhoneLen = 20

// FromSubmission builds the normalized lead draft from a validated
// submission: names and city trimmed, email lower-cased, phone reduced to
// digits with an optional leading plus. ID and CreatedAt are assigned by
// the repository.
func FromSubmission(s *contact.Submission) *Lead {
	return &Lead{
		FirstName:        strings.TrimSpace(s.FirstName),
		LastName:         strings.TrimSpace(s.LastName),
		Phone:            NormalizePhone(s.Phone),
		Email:            strings.ToLower(strings.TrimSpace(s.Email)),
		PostalCode:       s.PostalCode,
		City:             strings.TrimSpace(s.City),
		Infrastructure:   s.Infrastructure,
		SlupParams:       s.SlupParams,
		GazParams:        s.GazParams,
		Status:           s.Status,
		HasKW:            s.HasKW,
		MarketingConsent: s.MarketingConsent,
		Source:           "website",
	}
}

// NormalizePhone strips a phone number to its canonical form: digits plus
// an optional leading '+', capped at 20 characters.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	var b strings.Builder
	for i, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		} else if r == '+' && i == 0 {
			b.WriteRune(r)
		}
	}
	out := b.String()
	if len(out) > maxPhoneLen {
		out = out[:maxPhoneLen]
	}
	return out
}

// FullName joins the lead's first and last names for notifications.
func (l *Lead) FullName() string {
	return strings.TrimSpace(l.FirstName + " " + l.LastName)
}
