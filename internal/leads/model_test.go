package leads

import (
	"context"
	"strings"
	"testing"

	"github.com/sluzebnosc-pro/lead-platform/internal/contact"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"spaces stripped", "601 234 567", "601234567"},
		{"leading plus kept", "+48 601 234 567", "+48601234567"},
		{"punctuation stripped", "(22) 123-45-67", "221234567"},
		{"inner plus dropped", "48+601234567", "48601234567"},
		{"leading whitespace then plus", "  +48 601 234 567", "+48601234567"},
		{"capped at 20", "+" + strings.Repeat("1", 25), "+" + strings.Repeat("1", 19)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePhone(tt.in); got != tt.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFromSubmissionNormalizes(t *testing.T) {
	sub := &contact.Submission{
		FirstName:        " Jan ",
		LastName:         " Kowalski ",
		Phone:            "+48 601 234 567",
		Email:            " Jan.Kowalski@Example.PL ",
		PostalCode:       "00-950",
		City:             " Warszawa ",
		Infrastructure:   []contact.InfraType{contact.InfraSlup},
		SlupParams:       "Niskie napięcie",
		Status:           contact.StatusExisting,
		HasKW:            contact.KWYes,
		MarketingConsent: true,
	}

	lead := FromSubmission(sub)

	if lead.FirstName != "Jan" || lead.LastName != "Kowalski" {
		t.Errorf("expected trimmed names, got %q %q", lead.FirstName, lead.LastName)
	}
	if lead.Email != "jan.kowalski@example.pl" {
		t.Errorf("expected lower-cased email, got %q", lead.Email)
	}
	if lead.Phone != "+48601234567" {
		t.Errorf("expected canonical phone, got %q", lead.Phone)
	}
	if lead.City != "Warszawa" {
		t.Errorf("expected trimmed city, got %q", lead.City)
	}
	if lead.FullName() != "Jan Kowalski" {
		t.Errorf("unexpected full name %q", lead.FullName())
	}
	if lead.Source != "website" {
		t.Errorf("expected website source, got %q", lead.Source)
	}
	if lead.ID != "" || !lead.CreatedAt.IsZero() {
		t.Error("draft lead must not carry ID or timestamp before storage")
	}
}

func TestInMemoryRepositoryCreateAndGet(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, &Lead{FirstName: "Jan", LastName: "Kowalski"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected generated lead id")
	}
	if created.CreatedAt.IsZero() {
		t.Fatal("expected creation timestamp")
	}

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.FirstName != "Jan" {
		t.Errorf("expected stored lead, got %+v", got)
	}

	if _, err := repo.GetByID(ctx, "missing"); err != ErrLeadNotFound {
		t.Errorf("expected ErrLeadNotFound, got %v", err)
	}
}
