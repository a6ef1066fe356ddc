package contact

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validSubmission returns a submission that passes every rule. Tests mutate
// single fields to isolate the rule under test.
func validSubmission() *Submission {
	return &Submission{
		FirstName:        "Jan",
		LastName:         "Kowalski",
		Phone:            "601 234 567",
		Email:            "jan.kowalski@example.pl",
		PostalCode:       "00-950",
		City:             "Warszawa",
		Infrastructure:   []InfraType{InfraSlup},
		SlupParams:       "Niskie napięcie",
		Status:           StatusExisting,
		HasKW:            KWYes,
		MarketingConsent: true,
		CaptchaToken:     "tok-123",
	}
}

func TestValidateAcceptsCompleteSubmission(t *testing.T) {
	errs := Validate(validSubmission())
	require.Nil(t, errs, "expected no errors, got %v", errs)
}

func TestValidateFirstName(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantMsg string
	}{
		{"empty", "", "Podaj imię"},
		{"too short", "J", "Imię musi mieć co najmniej 2 znaki"},
		{"too long", strings.Repeat("a", 51), "Imię jest zbyt długie"},
		{"digits rejected", "Jan3", "Imię może zawierać tylko litery, spacje i myślniki"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSubmission()
			s.FirstName = tt.value
			errs := Validate(s)
			require.Contains(t, errs, "firstName")
			assert.Contains(t, errs["firstName"], tt.wantMsg)
		})
	}
}

func TestValidatePolishCharactersAllowed(t *testing.T) {
	s := validSubmission()
	s.FirstName = "Łukasz"
	s.LastName = "Żółć-Nowak"
	s.City = "Łódź"
	require.Nil(t, Validate(s))
}

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantMsg string
	}{
		{"too short", "12345678", "Numer telefonu jest zbyt krótki"},
		{"too long", strings.Repeat("1", 21), "Numer telefonu jest zbyt długi"},
		{"letters rejected", "601 234 abc", "Numer zawiera niedozwolone znaki"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSubmission()
			s.Phone = tt.value
			errs := Validate(s)
			require.Contains(t, errs, "phone")
			assert.Contains(t, errs["phone"], tt.wantMsg)
		})
	}

	t.Run("international formats pass", func(t *testing.T) {
		for _, phone := range []string{"+48 601 234 567", "(22) 123-45-67", "+1 (555) 010-2030"} {
			s := validSubmission()
			s.Phone = phone
			assert.NotContains(t, Validate(s), "phone", "phone %q should pass", phone)
		}
	})
}

func TestValidateEmail(t *testing.T) {
	s := validSubmission()
	s.Email = "not-an-email"
	errs := Validate(s)
	require.Contains(t, errs, "email")
	assert.Contains(t, errs["email"], "Podaj poprawny adres e-mail")
}

func TestValidatePostalCode(t *testing.T) {
	t.Run("full format passes", func(t *testing.T) {
		s := validSubmission()
		s.PostalCode = "00-000"
		assert.NotContains(t, Validate(s), "postalCode")
	})

	t.Run("empty string fails at submission time", func(t *testing.T) {
		s := validSubmission()
		s.PostalCode = ""
		errs := Validate(s)
		require.Contains(t, errs, "postalCode")
		assert.Contains(t, errs["postalCode"], "Podaj kod pocztowy")
	})

	t.Run("wrong shape fails format check", func(t *testing.T) {
		for _, code := range []string{"00000", "0-0000", "ab-cde", "00-00"} {
			s := validSubmission()
			s.PostalCode = code
			errs := Validate(s)
			require.Contains(t, errs, "postalCode", "code %q", code)
			assert.Contains(t, errs["postalCode"], "Wprowadź kod pocztowy w formacie 00-000")
		}
	})
}

func TestValidateInfrastructure(t *testing.T) {
	t.Run("missing set", func(t *testing.T) {
		s := validSubmission()
		s.Infrastructure = nil
		s.SlupParams = ""
		errs := Validate(s)
		require.Contains(t, errs, "infrastructure")
		assert.Contains(t, errs["infrastructure"], "Wybierz rodzaj infrastruktury")
	})

	t.Run("empty set", func(t *testing.T) {
		s := validSubmission()
		s.Infrastructure = []InfraType{}
		s.SlupParams = ""
		errs := Validate(s)
		require.Contains(t, errs, "infrastructure")
		assert.Contains(t, errs["infrastructure"], "Wybierz co najmniej jeden rodzaj infrastruktury")
	})

	t.Run("unknown tag", func(t *testing.T) {
		s := validSubmission()
		s.Infrastructure = []InfraType{"wiatrak"}
		errs := Validate(s)
		require.Contains(t, errs, "infrastructure")
	})
}

func TestValidateConditionalSlupParams(t *testing.T) {
	sets := [][]InfraType{
		{InfraSlup},
		{InfraSlup, InfraGaz},
		{InfraRopa, InfraSlup, InfraInne},
	}
	for _, set := range sets {
		s := validSubmission()
		s.Infrastructure = set
		s.SlupParams = ""
		s.GazParams = "Średnie ciśnienie"
		errs := Validate(s)
		require.Contains(t, errs, "slupParams", "set %v", set)
		assert.Contains(t, errs["slupParams"], "Wybierz parametry techniczne słupa")

		s.SlupParams = "Wysokie napięcie"
		assert.NotContains(t, Validate(s), "slupParams", "set %v", set)
	}
}

func TestValidateConditionalGazParams(t *testing.T) {
	s := validSubmission()
	s.Infrastructure = []InfraType{InfraGaz}
	s.SlupParams = ""
	s.GazParams = ""
	errs := Validate(s)
	require.Contains(t, errs, "gazParams")
	assert.Contains(t, errs["gazParams"], "Wybierz parametry techniczne gazociągu")
	assert.NotContains(t, errs, "slupParams", "slup not selected, its params stay optional")

	s.GazParams = "Niskie ciśnienie"
	assert.NotContains(t, Validate(s), "gazParams")
}

func TestValidateStatusAndKWRequiredWithInfrastructure(t *testing.T) {
	s := validSubmission()
	s.Status = ""
	s.HasKW = ""
	errs := Validate(s)
	require.Contains(t, errs, "status")
	require.Contains(t, errs, "hasKW")
	assert.Contains(t, errs["status"], "Wybierz status urządzenia")
	assert.Contains(t, errs["hasKW"], "Wybierz odpowiedź dotyczącą księgi wieczystej")
}

func TestValidateStatusEnumValues(t *testing.T) {
	for _, status := range []Status{StatusExisting, StatusPlanned, StatusModernization} {
		s := validSubmission()
		s.Status = status
		assert.NotContains(t, Validate(s), "status")
	}

	s := validSubmission()
	s.Status = "demolished"
	errs := Validate(s)
	require.Contains(t, errs, "status")
	assert.Contains(t, errs["status"], "Wybierz status urządzenia")
}

func TestValidateMarketingConsent(t *testing.T) {
	s := validSubmission()
	s.MarketingConsent = false
	errs := Validate(s)
	require.Contains(t, errs, "marketingConsent")
	assert.Contains(t, errs["marketingConsent"], "Zaznacz zgodę na telefoniczny kontakt marketingowy")

	// No other field error is suppressed by the consent failure.
	assert.Len(t, errs, 1)
}

func TestValidateAccumulatesAllErrors(t *testing.T) {
	s := &Submission{
		Infrastructure: []InfraType{InfraSlup, InfraGaz},
		PostalCode:     "",
	}
	errs := Validate(s)

	for _, field := range []string{
		"firstName", "lastName", "phone", "email", "city",
		"slupParams", "gazParams", "status", "hasKW",
		"postalCode", "marketingConsent", "captchaToken",
	} {
		assert.Contains(t, errs, field, "expected error for %s", field)
	}
}

func TestValidateExactlyOneConditionalError(t *testing.T) {
	// gaz and slup selected, only gazParams set: exactly one field error,
	// on slupParams.
	s := validSubmission()
	s.Infrastructure = []InfraType{InfraGaz, InfraSlup}
	s.SlupParams = ""
	s.GazParams = "Wysokie ciśnienie"
	errs := Validate(s)
	require.Len(t, errs, 1)
	assert.Contains(t, errs, "slupParams")
}

func TestValidateField(t *testing.T) {
	s := validSubmission()
	s.Email = "zle"
	assert.NotNil(t, ValidateField(s, "email"))
	assert.Nil(t, ValidateField(s, "phone"))
}

func TestDecode(t *testing.T) {
	t.Run("well-typed payload", func(t *testing.T) {
		data := map[string]any{
			"firstName":        "Jan",
			"lastName":         "Kowalski",
			"phone":            "601 234 567",
			"email":            "jan@example.pl",
			"postalCode":       "00-950",
			"city":             "Warszawa",
			"infrastructure":   []any{"slup"},
			"slupParams":       "Niskie napięcie",
			"status":           "existing",
			"hasKW":            "yes",
			"marketingConsent": true,
			"captchaToken":     "tok",
		}
		s, errs := Decode(data)
		require.Nil(t, errs)
		require.NotNil(t, s)
		assert.Equal(t, "Jan", s.FirstName)
		assert.Equal(t, []InfraType{InfraSlup}, s.Infrastructure)
		assert.True(t, s.MarketingConsent)
	})

	t.Run("wrong type lands on the field", func(t *testing.T) {
		data := map[string]any{"firstName": 42}
		s, errs := Decode(data)
		assert.Nil(t, s)
		require.Contains(t, errs, "firstName")
		assert.Contains(t, errs["firstName"], "Podaj imię")
	})

	t.Run("every mistyped field is reported", func(t *testing.T) {
		data := map[string]any{
			"firstName":        7,
			"marketingConsent": "tak",
			"infrastructure":   []any{"slup", 13},
			"city":             "Warszawa",
		}
		s, errs := Decode(data)
		assert.Nil(t, s)
		require.Len(t, errs, 3)
		assert.Contains(t, errs["firstName"], "Podaj imię")
		assert.Contains(t, errs["marketingConsent"], "Zaznacz zgodę na telefoniczny kontakt marketingowy")
		assert.Contains(t, errs, "infrastructure")
	})

	t.Run("null conditional fields decode to empty", func(t *testing.T) {
		data := map[string]any{"slupParams": nil, "status": nil}
		s, errs := Decode(data)
		require.Nil(t, errs)
		assert.Empty(t, s.SlupParams)
		assert.Empty(t, s.Status)
	})
}
