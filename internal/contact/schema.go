package contact

import (
	"encoding/json"
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// Polish letters plus spaces, hyphens, and apostrophes (O'Connor).
	nameRegexp = regexp.MustCompile(`^[a-zA-ZąćęłńóśźżĄĆĘŁŃÓŚŹŻ\s'-]+$`)

	phoneRegexp  = regexp.MustCompile(`^[\d\s\-\+\(\)]+$`)
	postalRegexp = regexp.MustCompile(`^\d{2}-\d{3}$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields under their JSON names so the error map matches the
	// wire payload.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	must(v.RegisterValidation("plname", func(fl validator.FieldLevel) bool {
		return nameRegexp.MatchString(fl.Field().String())
	}))
	must(v.RegisterValidation("phonechars", func(fl validator.FieldLevel) bool {
		return phoneRegexp.MatchString(fl.Field().String())
	}))
	// Empty string is the untouched/reset sentinel; it passes the format
	// check and is rejected at submission time by the cross-field phase.
	must(v.RegisterValidation("postalcode", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || postalRegexp.MatchString(s)
	}))
	return v
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// fieldMessages maps field+tag to the localized message shown to the user.
// Never generic text: every entry names the field and what to do.
var fieldMessages = map[string]map[string]string{
	"firstName": {
		"required": "Podaj imię",
		"min":      "Imię musi mieć co najmniej 2 znaki",
		"max":      "Imię jest zbyt długie",
		"plname":   "Imię może zawierać tylko litery, spacje i myślniki",
	},
	"lastName": {
		"required": "Podaj nazwisko",
		"min":      "Nazwisko musi mieć co najmniej 2 znaki",
		"max":      "Nazwisko jest zbyt długie",
		"plname":   "Nazwisko może zawierać tylko litery, spacje i myślniki",
	},
	"phone": {
		"required":   "Podaj numer telefonu",
		"min":        "Numer telefonu jest zbyt krótki",
		"max":        "Numer telefonu jest zbyt długi",
		"phonechars": "Numer zawiera niedozwolone znaki",
	},
	"email": {
		"required": "Podaj adres e-mail",
		"email":    "Podaj poprawny adres e-mail",
		"max":      "Adres e-mail jest zbyt długi",
	},
	"postalCode": {
		"postalcode": "Wprowadź kod pocztowy w formacie 00-000",
	},
	"city": {
		"required": "Podaj miejscowość",
		"min":      "Podaj miejscowość",
		"max":      "Nazwa miejscowości jest zbyt długa",
		"plname":   "Nazwa miejscowości może zawierać tylko litery",
	},
	"infrastructure": {
		"required": "Wybierz rodzaj infrastruktury",
		"min":      "Wybierz co najmniej jeden rodzaj infrastruktury",
		"oneof":    "Wybierz rodzaj infrastruktury",
	},
	"status": {
		"oneof": "Wybierz status urządzenia",
	},
	"hasKW": {
		"oneof": "Wybierz odpowiedź dotyczącą księgi wieczystej",
	},
	"marketingConsent": {
		"eq": "Zaznacz zgodę na telefoniczny kontakt marketingowy",
	},
	"captchaToken": {
		"required": "Potwierdź, że nie jesteś robotem",
	},
}

const (
	msgSlupParams = "Wybierz parametry techniczne słupa"
	msgGazParams  = "Wybierz parametry techniczne gazociągu"
	msgStatus     = "Wybierz status urządzenia"
	msgHasKW      = "Wybierz odpowiedź dotyczącą księgi wieczystej"
	msgPostalCode = "Podaj kod pocztowy"
	msgInvalid    = "Nieprawidłowa wartość pola"
)

// crossFieldRule is a conditional requirement evaluated against the draft
// after the structural phase. Rules always run and accumulate, regardless
// of field-level failures.
type crossFieldRule struct {
	field   string
	message string
	failed  func(s *Submission) bool
}

var crossFieldRules = []crossFieldRule{
	{
		field:   "slupParams",
		message: msgSlupParams,
		failed:  func(s *Submission) bool { return s.HasInfra(InfraSlup) && s.SlupParams == "" },
	},
	{
		field:   "gazParams",
		message: msgGazParams,
		failed:  func(s *Submission) bool { return s.HasInfra(InfraGaz) && s.GazParams == "" },
	},
	{
		field:   "status",
		message: msgStatus,
		failed:  func(s *Submission) bool { return len(s.Infrastructure) > 0 && s.Status == "" },
	},
	{
		field:   "hasKW",
		message: msgHasKW,
		failed:  func(s *Submission) bool { return len(s.Infrastructure) > 0 && s.HasKW == "" },
	},
	{
		field:   "postalCode",
		message: msgPostalCode,
		failed:  func(s *Submission) bool { return s.PostalCode == "" },
	},
}

// Validate runs both phases against s and returns every violation as a
// field → messages map. A nil result means the submission is valid.
func Validate(s *Submission) map[string][]string {
	errs := map[string][]string{}

	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			errs["_"] = append(errs["_"], msgInvalid)
		}
		for _, fe := range verrs {
			field := normalizeFieldName(fe.Field())
			errs[field] = append(errs[field], messageFor(field, fe.Tag()))
		}
	}

	for _, rule := range crossFieldRules {
		if rule.failed(s) {
			errs[rule.field] = append(errs[rule.field], rule.message)
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateField validates a single field for blur-triggered client checks.
// Returns the messages for that field only, or nil when it is clean.
func ValidateField(s *Submission, field string) []string {
	return Validate(s)[field]
}

// Decode converts an already-sanitized payload into a Submission. Values of
// the wrong JSON type yield field errors under their field names rather
// than a parse failure, mirroring how the form reports type issues. All
// mistyped fields are collected: decoding stops at the first bad value, so
// the offending key is dropped and the rest of the payload is retried.
func Decode(data map[string]any) (*Submission, map[string][]string) {
	payload := make(map[string]any, len(data))
	for k, v := range data {
		payload[k] = v
	}

	var s Submission
	typeErrs := map[string][]string{}
	for i := 0; i <= len(data); i++ {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, map[string][]string{"_": {msgInvalid}}
		}
		err = json.Unmarshal(raw, &s)
		if err == nil {
			break
		}
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) || typeErr.Field == "" {
			return nil, map[string][]string{"_": {msgInvalid}}
		}
		field := normalizeFieldName(typeErr.Field)
		typeErrs[field] = append(typeErrs[field], typeMessage(field))
		delete(payload, field)
	}

	if len(typeErrs) > 0 {
		return nil, typeErrs
	}
	return &s, nil
}

// normalizeFieldName strips slice indexes ("infrastructure[2]") and nested
// paths so dive errors land on the parent field.
func normalizeFieldName(name string) string {
	if i := strings.IndexAny(name, "[."); i >= 0 {
		return name[:i]
	}
	return name
}

func messageFor(field, tag string) string {
	if byTag, ok := fieldMessages[field]; ok {
		if msg, ok := byTag[tag]; ok {
			return msg
		}
		// Unlisted tag on a known field: fall back to its required text.
		if msg, ok := byTag["required"]; ok {
			return msg
		}
	}
	return msgInvalid
}

// typeMessage matches the form's invalid-type guidance for each field.
func typeMessage(field string) string {
	switch field {
	case "slupParams":
		return msgSlupParams
	case "gazParams":
		return msgGazParams
	case "status":
		return msgStatus
	case "hasKW":
		return msgHasKW
	case "postalCode":
		return fieldMessages["postalCode"]["postalcode"]
	case "marketingConsent":
		return fieldMessages["marketingConsent"]["eq"]
	default:
		return messageFor(field, "required")
	}
}
