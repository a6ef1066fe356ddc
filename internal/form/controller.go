// Package form implements the contact-form state machine: field edits,
// blur-triggered validation, conditional sections driven by the
// infrastructure set, captcha gating, and the submit lifecycle.
package form

import (
	"context"
	"errors"
	"regexp"

	"github.com/sluzebnosc-pro/lead-platform/internal/contact"
)

// State is the controller's lifecycle phase.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSuccessDisplayed
	StateErrorDisplayed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateSuccessDisplayed:
		return "success"
	case StateErrorDisplayed:
		return "error"
	default:
		return "unknown"
	}
}

// ErrSubmitUnavailable is returned when Submit is called while the form is
// not submittable, either mid-flight or without a captcha token.
var ErrSubmitUnavailable = errors.New("form: submit unavailable")

const fallbackErrorMessage = "Wystąpił nieoczekiwany błąd. Spróbuj ponownie."

var nonDigit = regexp.MustCompile(`\D`)

// Controller drives a single contact form instance. It is not safe for
// concurrent use; a form belongs to one interaction loop.
type Controller struct {
	fields    contact.Submission
	country   Country
	errors    map[string][]string
	state     State
	message   string
	widgetKey int
	submitter Submitter
}

// NewController returns a controller in the Idle state with default field
// values and the default country selected.
func NewController(submitter Submitter) *Controller {
	return &Controller{
		fields:    defaultSubmission(),
		country:   Countries[0],
		errors:    map[string][]string{},
		submitter: submitter,
	}
}

func defaultSubmission() contact.Submission {
	return contact.Submission{Infrastructure: []contact.InfraType{}}
}

// State returns the current lifecycle phase.
func (c *Controller) State() State { return c.state }

// Message returns the dialog message for the Success or Error states.
func (c *Controller) Message() string { return c.message }

// Fields returns a copy of the current field values.
func (c *Controller) Fields() contact.Submission { return c.fields }

// Country returns the selected phone country.
func (c *Controller) Country() Country { return c.country }

// WidgetKey increments whenever the captcha widget must be re-issued with a
// fresh challenge.
func (c *Controller) WidgetKey() int { return c.widgetKey }

// FieldErrors returns the messages currently shown for a field, nil when the
// field has none.
func (c *Controller) FieldErrors(field string) []string { return c.errors[field] }

// Errors returns all currently shown field errors.
func (c *Controller) Errors() map[string][]string { return c.errors }

// SetField updates a text field without validating it; validation runs on
// Blur. Unknown field names are ignored.
func (c *Controller) SetField(field, value string) {
	switch field {
	case "firstName":
		c.fields.FirstName = value
	case "lastName":
		c.fields.LastName = value
	case "phone":
		c.fields.Phone = value
	case "email":
		c.fields.Email = value
	case "postalCode":
		c.fields.PostalCode = value
	case "city":
		c.fields.City = value
	case "slupParams":
		c.fields.SlupParams = value
	case "gazParams":
		c.fields.GazParams = value
	case "status":
		c.fields.Status = contact.Status(value)
	case "hasKW":
		c.fields.HasKW = contact.KWAnswer(value)
	}
}

// Blur re-validates the named field and records its messages.
func (c *Controller) Blur(field string) {
	c.setFieldErrors(field, contact.ValidateField(&c.fields, field))
}

// SetMarketingConsent updates the consent checkbox and validates it
// immediately.
func (c *Controller) SetMarketingConsent(v bool) {
	c.fields.MarketingConsent = v
	c.setFieldErrors("marketingConsent", contact.ValidateField(&c.fields, "marketingConsent"))
}

// SetCaptchaToken records a solved captcha challenge. Token changes validate
// immediately rather than on blur.
func (c *Controller) SetCaptchaToken(token string) {
	c.fields.CaptchaToken = token
	c.setFieldErrors("captchaToken", contact.ValidateField(&c.fields, "captchaToken"))
}

// ClearCaptchaToken drops the token, e.g. when the widget reports expiry.
func (c *Controller) ClearCaptchaToken() {
	c.SetCaptchaToken("")
}

// ToggleInfrastructure adds or removes an infrastructure tag. Dependent
// fields whose section unmounts are cleared so stale values never leak into
// a later submission. The infrastructure set validates immediately.
func (c *Controller) ToggleInfrastructure(t contact.InfraType) {
	next := make([]contact.InfraType, 0, len(c.fields.Infrastructure)+1)
	found := false
	for _, v := range c.fields.Infrastructure {
		if v == t {
			found = true
			continue
		}
		next = append(next, v)
	}
	if !found {
		next = append(next, t)
	}
	c.fields.Infrastructure = next

	if !c.fields.HasInfra(contact.InfraSlup) {
		c.fields.SlupParams = ""
		c.clearFieldErrors("slupParams")
	}
	if !c.fields.HasInfra(contact.InfraGaz) {
		c.fields.GazParams = ""
		c.clearFieldErrors("gazParams")
	}
	if len(c.fields.Infrastructure) == 0 {
		c.fields.Status = ""
		c.fields.HasKW = ""
		c.clearFieldErrors("status")
		c.clearFieldErrors("hasKW")
	}

	c.setFieldErrors("infrastructure", contact.ValidateField(&c.fields, "infrastructure"))
}

// SetCountry switches the phone country selector. The phone value is cleared
// only when its digits no longer fit the new country's pattern, so a number
// entered under the wrong mask cannot be submitted silently.
func (c *Controller) SetCountry(code string) {
	c.country = FindCountry(code)
	if c.fields.Phone == "" {
		return
	}
	limit := c.country.MaxDigits()
	if limit == 0 {
		return
	}
	digits := nonDigit.ReplaceAllString(c.fields.Phone, "")
	if len(digits) > limit {
		c.fields.Phone = ""
		c.clearFieldErrors("phone")
	}
}

// CanSubmit reports whether the form is submittable: a captcha token is set
// and no submission is in flight.
func (c *Controller) CanSubmit() bool {
	return c.fields.CaptchaToken != "" && c.state != StateSubmitting
}

// Submit validates the whole form and, when clean, sends it through the
// submitter.
//
// A 2xx response moves to SuccessDisplayed, resets the fields, clears the
// token, and re-issues the captcha widget. A non-2xx response or transport
// failure moves to ErrorDisplayed with the fields and token preserved, so
// correcting a validation failure does not force a fresh captcha solve.
func (c *Controller) Submit(ctx context.Context) error {
	if !c.CanSubmit() {
		return ErrSubmitUnavailable
	}

	if errs := contact.Validate(&c.fields); errs != nil {
		c.errors = errs
		return nil
	}

	c.state = StateSubmitting
	result, err := c.submitter.Submit(ctx, c.fields)
	if err != nil {
		c.state = StateErrorDisplayed
		c.message = fallbackErrorMessage
		return nil
	}

	if !result.Success {
		c.state = StateErrorDisplayed
		c.message = result.Message
		if c.message == "" {
			c.message = fallbackErrorMessage
		}
		if result.Errors != nil {
			c.errors = result.Errors
		}
		return nil
	}

	c.state = StateSuccessDisplayed
	c.message = result.Message
	c.fields = defaultSubmission()
	c.country = Countries[0]
	c.errors = map[string][]string{}
	c.widgetKey++
	return nil
}

// Dismiss closes the success or error dialog and returns to Idle. Field
// contents are untouched: the success path already reset them, the error
// path keeps them for correction.
func (c *Controller) Dismiss() {
	if c.state == StateSuccessDisplayed || c.state == StateErrorDisplayed {
		c.state = StateIdle
		c.message = ""
	}
}

func (c *Controller) setFieldErrors(field string, msgs []string) {
	if len(msgs) == 0 {
		delete(c.errors, field)
		return
	}
	c.errors[field] = msgs
}

func (c *Controller) clearFieldErrors(field string) {
	delete(c.errors, field)
}
