// Package contact defines the contact-form submission model and its
// validation schema. The same rules serve the form client and the
// submission endpoint; the endpoint is the source of truth.
package contact

// InfraType identifies the kind of transmission equipment on the
// submitter's property.
type InfraType string

const (
	InfraSlup InfraType = "slup" // power pylon
	InfraGaz  InfraType = "gaz"  // gas pipeline
	InfraRopa InfraType = "ropa" // oil pipeline
	InfraInne InfraType = "inne" // other transmission equipment
)

// InfraTypes lists every accepted infrastructure tag.
var InfraTypes = []InfraType{InfraSlup, InfraGaz, InfraRopa, InfraInne}

// Status describes the state of the equipment.
type Status string

const (
	StatusExisting      Status = "existing"
	StatusPlanned       Status = "planned"
	StatusModernization Status = "modernization"
)

// KWAnswer answers whether the property has a land registry entry
// (księga wieczysta).
type KWAnswer string

const (
	KWYes KWAnswer = "yes"
	KWNo  KWAnswer = "no"
)

// Submission is the contact-form payload. Field-level rules live in the
// validate tags; cross-field rules (conditional requirements driven by the
// infrastructure set) live in crossFieldRules.
type Submission struct {
	FirstName  string `json:"firstName" validate:"required,min=2,max=50,plname"`
	LastName   string `json:"lastName" validate:"required,min=2,max=50,plname"`
	Phone      string `json:"phone" validate:"required,min=9,max=20,phonechars"`
	Email      string `json:"email" validate:"required,email,max=100"`
	PostalCode string `json:"postalCode" validate:"postalcode"`
	City       string `json:"city" validate:"required,min=2,max=100,plname"`

	Infrastructure []InfraType `json:"infrastructure" validate:"required,min=1,dive,oneof=slup gaz ropa inne"`

	// Conditionally required: slupParams iff infrastructure contains slup,
	// gazParams iff it contains gaz, status and hasKW iff the set is
	// non-empty. Enforced by the cross-field phase.
	SlupParams string   `json:"slupParams,omitempty"`
	GazParams  string   `json:"gazParams,omitempty"`
	Status     Status   `json:"status,omitempty" validate:"omitempty,oneof=existing planned modernization"`
	HasKW      KWAnswer `json:"hasKW,omitempty" validate:"omitempty,oneof=yes no"`

	MarketingConsent bool   `json:"marketingConsent" validate:"eq=true"`
	CaptchaToken     string `json:"captchaToken" validate:"required"`
}

// HasInfra reports whether the submission's infrastructure set contains t.
func (s *Submission) HasInfra(t InfraType) bool {
	for _, v := range s.Infrastructure {
		if v == t {
			return true
		}
	}
	return false
}
