package form

import "strings"

// Country describes a phone country selector entry. Pattern uses '#' as a
// digit placeholder, e.g. "### ### ###" for a nine digit number.
type Country struct {
	Code     string
	Name     string
	DialCode string
	Pattern  string
}

// MaxDigits returns the number of digit placeholders in the country's
// pattern. Zero means the pattern imposes no limit.
func (c Country) MaxDigits() int {
	return strings.Count(c.Pattern, "#")
}

// Option is a selectable form choice with a Polish label.
type Option struct {
	ID    string
	Label string
	Desc  string
}

// Countries lists the supported phone country selector entries. The first
// entry is the default.
var Countries = []Country{
	{Code: "PL", Name: "Polska", DialCode: "+48", Pattern: "### ### ###"},
	{Code: "DE", Name: "Niemcy", DialCode: "+49", Pattern: "### ### ### ####"},
	{Code: "GB", Name: "Wielka Brytania", DialCode: "+44", Pattern: "#### ######"},
	{Code: "FR", Name: "Francja", DialCode: "+33", Pattern: "# ## ## ## ##"},
	{Code: "IT", Name: "Włochy", DialCode: "+39", Pattern: "### ### ####"},
	{Code: "ES", Name: "Hiszpania", DialCode: "+34", Pattern: "### ### ###"},
	{Code: "NL", Name: "Holandia", DialCode: "+31", Pattern: "# ########"},
	{Code: "BE", Name: "Belgia", DialCode: "+32", Pattern: "### ## ## ##"},
	{Code: "AT", Name: "Austria", DialCode: "+43", Pattern: "### ### ####"},
	{Code: "CZ", Name: "Czechy", DialCode: "+420", Pattern: "### ### ###"},
	{Code: "SK", Name: "Słowacja", DialCode: "+421", Pattern: "### ### ###"},
	{Code: "LT", Name: "Litwa", DialCode: "+370", Pattern: "### #####"},
	{Code: "LV", Name: "Łotwa", DialCode: "+371", Pattern: "## ### ###"},
	{Code: "EE", Name: "Estonia", DialCode: "+372", Pattern: "#### ####"},
	{Code: "UA", Name: "Ukraina", DialCode: "+380", Pattern: "## ### ## ##"},
	{Code: "US", Name: "Stany Zjednoczone", DialCode: "+1", Pattern: "(###) ###-####"},
	{Code: "CA", Name: "Kanada", DialCode: "+1", Pattern: "(###) ###-####"},
	{Code: "AU", Name: "Australia", DialCode: "+61", Pattern: "# #### ####"},
	{Code: "CH", Name: "Szwajcaria", DialCode: "+41", Pattern: "## ### ## ##"},
	{Code: "SE", Name: "Szwecja", DialCode: "+46", Pattern: "##-### ## ##"},
	{Code: "NO", Name: "Norwegia", DialCode: "+47", Pattern: "### ## ###"},
	{Code: "DK", Name: "Dania", DialCode: "+45", Pattern: "## ## ## ##"},
	{Code: "FI", Name: "Finlandia", DialCode: "+358", Pattern: "## ### ## ##"},
	{Code: "IE", Name: "Irlandia", DialCode: "+353", Pattern: "## ### ####"},
	{Code: "PT", Name: "Portugalia", DialCode: "+351", Pattern: "### ### ###"},
	{Code: "GR", Name: "Grecja", DialCode: "+30", Pattern: "### ### ####"},
	{Code: "HU", Name: "Węgry", DialCode: "+36", Pattern: "## ### ####"},
	{Code: "RO", Name: "Rumunia", DialCode: "+40", Pattern: "### ### ###"},
	{Code: "BG", Name: "Bułgaria", DialCode: "+359", Pattern: "### ### ###"},
	{Code: "HR", Name: "Chorwacja", DialCode: "+385", Pattern: "## ### ####"},
	{Code: "SI", Name: "Słowenia", DialCode: "+386", Pattern: "## ### ###"},
}

// FindCountry returns the country with the given code, falling back to the
// default (Poland) when the code is unknown or empty.
func FindCountry(code string) Country {
	for _, c := range Countries {
		if c.Code == code {
			return c
		}
	}
	return Countries[0]
}

// InfraOptions lists the selectable transmission infrastructure types.
var InfraOptions = []Option{
	{ID: "slup", Label: "Słup elektroenergetyczny", Desc: "Linie niskiego, średniego lub wysokiego napięcia"},
	{ID: "gaz", Label: "Gazociąg", Desc: "Instalacje przesyłowe gazu"},
	{ID: "ropa", Label: "Ropociąg", Desc: "Rurociągi paliwowe"},
	{ID: "inne", Label: "Inne urządzenie przesyłowe", Desc: "Stacje, kolektory, inne instalacje"},
}

// SlupLevels lists voltage levels for power line poles.
var SlupLevels = []Option{
	{ID: "high", Label: "Wysokie napięcie", Desc: "110–750 kV"},
	{ID: "medium", Label: "Średnie napięcie", Desc: "15–30 kV"},
	{ID: "low", Label: "Niskie napięcie", Desc: "Do 1 kV"},
}

// GazLevels lists pressure levels for gas pipelines.
var GazLevels = []Option{
	{ID: "high-pressure", Label: "Wysokie ciśnienie", Desc: "Powyżej 16 bar"},
	{ID: "medium-pressure", Label: "Średnie ciśnienie", Desc: "0.5–16 bar"},
	{ID: "low-pressure", Label: "Niskie ciśnienie", Desc: "Do domu"},
}

// StatusOptions lists the installation status choices.
var StatusOptions = []Option{
	{ID: "existing", Label: "Istniejące"},
	{ID: "planned", Label: "Planowane / w trakcie"},
	{ID: "modernization", Label: "Modernizacja"},
}

// KWOptions lists the land register (księga wieczysta) ownership choices.
var KWOptions = []Option{
	{ID: "yes", Label: "Tak"},
	{ID: "no", Label: "Nie"},
}
