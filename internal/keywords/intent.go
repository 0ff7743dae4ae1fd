package keywords

import (
	"strings"

	"seodash/internal/models"
)

// Intent names one of the six search intent flags.
type Intent string

// Intent flags. IntentNone disables intent filtering.
const (
	IntentNone          Intent = "none"
	IntentInformational Intent = "informational"
	IntentCommercial    Intent = "commercial"
	IntentTransactional Intent = "transactional"
	IntentNavigational  Intent = "navigational"
	IntentBranded       Intent = "branded"
	IntentLocal         Intent = "local"
)

// Intents lists the six flags in display order.
var Intents = []Intent{
	IntentInformational,
	IntentCommercial,
	IntentTransactional,
	IntentNavigational,
	IntentBranded,
	IntentLocal,
}

// ParseIntent converts a request value to an Intent. Matching ignores case
// and surrounding space; the empty string maps to IntentNone.
func ParseIntent(s string) (Intent, error) {
	v := Intent(strings.ToLower(strings.TrimSpace(s)))
	if v == "" || v == IntentNone {
		return IntentNone, nil
	}
	for _, in := range Intents {
		if v == in {
			return in, nil
		}
	}
	return "", paramErr("intent", s, ErrUnsupportedIntent)
}

// Matches reports whether the record carries the intent flag.
// IntentNone matches every record.
func (i Intent) Matches(r *models.KeywordRecord) bool {
	switch i {
	case IntentNone, "":
		return true
	case IntentInformational:
		return r.Informational
	case IntentCommercial:
		return r.Commercial
	case IntentTransactional:
		return r.Transactional
	case IntentNavigational:
		return r.Navigational
	case IntentBranded:
		return r.Branded
	case IntentLocal:
		return r.Local
	}
	return false
}
