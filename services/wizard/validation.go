package wizard

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"bookingwizard/models"
)

const (
	minNameLength          = 2
	minContactDetailLength = 5
	minAddressLength       = 5
)

// Field names reported in a step 1 ValidationResult.
const (
	FieldName          = "name"
	FieldContactDetail = "contactDetail"
)

const (
	msgName  = "Please enter your full name (at least 2 characters)."
	msgEmail = "Please enter a valid email address, e.g. name@example.com."
	msgPhone = "Please enter a valid UK phone number, e.g. 07123 456789."
	msgText  = "Please enter a valid UK mobile number we can text, e.g. 07123 456789."
)

var (
	emailPattern = regexp.MustCompile("^[A-Za-z0-9.!#$%&'*+/=?^_`{|}~-]+@" +
		`[A-Za-z0-9](?:[A-Za-z0-9-]{0,61}[A-Za-z0-9])?` +
		`(?:\.[A-Za-z0-9](?:[A-Za-z0-9-]{0,61}[A-Za-z0-9])?)*$`)
	ukNumberPattern = regexp.MustCompile(`^0[1237]\d+$`)
	nonDigits       = regexp.MustCompile(`\D`)
)

// ValidationResult is the outcome of the strict contact step check. A nil
// Error means the step is valid.
type ValidationResult struct {
	Error *models.FieldError
}

// Valid reports whether no field failed.
func (r ValidationResult) Valid() bool {
	return r.Error == nil
}

func invalid(field, message string) ValidationResult {
	return ValidationResult{Error: &models.FieldError{Field: field, Message: message}}
}

func trimmedLen(s string) int {
	return utf8.RuneCountInString(strings.TrimSpace(s))
}

// CanAdvance is the cheap per-step gate that drives the Continue affordance.
func CanAdvance(step models.StepID, data models.FormData) bool {
	switch step {
	case models.StepAboutYou:
		return trimmedLen(data.Name) >= minNameLength &&
			trimmedLen(data.ContactDetail) >= minContactDetailLength
	case models.StepLocation:
		return trimmedLen(data.Address) >= minAddressLength
	case models.StepService:
		return trimmedLen(data.Service) > 0
	case models.StepSensory, models.StepReview:
		return true
	default:
		return false
	}
}

// ValidateStep1Strict runs the field-level checks applied when leaving the
// contact step.
func ValidateStep1Strict(data models.FormData) ValidationResult {
	if trimmedLen(data.Name) < minNameLength {
		return invalid(FieldName, msgName)
	}

	detail := strings.TrimSpace(data.ContactDetail)
	switch data.ContactMethod {
	case models.ContactEmail:
		if !IsValidEmail(detail) {
			return invalid(FieldContactDetail, msgEmail)
		}
	case models.ContactText:
		if _, ok := NormalizeUKPhone(detail); !ok {
			return invalid(FieldContactDetail, msgText)
		}
	case models.ContactPhone:
		if _, ok := NormalizeUKPhone(detail); !ok {
			return invalid(FieldContactDetail, msgPhone)
		}
	default:
		return invalid(FieldContactDetail, msgEmail)
	}
	return ValidationResult{}
}

// IsValidEmail applies the practical RFC 5322 address pattern.
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) < minContactDetailLength {
		return false
	}
	return emailPattern.MatchString(s)
}

// NormalizeUKPhone reduces s to its 10 or 11 digit national form. International
// numbers written as 44 followed by ten digits become 0 followed by those
// digits. ok is false when the result is not a UK geographic or mobile number.
func NormalizeUKPhone(s string) (string, bool) {
	digits := nonDigits.ReplaceAllString(s, "")
	if strings.HasPrefix(digits, "44") && len(digits) == 12 {
		digits = "0" + digits[2:]
	}
	if len(digits) < 10 || len(digits) > 11 {
		return "", false
	}
	if !ukNumberPattern.MatchString(digits) {
		return "", false
	}
	return digits, true
}
