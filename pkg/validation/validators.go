// Package validation holds the live field validators backing per-keystroke
// feedback in checkout clients. They are deliberately independent of the
// step gate in internal/wizard: a field can carry errors here while the
// coarser presence check still lets the user advance.
package validation

import (
	"regexp"
	"strings"
	"time"
	"unicode"
)

// Result is the single validation-result shape used across the platform,
// for both per-field feedback and derived step-level checks.
type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

func ok() Result {
	return Result{Valid: true}
}

func fail(errs ...string) Result {
	return Result{Valid: false, Errors: errs}
}

var (
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern    = regexp.MustCompile(`^\+?[0-9()\-\s.]{7,20}$`)
	namePattern     = regexp.MustCompile(`^[\p{L}][\p{L}'\- ]*$`)
	passportPattern = regexp.MustCompile(`^[A-Za-z0-9]{6,9}$`)
	cvvPattern      = regexp.MustCompile(`^[0-9]{3,4}$`)
)

// ValidateEmail checks basic address shape.
func ValidateEmail(value string) Result {
	value = strings.TrimSpace(value)
	if value == "" {
		return fail("email is required")
	}
	if !emailPattern.MatchString(value) {
		return fail("email must be a valid address")
	}
	return ok()
}

// ValidatePhone accepts digits with common separators, 7 to 20 characters.
func ValidatePhone(value string) Result {
	value = strings.TrimSpace(value)
	if value == "" {
		return fail("phone is required")
	}
	if !phonePattern.MatchString(value) {
		return fail("phone must contain 7-20 digits and may include +, -, spaces or parentheses")
	}
	digits := 0
	for _, r := range value {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	if digits < 7 {
		return fail("phone must contain at least 7 digits")
	}
	return ok()
}

// ValidateName accepts letters, apostrophes, hyphens and spaces.
func ValidateName(value string) Result {
	value = strings.TrimSpace(value)
	if value == "" {
		return fail("name is required")
	}
	if len(value) < 2 {
		return fail("name must be at least 2 characters")
	}
	if !namePattern.MatchString(value) {
		return fail("name may only contain letters, apostrophes, hyphens and spaces")
	}
	return ok()
}

// ValidateCreditCard strips spaces, then requires 13-19 digits passing Luhn.
func ValidateCreditCard(value string) Result {
	digits := strings.ReplaceAll(strings.TrimSpace(value), " ", "")
	if digits == "" {
		return fail("card number is required")
	}
	for _, r := range digits {
		if !unicode.IsDigit(r) {
			return fail("card number may only contain digits")
		}
	}
	if len(digits) < 13 || len(digits) > 19 {
		return fail("card number must be 13-19 digits")
	}
	if !luhnValid(digits) {
		return fail("card number failed checksum")
	}
	return ok()
}

// ValidateExpiryDate requires MM/YY with a real month that is not in the past.
func ValidateExpiryDate(value string) Result {
	return validateExpiryAt(value, time.Now())
}

func validateExpiryAt(value string, now time.Time) Result {
	value = strings.TrimSpace(value)
	if value == "" {
		return fail("expiry date is required")
	}
	parsed, err := time.Parse("01/06", value)
	if err != nil {
		return fail("expiry date must be in MM/YY format")
	}
	// Card is valid through the last day of its expiry month.
	endOfMonth := parsed.AddDate(0, 1, 0)
	if !endOfMonth.After(now) {
		return fail("card has expired")
	}
	return ok()
}

// ValidateCVV requires 3 or 4 digits.
func ValidateCVV(value string) Result {
	value = strings.TrimSpace(value)
	if value == "" {
		return fail("cvv is required")
	}
	if !cvvPattern.MatchString(value) {
		return fail("cvv must be 3 or 4 digits")
	}
	return ok()
}

// ValidatePassportNumber requires 6-9 alphanumeric characters.
func ValidatePassportNumber(value string) Result {
	value = strings.TrimSpace(value)
	if value == "" {
		return fail("passport number is required")
	}
	if !passportPattern.MatchString(value) {
		return fail("passport number must be 6-9 letters or digits")
	}
	return ok()
}

// ValidateDate requires an ISO date (YYYY-MM-DD).
func ValidateDate(value string) Result {
	value = strings.TrimSpace(value)
	if value == "" {
		return fail("date is required")
	}
	if _, err := time.Parse("2006-01-02", value); err != nil {
		return fail("date must be in YYYY-MM-DD format")
	}
	return ok()
}

func luhnValid(digits string) bool {
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}
