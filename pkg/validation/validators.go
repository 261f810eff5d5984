package validation

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

// Regex patterns
var (
	// E164-like phone: optional +, digits 7-15 length
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

	// 18-char resident identity number: 17 digits + digit or X checksum char
	idNumberRegex = regexp.MustCompile(`^[0-9]{17}[0-9Xx]$`)
)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("date_str", DateStr)
	_ = v.RegisterValidation("valid_phone", ValidPhone)
	_ = v.RegisterValidation("id_number", IDNumber)
}

// DateStr validates a YYYY-MM-DD date string
func DateStr(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true // Optional, use required if needed
	}
	_, err := time.Parse("2006-01-02", val)
	return err == nil
}

// ValidPhone validates a phone number structure
func ValidPhone(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return phoneRegex.MatchString(val)
}

// IDNumber validates the shape of an identity document number.
// Checksum verification is left to the issuing side; the engine only needs
// the embedded birth date to be extractable.
func IDNumber(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return idNumberRegex.MatchString(val)
}
