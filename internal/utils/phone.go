package utils

import (
	"fmt"

	"github.com/nyaruka/phonenumbers"
)

// NormalizePhone parses a phone number (defaulting to Brazil when no
// country code is present) and returns it in E.164 form
func NormalizePhone(raw string) (string, error) {
	parsed, err := phonenumbers.Parse(raw, "BR")
	if err != nil {
		return "", fmt.Errorf("failed to parse phone number: %w", err)
	}
	if !phonenumbers.IsValidNumber(parsed) {
		return "", fmt.Errorf("invalid phone number: %s", raw)
	}
	return phonenumbers.Format(parsed, phonenumbers.E164), nil
}
