package application

import (
	"fmt"
	"strings"
	"unicode"
)

// MinPasswordLength is the shortest password accepted at registration
const MinPasswordLength = 6

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// ValidateUsername checks that a username is present and contains no whitespace
// or control characters
func ValidateUsername(username string) error {
	if err := ValidateRequired("username", username); err != nil {
		return err
	}
	for _, r := range username {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return &ValidationError{
				Field:   "username",
				Message: "username must not contain spaces",
			}
		}
	}
	return nil
}

// ValidatePassword checks the minimum password length
func ValidatePassword(password string) error {
	if err := ValidateRequired("password", password); err != nil {
		return err
	}
	if len(password) < MinPasswordLength {
		return &ValidationError{
			Field:   "password",
			Message: fmt.Sprintf("password must be at least %d characters", MinPasswordLength),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "userID" -> "user ID")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"userID":    "user ID",
		"sessionID": "session ID",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return fieldName
}
