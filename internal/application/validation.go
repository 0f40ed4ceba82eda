package application

import (
	"fmt"
	"strings"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		displayName := formatFieldName(fieldName)
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", displayName),
		}
	}
	return nil
}

// ValidatePaths checks that at least one path is given and none is blank
func ValidatePaths(fieldName string, paths []string) error {
	displayName := formatFieldName(fieldName)
	if len(paths) == 0 {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("at least one of %s is required", displayName),
		}
	}
	for i, p := range paths {
		if strings.TrimSpace(p) == "" {
			return &ValidationError{
				Field:   fieldName,
				Message: fmt.Sprintf("%s[%d] is empty", displayName, i),
			}
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "groupID" -> "group ID")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"groupID": "group ID",
		"paths":   "manifest paths",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}

	return fieldName
}
