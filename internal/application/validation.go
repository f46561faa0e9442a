package application

import (
	"fmt"
	"strings"

	"collectio/internal/domain"
)

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

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "collectionID" -> "collection ID")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"id":           "ID",
		"collectionID": "collection ID",
		"noteID":       "note ID",
		"name":         "name",
		"location":     "save location",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return fieldName
}

// ValidateMutable rejects the default collection for the named operation
func ValidateMutable(id, operation string) error {
	if domain.IsDefaultID(id) {
		return &ProtectedCollectionError{ID: id, Operation: operation}
	}
	return nil
}

// ValidatePatch checks the fields a patch sets
func ValidatePatch(p domain.Patch) error {
	if p.Name != nil {
		return ValidateRequired("name", *p.Name)
	}
	return nil
}
