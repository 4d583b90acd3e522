package forms

import "strings"

// Optional maps a blank form value to nil so optional columns store NULL.
func Optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// Value is the inverse of Optional.
func Value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
