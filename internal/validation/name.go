package validation

import (
	"fmt"
	"strings"
)

// NameValidator validates entry-name suffixes destined for CSS
// identifiers (class names and custom properties).
type NameValidator struct {
	// MaxLength is the maximum allowed name length
	MaxLength int
}

// NewNameValidator creates a validator with sensible defaults
func NewNameValidator() *NameValidator {
	return &NameValidator{MaxLength: 64}
}

// ValidateAndNormalize trims the input and ensures it is safe to embed
// in a CSS identifier. The empty-name and duplicate-name policies live
// with the entry table; this only covers character-level safety.
func (v *NameValidator) ValidateAndNormalize(input string) (string, error) {
	name := strings.TrimSpace(input)
	if name == "" {
		return "", fmt.Errorf("name cannot be empty")
	}
	if len(name) > v.MaxLength {
		return "", fmt.Errorf("name too long (max %d characters)", v.MaxLength)
	}

	for _, r := range name {
		if !isCSSIdentRune(r) {
			return "", fmt.Errorf("name contains invalid character %q (allowed: letters, digits, '-', '_')", r)
		}
	}

	// A leading digit or a hyphen followed by a digit makes the
	// composed identifier invalid CSS.
	if name[0] >= '0' && name[0] <= '9' {
		return "", fmt.Errorf("name cannot start with a digit")
	}
	if name[0] == '-' && len(name) > 1 && name[1] >= '0' && name[1] <= '9' {
		return "", fmt.Errorf("name cannot start with a hyphen followed by a digit")
	}

	return name, nil
}

func isCSSIdentRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '-' || r == '_':
		return true
	}
	return false
}
