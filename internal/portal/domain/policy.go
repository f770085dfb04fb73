package domain

import (
	"fmt"
	"strings"
	"unicode"
)

// PasswordPolicy is the single strength rule applied to every password the
// portal accepts.
type PasswordPolicy struct {
	MinLength      int
	RequireUpper   bool
	RequireLower   bool
	RequireDigit   bool
	RequireSpecial bool
}

// DefaultPasswordPolicy is 12 characters with all four classes.
func DefaultPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{
		MinLength:      12,
		RequireUpper:   true,
		RequireLower:   true,
		RequireDigit:   true,
		RequireSpecial: true,
	}
}

// Unmet lists the rules pw does not satisfy, in a stable order. Empty means
// the password is acceptable.
func (p PasswordPolicy) Unmet(pw string) []string {
	var upper, lower, digit, special bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r) || unicode.IsSpace(r):
			special = true
		}
	}

	var unmet []string
	if n := len([]rune(pw)); n < p.MinLength {
		unmet = append(unmet, fmt.Sprintf("at least %d characters", p.MinLength))
	}
	if p.RequireUpper && !upper {
		unmet = append(unmet, "an uppercase letter")
	}
	if p.RequireLower && !lower {
		unmet = append(unmet, "a lowercase letter")
	}
	if p.RequireDigit && !digit {
		unmet = append(unmet, "a digit")
	}
	if p.RequireSpecial && !special {
		unmet = append(unmet, "a special character")
	}
	return unmet
}

// Describe renders the policy for error messages and the setup form.
func (p PasswordPolicy) Describe() string {
	parts := []string{fmt.Sprintf("at least %d characters", p.MinLength)}
	if p.RequireUpper {
		parts = append(parts, "an uppercase letter")
	}
	if p.RequireLower {
		parts = append(parts, "a lowercase letter")
	}
	if p.RequireDigit {
		parts = append(parts, "a digit")
	}
	if p.RequireSpecial {
		parts = append(parts, "a special character")
	}
	return strings.Join(parts, ", ")
}
