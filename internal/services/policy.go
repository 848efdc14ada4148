package services

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrPasswordPolicy is matched by every PolicyError.
var ErrPasswordPolicy = errors.New("password does not meet policy")

// PolicyError lists the rules a password violates.
type PolicyError struct {
	Violations []string
}

func (e *PolicyError) Error() string {
	return fmt.Sprintf("%s: %s", ErrPasswordPolicy.Error(), strings.Join(e.Violations, "; "))
}

func (e *PolicyError) Is(target error) bool { return target == ErrPasswordPolicy }

// PasswordPolicy holds password complexity rules.
type PasswordPolicy struct {
	MinLength               int
	RequireDigit            bool
	RequireLowercase        bool
	RequireUppercase        bool
	RequireNonLetterOrDigit bool
}

// DefaultPasswordPolicy returns the complexity rules applied to new passwords.
func DefaultPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{
		MinLength:               6,
		RequireDigit:            true,
		RequireLowercase:        true,
		RequireUppercase:        true,
		RequireNonLetterOrDigit: true,
	}
}

// Validate returns a *PolicyError when password breaks any rule.
func (p PasswordPolicy) Validate(password string) error {
	var hasDigit, hasLower, hasUpper, hasOther bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case !unicode.IsLetter(r):
			hasOther = true
		}
	}

	var violations []string
	if len([]rune(password)) < p.MinLength {
		violations = append(violations, fmt.Sprintf("must be at least %d characters", p.MinLength))
	}
	if p.RequireDigit && !hasDigit {
		violations = append(violations, "must contain a digit")
	}
	if p.RequireLowercase && !hasLower {
		violations = append(violations, "must contain a lowercase letter")
	}
	if p.RequireUppercase && !hasUpper {
		violations = append(violations, "must contain an uppercase letter")
	}
	if p.RequireNonLetterOrDigit && !hasOther {
		violations = append(violations, "must contain a character that is not a letter or digit")
	}

	if len(violations) > 0 {
		return &PolicyError{Violations: violations}
	}
	return nil
}
