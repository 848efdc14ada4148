package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasswordPolicy_Validate(t *testing.T) {
	policy := DefaultPasswordPolicy()

	tests := []struct {
		name           string
		password       string
		wantViolations int
	}{
		{name: "valid", password: "Aa1!aaaa"},
		{name: "valid unicode", password: "Ÿy1#ÿÿ"},
		{name: "too short", password: "Aa1!", wantViolations: 1},
		{name: "no digit", password: "Aa!aaaa", wantViolations: 1},
		{name: "no upper", password: "aa1!aaaa", wantViolations: 1},
		{name: "no lower", password: "AA1!AAAA", wantViolations: 1},
		{name: "no symbol", password: "Aa1aaaaa", wantViolations: 1},
		{name: "empty", password: "", wantViolations: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := policy.Validate(tt.password)
			if tt.wantViolations == 0 {
				assert.NoError(t, err)
				return
			}

			assert.ErrorIs(t, err, ErrPasswordPolicy)
			policyErr, ok := err.(*PolicyError)
			if assert.True(t, ok) {
				assert.Len(t, policyErr.Violations, tt.wantViolations)
			}
		})
	}

	assert.NoError(t, PasswordPolicy{MinLength: 1}.Validate("x"))
}
