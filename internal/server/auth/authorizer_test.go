package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenAuthorizer(t *testing.T) {
	a := NewTokenAuthorizer("has-the-privilege")

	tests := []struct {
		name    string
		header  string
		allowed bool
	}{
		{"correct token", "Bearer has-the-privilege", true},
		{"wrong token", "Bearer nope", false},
		{"wrong scheme", "Basic has-the-privilege", false},
		{"missing header", "", false},
		{"token without scheme", "has-the-privilege", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/users", nil)
			if tc.header != "" {
				r.Header.Set("Authorization", tc.header)
			}
			d := a.Authorize(r)
			assert.Equal(t, tc.allowed, d.Allowed)
			if tc.allowed {
				assert.Equal(t, "admin", d.Subject)
			}
		})
	}
}
