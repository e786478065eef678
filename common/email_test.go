package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmailDomain(t *testing.T) {
	domain, err := EmailDomain("Admin@Contoso.COM")
	assert.NoError(t, err)
	assert.Equal(t, "contoso.com", domain)

	_, err = EmailDomain("not-an-email")
	assert.ErrorIs(t, err, ErrInvalidEmail)
}

func TestSameEmailDomain(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"admin@contoso.com", "ops@contoso.com", true},
		{"admin@contoso.com", "ops@CONTOSO.com", true},
		{"admin@contoso.com", "ops@fabrikam.com", false},
		{"admin@contoso.com", "contoso.com", false},
		{"", "ops@contoso.com", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SameEmailDomain(tt.a, tt.b), "%s vs %s", tt.a, tt.b)
	}
}
