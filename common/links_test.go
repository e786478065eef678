package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkBuilder(t *testing.T) {
	type inputOutput struct {
		name     string
		base     string
		segments []string
		query    [][2]string
		output   string
	}

	tests := []inputOutput{
		{
			name:     "path and query",
			base:     "https://contoso.com",
			segments: []string{"MailLink", "Activate"},
			query:    [][2]string{{"subscriptionId", "42"}, {"planId", "gold"}},
			output:   "https://contoso.com/MailLink/Activate?planId=gold&subscriptionId=42",
		},
		{
			name:     "base with path and slashes",
			base:     "https://contoso.com/portal/",
			segments: []string{"/subscriptions/", "operations"},
			output:   "https://contoso.com/portal/subscriptions/operations",
		},
		{
			name:     "empty query values are skipped",
			base:     "https://contoso.com",
			segments: []string{"maillink", "update"},
			query:    [][2]string{{"planId", ""}, {"subscriptionId", "1"}},
			output:   "https://contoso.com/maillink/update?subscriptionId=1",
		},
		{
			name:   "base only",
			base:   "https://contoso.com",
			output: "https://contoso.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewLinkBuilder(tt.base)
			require.NoError(t, err)

			b.AddPath(tt.segments...)

			for _, q := range tt.query {
				b.AddQuery(q[0], q[1])
			}

			assert.Equal(t, tt.output, b.String())
		})
	}
}
