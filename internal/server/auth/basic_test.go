package auth

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/ledgerkeep/internal/httperr"
)

func basicHeader(creds string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(creds))
}

func TestParseBasic_Valid(t *testing.T) {
	cred, err := ParseBasic(basicHeader("x@y.com:secret"))
	require.NoError(t, err)
	assert.Equal(t, "x@y.com", cred.Username)
	assert.Equal(t, "secret", cred.Password)
}

// Passwords may contain colons; only the first one delimits.
func TestParseBasic_ColonInPassword(t *testing.T) {
	cred, err := ParseBasic(basicHeader("x@y.com:se:cr:et"))
	require.NoError(t, err)
	assert.Equal(t, "x@y.com", cred.Username)
	assert.Equal(t, "se:cr:et", cred.Password)
}

func TestParseBasic_SchemeRequired(t *testing.T) {
	for _, header := range []string{"", "Bearer abc", "basic abc"} {
		_, err := ParseBasic(header)
		require.Error(t, err)
		he, ok := httperr.From(err)
		require.True(t, ok)
		assert.Equal(t, 400, he.Code)
		assert.Equal(t, "Basic authorization required", he.Message)
	}
}

func TestParseBasic_MalformedBlob(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"not base64", "Basic !!!not-base64!!!"},
		{"invalid utf8", "Basic " + base64.StdEncoding.EncodeToString([]byte{0xff, 0xfe, ':', 'x'})},
		{"no colon", basicHeader("justausername")},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseBasic(tc.header)
			require.Error(t, err)
			he, ok := httperr.From(err)
			require.True(t, ok)
			assert.Equal(t, 400, he.Code)
			// the raw header is echoed for diagnostics
			assert.Contains(t, he.Message, "Invalid authorization header format")
			assert.Contains(t, he.Message, tc.header)
		})
	}
}
