// Package auth handles the two credential shapes the API accepts: Basic
// credentials for self-service operations and a fixed bearer token for
// privileged ones.
package auth

import (
	"encoding/base64"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/ledgerkeep/internal/httperr"
)

// Credential is a decoded username/password pair. The password is plaintext
// and must never be persisted or logged.
type Credential struct {
	Username string
	Password string
}

const basicPrefix = "Basic "

// ParseBasic extracts a Credential from an Authorization header value.
//
// The header must carry the Basic scheme followed by a base64 blob that
// decodes to UTF-8 "username:password". The password may itself contain
// colons, so only the first colon delimits. All failures are 400-class
// httperr values.
func ParseBasic(header string) (*Credential, error) {
	if !strings.HasPrefix(header, basicPrefix) {
		return nil, httperr.BadRequest("Basic authorization required")
	}

	blob := header[len(basicPrefix):]
	decoded, err := base64.StdEncoding.DecodeString(blob)
	if err != nil || !utf8.Valid(decoded) {
		// The raw header goes back for diagnostics; it holds no secret that
		// was not already on the wire.
		return nil, httperr.Newf(400, "Invalid authorization header format: %s", header)
	}

	username, password, found := strings.Cut(string(decoded), ":")
	if !found {
		return nil, httperr.Newf(400, "Invalid authorization header format: %s", header)
	}

	return &Credential{Username: username, Password: password}, nil
}
