package auth

import (
	"net/http"

	"github.com/dmitrijs2005/ledgerkeep/internal/cryptox"
)

// Decision is the outcome of an authorization check.
type Decision struct {
	Allowed bool
	// Subject identifies who was authorized. Empty for the shared admin
	// token; a real identity system would fill it in.
	Subject string
}

// Authorizer decides whether a request may perform privileged operations.
// Route code depends only on this interface so a token-issuing identity
// system can replace the shared-secret check without touching handlers.
type Authorizer interface {
	Authorize(r *http.Request) Decision
}

// TokenAuthorizer authorizes requests carrying a fixed bearer token.
// It stands in for a real session layer.
type TokenAuthorizer struct {
	expected string
}

func NewTokenAuthorizer(token string) *TokenAuthorizer {
	return &TokenAuthorizer{expected: "Bearer " + token}
}

func (a *TokenAuthorizer) Authorize(r *http.Request) Decision {
	header := r.Header.Get("Authorization")
	if cryptox.EqualTokens(header, a.expected) {
		return Decision{Allowed: true, Subject: "admin"}
	}
	return Decision{}
}
