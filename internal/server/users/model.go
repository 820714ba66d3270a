package users

import (
	"time"

	"github.com/dmitrijs2005/ledgerkeep/internal/fieldset"
)

// User is a stored account record. ID and Email are unique; Email is kept
// lowercase. PasswordHash is opaque and only ever checked via cryptox.
type User struct {
	ID           int64
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Fields is the canonical field set of a user record as accepted over the
// API. The order is also the reporting order for missing fields.
var Fields = fieldset.Set{"firstName", "lastName", "email", "password"}
