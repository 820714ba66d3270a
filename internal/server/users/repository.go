package users

import (
	"context"
)

// Repository is the storage boundary for user records.
//
// Create must perform its duplicate-email check and the insert atomically
// (one transaction) and return common.ErrorEmailAlreadyRegistered on a
// duplicate. GetByEmailAndID looks up by both values in a single query so
// that callers cannot distinguish "no such user" from "user exists under a
// different id".
type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmailAndID(ctx context.Context, email string, id int64) (*User, error)
	Update(ctx context.Context, id int64, fields map[string]string) (int64, error)
}
