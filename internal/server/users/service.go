package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/ledgerkeep/internal/common"
	"github.com/dmitrijs2005/ledgerkeep/internal/cryptox"
	"github.com/dmitrijs2005/ledgerkeep/internal/server/config"
)

type Service struct {
	repo       Repository
	bcryptCost int
}

func NewService(repo Repository, cfg *config.Config) *Service {
	return &Service{
		repo:       repo,
		bcryptCost: cfg.BcryptCost,
	}
}

// Register creates a user from a validated record (all fields present and
// trimmed). The email is canonicalized to lowercase and the plaintext
// password is replaced with its hash before anything touches storage.
func (s *Service) Register(ctx context.Context, rec map[string]string) (*User, error) {

	hash, err := cryptox.HashPassword(rec["password"], s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %v", err)
	}

	user := &User{
		FirstName:    rec["firstName"],
		LastName:     rec["lastName"],
		Email:        strings.ToLower(rec["email"]),
		PasswordHash: hash,
	}

	user, err = s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorEmailAlreadyRegistered) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %v", err)
	}

	return user, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// VerifyCredentials checks a Basic credential against the account at id.
// The lookup uses email and id together in one query, so an unknown email,
// a known email under a different id, and a wrong password all collapse
// into the same common.ErrorInvalidCredentials.
func (s *Service) VerifyCredentials(ctx context.Context, username string, id int64, password string) (*User, error) {

	user, err := s.repo.GetByEmailAndID(ctx, strings.ToLower(username), id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorInvalidCredentials
		}
		return nil, common.ErrorInternal
	}

	if !cryptox.ComparePassword(password, user.PasswordHash) {
		return nil, common.ErrorInvalidCredentials
	}

	return user, nil
}

// Update applies a validated partial record to the user at id and returns
// the affected-row count. A supplied password is re-hashed; a supplied
// email is canonicalized the same way as on registration.
func (s *Service) Update(ctx context.Context, id int64, rec map[string]string) (int64, error) {

	fields := make(map[string]string, len(rec))
	for k, v := range rec {
		fields[k] = v
	}

	if plain, ok := fields["password"]; ok {
		hash, err := cryptox.HashPassword(plain, s.bcryptCost)
		if err != nil {
			return 0, fmt.Errorf("error hashing password: %v", err)
		}
		fields["password"] = hash // forget the plain text
	}
	if email, ok := fields["email"]; ok {
		fields["email"] = strings.ToLower(email)
	}

	return s.repo.Update(ctx, id, fields)
}
