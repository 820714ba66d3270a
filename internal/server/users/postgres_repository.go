package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/ledgerkeep/internal/common"
	"github.com/dmitrijs2005/ledgerkeep/internal/dbx"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) (*PostgresRepository, error) {
	return &PostgresRepository{db: db}, nil
}

// columnByField maps API field names to table columns. Only fields listed
// here can ever reach an UPDATE statement.
var columnByField = map[string]string{
	"firstName": "first_name",
	"lastName":  "last_name",
	"email":     "email",
	"password":  "password_hash",
}

// Create inserts a user after checking the email is not taken. Check and
// insert run in one transaction; a unique index on email backs this up
// under concurrency.
func (r *PostgresRepository) Create(ctx context.Context, user *User) (*User, error) {

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var existing int64
		err := tx.QueryRowContext(ctx,
			`SELECT user_id FROM users WHERE email = $1`, user.Email).Scan(&existing)
		if err == nil {
			return common.ErrorEmailAlreadyRegistered
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("error performing sql request: %v", err)
		}

		query :=
			`INSERT INTO users (first_name, last_name, email, password_hash)
			 VALUES ($1, $2, $3, $4)
			 RETURNING user_id
			 `

		err = tx.QueryRowContext(ctx, query,
			user.FirstName, user.LastName, user.Email, user.PasswordHash).Scan(&user.ID)
		if err != nil {
			if isUniqueViolation(err) {
				return common.ErrorEmailAlreadyRegistered
			}
			return fmt.Errorf("error performing sql request: %v", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// isUniqueViolation matches the pgx error text for SQLSTATE 23505. The
// pre-check above makes this the rare path (a concurrent insert).
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*User, error) {
	query :=
		`SELECT user_id, first_name, last_name, email, password_hash, created_at FROM users
		 WHERE user_id = $1
		 `

	user := &User{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.PasswordHash, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return user, nil
}

// GetByEmailAndID is the credential-check lookup: both predicates in one
// query, never email alone.
func (r *PostgresRepository) GetByEmailAndID(ctx context.Context, email string, id int64) (*User, error) {
	query :=
		`SELECT user_id, first_name, last_name, email, password_hash, created_at FROM users
		 WHERE email = $1 AND user_id = $2
		 `

	user := &User{}
	err := r.db.QueryRowContext(ctx, query, email, id).
		Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.PasswordHash, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return user, nil
}

// Update applies the given field values to one user inside a transaction
// and reports the number of affected rows. Unknown fields are rejected
// before any SQL is built.
func (r *PostgresRepository) Update(ctx context.Context, id int64, fields map[string]string) (int64, error) {

	assignments := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields)+1)

	// Iterate in canonical field order so the generated SQL is stable.
	for _, f := range Fields {
		v, ok := fields[f]
		if !ok {
			continue
		}
		col := columnByField[f]
		args = append(args, v)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	for f := range fields {
		if _, ok := columnByField[f]; !ok {
			return 0, fmt.Errorf("unknown field: %s", f)
		}
	}
	if len(assignments) == 0 {
		return 0, nil
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE users SET %s WHERE user_id = $%d`,
		strings.Join(assignments, ", "), len(args))

	var affected int64
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("error performing sql request: %v", err)
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, err
	}

	return affected, nil
}
