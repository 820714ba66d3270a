package transactions

import (
	"context"
	"database/sql"
	"fmt"
	"math/big"
	"strings"

	"github.com/dmitrijs2005/ledgerkeep/internal/common"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) (*PostgresRepository, error) {
	return &PostgresRepository{db: db}, nil
}

// parseBigInt converts a NUMERIC scanned as text into a big.Int. The value
// comes from our own aggregate, so a parse failure is a server bug, not
// user input.
func parseBigInt(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("unparseable numeric from store: %q", s)
	}
	return v, nil
}

// SumByUser totals amount_in_cents for one user. The aggregate always
// yields exactly one row; a NULL sum means the user has no transactions
// and maps to common.ErrorNotFound.
func (r *PostgresRepository) SumByUser(ctx context.Context, userID int64) (*big.Int, error) {
	query :=
		`SELECT SUM(amount_in_cents)::text FROM transactions
		 WHERE user_id = $1
		 `

	var sum sql.NullString
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&sum)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}
	if !sum.Valid {
		return nil, common.ErrorNotFound
	}

	return parseBigInt(sum.String)
}

// SumByMerchant returns per-merchant totals for one user, ordered by
// merchant id.
func (r *PostgresRepository) SumByMerchant(ctx context.Context, userID int64) ([]MerchantBalance, error) {
	query :=
		`SELECT merchant_id, SUM(amount_in_cents)::text FROM transactions
		 WHERE user_id = $1
		 GROUP BY merchant_id
		 ORDER BY merchant_id
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}
	defer rows.Close()

	result := []MerchantBalance{}
	for rows.Next() {
		var merchantID int64
		var sum string
		if err := rows.Scan(&merchantID, &sum); err != nil {
			return nil, fmt.Errorf("error scanning row: %v", err)
		}
		balance, err := parseBigInt(sum)
		if err != nil {
			return nil, err
		}
		result = append(result, MerchantBalance{MerchantID: merchantID, Balance: balance})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %v", err)
	}

	return result, nil
}

// List fetches a user's transactions with optional merchant/time filters,
// strictly ordered by timestamp. With a limit set it fetches limit+1 rows;
// the caller turns the overshoot into a hasMore flag.
func (r *PostgresRepository) List(ctx context.Context, userID int64, f Filter) ([]Transaction, error) {

	conditions := []string{"user_id = $1"}
	args := []any{userID}

	if f.MerchantID != nil {
		args = append(args, *f.MerchantID)
		conditions = append(conditions, fmt.Sprintf("merchant_id = $%d", len(args)))
	}
	if f.Before != nil {
		args = append(args, *f.Before)
		conditions = append(conditions, fmt.Sprintf("ts < $%d", len(args)))
	}
	if f.After != nil {
		args = append(args, *f.After)
		conditions = append(conditions, fmt.Sprintf("ts >= $%d", len(args)))
	}

	query := fmt.Sprintf(
		`SELECT id, user_id, merchant_id, amount_in_cents::text, ts FROM transactions
		 WHERE %s
		 ORDER BY ts`, strings.Join(conditions, " AND "))

	if f.Limit != nil {
		args = append(args, *f.Limit+1) // one extra row to detect hasMore
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}
	defer rows.Close()

	result := []Transaction{}
	for rows.Next() {
		var t Transaction
		var amount string
		if err := rows.Scan(&t.ID, &t.UserID, &t.MerchantID, &amount, &t.Timestamp); err != nil {
			return nil, fmt.Errorf("error scanning row: %v", err)
		}
		t.AmountInCents, err = parseBigInt(amount)
		if err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %v", err)
	}

	return result, nil
}
