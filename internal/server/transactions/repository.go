package transactions

import (
	"context"
	"math/big"
)

// Repository is the storage boundary for the ledger.
//
// SumByUser returns common.ErrorNotFound when no transactions exist for the
// user (the aggregate is NULL); callers decide whether that means "no
// balance known" or a zero balance. List honors Filter.Limit by fetching
// one extra row, and always orders by timestamp.
type Repository interface {
	SumByUser(ctx context.Context, userID int64) (*big.Int, error)
	SumByMerchant(ctx context.Context, userID int64) ([]MerchantBalance, error)
	List(ctx context.Context, userID int64, f Filter) ([]Transaction, error)
}
