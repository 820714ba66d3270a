package transactions

import (
	"math/big"
	"time"
)

// Transaction is an immutable ledger record. AmountInCents is kept in an
// arbitrary-precision integer: totals over many records can exceed what
// int64 or float64 can represent without loss.
type Transaction struct {
	ID            int64
	UserID        int64
	MerchantID    int64
	AmountInCents *big.Int
	Timestamp     time.Time
}

// MerchantBalance is one row of a per-merchant balance summary.
type MerchantBalance struct {
	MerchantID int64
	Balance    *big.Int
}

// Filter narrows a transaction listing. Nil members mean "no constraint".
// When Limit is set, repositories fetch Limit+1 rows so that pagination can
// tell whether more data exists.
type Filter struct {
	MerchantID *int64
	Before     *time.Time
	After      *time.Time
	Limit      *int
}

// Page is a bounded slice of a larger result set. HasMore reports whether
// records exist beyond the slice; it is only ever true for limited queries.
type Page[T any] struct {
	Items   []T
	HasMore bool
}
