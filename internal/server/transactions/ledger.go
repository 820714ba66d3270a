package transactions

import (
	"errors"
	"math/big"
)

// ErrInvalidAmount marks an amount string that is not a non-negative
// integer. Callers surface it as a 400 before any storage access.
var ErrInvalidAmount = errors.New("invalid amount")

// ParseAmount parses a requested amount as a non-negative arbitrary-precision
// integer. Fractions, signs, exponents and junk are all rejected.
func ParseAmount(s string) (*big.Int, error) {
	amount, ok := new(big.Int).SetString(s, 10)
	if !ok || amount.Sign() < 0 {
		return nil, ErrInvalidAmount
	}
	return amount, nil
}

// SumAmounts totals AmountInCents over records. The running total stays in
// the big.Int domain the whole way; an empty input sums to zero.
func SumAmounts(records []Transaction) *big.Int {
	total := new(big.Int)
	for _, r := range records {
		total.Add(total, r.AmountInCents)
	}
	return total
}

// Approve reports whether a balance covers a requested amount.
func Approve(balance, amount *big.Int) bool {
	return balance.Cmp(amount) >= 0
}

// Paginate produces a Page from records fetched with limit+1. With no
// limit, everything is returned and HasMore stays false. With a limit,
// records beyond it are cut off and flagged.
func Paginate[T any](records []T, limit *int) Page[T] {
	if limit != nil && len(records) > *limit {
		return Page[T]{Items: records[:*limit], HasMore: true}
	}
	return Page[T]{Items: records}
}
