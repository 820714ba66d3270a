package transactions

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/dmitrijs2005/ledgerkeep/internal/common"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Balance returns the user's total in cents. common.ErrorNotFound passes
// through when the user has no transactions at all; the transport layer
// decides how to present that.
func (s *Service) Balance(ctx context.Context, userID int64) (*big.Int, error) {
	return s.repo.SumByUser(ctx, userID)
}

// Approve decides whether the user's balance covers amount. A user without
// transactions has a zero balance here (unlike Balance, which reports the
// absence). The amount must already be parsed: malformed input never gets
// this far, so no store access happens for it.
func (s *Service) Approve(ctx context.Context, userID int64, amount *big.Int) (bool, error) {
	balance, err := s.repo.SumByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			balance = new(big.Int)
		} else {
			return false, fmt.Errorf("error reading balance: %v", err)
		}
	}
	return Approve(balance, amount), nil
}

// ListByUser returns one page of the user's transactions. The repository
// overfetches by one row when a limit is set; Paginate trims the overshoot
// and raises HasMore.
func (s *Service) ListByUser(ctx context.Context, userID int64, f Filter) (Page[Transaction], error) {
	records, err := s.repo.List(ctx, userID, f)
	if err != nil {
		return Page[Transaction]{}, fmt.Errorf("error listing transactions: %v", err)
	}
	return Paginate(records, f.Limit), nil
}

// BalancesByMerchant returns the user's totals grouped by merchant.
func (s *Service) BalancesByMerchant(ctx context.Context, userID int64) ([]MerchantBalance, error) {
	return s.repo.SumByMerchant(ctx, userID)
}
