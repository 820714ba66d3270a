package db

import (
	"context"
	"database/sql"
	"fmt"
	"math/big"
	"sort"
	"sync"

	"github.com/dmitrijs2005/ledgerkeep/internal/common"
	"github.com/dmitrijs2005/ledgerkeep/internal/server/transactions"
	"github.com/dmitrijs2005/ledgerkeep/internal/server/users"
)

// InMemoryRepositoryManager backs the repositories with process memory.
// Used in tests and for running the server without a database.
type InMemoryRepositoryManager struct {
	users        *InMemoryUserRepository
	transactions *InMemoryTransactionRepository
}

func (m *InMemoryRepositoryManager) Conn() *sql.DB {
	return nil
}

func (m *InMemoryRepositoryManager) RunMigrations(ctx context.Context) error {
	return nil
}

func (m *InMemoryRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *InMemoryRepositoryManager) Transactions() transactions.Repository {
	return m.transactions
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{
		users:        NewInMemoryUserRepository(),
		transactions: NewInMemoryTransactionRepository(),
	}
}

type InMemoryUserRepository struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]users.User
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{nextID: 1, byID: make(map[int64]users.User)}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *users.User) (*users.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.byID {
		if u.Email == user.Email {
			return nil, common.ErrorEmailAlreadyRegistered
		}
	}

	saved := *user
	saved.ID = r.nextID
	r.nextID++
	r.byID[saved.ID] = saved

	return &saved, nil
}

func (r *InMemoryUserRepository) GetByID(ctx context.Context, id int64) (*users.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

func (r *InMemoryUserRepository) GetByEmailAndID(ctx context.Context, email string, id int64) (*users.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok || u.Email != email {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

func (r *InMemoryUserRepository) Update(ctx context.Context, id int64, fields map[string]string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(fields) == 0 {
		return 0, nil
	}

	u, ok := r.byID[id]
	if !ok {
		return 0, nil
	}

	for field, value := range fields {
		switch field {
		case "firstName":
			u.FirstName = value
		case "lastName":
			u.LastName = value
		case "email":
			u.Email = value
		case "password":
			u.PasswordHash = value
		default:
			return 0, fmt.Errorf("unknown field: %s", field)
		}
	}
	r.byID[id] = u

	return 1, nil
}

type InMemoryTransactionRepository struct {
	mu      sync.Mutex
	nextID  int64
	records []transactions.Transaction
}

func NewInMemoryTransactionRepository() *InMemoryTransactionRepository {
	return &InMemoryTransactionRepository{nextID: 1}
}

// Add appends a record to the ledger. Only the in-memory variant exposes
// writes; the ledger over HTTP is read-only.
func (r *InMemoryTransactionRepository) Add(t transactions.Transaction) transactions.Transaction {
	r.mu.Lock()
	defer r.mu.Unlock()

	t.ID = r.nextID
	r.nextID++
	r.records = append(r.records, t)
	return t
}

func (r *InMemoryTransactionRepository) SumByUser(ctx context.Context, userID int64) (*big.Int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sum := new(big.Int)
	found := false
	for _, t := range r.records {
		if t.UserID == userID {
			found = true
			sum.Add(sum, t.AmountInCents)
		}
	}
	if !found {
		return nil, common.ErrorNotFound
	}
	return sum, nil
}

func (r *InMemoryTransactionRepository) SumByMerchant(ctx context.Context, userID int64) ([]transactions.MerchantBalance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sums := make(map[int64]*big.Int)
	for _, t := range r.records {
		if t.UserID != userID {
			continue
		}
		if _, ok := sums[t.MerchantID]; !ok {
			sums[t.MerchantID] = new(big.Int)
		}
		sums[t.MerchantID].Add(sums[t.MerchantID], t.AmountInCents)
	}

	result := make([]transactions.MerchantBalance, 0, len(sums))
	for id, sum := range sums {
		result = append(result, transactions.MerchantBalance{MerchantID: id, Balance: sum})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].MerchantID < result[j].MerchantID })

	return result, nil
}

func (r *InMemoryTransactionRepository) List(ctx context.Context, userID int64, f transactions.Filter) ([]transactions.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []transactions.Transaction
	for _, t := range r.records {
		if t.UserID != userID {
			continue
		}
		if f.MerchantID != nil && t.MerchantID != *f.MerchantID {
			continue
		}
		if f.Before != nil && !t.Timestamp.Before(*f.Before) {
			continue
		}
		if f.After != nil && t.Timestamp.Before(*f.After) {
			continue
		}
		result = append(result, t)
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Timestamp.Before(result[j].Timestamp) })

	if f.Limit != nil && len(result) > *f.Limit+1 {
		result = result[:*f.Limit+1]
	}

	return result, nil
}
