package db

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/ledgerkeep/internal/server/transactions"
	"github.com/dmitrijs2005/ledgerkeep/internal/server/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Users() users.Repository
	Transactions() transactions.Repository
}
