package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/ledgerkeep/internal/server/migrations"
	"github.com/dmitrijs2005/ledgerkeep/internal/server/transactions"
	"github.com/dmitrijs2005/ledgerkeep/internal/server/users"
)

type PostgresRepositoryManager struct {
	db           *sql.DB
	users        users.Repository
	transactions transactions.Repository
}

func (m *PostgresRepositoryManager) Conn() *sql.DB {
	return m.db
}

func (m *PostgresRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *PostgresRepositoryManager) Transactions() transactions.Repository {
	return m.transactions
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		return err
	}

	return nil
}

func NewPostgresRepositoryManager(dsn string) (RepositoryManager, error) {

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	users, err := users.NewPostgresRepository(db)
	if err != nil {
		return nil, fmt.Errorf("user repo creation error: %w", err)
	}

	transactions, err := transactions.NewPostgresRepository(db)
	if err != nil {
		return nil, fmt.Errorf("transaction repo creation error: %w", err)
	}

	m := &PostgresRepositoryManager{
		db:           db,
		users:        users,
		transactions: transactions,
	}

	err = m.RunMigrations(context.Background())
	if err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}
