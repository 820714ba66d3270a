// Package server initializes and runs the application server. It wires the
// storage backend, the domain services and the HTTP endpoint, and handles
// graceful shutdown on OS signals.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/ledgerkeep/internal/logging"
	"github.com/dmitrijs2005/ledgerkeep/internal/server/auth"
	"github.com/dmitrijs2005/ledgerkeep/internal/server/config"
	"github.com/dmitrijs2005/ledgerkeep/internal/server/httpapi"
	"github.com/dmitrijs2005/ledgerkeep/internal/server/shared/db"
	"github.com/dmitrijs2005/ledgerkeep/internal/server/statements"
	"github.com/dmitrijs2005/ledgerkeep/internal/server/transactions"
	"github.com/dmitrijs2005/ledgerkeep/internal/server/users"
)

type App struct {
	config             *config.Config
	logger             logging.Logger
	userService        *users.Service
	transactionService *transactions.Service
	statementService   *statements.Service
}

func NewApp(c *config.Config) (*App, error) {

	slog := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slog)

	rm, err := db.NewPostgresRepositoryManager(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	us := users.NewService(rm.Users(), c)
	ts := transactions.NewService(rm.Transactions())
	ss := statements.NewService(ts, c)

	return &App{
		config:             c,
		logger:             logger,
		userService:        us,
		transactionService: ts,
		statementService:   ss,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	handler := httpapi.NewHandler(app.logger, app.userService, app.transactionService,
		app.statementService, auth.NewTokenAuthorizer(app.config.AdminToken))

	s, err := httpapi.NewServer(app.config.EndpointAddrHTTP, app.logger, handler)

	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	} else {

		if err := s.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

}
