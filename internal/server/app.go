// Package server initializes and runs the main application server. It wires
// configuration, logging, the storage backend, the services and the HTTP
// endpoint, and handles graceful shutdown on OS signals.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/forevo/internal/logging"
	"github.com/dmitrijs2005/forevo/internal/server/config"
	"github.com/dmitrijs2005/forevo/internal/server/httpapi"
	"github.com/dmitrijs2005/forevo/internal/server/messages"
	"github.com/dmitrijs2005/forevo/internal/server/storage"
	"github.com/dmitrijs2005/forevo/internal/server/users"
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	storage        storage.Manager
	userService    *users.Service
	messageService *messages.Service
}

func NewApp(c *config.Config) (*App, error) {

	slog := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slog)

	sm, err := storage.NewManager(c)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	us := users.NewService(sm.Users(), c)
	ms := messages.NewService(sm.Messages())

	return &App{config: c, logger: logger, storage: sm, userService: us, messageService: ms}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := httpapi.NewServer(app.config.EndpointAddr, app.config.StaticDir,
		app.logger, app.userService, app.messageService)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.storage.Close(); err != nil {
		app.logger.Error(ctx, "storage close error", "error", err.Error())
	}
}
