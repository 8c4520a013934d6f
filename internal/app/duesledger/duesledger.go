// Package duesledger собирает HTTP-приложение учёта членских взносов:
// хранилище, миграции, кеш, сервисы и маршруты.
package duesledger

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/dues-ledger/internal/cache"
	"github.com/magabrotheeeer/dues-ledger/internal/config"
	"github.com/magabrotheeeer/dues-ledger/internal/gateway/whatsapp"
	"github.com/magabrotheeeer/dues-ledger/internal/lib/jwt"
	"github.com/magabrotheeeer/dues-ledger/internal/migrations"
	authservice "github.com/magabrotheeeer/dues-ledger/internal/services/auth"
	dashboardservice "github.com/magabrotheeeer/dues-ledger/internal/services/dashboard"
	memberservice "github.com/magabrotheeeer/dues-ledger/internal/services/member"
	notificationservice "github.com/magabrotheeeer/dues-ledger/internal/services/notification"
	paymentservice "github.com/magabrotheeeer/dues-ledger/internal/services/payment"
	"github.com/magabrotheeeer/dues-ledger/internal/storage/repository"
)

// App инкапсулирует HTTP-сервер и ресурсы приложения.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
}

// New инициализирует приложение: подключает базу, применяет миграции,
// поднимает кеш и регистрирует маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	gateway := whatsapp.NewClient(cfg.WhatsApp.APIURL, cfg.WhatsApp.APIToken, logger)

	services := Services{
		Auth:         authservice.New(db, jwtMaker),
		Member:       memberservice.New(db, cacheRedis, logger),
		Payment:      paymentservice.New(db, logger),
		Notification: notificationservice.New(db, gateway, logger),
		Dashboard:    dashboardservice.New(db, logger),
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, jwtMaker, services)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.db.DB.Close()
		return err
	}
}
