package bpass

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/bpass-backend/internal/config"
	"github.com/magabrotheeeer/bpass-backend/internal/events"
	"github.com/magabrotheeeer/bpass-backend/internal/http/handlers/kakaostart"
	"github.com/magabrotheeeer/bpass-backend/internal/authprovider"
	"github.com/magabrotheeeer/bpass-backend/internal/lib/orderid"
	"github.com/magabrotheeeer/bpass-backend/internal/lib/sessiontoken"
	"github.com/magabrotheeeer/bpass-backend/internal/migrations"
	"github.com/magabrotheeeer/bpass-backend/internal/models"
	"github.com/magabrotheeeer/bpass-backend/internal/paymentprovider"
	"github.com/magabrotheeeer/bpass-backend/internal/registry"
	authservice "github.com/magabrotheeeer/bpass-backend/internal/services/auth"
	orderservice "github.com/magabrotheeeer/bpass-backend/internal/services/order"
	paymentservice "github.com/magabrotheeeer/bpass-backend/internal/services/payment"
	"github.com/magabrotheeeer/bpass-backend/internal/session"
	"github.com/magabrotheeeer/bpass-backend/internal/storage/repository"
)

// App — собранное приложение.
type App struct {
	server  *http.Server
	logger  *slog.Logger
	orders  *registry.Registry
	db      *repository.Storage
	eventsP *events.Publisher
}

// New строит приложение из конфига: хранилище сессий, реестр заказов,
// опциональные Postgres и RabbitMQ, клиенты Kakao и Toss, сервисы и маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	var store session.Store
	if cfg.RedisConnection.AddressRedis != "" {
		redisStore, err := session.NewRedisStore(ctx, cfg.RedisConnection, cfg.SessionConfig.SessionTTL)
		if err != nil {
			return nil, err
		}
		store = redisStore
	} else {
		store = session.NewMemoryStore(cfg.SessionConfig.SessionTTL)
	}

	var db *repository.Storage
	if cfg.StorageConnectionString != "" {
		var err error
		db, err = repository.New(cfg.StorageConnectionString)
		if err != nil {
			return nil, err
		}
		if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
			return nil, err
		}
	}

	var eventsPub *events.Publisher
	if cfg.RabbitURL != "" {
		var err error
		eventsPub, err = events.NewPublisher(cfg.RabbitURL)
		if err != nil {
			return nil, err
		}
	}

	orders := registry.New(cfg.Orders.OrderTTL)
	plans := models.DefaultCatalog()
	maker := sessiontoken.NewMaker(cfg.SessionConfig.SecretKey, cfg.SessionConfig.SessionTTL)

	var kakaoClient *authprovider.Client
	if cfg.Flags.KakaoLogin {
		kakaoClient = authprovider.NewClient(cfg.Kakao.RESTAPIKey, cfg.Kakao.RedirectURI)
	}

	var confirmer paymentservice.Confirmer
	if cfg.Flags.TossConfirm {
		confirmer = paymentprovider.NewClient(cfg.Toss.SecretKey, cfg.Toss.ConfirmURL, cfg.Toss.TossTimeout)
	}

	var orderJournal orderservice.Journal
	var paymentJournal paymentservice.Journal
	var authJournal authservice.Journal
	if db != nil {
		orderJournal = db
		paymentJournal = db
		authJournal = db
	}
	var eventPublisher paymentservice.EventPublisher
	if eventsPub != nil {
		eventPublisher = eventsPub
	}

	var oauthClient authservice.OAuthClient
	var authorizeSource kakaostart.OAuthClient
	if kakaoClient != nil {
		oauthClient = kakaoClient
		authorizeSource = kakaoClient
	}

	authService := authservice.New(oauthClient, authJournal, logger)
	orderService := orderservice.New(orders, orderJournal, plans, orderid.New(), cfg.BaseURL, logger)
	paymentService := paymentservice.New(orders, confirmer, paymentJournal, eventPublisher, plans, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, store, maker, plans, authorizeSource, authService, orderService, paymentService)

	srv := &http.Server{
		Addr:         cfg.HTTPServer.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.TimeoutHTTP,
		WriteTimeout: cfg.HTTPServer.TimeoutHTTP,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	return &App{
		server:  srv,
		logger:  logger,
		orders:  orders,
		db:      db,
		eventsP: eventsPub,
	}, nil
}

// Run запускает сервер и фоновую уборку реестра; блокируется до отмены
// контекста или ошибки сервера, затем гасит сервер gracefully.
func (a *App) Run(ctx context.Context) error {
	go a.orders.RunEviction(ctx, evictionInterval)

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
		if a.db != nil {
			a.db.DB.Close()
		}
		if a.eventsP != nil {
			a.eventsP.Close()
		}
		return err
	}
}
