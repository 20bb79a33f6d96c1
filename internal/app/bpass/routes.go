// Package bpass собирает приложение продажи пропусков: зависимости,
// маршруты и жизненный цикл HTTP-сервера.
package bpass

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/bpass-backend/internal/config"
	"github.com/magabrotheeeer/bpass-backend/internal/http/handlers/kakaocallback"
	"github.com/magabrotheeeer/bpass-backend/internal/http/handlers/kakaostart"
	"github.com/magabrotheeeer/bpass-backend/internal/http/handlers/logout"
	"github.com/magabrotheeeer/bpass-backend/internal/http/handlers/me"
	"github.com/magabrotheeeer/bpass-backend/internal/http/handlers/ordercreate"
	"github.com/magabrotheeeer/bpass-backend/internal/http/handlers/paymentfail"
	"github.com/magabrotheeeer/bpass-backend/internal/http/handlers/paymentsuccess"
	"github.com/magabrotheeeer/bpass-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/bpass-backend/internal/lib/sessiontoken"
	"github.com/magabrotheeeer/bpass-backend/internal/models"
	authservice "github.com/magabrotheeeer/bpass-backend/internal/services/auth"
	orderservice "github.com/magabrotheeeer/bpass-backend/internal/services/order"
	paymentservice "github.com/magabrotheeeer/bpass-backend/internal/services/payment"
	"github.com/magabrotheeeer/bpass-backend/internal/session"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(
	r chi.Router,
	logger *slog.Logger,
	cfg *config.Config,
	store session.Store,
	maker sessiontoken.Maker,
	plans *models.Catalog,
	oauthClient kakaostart.OAuthClient,
	authService *authservice.Service,
	orderService *orderservice.Service,
	paymentService *paymentservice.Service,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)
	r.Use(middlewarectx.SessionMiddleware(store, maker, cfg.SessionConfig.SessionTTL, logger))
	r.Use(middlewarectx.RateLimitMiddleware(logger))

	// JSON API
	r.Get("/api/me", me.New(logger, plans, cfg.Toss.ClientKey).ServeHTTP)
	r.Post("/api/logout", logout.New(logger).ServeHTTP)
	r.Post("/api/orders/create", ordercreate.New(logger, orderService).ServeHTTP)

	// Callback-и платёжной страницы: только редиректы
	r.Get("/payment/success", paymentsuccess.New(logger, paymentService).ServeHTTP)
	r.Get("/payment/fail", paymentfail.New(logger).ServeHTTP)

	// Kakao OAuth
	r.Get("/auth/kakao/start", kakaostart.New(logger, cfg.Flags, oauthClient, authService).ServeHTTP)
	r.Get("/auth/kakao/callback", kakaocallback.New(logger, cfg.Flags, authService).ServeHTTP)

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)

	// Статика фронтенда, "/" отдаёт index.html
	fileServer := http.FileServer(http.Dir(cfg.StaticDir))
	r.Handle("/*", fileServer)
}

// evictionInterval — период фоновой уборки реестра заказов.
const evictionInterval = time.Minute
