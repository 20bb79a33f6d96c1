// Package main B·PASS backend API
//
// @title           B·PASS Backend API
// @version         1.0
// @description     API продажи временных пропусков: Kakao OAuth, заказы, оплата Toss

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/magabrotheeeer/bpass-backend/internal/app/bpass"
	"github.com/magabrotheeeer/bpass-backend/internal/config"
)

func main() {
	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	logger.Info("starting bpass-backend",
		slog.String("env", cfg.Env),
		slog.Bool("kakao_login", cfg.Flags.KakaoLogin),
		slog.Bool("toss_confirm", cfg.Flags.TossConfirm),
		slog.Bool("demo_login", cfg.Flags.DemoLogin))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := bpass.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize app", slog.Any("err", err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("app stopped with error", slog.Any("err", err))
		os.Exit(1)
	}

	logger.Info("bpass-backend stopped gracefully")
}
