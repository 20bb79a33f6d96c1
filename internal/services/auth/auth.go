// Package auth содержит бизнес-логику входа через Kakao OAuth.
//
// Login проводит полный обмен: код -> токен -> профиль -> сессия.
// Сбой любого шага оставляет сессию нетронутой — пользователь либо
// залогинен целиком, либо не залогинен вовсе.
package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/bpass-backend/internal/errs"
	"github.com/magabrotheeeer/bpass-backend/internal/lib/sl"
	"github.com/magabrotheeeer/bpass-backend/internal/models"
	"github.com/magabrotheeeer/bpass-backend/internal/session"
)

// Провайдер, под которым пользователи журналируются в БД.
const providerKakao = "kakao"

// OAuthClient описывает обмены с провайдером OAuth.
type OAuthClient interface {
	ExchangeCode(ctx context.Context, code string) (string, error)
	FetchProfile(ctx context.Context, accessToken string) (*models.User, error)
}

// Journal описывает опциональный durable-журнал пользователей.
type Journal interface {
	UpsertUser(ctx context.Context, provider string, user models.User) error
}

// Service реализует вход пользователя.
type Service struct {
	oauth   OAuthClient
	journal Journal // nil, если durable-журнал не сконфигурирован
	log     *slog.Logger
}

// New создает сервис входа. journal может быть nil.
func New(oauth OAuthClient, journal Journal, log *slog.Logger) *Service {
	return &Service{
		oauth:   oauth,
		journal: journal,
		log:     log,
	}
}

// Login обменивает код авторизации на профиль и кладёт пользователя в сессию.
func (s *Service) Login(ctx context.Context, sess *session.Session, code string) (*models.User, error) {
	const op = "services.auth.Login"
	log := s.log.With(slog.String("op", op))

	if code == "" {
		return nil, errs.ErrOAuthFailed
	}

	accessToken, err := s.oauth.ExchangeCode(ctx, code)
	if err != nil {
		log.Error("token exchange failed", sl.Err(err))
		return nil, fmt.Errorf("%w: %s", errs.ErrOAuthFailed, err)
	}

	user, err := s.oauth.FetchProfile(ctx, accessToken)
	if err != nil {
		log.Error("profile fetch failed", sl.Err(err))
		return nil, fmt.Errorf("%w: %s", errs.ErrOAuthFailed, err)
	}

	if err := sess.SetUser(ctx, *user); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if s.journal != nil {
		if err := s.journal.UpsertUser(ctx, providerKakao, *user); err != nil {
			log.Warn("failed to journal user", sl.Err(err))
		}
	}

	log.Info("user logged in", slog.String("user_id", user.ID))
	return user, nil
}

// DemoLogin кладёт в сессию демо-пользователя. Доступен только при
// явно включённом demo-режиме (Kakao ключ не сконфигурирован).
func (s *Service) DemoLogin(ctx context.Context, sess *session.Session) (*models.User, error) {
	const op = "services.auth.DemoLogin"

	user := models.User{ID: "demo_user", Name: "Demo User"}
	if err := sess.SetUser(ctx, user); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("demo user logged in")
	return &user, nil
}
