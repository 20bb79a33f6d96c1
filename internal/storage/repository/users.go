package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/bpass-backend/internal/models"
)

// UpsertUser сохраняет пользователя провайдера, обновляя имя при повторном входе.
func (s *Storage) UpsertUser(ctx context.Context, provider string, user models.User) error {
	const op = "storage.UpsertUser"

	query := `INSERT INTO users (provider, provider_user_id, name)
			  VALUES ($1, $2, $3)
			  ON CONFLICT (provider, provider_user_id)
			  DO UPDATE SET name = EXCLUDED.name;`
	if _, err := s.DB.ExecContext(ctx, query, provider, user.ID, user.Name); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
