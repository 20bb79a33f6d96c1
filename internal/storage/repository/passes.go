package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/bpass-backend/internal/models"
)

// SavePass записывает выданный пропуск.
func (s *Storage) SavePass(ctx context.Context, userID string, pass models.Pass) error {
	const op = "storage.SavePass"

	query := `INSERT INTO passes (user_id, plan_id, start_at, end_at, status)
			  VALUES ($1, $2, $3, $4, $5);`
	if _, err := s.DB.ExecContext(ctx, query,
		userID, pass.PlanID, pass.StartAt, pass.EndAt, pass.Status); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListPasses возвращает пропуска пользователя, новые первыми.
func (s *Storage) ListPasses(ctx context.Context, userID string) ([]*models.Pass, error) {
	const op = "storage.ListPasses"

	query := `SELECT plan_id, start_at, end_at, status
			  FROM passes
			  WHERE user_id = $1
			  ORDER BY start_at DESC;`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var result []*models.Pass
	for rows.Next() {
		var p models.Pass
		if err := rows.Scan(&p.PlanID, &p.StartAt, &p.EndAt, &p.Status); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
