package repository

import (
	"context"

	"github.com/redfreska-cyber/redfreska-biz-boost/internal/model"
)

func (r *Repository) GetPlatformStats(ctx context.Context) (*model.PlatformStats, error) {
	stats := &model.PlatformStats{}
	query := `
		SELECT
			(SELECT COUNT(*) FROM restaurantes) AS total_restaurantes,
			(SELECT COUNT(*) FROM clientes) AS total_clientes,
			(SELECT COUNT(*) FROM conversiones) AS total_conversiones,
			(SELECT COUNT(*) FROM validaciones) AS total_validaciones`
	if err := r.db.GetContext(ctx, stats, query); err != nil {
		return nil, err
	}
	return stats, nil
}
