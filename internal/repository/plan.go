package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/redfreska-cyber/redfreska-biz-boost/internal/model"
)

var ErrPlanNotFound = errors.New("plan not found")

func (r *Repository) GetPlan(ctx context.Context, id uuid.UUID) (*model.Plan, error) {
	var plan model.Plan
	err := r.db.GetContext(ctx, &plan, "SELECT * FROM planes WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return &plan, nil
}

func (r *Repository) CreatePlan(ctx context.Context, plan *model.Plan) error {
	query := `
		INSERT INTO planes (nombre, descripcion, precio_mensual, moneda, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	return r.db.QueryRowContext(ctx, query,
		plan.Nombre,
		plan.Descripcion,
		plan.PrecioMensual,
		plan.Moneda,
		plan.IsActive,
	).Scan(&plan.ID, &plan.CreatedAt)
}

func (r *Repository) ListPlanes(ctx context.Context) ([]model.Plan, error) {
	var planes []model.Plan
	err := r.db.SelectContext(ctx, &planes, "SELECT * FROM planes ORDER BY precio_mensual")
	return planes, err
}
