package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"travel-backend/internal/apperrors"
	"travel-backend/internal/models"
)

// ReferenceRepository serves the read-only lookup tables behind the
// booking form dropdowns. These reads go through the pool directly;
// they never join a unit of work.
type ReferenceRepository struct {
	DB *pgxpool.Pool
}

func NewReferenceRepository(db *pgxpool.Pool) *ReferenceRepository {
	return &ReferenceRepository{DB: db}
}

func (r *ReferenceRepository) ListAirports(ctx context.Context) ([]models.Airport, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, code, name, country FROM airports ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Airport
	for rows.Next() {
		var a models.Airport
		if err := rows.Scan(&a.ID, &a.Code, &a.Name, &a.Country); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *ReferenceRepository) ListTourOperators(ctx context.Context) ([]models.TourOperator, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, code FROM tour_operators ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.TourOperator
	for rows.Next() {
		var t models.TourOperator
		if err := rows.Scan(&t.ID, &t.Name, &t.Code); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *ReferenceRepository) ListCruiseLines(ctx context.Context) ([]models.CruiseLine, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name FROM cruise_lines ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.CruiseLine
	for rows.Next() {
		var c models.CruiseLine
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ReferenceRepository) GetClient(ctx context.Context, id int) (*models.Client, error) {
	var c models.Client
	err := r.DB.QueryRow(ctx,
		`SELECT id, first_name, last_name, email, phone FROM clients WHERE id=$1`, id,
	).Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("client %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
