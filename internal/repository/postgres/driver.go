package postgres

import (
	"context"
	"database/sql"
	"errors"

	"fleetops-backend/internal/domain"
	"fleetops-backend/internal/repository"
)

type driverRepository struct {
	db *sql.DB
}

func NewDriverRepository(db *sql.DB) repository.DriverRepository {
	return &driverRepository{db: db}
}

func (r *driverRepository) Create(ctx context.Context, driver *domain.Driver) error {
	query := `INSERT INTO drivers (full_name, phone, status)
	          VALUES ($1, $2, $3) RETURNING id, created_on, updated_on`
	return r.db.QueryRowContext(ctx, query, driver.FullName, driver.Phone, driver.Status).
		Scan(&driver.ID, &driver.CreatedOn, &driver.UpdatedOn)
}

func (r *driverRepository) GetByID(ctx context.Context, id int64) (*domain.Driver, error) {
	query := `SELECT id, full_name, COALESCE(phone, ''), status, created_on, updated_on
	          FROM drivers WHERE id = $1`
	var d domain.Driver
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&d.ID, &d.FullName, &d.Phone, &d.Status, &d.CreatedOn, &d.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrDriverNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *driverRepository) List(ctx context.Context) ([]domain.Driver, error) {
	query := `SELECT id, full_name, COALESCE(phone, ''), status, created_on, updated_on
	          FROM drivers ORDER BY full_name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drivers []domain.Driver
	for rows.Next() {
		var d domain.Driver
		if err := rows.Scan(&d.ID, &d.FullName, &d.Phone, &d.Status, &d.CreatedOn, &d.UpdatedOn); err != nil {
			return nil, err
		}
		drivers = append(drivers, d)
	}
	return drivers, rows.Err()
}
