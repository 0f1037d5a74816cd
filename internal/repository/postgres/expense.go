package postgres

import (
	"context"
	"database/sql"

	"fleetops-backend/internal/domain"
	"fleetops-backend/internal/repository"
)

type expenseRepository struct {
	db *sql.DB
}

func NewExpenseRepository(db *sql.DB) repository.ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(ctx context.Context, expense *domain.ExpenseTransaction) error {
	query := `INSERT INTO expense_transactions (driver_id, category, amount, description, booking_id, created_by)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_on`
	return r.db.QueryRowContext(ctx, query,
		expense.DriverID, expense.Category, expense.Amount, expense.Description,
		expense.BookingID, expense.CreatedBy).
		Scan(&expense.ID, &expense.CreatedOn)
}

func (r *expenseRepository) ListByDriver(ctx context.Context, driverID int64, page, pageSize int32) ([]domain.ExpenseTransaction, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT id, driver_id, category, amount, COALESCE(description, ''), booking_id, created_by, created_on
	          FROM expense_transactions WHERE driver_id = $1
	          ORDER BY created_on DESC, id DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, driverID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var expenses []domain.ExpenseTransaction
	for rows.Next() {
		var e domain.ExpenseTransaction
		if err := rows.Scan(&e.ID, &e.DriverID, &e.Category, &e.Amount, &e.Description,
			&e.BookingID, &e.CreatedBy, &e.CreatedOn); err != nil {
			return nil, 0, err
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var count int32
	countQuery := `SELECT count(*) FROM expense_transactions WHERE driver_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, driverID).Scan(&count); err != nil {
		return nil, 0, err
	}
	return expenses, count, nil
}
