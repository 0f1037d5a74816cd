package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"fleetops-backend/internal/domain"
	"fleetops-backend/internal/repository"
)

type spendingAccountRepository struct {
	db *sql.DB
}

func NewSpendingAccountRepository(db *sql.DB) repository.SpendingAccountRepository {
	return &spendingAccountRepository{db: db}
}

const accountColumns = `id, driver_id, current_balance, spending_limit, weekly_spent,
	daily_spent, total_topped_up, total_spent, is_active, week_start_date,
	last_daily_reset, created_on, updated_on`

func scanAccount(row interface{ Scan(...any) error }) (*domain.SpendingAccount, error) {
	var a domain.SpendingAccount
	err := row.Scan(&a.ID, &a.DriverID, &a.CurrentBalance, &a.SpendingLimit,
		&a.WeeklySpent, &a.DailySpent, &a.TotalToppedUp, &a.TotalSpent,
		&a.IsActive, &a.WeekStartDate, &a.LastDailyReset, &a.CreatedOn, &a.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *spendingAccountRepository) Create(ctx context.Context, account *domain.SpendingAccount) error {
	query := `INSERT INTO driver_spending_accounts (driver_id, spending_limit, is_active)
	          VALUES ($1, $2, $3) RETURNING id, current_balance, weekly_spent, daily_spent,
	          total_topped_up, total_spent, created_on, updated_on`
	return r.db.QueryRowContext(ctx, query, account.DriverID, account.SpendingLimit, account.IsActive).
		Scan(&account.ID, &account.CurrentBalance, &account.WeeklySpent, &account.DailySpent,
			&account.TotalToppedUp, &account.TotalSpent, &account.CreatedOn, &account.UpdatedOn)
}

func (r *spendingAccountRepository) GetByDriver(ctx context.Context, driverID int64) (*domain.SpendingAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM driver_spending_accounts WHERE driver_id = $1`
	account, err := scanAccount(r.db.QueryRowContext(ctx, query, driverID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (r *spendingAccountRepository) UpdateLimit(ctx context.Context, driverID int64, limit decimal.Decimal) error {
	query := `UPDATE driver_spending_accounts SET spending_limit = $1, updated_on = NOW()
	          WHERE driver_id = $2`
	result, err := r.db.ExecContext(ctx, query, limit, driverID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *spendingAccountRepository) ListWithDrivers(ctx context.Context) ([]domain.AccountWithDriver, error) {
	query := `SELECT a.id, a.driver_id, a.current_balance, a.spending_limit, a.weekly_spent,
	          a.daily_spent, a.total_topped_up, a.total_spent, a.is_active, a.week_start_date,
	          a.last_daily_reset, a.created_on, a.updated_on,
	          d.id, d.full_name, COALESCE(d.phone, ''), d.status, d.created_on, d.updated_on
	          FROM driver_spending_accounts a
	          JOIN drivers d ON d.id = a.driver_id
	          ORDER BY a.current_balance ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.AccountWithDriver
	for rows.Next() {
		var item domain.AccountWithDriver
		a := &item.Account
		d := &item.Driver
		err := rows.Scan(&a.ID, &a.DriverID, &a.CurrentBalance, &a.SpendingLimit,
			&a.WeeklySpent, &a.DailySpent, &a.TotalToppedUp, &a.TotalSpent,
			&a.IsActive, &a.WeekStartDate, &a.LastDailyReset, &a.CreatedOn, &a.UpdatedOn,
			&d.ID, &d.FullName, &d.Phone, &d.Status, &d.CreatedOn, &d.UpdatedOn)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

func (r *spendingAccountRepository) ResetDaily(ctx context.Context, at time.Time) (int64, error) {
	query := `UPDATE driver_spending_accounts
	          SET daily_spent = 0, last_daily_reset = $1, updated_on = NOW()
	          WHERE is_active = true`
	result, err := r.db.ExecContext(ctx, query, at)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *spendingAccountRepository) ResetWeekly(ctx context.Context, weekStart time.Time) (int64, error) {
	query := `UPDATE driver_spending_accounts
	          SET weekly_spent = 0, week_start_date = $1, updated_on = NOW()
	          WHERE is_active = true`
	result, err := r.db.ExecContext(ctx, query, weekStart)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
