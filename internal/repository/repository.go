package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"fleetops-backend/internal/domain"
)

type DriverRepository interface {
	Create(ctx context.Context, driver *domain.Driver) error
	GetByID(ctx context.Context, id int64) (*domain.Driver, error)
	List(ctx context.Context) ([]domain.Driver, error)
}

type SpendingAccountRepository interface {
	Create(ctx context.Context, account *domain.SpendingAccount) error
	GetByDriver(ctx context.Context, driverID int64) (*domain.SpendingAccount, error)
	UpdateLimit(ctx context.Context, driverID int64, limit decimal.Decimal) error
	ListWithDrivers(ctx context.Context) ([]domain.AccountWithDriver, error)

	// ResetDaily zeroes daily_spent and stamps last_daily_reset on all active
	// accounts. Returns the number of accounts reset.
	ResetDaily(ctx context.Context, at time.Time) (int64, error)
	// ResetWeekly zeroes weekly_spent and stamps week_start_date on all active
	// accounts. Returns the number of accounts reset.
	ResetWeekly(ctx context.Context, weekStart time.Time) (int64, error)
}

type LedgerRepository interface {
	// Apply inserts the transaction row and updates the account balance and
	// counters in a single database transaction. Balance arithmetic happens in
	// SQL so concurrent mutations on the same account cannot lose updates.
	// Top-up entries that would push the balance above the spending limit fail
	// with domain.ErrLimitExceeded and leave no trace.
	Apply(ctx context.Context, entry *domain.LedgerEntry) (*domain.SpendingTransaction, error)

	// Void marks a posted transaction VOID and appends a compensating reversal
	// entry that undoes its balance and counter effects, atomically. Returns
	// the reversal transaction.
	Void(ctx context.Context, transactionID int64, voidedBy string) (*domain.SpendingTransaction, error)

	GetTransaction(ctx context.Context, id int64) (*domain.SpendingTransaction, error)
	// ListByDriver returns posted (non-void) transactions, newest first.
	ListByDriver(ctx context.Context, driverID int64, page, pageSize int32) ([]domain.SpendingTransaction, int32, error)

	// SumDebitsSince sums posted debit amounts recorded on or after since.
	SumDebitsSince(ctx context.Context, driverID int64, since time.Time) (decimal.Decimal, error)
	// SumSigned sums signed amounts over every row, VOID included. Used by
	// balance reconciliation.
	SumSigned(ctx context.Context, driverID int64) (decimal.Decimal, error)
}

type ExpenseRepository interface {
	Create(ctx context.Context, expense *domain.ExpenseTransaction) error
	ListByDriver(ctx context.Context, driverID int64, page, pageSize int32) ([]domain.ExpenseTransaction, int32, error)
}

type AuditLogRepository interface {
	Append(ctx context.Context, entry *domain.AuditEntry) error
	ListRecent(ctx context.Context, limit int32) ([]domain.AuditEntry, error)
}
