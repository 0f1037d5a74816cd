package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"fleetops-backend/internal/domain"
)

type DriverService interface {
	CreateDriver(ctx context.Context, actor domain.Actor, fullName, phone string) (*domain.Driver, error)
	GetDriver(ctx context.Context, id int64) (*domain.Driver, error)
	ListDrivers(ctx context.Context) ([]domain.Driver, error)
}

// LedgerService is the only legitimate path that changes a spending account's
// balance. Every mutation posts a transaction row and updates the account in
// one atomic unit, takes an explicit actor for attribution, and appends an
// audit entry.
type LedgerService interface {
	TopUp(ctx context.Context, actor domain.Actor, driverID int64, amount decimal.Decimal, description string) (*domain.SpendingTransaction, error)
	RecordExpense(ctx context.Context, actor domain.Actor, driverID int64, amount decimal.Decimal, description string, bookingID *int64) (*domain.SpendingTransaction, error)
	AdjustBalance(ctx context.Context, actor domain.Actor, driverID int64, signedAmount decimal.Decimal, notes string) (*domain.SpendingTransaction, error)
	// EditTransaction corrects a recorded amount by appending a compensating
	// entry for the difference; the original row is never mutated.
	EditTransaction(ctx context.Context, actor domain.Actor, transactionID int64, newAmount decimal.Decimal, notes string) (*domain.SpendingTransaction, error)
	// DeleteTransaction voids a transaction and appends a reversal restoring
	// the pre-transaction balance. Returns the reversal entry.
	DeleteTransaction(ctx context.Context, actor domain.Actor, transactionID int64) (*domain.SpendingTransaction, error)
	SetSpendingLimit(ctx context.Context, actor domain.Actor, driverID int64, limit decimal.Decimal) (*domain.SpendingAccount, error)
	GetAccount(ctx context.Context, driverID int64) (*domain.SpendingAccount, error)
	ListTransactions(ctx context.Context, driverID int64, page, pageSize int32) ([]domain.SpendingTransaction, int32, error)
}

// ReportService computes spend figures live from the transaction log,
// independent of the denormalized counters on the account row.
type ReportService interface {
	GetSpendSummary(ctx context.Context, driverID int64, at time.Time) (*domain.SpendSummary, error)
}

type OverdraftService interface {
	GetOverdraftReport(ctx context.Context, topN int) (*domain.OverdraftReport, error)
}

type ExpenseService interface {
	RecordExpense(ctx context.Context, actor domain.Actor, driverID int64, category domain.ExpenseCategory, amount decimal.Decimal, description string, bookingID *int64) (*domain.ExpenseTransaction, error)
	ListExpenses(ctx context.Context, driverID int64, page, pageSize int32) ([]domain.ExpenseTransaction, int32, error)
}

type AuditService interface {
	ListRecentActivity(ctx context.Context, limit int32) ([]domain.AuditEntry, error)
}
