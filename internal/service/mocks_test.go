package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"fleetops-backend/internal/domain"
	"fleetops-backend/internal/events"
)

// MockDriverRepo
type MockDriverRepo struct {
	mock.Mock
}

func (m *MockDriverRepo) Create(ctx context.Context, driver *domain.Driver) error {
	args := m.Called(ctx, driver)
	return args.Error(0)
}
func (m *MockDriverRepo) GetByID(ctx context.Context, id int64) (*domain.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Driver), args.Error(1)
}
func (m *MockDriverRepo) List(ctx context.Context) ([]domain.Driver, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Driver), args.Error(1)
}

// MockAccountRepo
type MockAccountRepo struct {
	mock.Mock
}

func (m *MockAccountRepo) Create(ctx context.Context, account *domain.SpendingAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}
func (m *MockAccountRepo) GetByDriver(ctx context.Context, driverID int64) (*domain.SpendingAccount, error) {
	args := m.Called(ctx, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SpendingAccount), args.Error(1)
}
func (m *MockAccountRepo) UpdateLimit(ctx context.Context, driverID int64, limit decimal.Decimal) error {
	args := m.Called(ctx, driverID, limit)
	return args.Error(0)
}
func (m *MockAccountRepo) ListWithDrivers(ctx context.Context) ([]domain.AccountWithDriver, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountWithDriver), args.Error(1)
}
func (m *MockAccountRepo) ResetDaily(ctx context.Context, at time.Time) (int64, error) {
	args := m.Called(ctx, at)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockAccountRepo) ResetWeekly(ctx context.Context, weekStart time.Time) (int64, error) {
	args := m.Called(ctx, weekStart)
	return args.Get(0).(int64), args.Error(1)
}

// MockLedgerRepo
type MockLedgerRepo struct {
	mock.Mock
}

func (m *MockLedgerRepo) Apply(ctx context.Context, entry *domain.LedgerEntry) (*domain.SpendingTransaction, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SpendingTransaction), args.Error(1)
}
func (m *MockLedgerRepo) Void(ctx context.Context, transactionID int64, voidedBy string) (*domain.SpendingTransaction, error) {
	args := m.Called(ctx, transactionID, voidedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SpendingTransaction), args.Error(1)
}
func (m *MockLedgerRepo) GetTransaction(ctx context.Context, id int64) (*domain.SpendingTransaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SpendingTransaction), args.Error(1)
}
func (m *MockLedgerRepo) ListByDriver(ctx context.Context, driverID int64, page, pageSize int32) ([]domain.SpendingTransaction, int32, error) {
	args := m.Called(ctx, driverID, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.SpendingTransaction), args.Get(1).(int32), args.Error(2)
}
func (m *MockLedgerRepo) SumDebitsSince(ctx context.Context, driverID int64, since time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, driverID, since)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockLedgerRepo) SumSigned(ctx context.Context, driverID int64) (decimal.Decimal, error) {
	args := m.Called(ctx, driverID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockExpenseRepo
type MockExpenseRepo struct {
	mock.Mock
}

func (m *MockExpenseRepo) Create(ctx context.Context, expense *domain.ExpenseTransaction) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}
func (m *MockExpenseRepo) ListByDriver(ctx context.Context, driverID int64, page, pageSize int32) ([]domain.ExpenseTransaction, int32, error) {
	args := m.Called(ctx, driverID, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.ExpenseTransaction), args.Get(1).(int32), args.Error(2)
}

// MockAuditRepo
type MockAuditRepo struct {
	mock.Mock
}

func (m *MockAuditRepo) Append(ctx context.Context, entry *domain.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
func (m *MockAuditRepo) ListRecent(ctx context.Context, limit int32) ([]domain.AuditEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditEntry), args.Error(1)
}

// MockPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishLedgerEvent(ctx context.Context, event events.LedgerEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockLedgerService
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) TopUp(ctx context.Context, actor domain.Actor, driverID int64, amount decimal.Decimal, description string) (*domain.SpendingTransaction, error) {
	args := m.Called(ctx, actor, driverID, amount, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SpendingTransaction), args.Error(1)
}
func (m *MockLedgerService) RecordExpense(ctx context.Context, actor domain.Actor, driverID int64, amount decimal.Decimal, description string, bookingID *int64) (*domain.SpendingTransaction, error) {
	args := m.Called(ctx, actor, driverID, amount, description, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SpendingTransaction), args.Error(1)
}
func (m *MockLedgerService) AdjustBalance(ctx context.Context, actor domain.Actor, driverID int64, signedAmount decimal.Decimal, notes string) (*domain.SpendingTransaction, error) {
	args := m.Called(ctx, actor, driverID, signedAmount, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SpendingTransaction), args.Error(1)
}
func (m *MockLedgerService) EditTransaction(ctx context.Context, actor domain.Actor, transactionID int64, newAmount decimal.Decimal, notes string) (*domain.SpendingTransaction, error) {
	args := m.Called(ctx, actor, transactionID, newAmount, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SpendingTransaction), args.Error(1)
}
func (m *MockLedgerService) DeleteTransaction(ctx context.Context, actor domain.Actor, transactionID int64) (*domain.SpendingTransaction, error) {
	args := m.Called(ctx, actor, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SpendingTransaction), args.Error(1)
}
func (m *MockLedgerService) SetSpendingLimit(ctx context.Context, actor domain.Actor, driverID int64, limit decimal.Decimal) (*domain.SpendingAccount, error) {
	args := m.Called(ctx, actor, driverID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SpendingAccount), args.Error(1)
}
func (m *MockLedgerService) GetAccount(ctx context.Context, driverID int64) (*domain.SpendingAccount, error) {
	args := m.Called(ctx, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SpendingAccount), args.Error(1)
}
func (m *MockLedgerService) ListTransactions(ctx context.Context, driverID int64, page, pageSize int32) ([]domain.SpendingTransaction, int32, error) {
	args := m.Called(ctx, driverID, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.SpendingTransaction), args.Get(1).(int32), args.Error(2)
}
