package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"fleetops-backend/internal/domain"
)

type ledgerFixture struct {
	ledgerRepo  *MockLedgerRepo
	accountRepo *MockAccountRepo
	driverRepo  *MockDriverRepo
	auditRepo   *MockAuditRepo
	publisher   *MockPublisher
	svc         LedgerService
}

func newLedgerFixture() *ledgerFixture {
	f := &ledgerFixture{
		ledgerRepo:  new(MockLedgerRepo),
		accountRepo: new(MockAccountRepo),
		driverRepo:  new(MockDriverRepo),
		auditRepo:   new(MockAuditRepo),
		publisher:   new(MockPublisher),
	}
	f.svc = NewLedgerService(f.ledgerRepo, f.accountRepo, f.driverRepo, f.auditRepo,
		f.publisher, NewRolePolicy(), decimal.NewFromInt(50000))
	return f
}

// expectRecord covers the best-effort audit append and event publish that
// follow every successful mutation.
func (f *ledgerFixture) expectRecord() {
	f.auditRepo.On("Append", mock.Anything, mock.Anything).Return(nil)
	f.publisher.On("PublishLedgerEvent", mock.Anything, mock.Anything).Return(nil)
}

var (
	officer = domain.Actor{Name: "jane", Role: domain.RoleFleetOfficer}
	staff   = domain.Actor{Name: "sam", Role: domain.RoleStaff}
)

func TestLedgerService_TopUp(t *testing.T) {
	ctx := context.Background()

	t.Run("LazyCreatesAccount", func(t *testing.T) {
		f := newLedgerFixture()
		f.accountRepo.On("GetByDriver", ctx, int64(1)).Return(nil, domain.ErrAccountNotFound).Once()
		f.driverRepo.On("GetByID", ctx, int64(1)).Return(&domain.Driver{ID: 1, FullName: "Ade Bello"}, nil).Once()
		f.accountRepo.On("Create", ctx, mock.MatchedBy(func(a *domain.SpendingAccount) bool {
			return a.DriverID == 1 && a.IsActive && a.SpendingLimit.Equal(decimal.NewFromInt(50000))
		})).Return(nil).Once()
		f.ledgerRepo.On("Apply", ctx, mock.MatchedBy(func(e *domain.LedgerEntry) bool {
			return e.Type == domain.TransactionTypeTopUp &&
				e.Amount.Equal(decimal.NewFromInt(10000)) &&
				e.DriverID == 1 && e.CreatedBy == "jane" && e.Reference != ""
		})).Return(&domain.SpendingTransaction{
			ID: 42, Reference: "ref", DriverID: 1,
			Type:         domain.TransactionTypeTopUp,
			Direction:    domain.DirectionCredit,
			Amount:       decimal.NewFromInt(10000),
			BalanceAfter: decimal.NewFromInt(10000),
			Status:       domain.TransactionStatusPosted,
		}, nil).Once()
		f.expectRecord()

		tx, err := f.svc.TopUp(ctx, staff, 1, decimal.NewFromInt(10000), "weekly float")
		assert.NoError(t, err)
		assert.True(t, decimal.NewFromInt(10000).Equal(tx.BalanceAfter))
		f.accountRepo.AssertExpectations(t)
		f.ledgerRepo.AssertExpectations(t)
		f.auditRepo.AssertExpectations(t)
	})

	t.Run("UnknownDriver", func(t *testing.T) {
		f := newLedgerFixture()
		f.accountRepo.On("GetByDriver", ctx, int64(99)).Return(nil, domain.ErrAccountNotFound).Once()
		f.driverRepo.On("GetByID", ctx, int64(99)).Return(nil, domain.ErrDriverNotFound).Once()

		_, err := f.svc.TopUp(ctx, staff, 99, decimal.NewFromInt(100), "")
		assert.ErrorIs(t, err, domain.ErrDriverNotFound)
		f.accountRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("LimitExceeded", func(t *testing.T) {
		f := newLedgerFixture()
		account := &domain.SpendingAccount{ID: 7, DriverID: 1, SpendingLimit: decimal.NewFromInt(50000)}
		f.accountRepo.On("GetByDriver", ctx, int64(1)).Return(account, nil).Once()
		f.ledgerRepo.On("Apply", ctx, mock.Anything).Return(nil, domain.ErrLimitExceeded).Once()

		_, err := f.svc.TopUp(ctx, staff, 1, decimal.NewFromInt(45000), "")
		assert.ErrorIs(t, err, domain.ErrLimitExceeded)
		f.auditRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})

	t.Run("RejectsNonPositiveAmount", func(t *testing.T) {
		f := newLedgerFixture()
		_, err := f.svc.TopUp(ctx, staff, 1, decimal.Zero, "")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("RequiresActor", func(t *testing.T) {
		f := newLedgerFixture()
		_, err := f.svc.TopUp(ctx, domain.Actor{}, 1, decimal.NewFromInt(100), "")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestLedgerService_RecordExpense(t *testing.T) {
	ctx := context.Background()

	t.Run("AllowsOverdraft", func(t *testing.T) {
		f := newLedgerFixture()
		f.ledgerRepo.On("Apply", ctx, mock.MatchedBy(func(e *domain.LedgerEntry) bool {
			return e.Type == domain.TransactionTypeExpense && e.Amount.Equal(decimal.NewFromInt(15000))
		})).Return(&domain.SpendingTransaction{
			ID: 43, DriverID: 1,
			Type:         domain.TransactionTypeExpense,
			Direction:    domain.DirectionDebit,
			Amount:       decimal.NewFromInt(15000),
			BalanceAfter: decimal.NewFromInt(-5000),
			Status:       domain.TransactionStatusPosted,
		}, nil).Once()
		f.expectRecord()

		tx, err := f.svc.RecordExpense(ctx, staff, 1, decimal.NewFromInt(15000), "fuel run", nil)
		assert.NoError(t, err)
		assert.True(t, tx.BalanceAfter.IsNegative())
		f.ledgerRepo.AssertExpectations(t)
	})

	t.Run("NoAutoCreate", func(t *testing.T) {
		f := newLedgerFixture()
		f.ledgerRepo.On("Apply", ctx, mock.Anything).Return(nil, domain.ErrAccountNotFound).Once()

		_, err := f.svc.RecordExpense(ctx, staff, 99, decimal.NewFromInt(100), "", nil)
		assert.ErrorIs(t, err, domain.ErrAccountNotFound)
		f.accountRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestLedgerService_AdjustBalance(t *testing.T) {
	ctx := context.Background()

	t.Run("StaffForbidden", func(t *testing.T) {
		f := newLedgerFixture()
		_, err := f.svc.AdjustBalance(ctx, staff, 1, decimal.NewFromInt(-2000), "drift")
		assert.ErrorIs(t, err, domain.ErrNotAuthorized)
		f.ledgerRepo.AssertNotCalled(t, "Apply", mock.Anything, mock.Anything)
	})

	t.Run("NegativePostsManualDebit", func(t *testing.T) {
		f := newLedgerFixture()
		f.ledgerRepo.On("Apply", ctx, mock.MatchedBy(func(e *domain.LedgerEntry) bool {
			return e.Type == domain.TransactionTypeManualDebit && e.Amount.Equal(decimal.NewFromInt(2000))
		})).Return(&domain.SpendingTransaction{ID: 44, DriverID: 1,
			Type: domain.TransactionTypeManualDebit, Amount: decimal.NewFromInt(2000)}, nil).Once()
		f.expectRecord()

		_, err := f.svc.AdjustBalance(ctx, officer, 1, decimal.NewFromInt(-2000), "drift")
		assert.NoError(t, err)
		f.ledgerRepo.AssertExpectations(t)
	})

	t.Run("PositivePostsRefund", func(t *testing.T) {
		f := newLedgerFixture()
		f.ledgerRepo.On("Apply", ctx, mock.MatchedBy(func(e *domain.LedgerEntry) bool {
			return e.Type == domain.TransactionTypeRefund && e.Amount.Equal(decimal.NewFromInt(1500))
		})).Return(&domain.SpendingTransaction{ID: 45, DriverID: 1,
			Type: domain.TransactionTypeRefund, Amount: decimal.NewFromInt(1500)}, nil).Once()
		f.expectRecord()

		_, err := f.svc.AdjustBalance(ctx, officer, 1, decimal.NewFromInt(1500), "missed refund")
		assert.NoError(t, err)
		f.ledgerRepo.AssertExpectations(t)
	})

	t.Run("ZeroRejected", func(t *testing.T) {
		f := newLedgerFixture()
		_, err := f.svc.AdjustBalance(ctx, officer, 1, decimal.Zero, "")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestLedgerService_EditTransaction(t *testing.T) {
	ctx := context.Background()
	original := &domain.SpendingTransaction{
		ID: 42, Reference: "ref-4", DriverID: 1,
		Type:      domain.TransactionTypeExpense,
		Direction: domain.DirectionDebit,
		Amount:    decimal.NewFromInt(5000),
		Status:    domain.TransactionStatusPosted,
	}

	t.Run("IncreasePostsCompensatingDebit", func(t *testing.T) {
		f := newLedgerFixture()
		f.ledgerRepo.On("GetTransaction", ctx, int64(42)).Return(original, nil).Once()
		f.ledgerRepo.On("Apply", ctx, mock.MatchedBy(func(e *domain.LedgerEntry) bool {
			return e.Type == domain.TransactionTypeManualDebit &&
				e.Amount.Equal(decimal.NewFromInt(3000)) &&
				e.RelatedTransactionID != nil && *e.RelatedTransactionID == 42
		})).Return(&domain.SpendingTransaction{ID: 46}, nil).Once()
		f.expectRecord()

		_, err := f.svc.EditTransaction(ctx, officer, 42, decimal.NewFromInt(8000), "receipt was higher")
		assert.NoError(t, err)
		f.ledgerRepo.AssertExpectations(t)
	})

	t.Run("DecreasePostsCompensatingRefund", func(t *testing.T) {
		f := newLedgerFixture()
		f.ledgerRepo.On("GetTransaction", ctx, int64(42)).Return(original, nil).Once()
		f.ledgerRepo.On("Apply", ctx, mock.MatchedBy(func(e *domain.LedgerEntry) bool {
			return e.Type == domain.TransactionTypeRefund && e.Amount.Equal(decimal.NewFromInt(2000))
		})).Return(&domain.SpendingTransaction{ID: 47}, nil).Once()
		f.expectRecord()

		_, err := f.svc.EditTransaction(ctx, officer, 42, decimal.NewFromInt(3000), "receipt was lower")
		assert.NoError(t, err)
		f.ledgerRepo.AssertExpectations(t)
	})

	t.Run("SameAmountRejected", func(t *testing.T) {
		f := newLedgerFixture()
		f.ledgerRepo.On("GetTransaction", ctx, int64(42)).Return(original, nil).Once()

		_, err := f.svc.EditTransaction(ctx, officer, 42, decimal.NewFromInt(5000), "")
		assert.ErrorIs(t, err, domain.ErrValidation)
		f.ledgerRepo.AssertNotCalled(t, "Apply", mock.Anything, mock.Anything)
	})

	t.Run("ReversalCannotBeEdited", func(t *testing.T) {
		f := newLedgerFixture()
		reversal := &domain.SpendingTransaction{ID: 50, Type: domain.TransactionTypeReversal,
			Status: domain.TransactionStatusPosted, Amount: decimal.NewFromInt(5000)}
		f.ledgerRepo.On("GetTransaction", ctx, int64(50)).Return(reversal, nil).Once()

		_, err := f.svc.EditTransaction(ctx, officer, 50, decimal.NewFromInt(100), "")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("VoidedOriginal", func(t *testing.T) {
		f := newLedgerFixture()
		voided := &domain.SpendingTransaction{ID: 42, Type: domain.TransactionTypeExpense,
			Status: domain.TransactionStatusVoid, Amount: decimal.NewFromInt(5000)}
		f.ledgerRepo.On("GetTransaction", ctx, int64(42)).Return(voided, nil).Once()

		_, err := f.svc.EditTransaction(ctx, officer, 42, decimal.NewFromInt(100), "")
		assert.ErrorIs(t, err, domain.ErrTransactionNotFound)
	})

	t.Run("StaffForbidden", func(t *testing.T) {
		f := newLedgerFixture()
		_, err := f.svc.EditTransaction(ctx, staff, 42, decimal.NewFromInt(8000), "")
		assert.ErrorIs(t, err, domain.ErrNotAuthorized)
	})
}

func TestLedgerService_DeleteTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("VoidsAndReturnsReversal", func(t *testing.T) {
		f := newLedgerFixture()
		original := &domain.SpendingTransaction{
			ID: 42, Reference: "ref-4", DriverID: 1,
			Type:   domain.TransactionTypeExpense,
			Amount: decimal.NewFromInt(15000),
			Status: domain.TransactionStatusPosted,
		}
		reversal := &domain.SpendingTransaction{
			ID: 50, Reference: "ref-4-rev", DriverID: 1,
			Type:         domain.TransactionTypeReversal,
			Direction:    domain.DirectionCredit,
			Amount:       decimal.NewFromInt(15000),
			BalanceAfter: decimal.NewFromInt(10000),
		}
		f.ledgerRepo.On("GetTransaction", ctx, int64(42)).Return(original, nil).Once()
		f.ledgerRepo.On("Void", ctx, int64(42), "jane").Return(reversal, nil).Once()
		f.expectRecord()

		got, err := f.svc.DeleteTransaction(ctx, officer, 42)
		assert.NoError(t, err)
		assert.Equal(t, domain.TransactionTypeReversal, got.Type)
		assert.True(t, decimal.NewFromInt(10000).Equal(got.BalanceAfter))
		f.ledgerRepo.AssertExpectations(t)
	})

	t.Run("ReversalCannotBeDeleted", func(t *testing.T) {
		f := newLedgerFixture()
		reversal := &domain.SpendingTransaction{ID: 50, Type: domain.TransactionTypeReversal,
			Status: domain.TransactionStatusPosted}
		f.ledgerRepo.On("GetTransaction", ctx, int64(50)).Return(reversal, nil).Once()

		_, err := f.svc.DeleteTransaction(ctx, officer, 50)
		assert.ErrorIs(t, err, domain.ErrValidation)
		f.ledgerRepo.AssertNotCalled(t, "Void", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("StaffForbidden", func(t *testing.T) {
		f := newLedgerFixture()
		_, err := f.svc.DeleteTransaction(ctx, staff, 42)
		assert.ErrorIs(t, err, domain.ErrNotAuthorized)
	})
}

func TestLedgerService_SetSpendingLimit(t *testing.T) {
	ctx := context.Background()

	t.Run("UpdatesExisting", func(t *testing.T) {
		f := newLedgerFixture()
		account := &domain.SpendingAccount{ID: 7, DriverID: 1, SpendingLimit: decimal.NewFromInt(50000)}
		f.accountRepo.On("GetByDriver", ctx, int64(1)).Return(account, nil).Once()
		f.accountRepo.On("UpdateLimit", ctx, int64(1), decimal.NewFromInt(75000)).Return(nil).Once()

		got, err := f.svc.SetSpendingLimit(ctx, officer, 1, decimal.NewFromInt(75000))
		assert.NoError(t, err)
		assert.True(t, decimal.NewFromInt(75000).Equal(got.SpendingLimit))
		f.accountRepo.AssertExpectations(t)
	})

	t.Run("LazyCreatesWithGivenLimit", func(t *testing.T) {
		f := newLedgerFixture()
		f.accountRepo.On("GetByDriver", ctx, int64(2)).Return(nil, domain.ErrAccountNotFound).Twice()
		f.driverRepo.On("GetByID", ctx, int64(2)).Return(&domain.Driver{ID: 2}, nil).Once()
		f.accountRepo.On("Create", ctx, mock.MatchedBy(func(a *domain.SpendingAccount) bool {
			return a.DriverID == 2 && a.SpendingLimit.Equal(decimal.NewFromInt(30000))
		})).Return(nil).Once()

		got, err := f.svc.SetSpendingLimit(ctx, officer, 2, decimal.NewFromInt(30000))
		assert.NoError(t, err)
		assert.True(t, decimal.NewFromInt(30000).Equal(got.SpendingLimit))
		f.accountRepo.AssertExpectations(t)
	})

	t.Run("NegativeRejected", func(t *testing.T) {
		f := newLedgerFixture()
		_, err := f.svc.SetSpendingLimit(ctx, officer, 1, decimal.NewFromInt(-1))
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestLedgerService_ListTransactions(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture()

	// Out-of-range paging collapses to the defaults.
	f.ledgerRepo.On("ListByDriver", ctx, int64(1), int32(1), int32(50)).
		Return([]domain.SpendingTransaction{}, int32(0), nil).Once()

	_, _, err := f.svc.ListTransactions(ctx, 1, 0, 1000)
	assert.NoError(t, err)
	f.ledgerRepo.AssertExpectations(t)
}
