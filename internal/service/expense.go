package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"fleetops-backend/internal/domain"
	"fleetops-backend/internal/logger"
	"fleetops-backend/internal/repository"
)

type expenseService struct {
	expenseRepo repository.ExpenseRepository
	ledgerRepo  repository.LedgerRepository
	ledgerSvc   LedgerService
}

func NewExpenseService(expenseRepo repository.ExpenseRepository, ledgerRepo repository.LedgerRepository, ledgerSvc LedgerService) ExpenseService {
	return &expenseService{expenseRepo: expenseRepo, ledgerRepo: ledgerRepo, ledgerSvc: ledgerSvc}
}

// RecordExpense writes a categorized expense row. Allowance entries also debit
// the driver's spending account through the ledger; Fuel and Ticketing draw
// from prepaid vendor accounts and are recorded standalone.
func (s *expenseService) RecordExpense(ctx context.Context, actor domain.Actor, driverID int64, category domain.ExpenseCategory, amount decimal.Decimal, description string, bookingID *int64) (*domain.ExpenseTransaction, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if !category.Valid() {
		return nil, fmt.Errorf("%w: unknown expense category %q", domain.ErrValidation, category)
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: expense amount must be positive", domain.ErrValidation)
	}

	var ledgerTx *domain.SpendingTransaction
	if category == domain.ExpenseCategoryAllowance {
		var err error
		ledgerTx, err = s.ledgerSvc.RecordExpense(ctx, actor, driverID, amount, description, bookingID)
		if err != nil {
			return nil, err
		}
	}

	expense := &domain.ExpenseTransaction{
		DriverID:    driverID,
		Category:    category,
		Amount:      amount,
		Description: description,
		BookingID:   bookingID,
		CreatedBy:   actor.Name,
	}
	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		// Compensate the allowance debit so the two ledgers stay consistent.
		// The repo is used directly: the compensation must not depend on the
		// caller holding a privileged role.
		if ledgerTx != nil {
			if _, voidErr := s.ledgerRepo.Void(ctx, ledgerTx.ID, actor.Name); voidErr != nil {
				logger.Error("Failed to reverse allowance debit after expense insert failure",
					"transaction_id", ledgerTx.ID, "error", voidErr)
			}
		}
		return nil, err
	}

	return expense, nil
}

func (s *expenseService) ListExpenses(ctx context.Context, driverID int64, page, pageSize int32) ([]domain.ExpenseTransaction, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}
	return s.expenseRepo.ListByDriver(ctx, driverID, page, pageSize)
}
