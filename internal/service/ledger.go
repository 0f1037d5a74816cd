package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fleetops-backend/internal/domain"
	"fleetops-backend/internal/events"
	"fleetops-backend/internal/logger"
	"fleetops-backend/internal/repository"
)

type ledgerService struct {
	ledgerRepo   repository.LedgerRepository
	accountRepo  repository.SpendingAccountRepository
	driverRepo   repository.DriverRepository
	auditRepo    repository.AuditLogRepository
	publisher    events.Publisher
	policy       Policy
	defaultLimit decimal.Decimal
}

func NewLedgerService(
	ledgerRepo repository.LedgerRepository,
	accountRepo repository.SpendingAccountRepository,
	driverRepo repository.DriverRepository,
	auditRepo repository.AuditLogRepository,
	publisher events.Publisher,
	policy Policy,
	defaultLimit decimal.Decimal,
) LedgerService {
	if defaultLimit.LessThanOrEqual(decimal.Zero) {
		defaultLimit = domain.DefaultSpendingLimit
	}
	return &ledgerService{
		ledgerRepo:   ledgerRepo,
		accountRepo:  accountRepo,
		driverRepo:   driverRepo,
		auditRepo:    auditRepo,
		publisher:    publisher,
		policy:       policy,
		defaultLimit: defaultLimit,
	}
}

func requireActor(actor domain.Actor) error {
	if actor.Name == "" {
		return fmt.Errorf("%w: actor identity is required", domain.ErrValidation)
	}
	return nil
}

func newEntry(entryType domain.TransactionType, driverID int64, amount decimal.Decimal, actor domain.Actor, notes string) *domain.LedgerEntry {
	year, week := domain.WeekOf(time.Now())
	return &domain.LedgerEntry{
		Reference:  uuid.NewString(),
		DriverID:   driverID,
		Type:       entryType,
		Amount:     amount,
		WeekNumber: week,
		Year:       year,
		CreatedBy:  actor.Name,
		Notes:      notes,
	}
}

// record appends an audit entry and publishes a ledger event. Both are
// best-effort: failures are logged and never fail the mutation.
func (s *ledgerService) record(ctx context.Context, actor domain.Actor, action string, tx *domain.SpendingTransaction, details string) {
	audit := &domain.AuditEntry{
		ActorName:      actor.Name,
		ActorRole:      actor.Role,
		Action:         action,
		DriverID:       tx.DriverID,
		TransactionRef: tx.Reference,
		Details:        details,
	}
	if err := s.auditRepo.Append(ctx, audit); err != nil {
		logger.Error("Failed to append audit entry", "action", action, "driver_id", tx.DriverID, "error", err)
	}

	event := events.LedgerEvent{
		Reference:    tx.Reference,
		DriverID:     tx.DriverID,
		Type:         tx.Type,
		Amount:       tx.Amount,
		BalanceAfter: tx.BalanceAfter,
		OccurredAt:   tx.CreatedOn,
	}
	if err := s.publisher.PublishLedgerEvent(ctx, event); err != nil {
		logger.Warn("Failed to publish ledger event", "reference", tx.Reference, "error", err)
	}
}

// ensureAccount returns the driver's account, creating it with the default
// limit when absent. A concurrent create losing the unique race falls back to
// reading the winner's row.
func (s *ledgerService) ensureAccount(ctx context.Context, driverID int64, limit decimal.Decimal) (*domain.SpendingAccount, error) {
	account, err := s.accountRepo.GetByDriver(ctx, driverID)
	if err == nil {
		return account, nil
	}
	if err != domain.ErrAccountNotFound {
		return nil, err
	}

	if _, err := s.driverRepo.GetByID(ctx, driverID); err != nil {
		return nil, err
	}

	account = &domain.SpendingAccount{
		DriverID:      driverID,
		SpendingLimit: limit,
		IsActive:      true,
	}
	if createErr := s.accountRepo.Create(ctx, account); createErr != nil {
		if existing, getErr := s.accountRepo.GetByDriver(ctx, driverID); getErr == nil {
			return existing, nil
		}
		return nil, createErr
	}
	return account, nil
}

func (s *ledgerService) TopUp(ctx context.Context, actor domain.Actor, driverID int64, amount decimal.Decimal, description string) (*domain.SpendingTransaction, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: top-up amount must be positive", domain.ErrValidation)
	}

	if _, err := s.ensureAccount(ctx, driverID, s.defaultLimit); err != nil {
		return nil, err
	}

	entry := newEntry(domain.TransactionTypeTopUp, driverID, amount, actor, description)
	tx, err := s.ledgerRepo.Apply(ctx, entry)
	if err != nil {
		return nil, err
	}

	s.record(ctx, actor, "top_up", tx, description)
	return tx, nil
}

func (s *ledgerService) RecordExpense(ctx context.Context, actor domain.Actor, driverID int64, amount decimal.Decimal, description string, bookingID *int64) (*domain.SpendingTransaction, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: expense amount must be positive", domain.ErrValidation)
	}

	// Expenses never auto-create an account: recording spend against a driver
	// who was never funded is treated as a caller mistake.
	entry := newEntry(domain.TransactionTypeExpense, driverID, amount, actor, description)
	entry.BookingID = bookingID
	tx, err := s.ledgerRepo.Apply(ctx, entry)
	if err != nil {
		return nil, err
	}

	s.record(ctx, actor, "expense", tx, description)
	return tx, nil
}

func (s *ledgerService) AdjustBalance(ctx context.Context, actor domain.Actor, driverID int64, signedAmount decimal.Decimal, notes string) (*domain.SpendingTransaction, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if err := s.policy.Authorize(actor, ActionAdjustBalance); err != nil {
		return nil, err
	}
	if signedAmount.IsZero() {
		return nil, fmt.Errorf("%w: adjustment amount must be non-zero", domain.ErrValidation)
	}

	entryType := domain.TransactionTypeRefund
	amount := signedAmount
	if signedAmount.IsNegative() {
		entryType = domain.TransactionTypeManualDebit
		amount = signedAmount.Neg()
	}

	entry := newEntry(entryType, driverID, amount, actor, notes)
	tx, err := s.ledgerRepo.Apply(ctx, entry)
	if err != nil {
		return nil, err
	}

	s.record(ctx, actor, "adjust_balance", tx, notes)
	return tx, nil
}

func (s *ledgerService) EditTransaction(ctx context.Context, actor domain.Actor, transactionID int64, newAmount decimal.Decimal, notes string) (*domain.SpendingTransaction, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if err := s.policy.Authorize(actor, ActionEditTransaction); err != nil {
		return nil, err
	}
	if newAmount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: corrected amount must be positive", domain.ErrValidation)
	}

	original, err := s.ledgerRepo.GetTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if original.Status != domain.TransactionStatusPosted {
		return nil, domain.ErrTransactionNotFound
	}
	if original.Type == domain.TransactionTypeReversal {
		return nil, fmt.Errorf("%w: reversal entries cannot be edited", domain.ErrValidation)
	}

	delta := newAmount.Sub(original.Amount)
	if delta.IsZero() {
		return nil, fmt.Errorf("%w: corrected amount equals the recorded amount", domain.ErrValidation)
	}

	// The original row stays untouched; the difference is posted as a
	// compensating entry so the audit trail remains complete.
	entryType := domain.TransactionTypeManualDebit
	amount := delta
	if delta.IsNegative() {
		entryType = domain.TransactionTypeRefund
		amount = delta.Neg()
	}

	entry := newEntry(entryType, original.DriverID, amount, actor, notes)
	entry.RelatedTransactionID = &original.ID
	tx, err := s.ledgerRepo.Apply(ctx, entry)
	if err != nil {
		return nil, err
	}

	details := fmt.Sprintf("corrected %s from %s to %s", original.Reference, original.Amount, newAmount)
	s.record(ctx, actor, "edit_transaction", tx, details)
	return tx, nil
}

func (s *ledgerService) DeleteTransaction(ctx context.Context, actor domain.Actor, transactionID int64) (*domain.SpendingTransaction, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if err := s.policy.Authorize(actor, ActionDeleteTransaction); err != nil {
		return nil, err
	}

	original, err := s.ledgerRepo.GetTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if original.Type == domain.TransactionTypeReversal {
		return nil, fmt.Errorf("%w: reversal entries cannot be deleted", domain.ErrValidation)
	}

	reversal, err := s.ledgerRepo.Void(ctx, transactionID, actor.Name)
	if err != nil {
		return nil, err
	}

	details := fmt.Sprintf("voided %s (%s %s)", original.Reference, original.Type, original.Amount)
	s.record(ctx, actor, "delete_transaction", reversal, details)
	return reversal, nil
}

func (s *ledgerService) SetSpendingLimit(ctx context.Context, actor domain.Actor, driverID int64, limit decimal.Decimal) (*domain.SpendingAccount, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if limit.IsNegative() {
		return nil, fmt.Errorf("%w: spending limit must not be negative", domain.ErrValidation)
	}

	account, err := s.accountRepo.GetByDriver(ctx, driverID)
	if err == domain.ErrAccountNotFound {
		// Setting a limit is one of the two lazy-create paths, alongside top-up.
		return s.ensureAccount(ctx, driverID, limit)
	}
	if err != nil {
		return nil, err
	}

	if err := s.accountRepo.UpdateLimit(ctx, driverID, limit); err != nil {
		return nil, err
	}
	account.SpendingLimit = limit
	return account, nil
}

func (s *ledgerService) GetAccount(ctx context.Context, driverID int64) (*domain.SpendingAccount, error) {
	return s.accountRepo.GetByDriver(ctx, driverID)
}

func (s *ledgerService) ListTransactions(ctx context.Context, driverID int64, page, pageSize int32) ([]domain.SpendingTransaction, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}
	return s.ledgerRepo.ListByDriver(ctx, driverID, page, pageSize)
}
