package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"fleetops-backend/internal/domain"
	"fleetops-backend/internal/repository"
)

type ledgerRepository struct {
	db *sql.DB
}

func NewLedgerRepository(db *sql.DB) repository.LedgerRepository {
	return &ledgerRepository{db: db}
}

const transactionColumns = `id, reference, driver_id, account_id, transaction_type, direction,
	amount, balance_after, booking_id, week_number, year, status,
	related_transaction_id, created_by, COALESCE(notes, ''), created_on`

func scanTransaction(row interface{ Scan(...any) error }) (*domain.SpendingTransaction, error) {
	var t domain.SpendingTransaction
	err := row.Scan(&t.ID, &t.Reference, &t.DriverID, &t.AccountID, &t.Type, &t.Direction,
		&t.Amount, &t.BalanceAfter, &t.BookingID, &t.WeekNumber, &t.Year, &t.Status,
		&t.RelatedTransactionID, &t.CreatedBy, &t.Notes, &t.CreatedOn)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// accountUpdateFor returns the balance-and-counter update statement for an
// entry type. The arithmetic lives in SQL so two concurrent mutations on the
// same account serialize at the row instead of clobbering each other's
// read-modify-write.
func accountUpdateFor(entryType domain.TransactionType) (string, error) {
	switch entryType {
	case domain.TransactionTypeTopUp:
		// A top-up may bring the balance up to the limit but not past it.
		return `UPDATE driver_spending_accounts
		        SET current_balance = current_balance + $1,
		            total_topped_up = total_topped_up + $1,
		            updated_on = NOW()
		        WHERE driver_id = $2 AND current_balance + $1 <= spending_limit
		        RETURNING id, current_balance`, nil
	case domain.TransactionTypeExpense:
		// No floor: the balance is allowed to go negative.
		return `UPDATE driver_spending_accounts
		        SET current_balance = current_balance - $1,
		            total_spent = total_spent + $1,
		            weekly_spent = weekly_spent + $1,
		            daily_spent = daily_spent + $1,
		            updated_on = NOW()
		        WHERE driver_id = $2
		        RETURNING id, current_balance`, nil
	case domain.TransactionTypeManualDebit:
		return `UPDATE driver_spending_accounts
		        SET current_balance = current_balance - $1,
		            updated_on = NOW()
		        WHERE driver_id = $2
		        RETURNING id, current_balance`, nil
	case domain.TransactionTypeRefund:
		return `UPDATE driver_spending_accounts
		        SET current_balance = current_balance + $1,
		            updated_on = NOW()
		        WHERE driver_id = $2
		        RETURNING id, current_balance`, nil
	default:
		return "", fmt.Errorf("unsupported ledger entry type %q", entryType)
	}
}

func (r *ledgerRepository) Apply(ctx context.Context, entry *domain.LedgerEntry) (*domain.SpendingTransaction, error) {
	update, err := accountUpdateFor(entry.Type)
	if err != nil {
		return nil, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var accountID int64
	var balanceAfter decimal.Decimal
	err = tx.QueryRowContext(ctx, update, entry.Amount, entry.DriverID).Scan(&accountID, &balanceAfter)
	if errors.Is(err, sql.ErrNoRows) {
		if entry.Type != domain.TransactionTypeTopUp {
			return nil, domain.ErrAccountNotFound
		}
		// Zero rows on a top-up means either no account or the limit guard
		// rejected the update. Disambiguate before reporting.
		var exists bool
		checkErr := tx.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM driver_spending_accounts WHERE driver_id = $1)`,
			entry.DriverID).Scan(&exists)
		if checkErr != nil {
			return nil, checkErr
		}
		if exists {
			return nil, domain.ErrLimitExceeded
		}
		return nil, domain.ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}

	posted := &domain.SpendingTransaction{
		Reference:            entry.Reference,
		DriverID:             entry.DriverID,
		AccountID:            accountID,
		Type:                 entry.Type,
		Direction:            entry.Direction(),
		Amount:               entry.Amount,
		BalanceAfter:         balanceAfter,
		BookingID:            entry.BookingID,
		WeekNumber:           entry.WeekNumber,
		Year:                 entry.Year,
		Status:               domain.TransactionStatusPosted,
		RelatedTransactionID: entry.RelatedTransactionID,
		CreatedBy:            entry.CreatedBy,
		Notes:                entry.Notes,
	}

	insert := `INSERT INTO driver_spending_transactions
	           (reference, driver_id, account_id, transaction_type, direction, amount,
	            balance_after, booking_id, week_number, year, status, related_transaction_id,
	            created_by, notes)
	           VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	           RETURNING id, created_on`
	err = tx.QueryRowContext(ctx, insert,
		posted.Reference, posted.DriverID, posted.AccountID, posted.Type, posted.Direction,
		posted.Amount, posted.BalanceAfter, posted.BookingID, posted.WeekNumber, posted.Year,
		posted.Status, posted.RelatedTransactionID, posted.CreatedBy, posted.Notes).
		Scan(&posted.ID, &posted.CreatedOn)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return posted, nil
}

// reversalUpdateFor undoes the balance and counter effects of the original
// entry type. Weekly/daily counters floor at zero so a reversal landing after
// a period reset cannot drive them negative.
func reversalUpdateFor(original *domain.SpendingTransaction) string {
	switch original.Type {
	case domain.TransactionTypeTopUp:
		return `UPDATE driver_spending_accounts
		        SET current_balance = current_balance - $1,
		            total_topped_up = total_topped_up - $1,
		            updated_on = NOW()
		        WHERE id = $2
		        RETURNING current_balance`
	case domain.TransactionTypeExpense:
		return `UPDATE driver_spending_accounts
		        SET current_balance = current_balance + $1,
		            total_spent = total_spent - $1,
		            weekly_spent = GREATEST(weekly_spent - $1, 0),
		            daily_spent = GREATEST(daily_spent - $1, 0),
		            updated_on = NOW()
		        WHERE id = $2
		        RETURNING current_balance`
	default:
		if original.Direction == domain.DirectionDebit {
			return `UPDATE driver_spending_accounts
			        SET current_balance = current_balance + $1,
			            updated_on = NOW()
			        WHERE id = $2
			        RETURNING current_balance`
		}
		return `UPDATE driver_spending_accounts
		        SET current_balance = current_balance - $1,
		            updated_on = NOW()
		        WHERE id = $2
		        RETURNING current_balance`
	}
}

func (r *ledgerRepository) Void(ctx context.Context, transactionID int64, voidedBy string) (*domain.SpendingTransaction, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `SELECT ` + transactionColumns + `
	          FROM driver_spending_transactions WHERE id = $1 AND status = 'POSTED' FOR UPDATE`
	original, err := scanTransaction(tx.QueryRowContext(ctx, query, transactionID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}

	var balanceAfter decimal.Decimal
	err = tx.QueryRowContext(ctx, reversalUpdateFor(original), original.Amount, original.AccountID).
		Scan(&balanceAfter)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE driver_spending_transactions SET status = 'VOID' WHERE id = $1`,
		original.ID); err != nil {
		return nil, err
	}

	direction := domain.DirectionCredit
	if original.Direction == domain.DirectionCredit {
		direction = domain.DirectionDebit
	}
	year, week := domain.WeekOf(time.Now())
	reversal := &domain.SpendingTransaction{
		Reference:            original.Reference + "-rev",
		DriverID:             original.DriverID,
		AccountID:            original.AccountID,
		Type:                 domain.TransactionTypeReversal,
		Direction:            direction,
		Amount:               original.Amount,
		BalanceAfter:         balanceAfter,
		WeekNumber:           week,
		Year:                 year,
		Status:               domain.TransactionStatusPosted,
		RelatedTransactionID: &original.ID,
		CreatedBy:            voidedBy,
		Notes:                fmt.Sprintf("reversal of %s", original.Reference),
	}

	insert := `INSERT INTO driver_spending_transactions
	           (reference, driver_id, account_id, transaction_type, direction, amount,
	            balance_after, booking_id, week_number, year, status, related_transaction_id,
	            created_by, notes)
	           VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	           RETURNING id, created_on`
	err = tx.QueryRowContext(ctx, insert,
		reversal.Reference, reversal.DriverID, reversal.AccountID, reversal.Type,
		reversal.Direction, reversal.Amount, reversal.BalanceAfter, reversal.BookingID,
		reversal.WeekNumber, reversal.Year, reversal.Status, reversal.RelatedTransactionID,
		reversal.CreatedBy, reversal.Notes).
		Scan(&reversal.ID, &reversal.CreatedOn)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return reversal, nil
}

func (r *ledgerRepository) GetTransaction(ctx context.Context, id int64) (*domain.SpendingTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM driver_spending_transactions WHERE id = $1`
	t, err := scanTransaction(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *ledgerRepository) ListByDriver(ctx context.Context, driverID int64, page, pageSize int32) ([]domain.SpendingTransaction, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + transactionColumns + `
	          FROM driver_spending_transactions
	          WHERE driver_id = $1 AND status = 'POSTED'
	          ORDER BY created_on DESC, id DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, driverID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var txs []domain.SpendingTransaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, err
		}
		txs = append(txs, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var count int32
	countQuery := `SELECT count(*) FROM driver_spending_transactions
	               WHERE driver_id = $1 AND status = 'POSTED'`
	if err := r.db.QueryRowContext(ctx, countQuery, driverID).Scan(&count); err != nil {
		return nil, 0, err
	}
	return txs, count, nil
}

func (r *ledgerRepository) SumDebitsSince(ctx context.Context, driverID int64, since time.Time) (decimal.Decimal, error) {
	var sum decimal.Decimal
	query := `SELECT COALESCE(SUM(amount), 0) FROM driver_spending_transactions
	          WHERE driver_id = $1 AND direction = 'DEBIT' AND status = 'POSTED'
	          AND transaction_type <> 'reversal' AND created_on >= $2`
	err := r.db.QueryRowContext(ctx, query, driverID, since).Scan(&sum)
	return sum, err
}

// SumSigned sums every row regardless of VOID status: a void only hides the
// row from listings, the compensating reversal carries its undo, so the full
// log always reconciles with current_balance.
func (r *ledgerRepository) SumSigned(ctx context.Context, driverID int64) (decimal.Decimal, error) {
	var sum decimal.Decimal
	query := `SELECT COALESCE(SUM(CASE WHEN direction = 'CREDIT' THEN amount ELSE -amount END), 0)
	          FROM driver_spending_transactions WHERE driver_id = $1`
	err := r.db.QueryRowContext(ctx, query, driverID).Scan(&sum)
	return sum, err
}
