package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeTopUp       TransactionType = "top_up"
	TransactionTypeExpense     TransactionType = "expense"
	TransactionTypeManualDebit TransactionType = "manual_debit"
	TransactionTypeRefund      TransactionType = "refund"
	// TransactionTypeReversal is appended when a transaction is voided so the
	// balance stays reconstructable from the log alone.
	TransactionTypeReversal TransactionType = "reversal"
)

type TransactionDirection string

const (
	DirectionDebit  TransactionDirection = "DEBIT"
	DirectionCredit TransactionDirection = "CREDIT"
)

type TransactionStatus string

const (
	TransactionStatusPosted TransactionStatus = "POSTED"
	TransactionStatusVoid   TransactionStatus = "VOID"
)

// SpendingTransaction is a row in the driver spending ledger. Rows are never
// mutated after posting; corrections and deletions append compensating entries
// and voided rows are excluded from listings.
type SpendingTransaction struct {
	ID                   int64                `json:"id"`
	Reference            string               `json:"reference"`
	DriverID             int64                `json:"driver_id"`
	AccountID            int64                `json:"account_id"`
	Type                 TransactionType      `json:"transaction_type"`
	Direction            TransactionDirection `json:"direction"`
	Amount               decimal.Decimal      `json:"amount"` // magnitude; sign implied by direction
	BalanceAfter         decimal.Decimal      `json:"balance_after"`
	BookingID            *int64               `json:"booking_id,omitempty"`
	WeekNumber           int                  `json:"week_number"`
	Year                 int                  `json:"year"`
	Status               TransactionStatus    `json:"status"`
	RelatedTransactionID *int64               `json:"related_transaction_id,omitempty"`
	CreatedBy            string               `json:"created_by"`
	Notes                string               `json:"notes"`
	CreatedOn            time.Time            `json:"created_on"`
}

// SignedAmount applies the direction to the stored magnitude.
func (t *SpendingTransaction) SignedAmount() decimal.Decimal {
	if t.Direction == DirectionDebit {
		return t.Amount.Neg()
	}
	return t.Amount
}

// LedgerEntry is the command handed to the ledger repository. The repository
// applies it and the matching account update in one database transaction.
type LedgerEntry struct {
	Reference            string
	DriverID             int64
	AccountID            int64
	Type                 TransactionType
	Amount               decimal.Decimal // positive magnitude
	BookingID            *int64
	WeekNumber           int
	Year                 int
	RelatedTransactionID *int64
	CreatedBy            string
	Notes                string
}

// Direction derives the balance direction from the entry type.
func (e *LedgerEntry) Direction() TransactionDirection {
	switch e.Type {
	case TransactionTypeTopUp, TransactionTypeRefund:
		return DirectionCredit
	default:
		return DirectionDebit
	}
}
