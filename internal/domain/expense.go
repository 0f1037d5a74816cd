package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ExpenseCategory string

const (
	ExpenseCategoryFuel      ExpenseCategory = "FUEL"
	ExpenseCategoryTicketing ExpenseCategory = "TICKETING"
	// ExpenseCategoryAllowance entries also debit the driver's spending account.
	ExpenseCategoryAllowance ExpenseCategory = "ALLOWANCE"
)

func (c ExpenseCategory) Valid() bool {
	switch c {
	case ExpenseCategoryFuel, ExpenseCategoryTicketing, ExpenseCategoryAllowance:
		return true
	}
	return false
}

// ExpenseTransaction is the categorized expense ledger, separate from the
// driver spending ledger. Only the Allowance category touches the spending
// account balance.
type ExpenseTransaction struct {
	ID          int64           `json:"id"`
	DriverID    int64           `json:"driver_id"`
	Category    ExpenseCategory `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	BookingID   *int64          `json:"booking_id,omitempty"`
	CreatedBy   string          `json:"created_by"`
	CreatedOn   time.Time       `json:"created_on"`
}
