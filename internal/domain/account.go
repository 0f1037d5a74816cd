package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultSpendingLimit is applied when an account is created lazily
// without an explicit limit.
var DefaultSpendingLimit = decimal.NewFromInt(50000)

// SpendingAccount is the per-driver allowance account. current_balance is
// maintained transactionally alongside the transaction log; the spent/topped-up
// counters are denormalized running totals kept for fast reads.
type SpendingAccount struct {
	ID             int64           `json:"id"`
	DriverID       int64           `json:"driver_id"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	SpendingLimit  decimal.Decimal `json:"spending_limit"`
	WeeklySpent    decimal.Decimal `json:"weekly_spent"`
	DailySpent     decimal.Decimal `json:"daily_spent"`
	TotalToppedUp  decimal.Decimal `json:"total_topped_up"`
	TotalSpent     decimal.Decimal `json:"total_spent"`
	IsActive       bool            `json:"is_active"`
	WeekStartDate  *time.Time      `json:"week_start_date,omitempty"`
	LastDailyReset *time.Time      `json:"last_daily_reset,omitempty"`
	CreatedOn      time.Time       `json:"created_on"`
	UpdatedOn      time.Time       `json:"updated_on"`
}

// IsOverdrawn reports whether the balance has gone negative. Overdraft is a
// supported state, not an error.
func (a *SpendingAccount) IsOverdrawn() bool {
	return a.CurrentBalance.IsNegative()
}

// OverdraftAmount returns how far the balance is below zero, or zero.
func (a *SpendingAccount) OverdraftAmount() decimal.Decimal {
	if a.CurrentBalance.IsNegative() {
		return a.CurrentBalance.Neg()
	}
	return decimal.Zero
}

// AccountWithDriver pairs an account with its driver for reporting reads.
type AccountWithDriver struct {
	Account SpendingAccount `json:"account"`
	Driver  Driver          `json:"driver"`
}
