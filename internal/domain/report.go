package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SpendSummary is computed live from the transaction log, independent of the
// denormalized counters on the account row.
type SpendSummary struct {
	DriverID       int64           `json:"driver_id"`
	DailySpent     decimal.Decimal `json:"daily_spent"`
	WeeklySpent    decimal.Decimal `json:"weekly_spent"`
	TotalSpent     decimal.Decimal `json:"total_spent"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	SpendingLimit  decimal.Decimal `json:"spending_limit"`
	WeekNumber     int             `json:"week_number"`
	Year           int             `json:"year"`
	AsOf           time.Time       `json:"as_of"`
}

type OverdraftSeverity string

const (
	OverdraftSeverityNone     OverdraftSeverity = "none"
	OverdraftSeverityWarning  OverdraftSeverity = "warning"
	OverdraftSeverityCritical OverdraftSeverity = "critical"
)

type OverdraftEntry struct {
	DriverID            int64             `json:"driver_id"`
	DriverName          string            `json:"driver_name"`
	CurrentBalance      decimal.Decimal   `json:"current_balance"`
	SpendingLimit       decimal.Decimal   `json:"spending_limit"`
	OverdraftAmount     decimal.Decimal   `json:"overdraft_amount"`
	IsOverdrawn         bool              `json:"is_overdrawn"`
	LimitPercentageUsed decimal.Decimal   `json:"limit_percentage_used"`
	Severity            OverdraftSeverity `json:"severity"`
}

type OverdraftSummary struct {
	TotalSystemOverdraft  decimal.Decimal `json:"total_system_overdraft"`
	TotalDriversOverdrawn int             `json:"total_drivers_overdrawn"`
	CriticalCases         int             `json:"critical_cases"`
	AverageOverdraft      decimal.Decimal `json:"average_overdraft"`
}

type OverdraftReport struct {
	Entries []OverdraftEntry `json:"entries"`
	Summary OverdraftSummary `json:"summary"`
}
