package jobs

import (
	"context"
	"time"

	"fleetops-backend/internal/domain"
	"fleetops-backend/internal/logger"
)

// ResetDailySpend zeroes the daily_spent counter on all active accounts and
// stamps last_daily_reset. Invoked at the day boundary; the live aggregation
// in the report service does not depend on it.
func (jr *JobRunner) ResetDailySpend() {
	jr.runWithRecovery("ResetDailySpend", func() {
		ctx := context.Background()
		now := time.Now().UTC()

		count, err := jr.store.SpendingAccountRepository.ResetDaily(ctx, now)
		if err != nil {
			logger.Error("Failed to reset daily spend counters", "error", err)
			return
		}

		logger.Info("Daily spend counters reset", "accounts", count, "reset_at", now)
	})
}

// ResetWeeklySpend zeroes the weekly_spent counter on all active accounts and
// stamps week_start_date with the Monday of the current week.
func (jr *JobRunner) ResetWeeklySpend() {
	jr.runWithRecovery("ResetWeeklySpend", func() {
		ctx := context.Background()
		weekStart := domain.WeekStart(time.Now())

		count, err := jr.store.SpendingAccountRepository.ResetWeekly(ctx, weekStart)
		if err != nil {
			logger.Error("Failed to reset weekly spend counters", "error", err)
			return
		}

		logger.Info("Weekly spend counters reset", "accounts", count, "week_start", weekStart.Format("2006-01-02"))
	})
}

// ReconcileBalances compares each account's balance against the signed sum of
// its transaction log and logs any drift. Read-only: drift means a bug or
// manual database intervention and warrants a human look, not an automatic fix.
func (jr *JobRunner) ReconcileBalances() {
	jr.runWithRecovery("ReconcileBalances", func() {
		ctx := context.Background()

		query := `
			SELECT a.driver_id, a.current_balance,
			       COALESCE(SUM(CASE WHEN t.direction = 'CREDIT' THEN t.amount ELSE -t.amount END), 0) AS ledger_sum
			FROM driver_spending_accounts a
			LEFT JOIN driver_spending_transactions t ON t.account_id = a.id
			GROUP BY a.id, a.driver_id, a.current_balance
			HAVING a.current_balance <> COALESCE(SUM(CASE WHEN t.direction = 'CREDIT' THEN t.amount ELSE -t.amount END), 0)`

		rows, err := jr.db.QueryContext(ctx, query)
		if err != nil {
			logger.Error("Failed to run balance reconciliation", "error", err)
			return
		}
		defer rows.Close()

		drifted := 0
		for rows.Next() {
			var driverID int64
			var balance, ledgerSum string
			if err := rows.Scan(&driverID, &balance, &ledgerSum); err != nil {
				logger.Error("Failed to scan reconciliation row", "error", err)
				return
			}
			drifted++
			logger.Warn("Account balance drifted from transaction log",
				"driver_id", driverID,
				"current_balance", balance,
				"ledger_sum", ledgerSum)
		}
		if err := rows.Err(); err != nil {
			logger.Error("Reconciliation scan failed", "error", err)
			return
		}

		if drifted == 0 {
			logger.Info("All account balances reconcile with the transaction log")
		} else {
			logger.Warn("Balance reconciliation found drift", "accounts", drifted)
		}
	})
}
