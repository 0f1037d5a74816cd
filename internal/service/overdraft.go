package service

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"fleetops-backend/internal/domain"
	"fleetops-backend/internal/repository"
)

type overdraftService struct {
	accountRepo repository.SpendingAccountRepository
}

func NewOverdraftService(accountRepo repository.SpendingAccountRepository) OverdraftService {
	return &overdraftService{accountRepo: accountRepo}
}

var hundred = decimal.NewFromInt(100)

// severityFor buckets an overdraft: critical past half the spending limit,
// warning for any other negative balance.
func severityFor(overdraft, limit decimal.Decimal) domain.OverdraftSeverity {
	if overdraft.IsZero() {
		return domain.OverdraftSeverityNone
	}
	half := limit.Div(decimal.NewFromInt(2))
	if limit.IsPositive() && overdraft.GreaterThan(half) {
		return domain.OverdraftSeverityCritical
	}
	return domain.OverdraftSeverityWarning
}

func (s *overdraftService) GetOverdraftReport(ctx context.Context, topN int) (*domain.OverdraftReport, error) {
	if topN <= 0 {
		topN = 20
	}

	accounts, err := s.accountRepo.ListWithDrivers(ctx)
	if err != nil {
		return nil, err
	}

	report := &domain.OverdraftReport{
		Summary: domain.OverdraftSummary{
			TotalSystemOverdraft: decimal.Zero,
			AverageOverdraft:     decimal.Zero,
		},
	}

	var entries []domain.OverdraftEntry
	for _, item := range accounts {
		account := item.Account
		overdraft := account.OverdraftAmount()

		limitUsed := decimal.Zero
		if account.SpendingLimit.IsPositive() {
			limitUsed = account.WeeklySpent.Div(account.SpendingLimit).Mul(hundred)
		}

		entry := domain.OverdraftEntry{
			DriverID:            account.DriverID,
			DriverName:          item.Driver.FullName,
			CurrentBalance:      account.CurrentBalance,
			SpendingLimit:       account.SpendingLimit,
			OverdraftAmount:     overdraft,
			IsOverdrawn:         account.IsOverdrawn(),
			LimitPercentageUsed: limitUsed,
			Severity:            severityFor(overdraft, account.SpendingLimit),
		}

		if entry.IsOverdrawn {
			report.Summary.TotalSystemOverdraft = report.Summary.TotalSystemOverdraft.Add(overdraft)
			report.Summary.TotalDriversOverdrawn++
			if entry.Severity == domain.OverdraftSeverityCritical {
				report.Summary.CriticalCases++
			}
		}

		entries = append(entries, entry)
	}

	if report.Summary.TotalDriversOverdrawn > 0 {
		report.Summary.AverageOverdraft = report.Summary.TotalSystemOverdraft.
			Div(decimal.NewFromInt(int64(report.Summary.TotalDriversOverdrawn)))
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].OverdraftAmount.GreaterThan(entries[j].OverdraftAmount)
	})
	if len(entries) > topN {
		entries = entries[:topN]
	}
	report.Entries = entries

	return report, nil
}
