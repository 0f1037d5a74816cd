package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"fleetops-backend/internal/domain"
	"fleetops-backend/internal/repository"
)

type reportService struct {
	ledgerRepo  repository.LedgerRepository
	accountRepo repository.SpendingAccountRepository
}

func NewReportService(ledgerRepo repository.LedgerRepository, accountRepo repository.SpendingAccountRepository) ReportService {
	return &reportService{ledgerRepo: ledgerRepo, accountRepo: accountRepo}
}

// GetSpendSummary aggregates spend live from the transaction log. The daily
// and weekly windows are summed independently of the counters maintained on
// the account row, so this read reflects the log even if the counters have
// drifted since the last reset.
func (s *reportService) GetSpendSummary(ctx context.Context, driverID int64, at time.Time) (*domain.SpendSummary, error) {
	account, err := s.accountRepo.GetByDriver(ctx, driverID)
	if err != nil {
		return nil, err
	}

	var daily, weekly decimal.Decimal
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		daily, err = s.ledgerRepo.SumDebitsSince(gctx, driverID, domain.DayStart(at))
		return err
	})
	g.Go(func() error {
		var err error
		weekly, err = s.ledgerRepo.SumDebitsSince(gctx, driverID, domain.WeekStart(at))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	year, week := domain.WeekOf(at)
	return &domain.SpendSummary{
		DriverID:       driverID,
		DailySpent:     daily,
		WeeklySpent:    weekly,
		TotalSpent:     account.TotalSpent,
		CurrentBalance: account.CurrentBalance,
		SpendingLimit:  account.SpendingLimit,
		WeekNumber:     week,
		Year:           year,
		AsOf:           at,
	}, nil
}
