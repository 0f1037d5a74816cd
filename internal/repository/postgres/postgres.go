package postgres

import (
	"database/sql"

	"fleetops-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.DriverRepository
	repository.SpendingAccountRepository
	repository.LedgerRepository
	repository.ExpenseRepository
	repository.AuditLogRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                        db,
		DriverRepository:          NewDriverRepository(db),
		SpendingAccountRepository: NewSpendingAccountRepository(db),
		LedgerRepository:          NewLedgerRepository(db),
		ExpenseRepository:         NewExpenseRepository(db),
		AuditLogRepository:        NewAuditLogRepository(db),
	}
}
