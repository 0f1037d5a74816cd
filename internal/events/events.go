package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"fleetops-backend/internal/domain"
)

// LedgerEvent is published after every posted ledger mutation so downstream
// views and caches can invalidate. Consumers are outside this repo.
type LedgerEvent struct {
	Reference    string                 `json:"reference"`
	DriverID     int64                  `json:"driver_id"`
	Type         domain.TransactionType `json:"type"`
	Amount       decimal.Decimal        `json:"amount"`
	BalanceAfter decimal.Decimal        `json:"balance_after"`
	OccurredAt   time.Time              `json:"occurred_at"`
}

func (e LedgerEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// Publisher emits ledger events. Publishing is best-effort: callers log
// failures and never fail the mutation over them.
type Publisher interface {
	PublishLedgerEvent(ctx context.Context, event LedgerEvent) error
	Close() error
}

// NoopPublisher is used when event publishing is disabled.
type NoopPublisher struct{}

func (NoopPublisher) PublishLedgerEvent(context.Context, LedgerEvent) error { return nil }
func (NoopPublisher) Close() error                                          { return nil }
