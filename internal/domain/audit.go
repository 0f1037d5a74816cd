package domain

import "time"

// AuditEntry records who performed a ledger operation and against what.
type AuditEntry struct {
	ID             int64     `json:"id"`
	ActorName      string    `json:"actor_name"`
	ActorRole      Role      `json:"actor_role"`
	Action         string    `json:"action"`
	DriverID       int64     `json:"driver_id"`
	TransactionRef string    `json:"transaction_ref,omitempty"`
	Details        string    `json:"details,omitempty"`
	CreatedOn      time.Time `json:"created_on"`
}
