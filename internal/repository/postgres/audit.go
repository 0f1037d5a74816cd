package postgres

import (
	"context"
	"database/sql"

	"fleetops-backend/internal/domain"
	"fleetops-backend/internal/repository"
)

type auditLogRepository struct {
	db *sql.DB
}

func NewAuditLogRepository(db *sql.DB) repository.AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) Append(ctx context.Context, entry *domain.AuditEntry) error {
	query := `INSERT INTO ledger_audit_log (actor_name, actor_role, action, driver_id, transaction_ref, details)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_on`
	return r.db.QueryRowContext(ctx, query,
		entry.ActorName, entry.ActorRole, entry.Action, entry.DriverID,
		entry.TransactionRef, entry.Details).
		Scan(&entry.ID, &entry.CreatedOn)
}

func (r *auditLogRepository) ListRecent(ctx context.Context, limit int32) ([]domain.AuditEntry, error) {
	query := `SELECT id, actor_name, actor_role, action, driver_id,
	          COALESCE(transaction_ref, ''), COALESCE(details, ''), created_on
	          FROM ledger_audit_log ORDER BY created_on DESC, id DESC LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.AuditEntry
	for rows.Next() {
		var e domain.AuditEntry
		if err := rows.Scan(&e.ID, &e.ActorName, &e.ActorRole, &e.Action, &e.DriverID,
			&e.TransactionRef, &e.Details, &e.CreatedOn); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
