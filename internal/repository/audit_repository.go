package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AuditEntry is one recorded portal action.
type AuditEntry struct {
	ID        string
	EventType string
	SessionID string
	ActorRole string
	ActorID   int
	Payload   []byte
	CreatedAt time.Time
}

// AuditRepository defines persistence access for the portal audit trail.
type AuditRepository interface {
	Append(ctx context.Context, entry *AuditEntry) error
	ListRecent(ctx context.Context, limit int) ([]AuditEntry, error)
}

type auditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository returns a Postgres-backed implementation.
func NewAuditRepository(pool *pgxpool.Pool) AuditRepository {
	return &auditRepository{pool: pool}
}

func (r *auditRepository) Append(ctx context.Context, entry *AuditEntry) error {
	const query = `
        INSERT INTO audit_log (id, event_type, session_id, actor_role, actor_id, payload)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		entry.ID,
		entry.EventType,
		entry.SessionID,
		entry.ActorRole,
		entry.ActorID,
		entry.Payload,
	).Scan(&entry.CreatedAt)
}

func (r *auditRepository) ListRecent(ctx context.Context, limit int) ([]AuditEntry, error) {
	const query = `
        SELECT id, event_type, session_id, actor_role, actor_id, payload, created_at
        FROM audit_log ORDER BY created_at DESC LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []AuditEntry
	for rows.Next() {
		var entry AuditEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.EventType,
			&entry.SessionID,
			&entry.ActorRole,
			&entry.ActorID,
			&entry.Payload,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
