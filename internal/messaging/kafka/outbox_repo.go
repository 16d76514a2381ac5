package kafka

import (
	"context"
	"database/sql"
	"time"
)

const (
	OutboxStatusPending = "pending"
	OutboxStatusSent    = "sent"
	OutboxStatusFailed  = "failed"
)

// maxBackoffShift caps the exponential backoff at roughly 21 minutes
// between publish attempts.
const maxBackoffShift = 8

// OutboxEvent is one audit trail entry staged for Kafka. ActorID doubles
// as the partition key so one person's trail stays ordered on the topic.
type OutboxEvent struct {
	ID            string
	RequestID     string
	ActorID       string
	Action        string
	Topic         string
	Payload       []byte
	Status        string
	Attempts      int
	NextAttemptAt time.Time
}

//go:generate mockgen -source=outbox_repo.go -destination=mock/outbox_repo_mock.go -package=mock

type OutboxRepository interface {
	WithTx(tx *sql.Tx) OutboxRepository
	Create(ctx context.Context, event OutboxEvent) error
	ListPending(ctx context.Context, limit int) ([]OutboxEvent, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, reason string) error
}

// querier is the slice of *sql.DB and *sql.Tx the repository needs, so
// staged writes can ride the caller's transaction.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

type outboxRepository struct {
	q querier
}

func NewOutboxRepository(db *sql.DB) OutboxRepository {
	return &outboxRepository{q: db}
}

func (r *outboxRepository) WithTx(tx *sql.Tx) OutboxRepository {
	return &outboxRepository{q: tx}
}

func (r *outboxRepository) Create(ctx context.Context, event OutboxEvent) error {
	_, err := r.q.ExecContext(ctx, `
INSERT INTO audit_outbox (id, request_id, actor_id, action, topic, payload, status)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`,
		event.ID, event.RequestID, event.ActorID,
		event.Action, event.Topic, event.Payload, event.Status,
	)
	return err
}

// ListPending returns due entries oldest first. Failed entries come back
// once their backoff window has passed.
func (r *outboxRepository) ListPending(ctx context.Context, limit int) ([]OutboxEvent, error) {
	rows, err := r.q.QueryContext(ctx, `
SELECT
	id::text,
	COALESCE(request_id, ''),
	actor_id,
	action,
	topic,
	payload,
	status,
	attempts,
	COALESCE(next_attempt_at, created_at)
FROM audit_outbox
WHERE status IN ($1, $2)
	AND (next_attempt_at IS NULL OR next_attempt_at <= NOW())
ORDER BY created_at ASC
LIMIT $3
`, OutboxStatusPending, OutboxStatusFailed, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]OutboxEvent, 0, limit)
	for rows.Next() {
		var e OutboxEvent
		if err := rows.Scan(
			&e.ID,
			&e.RequestID,
			&e.ActorID,
			&e.Action,
			&e.Topic,
			&e.Payload,
			&e.Status,
			&e.Attempts,
			&e.NextAttemptAt,
		); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *outboxRepository) MarkSent(ctx context.Context, id string) error {
	_, err := r.q.ExecContext(ctx, `
UPDATE audit_outbox
SET status = $2, sent_at = NOW(), last_error = NULL, updated_at = NOW()
WHERE id = $1
`, id, OutboxStatusSent)
	return err
}

// MarkFailed bumps the attempt counter and schedules the next try with
// exponential backoff: 5s, 10s, 20s and so on up to the cap.
func (r *outboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	_, err := r.q.ExecContext(ctx, `
UPDATE audit_outbox
SET
	status = $2,
	attempts = attempts + 1,
	last_error = LEFT($3, 500),
	next_attempt_at = NOW() + (INTERVAL '5 seconds' * (1 << LEAST(attempts, $4))),
	updated_at = NOW()
WHERE id = $1
`, id, OutboxStatusFailed, reason, maxBackoffShift)
	return err
}
