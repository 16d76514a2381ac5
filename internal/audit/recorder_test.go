package audit_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"leavetrack/internal/audit"
	"leavetrack/internal/events"
	"leavetrack/internal/messaging/kafka"
)

type fakeOutboxRepository struct {
	created  chan kafka.OutboxEvent
	createFn func(ctx context.Context, event kafka.OutboxEvent) error
}

func newFakeOutboxRepository() *fakeOutboxRepository {
	return &fakeOutboxRepository{created: make(chan kafka.OutboxEvent, 1)}
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.createFn != nil {
		if err := f.createFn(ctx, event); err != nil {
			return err
		}
	}
	f.created <- event
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error   { return nil }
func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id, r string) error { return nil }

func waitForEvent(t *testing.T, ch chan kafka.OutboxEvent) kafka.OutboxEvent {
	t.Helper()
	select {
	case evt := <-ch:
		return evt
	case <-time.After(2 * time.Second):
		t.Fatal("no outbox event recorded")
		return kafka.OutboxEvent{}
	}
}

func TestOutboxRecorder_Record(t *testing.T) {
	t.Run("enqueues a pending event on the audit topic", func(t *testing.T) {
		repo := newFakeOutboxRepository()
		rec := audit.NewOutboxRecorder(repo)

		rec.Record(context.Background(), "actor-1", events.ActionCreateRequest, "Created vacation request #1 for 5 days")

		evt := waitForEvent(t, repo.created)
		assert.Equal(t, events.AuditTrailTopic, evt.Topic)
		assert.Equal(t, kafka.OutboxStatusPending, evt.Status)
		assert.Equal(t, events.ActionCreateRequest, evt.Action)
		assert.Equal(t, "actor-1", evt.ActorID)

		var payload events.AuditTrailEvent
		assert.NoError(t, json.Unmarshal(evt.Payload, &payload))
		assert.Equal(t, "actor-1", payload.ActorID)
		assert.Equal(t, "Created vacation request #1 for 5 days", payload.Details)
	})

	t.Run("empty actor recorded as system", func(t *testing.T) {
		repo := newFakeOutboxRepository()
		rec := audit.NewOutboxRecorder(repo)

		rec.Record(context.Background(), "", events.ActionServerShutdown, "Server is shutting down")

		evt := waitForEvent(t, repo.created)
		var payload events.AuditTrailEvent
		assert.NoError(t, json.Unmarshal(evt.Payload, &payload))
		assert.Equal(t, "system", payload.ActorID)
	})

	t.Run("sink failure does not reach the caller", func(t *testing.T) {
		repo := newFakeOutboxRepository()
		repo.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
			return errors.New("outbox unavailable")
		}
		rec := audit.NewOutboxRecorder(repo)

		// Record never returns an error and never panics; it only logs.
		rec.Record(context.Background(), "actor-1", events.ActionUpdateBalance, "Updated balance")
		time.Sleep(50 * time.Millisecond)
	})
}
