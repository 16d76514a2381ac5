// Package audit records who did what, best effort. Recording happens after
// the authoritative transaction commits and its failure is swallowed and
// logged only; it never unwinds or blocks the primary operation.
package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"leavetrack/internal/events"
	"leavetrack/internal/messaging/kafka"
	"leavetrack/internal/shared/contextutil"
)

//go:generate mockgen -source=recorder.go -destination=mock/recorder_mock.go -package=mock
type Recorder interface {
	Record(ctx context.Context, actorID, action, details string)
}

type outboxRecorder struct {
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewOutboxRecorder(outbox kafka.OutboxRepository, logger ...*zap.Logger) Recorder {
	l := zap.L().Named("audit.recorder")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.recorder")
	}
	return &outboxRecorder{outbox: outbox, logger: l}
}

// Record enqueues an audit trail event for the outbox worker. Fire and
// forget: the write runs on its own goroutine with a detached context so a
// slow or unavailable sink cannot delay the caller.
func (r *outboxRecorder) Record(ctx context.Context, actorID, action, details string) {
	requestID := contextutil.GetRequestID(ctx)
	if actorID == "" {
		actorID = "system"
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		evt := events.AuditTrailEvent{
			EventType:  action,
			ActorID:    actorID,
			Action:     action,
			Details:    details,
			RequestID:  requestID,
			OccurredAt: time.Now().UTC(),
		}

		payload, err := json.Marshal(evt)
		if err != nil {
			r.logger.Warn("audit event dropped: marshal failed",
				zap.String("action", action),
				zap.Error(err),
			)
			return
		}

		err = r.outbox.Create(ctx, kafka.OutboxEvent{
			ID:        uuid.New().String(),
			RequestID: requestID,
			ActorID:   actorID,
			Action:    action,
			Topic:     events.AuditTrailTopic,
			Payload:   payload,
			Status:    kafka.OutboxStatusPending,
		})
		if err != nil {
			r.logger.Warn("audit event dropped: outbox write failed",
				zap.String("actor_id", actorID),
				zap.String("action", action),
				zap.Error(err),
			)
		}
	}()
}
