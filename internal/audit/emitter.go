package audit

import (
	"context"
	"time"

	"gitlab.com/dirk.krummacker/relationship-service/internal/metrics"
	"go.uber.org/zap"
)

const defaultEnqueueTimeout = 2 * time.Second

// Emitter hands audit entries to a queue on a fire-and-forget basis.
type Emitter struct {
	queue   Queue
	logger  *zap.Logger
	timeout time.Duration
}

// NewEmitter creates an emitter. A non-positive timeout selects the default of two seconds.
func NewEmitter(queue Queue, logger *zap.Logger, timeout time.Duration) *Emitter {
	if timeout <= 0 {
		timeout = defaultEnqueueTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Emitter{queue: queue, logger: logger, timeout: timeout}
}

// Emit enqueues the entry. It never fails from the caller's point of view: a rejected entry is
// logged and counted, and the cancellation of ctx does not abort the hand-off.
func (e *Emitter) Emit(ctx context.Context, entry Entry) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.timeout)
	defer cancel()

	if err := e.queue.Enqueue(ctx, entry); err != nil {
		metrics.AuditEnqueueFailures.Inc()
		e.logger.Warn("could not enqueue audit entry",
			zap.String("action", entry.Action),
			zap.Int64("author_id", entry.AuthorId),
			zap.Int64("about_contact_id", entry.AboutContactId),
			zap.Error(err),
		)
		return
	}
	metrics.AuditEventsEnqueued.Inc()
}
