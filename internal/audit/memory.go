package audit

import (
	"context"

	"go.uber.org/zap"
)

// MemoryQueue is a bounded in-process queue. Enqueue never blocks.
type MemoryQueue struct {
	entries chan Entry
}

// NewMemoryQueue creates a queue holding at most capacity entries.
func NewMemoryQueue(capacity int) *MemoryQueue {
	if capacity <= 0 {
		capacity = 1024
	}
	return &MemoryQueue{entries: make(chan Entry, capacity)}
}

// Enqueue adds the entry or returns ErrQueueFull.
func (q *MemoryQueue) Enqueue(ctx context.Context, entry Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case q.entries <- entry:
		return nil
	default:
		return ErrQueueFull
	}
}

// Entries is the receiving side of the queue.
func (q *MemoryQueue) Entries() <-chan Entry {
	return q.entries
}

// Len returns the number of waiting entries.
func (q *MemoryQueue) Len() int {
	return len(q.entries)
}

// Sink delivers a dequeued entry to its final destination.
type Sink func(ctx context.Context, entry Entry) error

// LogSink writes entries to the logger. It is the destination in setups without a job queue.
func LogSink(logger *zap.Logger) Sink {
	return func(_ context.Context, entry Entry) error {
		logger.Info("audit",
			zap.String("action", entry.Action),
			zap.Int64("account_id", entry.AccountId),
			zap.Int64("author_id", entry.AuthorId),
			zap.Int64("about_contact_id", entry.AboutContactId),
			zap.Bool("should_appear_on_dashboard", entry.ShouldAppearOnDashboard),
			zap.String("objects", entry.Objects),
			zap.Time("audited_at", entry.AuditedAt),
		)
		return nil
	}
}

// Worker drains an inbox into a sink until its context is cancelled or the inbox is closed.
type Worker struct {
	inbox  <-chan Entry
	sink   Sink
	logger *zap.Logger
}

// NewWorker creates a worker.
func NewWorker(inbox <-chan Entry, sink Sink, logger *zap.Logger) *Worker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Worker{inbox: inbox, sink: sink, logger: logger}
}

// Run processes entries. A failing sink is logged; the entry is not retried.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case entry, ok := <-w.inbox:
			if !ok {
				return nil
			}
			if err := w.sink(ctx, entry); err != nil {
				w.logger.Error("audit sink failed",
					zap.String("action", entry.Action),
					zap.Int64("about_contact_id", entry.AboutContactId),
					zap.Error(err),
				)
			}
		}
	}
}
