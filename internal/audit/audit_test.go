package audit

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/dirk.krummacker/relationship-service/internal/metrics"
	"gitlab.com/dirk.krummacker/relationship-service/internal/model"
	"go.uber.org/zap"
)

var auditedAt = time.Date(2026, time.October, 18, 9, 30, 0, 0, time.UTC)

// TestContactBirthdayUpdated checks the entry built for a birthday change, including the exact
// encoding of the objects document.
func TestContactBirthdayUpdated(t *testing.T) {
	contact := &model.Contact{Id: 29, AccountId: 3, Name: "Erika Mustermann"}
	entry := ContactBirthdayUpdated(3, 7, contact, auditedAt)

	assert.Equal(t, "contact_birthday_updated", entry.Action)
	assert.Equal(t, int64(3), entry.AccountId)
	assert.Equal(t, int64(7), entry.AuthorId)
	assert.Equal(t, int64(29), entry.AboutContactId)
	assert.True(t, entry.ShouldAppearOnDashboard)
	assert.Equal(t, `{"contact_name":"Erika Mustermann","contact_id":29}`, entry.Objects)
	assert.Equal(t, auditedAt, entry.AuditedAt)
}

// TestEmitEnqueues expects that an emitted entry reaches the queue and is counted.
func TestEmitEnqueues(t *testing.T) {
	queue := NewMemoryQueue(4)
	emitter := NewEmitter(queue, zap.NewNop(), time.Second)
	before := testutil.ToFloat64(metrics.AuditEventsEnqueued)

	emitter.Emit(context.Background(), Entry{Action: ActionContactBirthdayUpdated, AboutContactId: 1})

	assert.Equal(t, 1, queue.Len())
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.AuditEventsEnqueued))
}

// TestEmitIgnoresCallerCancellation expects that the hand-off happens even when the request
// context is already gone.
func TestEmitIgnoresCallerCancellation(t *testing.T) {
	queue := NewMemoryQueue(4)
	emitter := NewEmitter(queue, zap.NewNop(), time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	emitter.Emit(ctx, Entry{Action: ActionContactBirthdayUpdated})

	assert.Equal(t, 1, queue.Len())
}

// TestEmitSwallowsQueueFailure expects that a full queue is counted but not reported.
func TestEmitSwallowsQueueFailure(t *testing.T) {
	queue := NewMemoryQueue(1)
	emitter := NewEmitter(queue, zap.NewNop(), time.Second)
	before := testutil.ToFloat64(metrics.AuditEnqueueFailures)

	emitter.Emit(context.Background(), Entry{Action: ActionContactBirthdayUpdated})
	emitter.Emit(context.Background(), Entry{Action: ActionContactBirthdayUpdated})

	assert.Equal(t, 1, queue.Len())
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.AuditEnqueueFailures))
}

// TestWorkerDrainsQueue runs the worker until the queue is empty and then stops it.
func TestWorkerDrainsQueue(t *testing.T) {
	queue := NewMemoryQueue(4)
	require.NoError(t, queue.Enqueue(context.Background(), Entry{AboutContactId: 1}))
	require.NoError(t, queue.Enqueue(context.Background(), Entry{AboutContactId: 2}))

	delivered := make(chan Entry, 4)
	sink := func(_ context.Context, entry Entry) error {
		delivered <- entry
		if entry.AboutContactId == 1 {
			return errors.New("sink unavailable")
		}
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- NewWorker(queue.Entries(), sink, zap.NewNop()).Run(ctx) }()

	assert.Equal(t, int64(1), (<-delivered).AboutContactId)
	assert.Equal(t, int64(2), (<-delivered).AboutContactId)
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

// TestWorkerStopsOnClosedInbox expects that the worker returns when its inbox is closed.
func TestWorkerStopsOnClosedInbox(t *testing.T) {
	inbox := make(chan Entry)
	close(inbox)
	err := NewWorker(inbox, LogSink(zap.NewNop()), nil).Run(context.Background())
	assert.NoError(t, err)
}

// fakeRedis records LPUSH calls. All other commands are left unimplemented.
type fakeRedis struct {
	redis.Cmdable
	key    string
	values []interface{}
	err    error
}

func (f *fakeRedis) LPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx, "lpush", key)
	if f.err != nil {
		cmd.SetErr(f.err)
		return cmd
	}
	f.key = key
	f.values = append(f.values, values...)
	cmd.SetVal(int64(len(f.values)))
	return cmd
}

// TestRedisQueuePushesJSON expects the entry to be pushed as JSON onto the configured list.
func TestRedisQueuePushesJSON(t *testing.T) {
	client := &fakeRedis{}
	queue := NewRedisQueue(client, "")
	entry := ContactBirthdayUpdated(3, 7, &model.Contact{Id: 29, Name: "Erika Mustermann"}, auditedAt)

	require.NoError(t, queue.Enqueue(context.Background(), entry))

	assert.Equal(t, DefaultQueueKey, client.key)
	require.Len(t, client.values, 1)
	var decoded Entry
	require.NoError(t, json.Unmarshal(client.values[0].([]byte), &decoded))
	assert.Equal(t, entry, decoded)
}

// TestRedisQueueReportsFailure expects Redis errors to be returned to the emitter.
func TestRedisQueueReportsFailure(t *testing.T) {
	queue := NewRedisQueue(&fakeRedis{err: errors.New("connection refused")}, "jobs")
	err := queue.Enqueue(context.Background(), Entry{})
	assert.ErrorContains(t, err, "connection refused")
}
