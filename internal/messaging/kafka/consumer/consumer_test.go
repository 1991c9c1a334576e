package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"hris-account/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeNotifier struct {
	err      error
	failures int
	sent     []events.EmployeeCreatedEvent
	trace    *[]string
	onFail   func()
}

func (f *fakeNotifier) NotifyEmployeeCreated(_ context.Context, event events.EmployeeCreatedEvent) error {
	if f.trace != nil {
		*f.trace = append(*f.trace, "notify "+event.EmployeeID)
	}
	if f.err != nil || f.failures > 0 {
		if f.failures > 0 {
			f.failures--
		}
		if f.onFail != nil {
			f.onFail()
		}
		if f.err != nil {
			return f.err
		}
		return errors.New("mailgun unavailable")
	}
	f.sent = append(f.sent, event)
	return nil
}

// fakeReader serves queued messages and then cancels the consumer.
type fakeReader struct {
	queue     []kafkago.Message
	committed []kafkago.Message
	trace     *[]string
	cancel    context.CancelFunc
}

func (f *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	if len(f.queue) == 0 {
		f.cancel()
		return kafkago.Message{}, ctx.Err()
	}
	msg := f.queue[0]
	f.queue = f.queue[1:]
	return msg, nil
}

func (f *fakeReader) CommitMessages(_ context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		if f.trace != nil {
			*f.trace = append(*f.trace, fmt.Sprintf("commit %d", m.Offset))
		}
	}
	f.committed = append(f.committed, msgs...)
	return nil
}

func shortBackoff(t *testing.T) {
	t.Helper()
	prev, prevMax := retryBackoff, maxRetryBackoff
	retryBackoff, maxRetryBackoff = time.Millisecond, 2*time.Millisecond
	t.Cleanup(func() { retryBackoff, maxRetryBackoff = prev, prevMax })
}

func eventMessage(t *testing.T, offset int64, event events.EmployeeCreatedEvent) kafkago.Message {
	t.Helper()
	payload, err := json.Marshal(event)
	assert.NoError(t, err)
	return kafkago.Message{Topic: events.EmployeeCreatedTopic, Offset: offset, Value: payload}
}

func sampleEvent() events.EmployeeCreatedEvent {
	return employeeEvent("emp-1")
}

func employeeEvent(employeeID string) events.EmployeeCreatedEvent {
	return events.EmployeeCreatedEvent{
		EventType:  events.EmployeeCreatedEventType,
		RequestID:  "rid-1",
		EmployeeID: employeeID,
		UserID:     "user-1",
		Name:       "Jane",
		Email:      "jane@example.com",
		Position:   "Engineer",
		OccurredAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestHandleEmployeeCreated(t *testing.T) {
	log := zap.NewNop()
	ctx := context.Background()

	t.Run("sends welcome mail", func(t *testing.T) {
		notifier := &fakeNotifier{}
		done := handleEmployeeCreated(ctx, eventMessage(t, 1, sampleEvent()), notifier, log)

		assert.True(t, done)
		assert.Len(t, notifier.sent, 1)
		assert.Equal(t, "jane@example.com", notifier.sent[0].Email)
	})

	t.Run("undecodable payload is committed", func(t *testing.T) {
		notifier := &fakeNotifier{}
		done := handleEmployeeCreated(ctx, kafkago.Message{Value: []byte("{broken")}, notifier, log)

		assert.True(t, done)
		assert.Empty(t, notifier.sent)
	})

	t.Run("other event types are skipped", func(t *testing.T) {
		event := sampleEvent()
		event.EventType = "employee_deleted"
		notifier := &fakeNotifier{}
		done := handleEmployeeCreated(ctx, eventMessage(t, 1, event), notifier, log)

		assert.True(t, done)
		assert.Empty(t, notifier.sent)
	})

	t.Run("mail failure is not done", func(t *testing.T) {
		notifier := &fakeNotifier{err: errors.New("mailgun unavailable")}
		done := handleEmployeeCreated(ctx, eventMessage(t, 1, sampleEvent()), notifier, log)

		assert.False(t, done)
	})
}

func TestConsumeEmployeeCreated(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	good := eventMessage(t, 1, sampleEvent())
	broken := kafkago.Message{Offset: 2, Value: []byte("not json")}

	reader := &fakeReader{queue: []kafkago.Message{good, broken}, cancel: cancel}
	notifier := &fakeNotifier{}

	ConsumeEmployeeCreated(ctx, reader, notifier, zap.NewNop())

	assert.Len(t, notifier.sent, 1)
	if assert.Len(t, reader.committed, 2) {
		assert.Equal(t, int64(1), reader.committed[0].Offset)
		assert.Equal(t, int64(2), reader.committed[1].Offset)
	}
}

func TestConsumeEmployeeCreated_FailedMailIsRetriedBeforeNextMessage(t *testing.T) {
	shortBackoff(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var trace []string
	reader := &fakeReader{
		queue: []kafkago.Message{
			eventMessage(t, 1, employeeEvent("emp-1")),
			eventMessage(t, 2, employeeEvent("emp-2")),
		},
		trace:  &trace,
		cancel: cancel,
	}
	notifier := &fakeNotifier{failures: 1, trace: &trace}

	ConsumeEmployeeCreated(ctx, reader, notifier, zap.NewNop())

	assert.Equal(t, []string{
		"notify emp-1",
		"notify emp-1",
		"commit 1",
		"notify emp-2",
		"commit 2",
	}, trace)
	assert.Len(t, notifier.sent, 2)
}

func TestConsumeEmployeeCreated_CancelDuringRetryLeavesMessageUncommitted(t *testing.T) {
	shortBackoff(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	attempts := 0
	reader := &fakeReader{queue: []kafkago.Message{eventMessage(t, 1, sampleEvent())}, cancel: cancel}
	notifier := &fakeNotifier{err: errors.New("mailgun unavailable")}
	notifier.onFail = func() {
		attempts++
		if attempts == 3 {
			cancel()
		}
	}

	ConsumeEmployeeCreated(ctx, reader, notifier, zap.NewNop())

	assert.Equal(t, 3, attempts)
	assert.Empty(t, reader.committed)
}
