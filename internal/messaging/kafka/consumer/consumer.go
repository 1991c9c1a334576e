package consumer

import (
	"context"
	"encoding/json"
	"time"

	"hris-account/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageFetcher is the subset of *kafkago.Reader used by the consumer.
type MessageFetcher interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

type WelcomeNotifier interface {
	NotifyEmployeeCreated(ctx context.Context, event events.EmployeeCreatedEvent) error
}

var (
	retryBackoff    = time.Second
	maxRetryBackoff = 30 * time.Second
)

// ConsumeEmployeeCreated sends a welcome mail for every employee_created event
// until ctx is cancelled. Messages are handled and committed in order: a
// message whose mail fails is retried before the next one is fetched.
func ConsumeEmployeeCreated(
	ctx context.Context,
	reader MessageFetcher,
	notifier WelcomeNotifier,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.employee_lifecycle")
	log.Info("employee lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("employee lifecycle consumer stopped")
				return
			}
			log.Error("fetch employee lifecycle message failed", zap.Error(err))
			continue
		}

		if !retryUntilDone(ctx, msg, notifier, log) {
			log.Info("employee lifecycle consumer stopped")
			return
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit employee lifecycle message failed", zap.Error(err))
		}
	}
}

// retryUntilDone handles msg with exponential backoff until it is done. It
// returns false only when ctx is cancelled first.
func retryUntilDone(
	ctx context.Context,
	msg kafkago.Message,
	notifier WelcomeNotifier,
	log *zap.Logger,
) bool {
	backoff := retryBackoff
	for !handleEmployeeCreated(ctx, msg, notifier, log) {
		if ctx.Err() != nil {
			return false
		}
		log.Warn("retrying employee_created message",
			zap.Int64("offset", msg.Offset),
			zap.Duration("backoff", backoff),
		)

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return false
		case <-timer.C:
		}

		backoff = min(backoff*2, maxRetryBackoff)
	}
	return true
}

// handleEmployeeCreated reports whether msg is done and may be committed.
// Undecodable and foreign events are done; a failed mail is not.
func handleEmployeeCreated(
	ctx context.Context,
	msg kafkago.Message,
	notifier WelcomeNotifier,
	log *zap.Logger,
) bool {
	var event events.EmployeeCreatedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode employee_created event failed", zap.Error(err))
		return true
	}

	if event.EventType != events.EmployeeCreatedEventType {
		log.Debug("skipping event", zap.String("event_type", event.EventType))
		return true
	}

	if err := notifier.NotifyEmployeeCreated(ctx, event); err != nil {
		log.Error("send welcome mail failed",
			zap.String("employee_id", event.EmployeeID),
			zap.String("request_id", event.RequestID),
			zap.Error(err),
		)
		return false
	}

	log.Info("welcome mail sent",
		zap.String("employee_id", event.EmployeeID),
		zap.String("request_id", event.RequestID),
	)
	return true
}
