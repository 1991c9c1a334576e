package employee

import (
	"encoding/json"
	"time"

	"hris-account/internal/events"
	"hris-account/internal/messaging/kafka"

	"github.com/google/uuid"
)

// NewCreatedOutboxEvent builds the pending outbox row announcing emp. It is
// written in the same transaction as the employee itself.
func NewCreatedOutboxEvent(emp Employee, requestID string, occurredAt time.Time) (kafka.OutboxEvent, error) {
	event := events.EmployeeCreatedEvent{
		EventType:  events.EmployeeCreatedEventType,
		RequestID:  requestID,
		EmployeeID: emp.ID.String(),
		UserID:     emp.UserID.String(),
		Name:       emp.Name,
		Email:      emp.Email,
		Position:   emp.Position,
		OccurredAt: occurredAt.UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return kafka.OutboxEvent{}, err
	}

	return kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     requestID,
		AggregateType: "employee",
		AggregateID:   emp.ID.String(),
		EventType:     event.EventType,
		Topic:         events.EmployeeCreatedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}, nil
}
