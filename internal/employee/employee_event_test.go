package employee_test

import (
	"encoding/json"
	"testing"
	"time"

	"hris-account/internal/employee"
	"hris-account/internal/events"
	"hris-account/internal/messaging/kafka"

	"github.com/stretchr/testify/assert"
)

func TestNewCreatedOutboxEvent(t *testing.T) {
	emp := newEmployee()
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	out, err := employee.NewCreatedOutboxEvent(*emp, "req-1", at)
	assert.NoError(t, err)
	assert.NoError(t, kafka.ValidateOutboxEvent(out))
	assert.Equal(t, events.EmployeeCreatedTopic, out.Topic)
	assert.Equal(t, emp.ID.String(), out.AggregateID)
	assert.Equal(t, kafka.OutboxStatusPending, out.Status)

	var ev events.EmployeeCreatedEvent
	assert.NoError(t, json.Unmarshal(out.Payload, &ev))
	assert.Equal(t, "employee_created", ev.EventType)
	assert.Equal(t, emp.Email, ev.Email)
	assert.Equal(t, emp.UserID.String(), ev.UserID)
	assert.Equal(t, "req-1", ev.RequestID)
	assert.True(t, at.Equal(ev.OccurredAt))
}
