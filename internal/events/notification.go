package events

import (
	"time"

	"github.com/google/uuid"
)

// Notification is the transient broker payload built by the relay from
// an outbox row. It is never persisted downstream.
type Notification struct {
	ID               uuid.UUID `json:"id"`
	EmployeeID       uuid.UUID `json:"employeeId"`
	TeamID           uuid.UUID `json:"teamId"`
	NotificationType string    `json:"notificationType"`
	Message          string    `json:"message"`
	CreatedAt        time.Time `json:"createdAt"`
}
