package events

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/nikile1123/hris-backend/internal/shared/apperror"
)

// RoutingKey derives the topic routing key for an outbox event type.
// Employee events fan out per team, review events per employee. An
// unknown event type is a validation failure, never a silent drop.
func RoutingKey(eventType string, employeeID, teamID uuid.UUID) (string, error) {
	switch {
	case strings.HasPrefix(eventType, "employee."):
		return fmt.Sprintf("notification.employee.team.%s", teamID), nil
	case strings.HasPrefix(eventType, "review."):
		return fmt.Sprintf("notification.review.employee.%s", employeeID), nil
	default:
		return "", apperror.New(
			apperror.CodeInvalidInput,
			fmt.Sprintf("unknown event type: %s", eventType),
			http.StatusBadRequest,
		)
	}
}
