package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeUserCreated            = "user.created"
	EventTypeUserUpdated            = "user.updated"
	EventTypeUserDeleted            = "user.deleted"
	EventTypeRolePermissionsUpdated = "role.permissions_updated"
	EventTypeEmployeeCreated        = "employee.created"
)

func newEvent(eventType, actor string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Actor:     actor,
		Data:      data,
	}
}

func NewUserCreatedEvent(actor, username, roleName string) BaseEvent {
	return newEvent(EventTypeUserCreated, actor, map[string]interface{}{
		"username":  username,
		"role_name": roleName,
	})
}

func NewUserUpdatedEvent(actor, username string, fields []string) BaseEvent {
	return newEvent(EventTypeUserUpdated, actor, map[string]interface{}{
		"username": username,
		"fields":   fields,
	})
}

func NewUserDeletedEvent(actor string, userID int64) BaseEvent {
	return newEvent(EventTypeUserDeleted, actor, map[string]interface{}{
		"user_id": userID,
	})
}

func NewRolePermissionsUpdatedEvent(actor, roleName string, permissions []string) BaseEvent {
	return newEvent(EventTypeRolePermissionsUpdated, actor, map[string]interface{}{
		"role_name":   roleName,
		"permissions": permissions,
	})
}

func NewEmployeeCreatedEvent(actor, username, departmentName, roleName string) BaseEvent {
	return newEvent(EventTypeEmployeeCreated, actor, map[string]interface{}{
		"username":        username,
		"department_name": departmentName,
		"role_name":       roleName,
	})
}

// Emit publishes event when p is non-nil. Publish errors are logged by the
// bus and never returned to callers.
func Emit(ctx context.Context, p Publisher, event Event) {
	if p == nil {
		return
	}
	_ = p.Publish(ctx, event)
}
