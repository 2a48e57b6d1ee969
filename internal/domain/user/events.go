package user

import (
	"gitlab.com/campusfound/campusfound-backend/internal/domain/event"
	"gitlab.com/campusfound/campusfound-backend/internal/domain/valueobject/role"
)

const EventStreamName = "events_user"

type Registered struct {
	event.Header
	event.Otel
	UserID    ID        `json:"user_id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	Role      role.Role `json:"role"`
}

func (e Registered) GetStreamName() string {
	return EventStreamName
}

// AvatarUpdated is the invalidation signal for cached profile snapshots.
type AvatarUpdated struct {
	event.Header
	event.Otel
	UserID    ID     `json:"user_id"`
	AvatarURL string `json:"avatar_url"`
}

func (e AvatarUpdated) GetStreamName() string {
	return EventStreamName
}
