package item

import (
	"gitlab.com/campusfound/campusfound-backend/internal/domain/event"
	"gitlab.com/campusfound/campusfound-backend/internal/domain/user"
)

const EventStreamName = "events_item"

// Reported is consumed by the matcher-notification handler so the
// external matching engine learns about new reports.
type Reported struct {
	event.Header
	event.Otel
	ItemID     ID      `json:"item_id"`
	ReporterID user.ID `json:"reporter_id"`
	Kind       Kind    `json:"kind"`
	Name       string  `json:"name"`
}

func (e Reported) GetStreamName() string {
	return EventStreamName
}
