package verification

import (
	"gitlab.com/campusfound/campusfound-backend/internal/domain/event"
)

const EventStreamName = "events_verification"

type CodeIssued struct {
	event.Header
	event.Otel
	RecordID ID     `json:"record_id"`
	Email    string `json:"email"`
	Code     string `json:"code"`
}

func (e CodeIssued) GetStreamName() string {
	return EventStreamName
}

type CodeResent struct {
	event.Header
	event.Otel
	RecordID ID     `json:"record_id"`
	Email    string `json:"email"`
	Code     string `json:"code"`
}

func (e CodeResent) GetStreamName() string {
	return EventStreamName
}
