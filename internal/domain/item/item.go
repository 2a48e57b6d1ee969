package item

import (
	"encoding/json"
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"gitlab.com/campusfound/campusfound-backend/internal/domain/event"
	"gitlab.com/campusfound/campusfound-backend/internal/domain/user"
	"gitlab.com/campusfound/campusfound-backend/pkg/errorx"
)

const (
	MinNameLen        = 2
	MaxNameLen        = 120
	MaxDescriptionLen = 2000
	MaxLocationLen    = 200

	MinPhotoSize = 100
	MaxPhotoSize = 10 * 1024 * 1024 // 10 MB
)

type Kind string

const (
	KindLost  Kind = "lost"
	KindFound Kind = "found"
)

func (k Kind) String() string {
	return string(k)
}

func (k Kind) Valid() bool {
	return k == KindLost || k == KindFound
}

type Status string

const (
	StatusOpen     Status = "open"
	StatusResolved Status = "resolved"
)

func (s Status) String() string {
	return string(s)
}

type ID uuid.UUID

func NewID() ID {
	return ID(uuid.New())
}

func (id ID) String() string {
	return uuid.UUID(id).String()
}

func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(uuid.UUID(id).String())
}

func (id *ID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	uid, err := uuid.Parse(s)
	if err != nil {
		return err
	}

	*id = ID(uid)
	return nil
}

// Item is a lost or found report. Matching against other reports happens
// in an external engine; this aggregate only carries what that engine and
// the UI need.
type Item struct {
	event.Recorder
	id          ID
	reporterID  user.ID
	kind        Kind
	name        string
	description string
	location    string
	photoURL    string
	status      Status
	createdAt   time.Time
	updatedAt   time.Time
}

type NewItemArgs struct {
	ReporterID  user.ID
	Kind        Kind
	Name        string
	Description string
	Location    string
	PhotoURL    string
}

func NewItem(args NewItemArgs) (*Item, error) {
	const op = "item.NewItem"
	if args.ReporterID.IsZero() {
		return nil, errorx.Wrap(errors.New("reporter id is required"), op)
	}
	if !args.Kind.Valid() {
		return nil, errorx.Wrap(ErrInvalidKind, op)
	}

	err := validation.Errors{
		"name":        validation.Validate(&args.Name, validation.Required, validation.Length(MinNameLen, MaxNameLen)),
		"description": validation.Validate(&args.Description, validation.Length(0, MaxDescriptionLen)),
		"location":    validation.Validate(&args.Location, validation.Required, validation.Length(1, MaxLocationLen)),
	}.Filter()
	if err != nil {
		return nil, errorx.Wrap(err, op)
	}

	now := time.Now().UTC()
	it := &Item{
		id:          NewID(),
		reporterID:  args.ReporterID,
		kind:        args.Kind,
		name:        args.Name,
		description: args.Description,
		location:    args.Location,
		photoURL:    args.PhotoURL,
		status:      StatusOpen,
		createdAt:   now,
		updatedAt:   now,
	}

	it.AddEvent(&Reported{
		Header:     event.NewEventHeader(),
		ItemID:     it.id,
		ReporterID: it.reporterID,
		Kind:       it.kind,
		Name:       it.name,
	})

	return it, nil
}

type RehydrateArgs struct {
	ID          ID
	ReporterID  user.ID
	Kind        Kind
	Name        string
	Description string
	Location    string
	PhotoURL    string
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func Rehydrate(args RehydrateArgs) *Item {
	return &Item{
		id:          args.ID,
		reporterID:  args.ReporterID,
		kind:        args.Kind,
		name:        args.Name,
		description: args.Description,
		location:    args.Location,
		photoURL:    args.PhotoURL,
		status:      args.Status,
		createdAt:   args.CreatedAt,
		updatedAt:   args.UpdatedAt,
	}
}

// Resolve closes the report. Only the reporter may resolve it.
func (i *Item) Resolve(by user.ID) error {
	const op = "item.Item.Resolve"
	if i == nil {
		return errorx.Wrap(errors.New("item is nil"), op)
	}
	if i.reporterID != by {
		return errorx.Wrap(ErrNotReporter, op)
	}
	if i.status == StatusResolved {
		return errorx.Wrap(ErrAlreadyResolved, op)
	}

	i.status = StatusResolved
	i.updatedAt = time.Now().UTC()
	return nil
}

func (i *Item) ID() ID {
	if i == nil {
		return ID{}
	}
	return i.id
}

func (i *Item) ReporterID() user.ID {
	if i == nil {
		return user.ID{}
	}
	return i.reporterID
}

func (i *Item) Kind() Kind {
	if i == nil {
		return ""
	}
	return i.kind
}

func (i *Item) Name() string {
	if i == nil {
		return ""
	}
	return i.name
}

func (i *Item) Description() string {
	if i == nil {
		return ""
	}
	return i.description
}

func (i *Item) Location() string {
	if i == nil {
		return ""
	}
	return i.location
}

func (i *Item) PhotoURL() string {
	if i == nil {
		return ""
	}
	return i.photoURL
}

func (i *Item) Status() Status {
	if i == nil {
		return ""
	}
	return i.status
}

func (i *Item) CreatedAt() time.Time {
	if i == nil {
		return time.Time{}
	}
	return i.createdAt
}

func (i *Item) UpdatedAt() time.Time {
	if i == nil {
		return time.Time{}
	}
	return i.updatedAt
}
