package builders

import (
	"time"

	"gitlab.com/campusfound/campusfound-backend/internal/domain/item"
	"gitlab.com/campusfound/campusfound-backend/internal/domain/user"
)

type ItemBuilder struct {
	id          item.ID
	reporterID  user.ID
	kind        item.Kind
	name        string
	description string
	location    string
	photoURL    string
	status      item.Status
	createdAt   time.Time
	updatedAt   time.Time
}

func NewItemBuilder() *ItemBuilder {
	now := time.Now().UTC()

	return &ItemBuilder{
		id:          item.NewID(),
		reporterID:  user.NewID(),
		kind:        item.KindLost,
		name:        "Black leather wallet",
		description: "Lost near the library entrance, has a student ID inside",
		location:    "Main library, 2nd floor",
		status:      item.StatusOpen,
		createdAt:   now,
		updatedAt:   now,
	}
}

func (b *ItemBuilder) WithID(id item.ID) *ItemBuilder {
	b.id = id
	return b
}

func (b *ItemBuilder) WithReporter(id user.ID) *ItemBuilder {
	b.reporterID = id
	return b
}

func (b *ItemBuilder) WithKind(kind item.Kind) *ItemBuilder {
	b.kind = kind
	return b
}

func (b *ItemBuilder) WithName(name string) *ItemBuilder {
	b.name = name
	return b
}

func (b *ItemBuilder) WithLocation(location string) *ItemBuilder {
	b.location = location
	return b
}

func (b *ItemBuilder) WithStatus(status item.Status) *ItemBuilder {
	b.status = status
	return b
}

func (b *ItemBuilder) WithPhotoURL(url string) *ItemBuilder {
	b.photoURL = url
	return b
}

func (b *ItemBuilder) Build() *item.Item {
	return item.Rehydrate(item.RehydrateArgs{
		ID:          b.id,
		ReporterID:  b.reporterID,
		Kind:        b.kind,
		Name:        b.name,
		Description: b.description,
		Location:    b.location,
		PhotoURL:    b.photoURL,
		Status:      b.status,
		CreatedAt:   b.createdAt,
		UpdatedAt:   b.updatedAt,
	})
}
