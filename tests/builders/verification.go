package builders

import (
	"time"

	"gitlab.com/campusfound/campusfound-backend/internal/domain/verification"
)

const DefaultCode = "482913"

type RecordBuilder struct {
	id        verification.ID
	email     string
	code      string
	createdAt time.Time
}

func NewRecordBuilder() *RecordBuilder {
	return &RecordBuilder{
		id:        verification.NewID(),
		email:     DefaultEmail,
		code:      DefaultCode,
		createdAt: time.Now().UTC(),
	}
}

func (b *RecordBuilder) WithEmail(email string) *RecordBuilder {
	b.email = email
	return b
}

func (b *RecordBuilder) WithCode(code string) *RecordBuilder {
	b.code = code
	return b
}

func (b *RecordBuilder) WithCreatedAt(t time.Time) *RecordBuilder {
	b.createdAt = t
	return b
}

// WithAge backdates the record relative to now.
func (b *RecordBuilder) WithAge(age time.Duration) *RecordBuilder {
	b.createdAt = time.Now().UTC().Add(-age)
	return b
}

func (b *RecordBuilder) Build() *verification.Record {
	return verification.Rehydrate(verification.RehydrateArgs{
		ID:        b.id,
		Email:     b.email,
		Code:      b.code,
		CreatedAt: b.createdAt,
	})
}
