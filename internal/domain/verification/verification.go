package verification

import (
	"encoding/json"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"gitlab.com/campusfound/campusfound-backend/internal/domain/event"
	"gitlab.com/campusfound/campusfound-backend/pkg/errorx"
	"gitlab.com/campusfound/campusfound-backend/pkg/randcode"
)

const (
	CodeLength = 6

	// CodeTTL is how long a code stays valid, measured from the
	// server-assigned creation time. Checks must compare against server
	// time; client-perceived elapsed time is not trusted.
	CodeTTL = 120 * time.Second

	// RetentionAge is how long spent records linger before the sweep
	// deletes them. Records are never removed by the verification flow
	// itself.
	RetentionAge = 24 * time.Hour
)

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

// Record is an immutable one-time-code record. Issuing never invalidates
// earlier records for the same email; each record expires on its own
// clock and a lookup matches on the exact (email, code) pair.
type Record struct {
	event.Recorder
	id        ID
	email     string
	code      string
	createdAt time.Time
}

// NewRecord issues a fresh code for the email and raises CodeIssued so
// the mail dispatcher delivers it.
func NewRecord(email string) (*Record, error) {
	const op = "verification.NewRecord"
	rec, err := newRecord(email)
	if err != nil {
		return nil, errorx.Wrap(err, op)
	}

	rec.AddEvent(&CodeIssued{
		Header:   event.NewEventHeader(),
		RecordID: rec.id,
		Email:    rec.email,
		Code:     rec.code,
	})

	return rec, nil
}

// NewResentRecord issues a fresh code in response to an explicit resend
// request. The raised event differs so the outgoing mail can say so, but
// the record itself behaves exactly like a first issue.
func NewResentRecord(email string) (*Record, error) {
	const op = "verification.NewResentRecord"
	rec, err := newRecord(email)
	if err != nil {
		return nil, errorx.Wrap(err, op)
	}

	rec.AddEvent(&CodeResent{
		Header:   event.NewEventHeader(),
		RecordID: rec.id,
		Email:    rec.email,
		Code:     rec.code,
	})

	return rec, nil
}

func newRecord(email string) (*Record, error) {
	err := validation.Validate(&email, validation.Required, validation.Length(3, 254), is.EmailFormat)
	if err != nil {
		return nil, err
	}

	code, err := randcode.SixDigit()
	if err != nil {
		return nil, err
	}

	return &Record{
		id:        NewID(),
		email:     email,
		code:      code,
		createdAt: time.Now().UTC(),
	}, nil
}

type RehydrateArgs struct {
	ID        ID
	Email     string
	Code      string
	CreatedAt time.Time
}

func Rehydrate(args RehydrateArgs) *Record {
	return &Record{
		id:        args.ID,
		email:     args.Email,
		code:      args.Code,
		createdAt: args.CreatedAt,
	}
}

// CheckAt reports whether the record is still acceptable at the given
// server time. A record is valid for exactly CodeTTL from its creation.
func (r *Record) CheckAt(now time.Time) error {
	const op = "verification.Record.CheckAt"
	if r == nil {
		return errorx.Wrap(ErrInvalidCode, op)
	}
	if now.Sub(r.createdAt) > CodeTTL {
		return errorx.Wrap(ErrCodeExpired, op)
	}
	return nil
}

func (r *Record) ID() ID {
	if r == nil {
		return ID{}
	}
	return r.id
}

func (r *Record) Email() string {
	if r == nil {
		return ""
	}
	return r.email
}

func (r *Record) Code() string {
	if r == nil {
		return ""
	}
	return r.code
}

func (r *Record) CreatedAt() time.Time {
	if r == nil {
		return time.Time{}
	}
	return r.createdAt
}

func (r *Record) ExpiresAt() time.Time {
	if r == nil {
		return time.Time{}
	}
	return r.createdAt.Add(CodeTTL)
}
