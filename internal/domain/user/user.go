package user

import (
	"encoding/json"
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"gitlab.com/campusfound/campusfound-backend/internal/domain/event"
	"gitlab.com/campusfound/campusfound-backend/internal/domain/valueobject/role"
	"gitlab.com/campusfound/campusfound-backend/pkg/errorx"
	"gitlab.com/campusfound/campusfound-backend/pkg/validationx"
)

const PasswordCostFactor = 12

const MaxAvatarURLLen = 1000

type ID uuid.UUID

func NewID() ID {
	return ID(uuid.New())
}

func (id ID) String() string {
	return uuid.UUID(id).String()
}

func (id ID) IsZero() bool {
	return uuid.UUID(id) == uuid.Nil
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

type User struct {
	event.Recorder
	id        ID
	email     string
	firstName string
	lastName  string
	role      role.Role
	avatarURL string
	passHash  []byte
	createdAt time.Time
	updatedAt time.Time
}

type NewUserArgs struct {
	Email     string
	FirstName string
	LastName  string
	Password  string
	Role      role.Role
}

func NewUser(args NewUserArgs) (*User, error) {
	const op = "user.NewUser"
	err := validation.Errors{
		"email":      validation.Validate(&args.Email, validationx.EmailRules...),
		"first_name": validation.Validate(&args.FirstName, validationx.NameRules...),
		"last_name":  validation.Validate(&args.LastName, validationx.NameRules...),
		"password":   validation.Validate(&args.Password, validationx.PasswordRules...),
	}.Filter()
	if err != nil {
		return nil, errorx.Wrap(err, op)
	}

	if args.Role == "" {
		args.Role = role.Student
	}
	if !args.Role.Valid() {
		return nil, errorx.Wrap(ErrInvalidRole, op)
	}

	passhash, err := bcrypt.GenerateFromPassword([]byte(args.Password), PasswordCostFactor)
	if err != nil {
		return nil, errorx.Wrap(err, op)
	}

	now := time.Now().UTC()
	u := &User{
		id:        NewID(),
		email:     args.Email,
		firstName: args.FirstName,
		lastName:  args.LastName,
		role:      args.Role,
		passHash:  passhash,
		createdAt: now,
		updatedAt: now,
	}

	u.AddEvent(&Registered{
		Header:    event.NewEventHeader(),
		UserID:    u.id,
		Email:     u.email,
		FirstName: u.firstName,
		Role:      u.role,
	})

	return u, nil
}

type RehydrateArgs struct {
	ID        ID
	Email     string
	FirstName string
	LastName  string
	Role      role.Role
	AvatarURL string
	PassHash  []byte
	CreatedAt time.Time
	UpdatedAt time.Time
}

func Rehydrate(args RehydrateArgs) *User {
	return &User{
		id:        args.ID,
		email:     args.Email,
		firstName: args.FirstName,
		lastName:  args.LastName,
		role:      args.Role,
		avatarURL: args.AvatarURL,
		passHash:  args.PassHash,
		createdAt: args.CreatedAt,
		updatedAt: args.UpdatedAt,
	}
}

// ComparePassword re-proves the current credentials. Sensitive mutations
// call this both before a code is issued and again at commit time.
func (u *User) ComparePassword(password string) error {
	if u == nil {
		return errors.New("user is nil")
	}
	if err := bcrypt.CompareHashAndPassword(u.passHash, []byte(password)); err != nil {
		return ErrWrongPassword.WithCause(err)
	}
	return nil
}

// ChangePassword commits a new password after re-proving the current one.
func (u *User) ChangePassword(current, next string) error {
	const op = "user.User.ChangePassword"
	if err := u.ComparePassword(current); err != nil {
		return errorx.Wrap(err, op)
	}

	if err := validation.Validate(&next, validationx.PasswordRules...); err != nil {
		return errorx.Wrap(err, op)
	}

	passhash, err := bcrypt.GenerateFromPassword([]byte(next), PasswordCostFactor)
	if err != nil {
		return errorx.Wrap(err, op)
	}

	u.passHash = passhash
	u.updatedAt = time.Now().UTC()
	return nil
}

// SetAvatarURL stores the public URL of the uploaded photo and raises
// AvatarUpdated so cached profile snapshots are invalidated.
func (u *User) SetAvatarURL(url string) error {
	const op = "user.User.SetAvatarURL"
	if u == nil {
		return errors.New("user is nil")
	}
	err := validation.Validate(&url, validation.Required, validation.Length(1, MaxAvatarURLLen), is.URL)
	if err != nil {
		return errorx.Wrap(err, op)
	}

	u.avatarURL = url
	u.updatedAt = time.Now().UTC()
	u.AddEvent(&AvatarUpdated{
		Header:    event.NewEventHeader(),
		UserID:    u.id,
		AvatarURL: url,
	})
	return nil
}

// ClearAvatar drops the stored photo URL. Raises AvatarUpdated with an
// empty URL so cached profile snapshots are invalidated; a user without
// an avatar is left untouched.
func (u *User) ClearAvatar() error {
	if u == nil {
		return errors.New("user is nil")
	}
	if u.avatarURL == "" {
		return nil
	}

	u.avatarURL = ""
	u.updatedAt = time.Now().UTC()
	u.AddEvent(&AvatarUpdated{
		Header:    event.NewEventHeader(),
		UserID:    u.id,
		AvatarURL: "",
	})
	return nil
}

func (u *User) ID() ID {
	if u == nil {
		return ID{}
	}
	return u.id
}

func (u *User) Email() string {
	if u == nil {
		return ""
	}
	return u.email
}

func (u *User) FirstName() string {
	if u == nil {
		return ""
	}
	return u.firstName
}

func (u *User) LastName() string {
	if u == nil {
		return ""
	}
	return u.lastName
}

func (u *User) Role() role.Role {
	if u == nil {
		return ""
	}
	return u.role
}

func (u *User) AvatarURL() string {
	if u == nil {
		return ""
	}
	return u.avatarURL
}

func (u *User) PassHash() []byte {
	if u == nil {
		return nil
	}
	return u.passHash
}

func (u *User) CreatedAt() time.Time {
	if u == nil {
		return time.Time{}
	}
	return u.createdAt
}

func (u *User) UpdatedAt() time.Time {
	if u == nil {
		return time.Time{}
	}
	return u.updatedAt
}
