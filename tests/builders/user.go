package builders

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"gitlab.com/campusfound/campusfound-backend/internal/domain/user"
	"gitlab.com/campusfound/campusfound-backend/internal/domain/valueobject/role"
)

// TestPasswordCost keeps bcrypt cheap in tests.
const TestPasswordCost = 4

const (
	DefaultEmail    = "aruzhan.k@campus.edu"
	DefaultPassword = "sup3r-secret"
)

type UserBuilder struct {
	id        user.ID
	email     string
	firstName string
	lastName  string
	role      role.Role
	avatarURL string
	passHash  []byte
	createdAt time.Time
	updatedAt time.Time
}

func NewUserBuilder() *UserBuilder {
	hash, _ := bcrypt.GenerateFromPassword([]byte(DefaultPassword), TestPasswordCost)
	now := time.Now().UTC()

	return &UserBuilder{
		id:        user.NewID(),
		email:     DefaultEmail,
		firstName: "Aruzhan",
		lastName:  "Kazbekova",
		role:      role.Student,
		passHash:  hash,
		createdAt: now,
		updatedAt: now,
	}
}

func (b *UserBuilder) WithID(id user.ID) *UserBuilder {
	b.id = id
	return b
}

func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

func (b *UserBuilder) WithName(firstName, lastName string) *UserBuilder {
	b.firstName = firstName
	b.lastName = lastName
	return b
}

func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.passHash, _ = bcrypt.GenerateFromPassword([]byte(password), TestPasswordCost)
	return b
}

func (b *UserBuilder) WithRole(r role.Role) *UserBuilder {
	b.role = r
	return b
}

func (b *UserBuilder) WithAvatarURL(url string) *UserBuilder {
	b.avatarURL = url
	return b
}

func (b *UserBuilder) Build() *user.User {
	return user.Rehydrate(user.RehydrateArgs{
		ID:        b.id,
		Email:     b.email,
		FirstName: b.firstName,
		LastName:  b.lastName,
		Role:      b.role,
		AvatarURL: b.avatarURL,
		PassHash:  b.passHash,
		CreatedAt: b.createdAt,
		UpdatedAt: b.updatedAt,
	})
}
