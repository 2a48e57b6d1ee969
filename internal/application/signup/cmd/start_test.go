package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/campusfound/campusfound-backend/internal/domain/user"
	"gitlab.com/campusfound/campusfound-backend/internal/domain/verification"
	"gitlab.com/campusfound/campusfound-backend/tests/builders"
	"gitlab.com/campusfound/campusfound-backend/tests/mocks"
)

type StartSuite struct {
	Handler  *StartHandler
	UserRepo *mocks.UserRepo
	CodeRepo *mocks.VerificationRepo
}

func NewStartSuite() *StartSuite {
	userRepo := mocks.NewUserRepo()
	codeRepo := mocks.NewVerificationRepo()
	codes := newVerificationFacade(codeRepo)

	handler := NewStartHandler(StartHandlerArgs{
		UserGetter: userRepo,
		CodeIssuer: codes,
	})

	return &StartSuite{
		Handler:  handler,
		UserRepo: userRepo,
		CodeRepo: codeRepo,
	}
}

func validStart() Start {
	return Start{
		Email:     builders.DefaultEmail,
		FirstName: "Aruzhan",
		LastName:  "Kazbekova",
		Password:  builders.DefaultPassword,
	}
}

func TestStartHandler_HappyPath(t *testing.T) {
	t.Parallel()

	s := NewStartSuite()

	err := s.Handler.Handle(t.Context(), validStart())
	require.NoError(t, err)

	s.CodeRepo.AssertRecordCountByEmail(t, builders.DefaultEmail, 1)

	e := mocks.RequireEventExists(t, s.CodeRepo.EventRepo, &verification.CodeIssued{})
	assert.Equal(t, builders.DefaultEmail, e.Email)
}

func TestStartHandler_ShortPassword_NoCodeIssued(t *testing.T) {
	t.Parallel()

	tests := []string{"", "12345", "abcde"}

	for _, password := range tests {
		t.Run(password, func(t *testing.T) {
			t.Parallel()

			s := NewStartSuite()
			cmd := validStart()
			cmd.Password = password

			err := s.Handler.Handle(t.Context(), cmd)
			require.Error(t, err)

			s.CodeRepo.AssertRecordCountByEmail(t, cmd.Email, 0)
			s.CodeRepo.AssertEventCount(t, 0)
		})
	}
}

func TestStartHandler_InvalidFields_NoCodeIssued(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Start)
	}{
		{
			name:   "empty email",
			mutate: func(c *Start) { c.Email = "" },
		},
		{
			name:   "malformed email",
			mutate: func(c *Start) { c.Email = "not-an-email" },
		},
		{
			name:   "empty first name",
			mutate: func(c *Start) { c.FirstName = "" },
		},
		{
			name:   "single letter last name",
			mutate: func(c *Start) { c.LastName = "K" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := NewStartSuite()
			cmd := validStart()
			tt.mutate(&cmd)

			err := s.Handler.Handle(t.Context(), cmd)
			require.Error(t, err)

			s.CodeRepo.AssertEventCount(t, 0)
		})
	}
}

func TestStartHandler_EmailTaken_NoCodeIssued(t *testing.T) {
	t.Parallel()

	s := NewStartSuite()
	existing := builders.NewUserBuilder().Build()
	s.UserRepo.SeedUser(t, existing)

	err := s.Handler.Handle(t.Context(), validStart())
	require.Error(t, err)
	assert.ErrorIs(t, err, user.ErrEmailTaken)

	s.CodeRepo.AssertRecordCountByEmail(t, builders.DefaultEmail, 0)
}

func TestResendHandler_AppendsNewCode(t *testing.T) {
	t.Parallel()

	userRepo := mocks.NewUserRepo()
	codeRepo := mocks.NewVerificationRepo()
	codes := newVerificationFacade(codeRepo)

	start := NewStartHandler(StartHandlerArgs{
		UserGetter: userRepo,
		CodeIssuer: codes,
	})
	resend := NewResendHandler(ResendHandlerArgs{
		UserGetter: userRepo,
		CodeIssuer: codes,
	})

	require.NoError(t, start.Handle(t.Context(), validStart()))
	require.NoError(t, resend.Handle(t.Context(), Resend{Email: builders.DefaultEmail}))

	codeRepo.AssertRecordCountByEmail(t, builders.DefaultEmail, 2)

	e := mocks.RequireEventExists(t, codeRepo.EventRepo, &verification.CodeResent{})
	assert.Equal(t, builders.DefaultEmail, e.Email)
}
