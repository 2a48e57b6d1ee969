package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/campusfound/campusfound-backend/internal/domain/verification"
	"gitlab.com/campusfound/campusfound-backend/tests/builders"
	"gitlab.com/campusfound/campusfound-backend/tests/mocks"
)

type CheckSuite struct {
	Handler  *CheckCodeHandler
	MockRepo *mocks.VerificationRepo
	now      time.Time
}

func NewCheckSuite() *CheckSuite {
	mockRepo := mocks.NewVerificationRepo()
	now := time.Now().UTC()
	handler := NewCheckCodeHandler(CheckCodeHandlerArgs{
		Repo: mockRepo,
		Now:  func() time.Time { return now },
	})

	return &CheckSuite{
		Handler:  handler,
		MockRepo: mockRepo,
		now:      now,
	}
}

func TestCheckCodeHandler_HappyPath(t *testing.T) {
	t.Parallel()

	s := NewCheckSuite()
	rec := builders.NewRecordBuilder().WithCreatedAt(s.now).Build()
	s.MockRepo.SeedRecord(t, rec)

	err := s.Handler.Handle(t.Context(), CheckCode{
		Email: rec.Email(),
		Code:  rec.Code(),
	})
	require.NoError(t, err)
}

func TestCheckCodeHandler_UnknownPair_ShouldReturnInvalidCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cmd  CheckCode
	}{
		{
			name: "no record at all",
			cmd:  CheckCode{Email: builders.DefaultEmail, Code: "123456"},
		},
		{
			name: "wrong code for known email",
			cmd:  CheckCode{Email: builders.DefaultEmail, Code: "000000"},
		},
		{
			name: "right code for wrong email",
			cmd:  CheckCode{Email: "other@campus.edu", Code: builders.DefaultCode},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := NewCheckSuite()
			rec := builders.NewRecordBuilder().WithCreatedAt(s.now).Build()
			s.MockRepo.SeedRecord(t, rec)

			err := s.Handler.Handle(t.Context(), tt.cmd)
			require.Error(t, err)
			assert.ErrorIs(t, err, verification.ErrInvalidCode)
		})
	}
}

func TestCheckCodeHandler_Expiry_Boundaries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		age     time.Duration
		wantErr error
	}{
		{name: "fresh", age: time.Second},
		{name: "one second before ttl", age: verification.CodeTTL - time.Second},
		{name: "exactly at ttl", age: verification.CodeTTL},
		{name: "one second past ttl", age: verification.CodeTTL + time.Second, wantErr: verification.ErrCodeExpired},
		{name: "long past ttl", age: time.Hour, wantErr: verification.ErrCodeExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := NewCheckSuite()
			rec := builders.NewRecordBuilder().WithCreatedAt(s.now.Add(-tt.age)).Build()
			s.MockRepo.SeedRecord(t, rec)

			err := s.Handler.Handle(t.Context(), CheckCode{
				Email: rec.Email(),
				Code:  rec.Code(),
			})
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestCheckCodeHandler_RecordIsNotConsumed(t *testing.T) {
	t.Parallel()

	s := NewCheckSuite()
	rec := builders.NewRecordBuilder().WithCreatedAt(s.now).Build()
	s.MockRepo.SeedRecord(t, rec)

	for range 3 {
		err := s.Handler.Handle(t.Context(), CheckCode{
			Email: rec.Email(),
			Code:  rec.Code(),
		})
		require.NoError(t, err)
	}

	s.MockRepo.AssertRecordCountByEmail(t, rec.Email(), 1)
}

func TestCheckCodeHandler_OlderCodeStillValidAfterResend(t *testing.T) {
	t.Parallel()

	s := NewCheckSuite()
	first := builders.NewRecordBuilder().
		WithCode("111111").
		WithCreatedAt(s.now.Add(-30 * time.Second)).
		Build()
	second := builders.NewRecordBuilder().
		WithCode("222222").
		WithCreatedAt(s.now).
		Build()
	s.MockRepo.SeedRecord(t, first)
	s.MockRepo.SeedRecord(t, second)

	for _, code := range []string{"111111", "222222"} {
		err := s.Handler.Handle(t.Context(), CheckCode{
			Email: builders.DefaultEmail,
			Code:  code,
		})
		require.NoError(t, err, "code %s should be accepted", code)
	}
}
