package usercmd

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vcmd "gitlab.com/campusfound/campusfound-backend/internal/application/verification/cmd"
	"gitlab.com/campusfound/campusfound-backend/internal/domain/user"
	"gitlab.com/campusfound/campusfound-backend/internal/domain/verification"
	"gitlab.com/campusfound/campusfound-backend/tests/builders"
	"gitlab.com/campusfound/campusfound-backend/tests/mocks"
)

type codeFacade struct {
	issue *vcmd.IssueCodeHandler
	check *vcmd.CheckCodeHandler
}

func newCodeFacade(repo *mocks.VerificationRepo) *codeFacade {
	return &codeFacade{
		issue: vcmd.NewIssueCodeHandler(vcmd.IssueCodeHandlerArgs{Repo: repo}),
		check: vcmd.NewCheckCodeHandler(vcmd.CheckCodeHandlerArgs{Repo: repo}),
	}
}

func (f *codeFacade) IssueCode(ctx context.Context, email string) error {
	return f.issue.Handle(ctx, vcmd.IssueCode{Email: email})
}

func (f *codeFacade) CheckCode(ctx context.Context, email, code string) error {
	return f.check.Handle(ctx, vcmd.CheckCode{Email: email, Code: code})
}

type ChangePasswordSuite struct {
	Start    *ChangePasswordStartHandler
	Complete *ChangePasswordCompleteHandler
	UserRepo *mocks.UserRepo
	CodeRepo *mocks.VerificationRepo
	User     *user.User
}

func NewChangePasswordSuite(t *testing.T) *ChangePasswordSuite {
	t.Helper()

	userRepo := mocks.NewUserRepo()
	codeRepo := mocks.NewVerificationRepo()
	codes := newCodeFacade(codeRepo)

	u := builders.NewUserBuilder().Build()
	userRepo.SeedUser(t, u)

	return &ChangePasswordSuite{
		Start: NewChangePasswordStartHandler(ChangePasswordStartHandlerArgs{
			UserRepo:   userRepo,
			CodeIssuer: codes,
		}),
		Complete: NewChangePasswordCompleteHandler(ChangePasswordCompleteHandlerArgs{
			UserRepo:    userRepo,
			CodeChecker: codes,
		}),
		UserRepo: userRepo,
		CodeRepo: codeRepo,
		User:     u,
	}
}

func (s *ChangePasswordSuite) IssuedCode(t *testing.T) string {
	t.Helper()

	err := s.Start.Handle(t.Context(), ChangePasswordStart{
		UserID:          s.User.ID(),
		CurrentPassword: builders.DefaultPassword,
	})
	require.NoError(t, err)

	rec, err := s.CodeRepo.LatestByEmail(t.Context(), s.User.Email())
	require.NoError(t, err)
	return rec.Code()
}

func TestChangePasswordStart_HappyPath(t *testing.T) {
	t.Parallel()

	s := NewChangePasswordSuite(t)

	err := s.Start.Handle(t.Context(), ChangePasswordStart{
		UserID:          s.User.ID(),
		CurrentPassword: builders.DefaultPassword,
	})
	require.NoError(t, err)

	s.CodeRepo.AssertRecordCountByEmail(t, s.User.Email(), 1)
}

func TestChangePasswordStart_WrongCurrentPassword_NoCodeIssued(t *testing.T) {
	t.Parallel()

	s := NewChangePasswordSuite(t)

	err := s.Start.Handle(t.Context(), ChangePasswordStart{
		UserID:          s.User.ID(),
		CurrentPassword: "not-the-password",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, user.ErrWrongPassword)

	s.CodeRepo.AssertRecordCountByEmail(t, s.User.Email(), 0)
}

func TestChangePasswordComplete_HappyPath(t *testing.T) {
	t.Parallel()

	s := NewChangePasswordSuite(t)
	code := s.IssuedCode(t)
	next := "n3w-secret"

	err := s.Complete.Handle(t.Context(), ChangePasswordComplete{
		UserID:          s.User.ID(),
		CurrentPassword: builders.DefaultPassword,
		NewPassword:     next,
		Code:            code,
	})
	require.NoError(t, err)

	u, err := s.UserRepo.GetUserByID(t.Context(), s.User.ID())
	require.NoError(t, err)
	assert.NoError(t, u.ComparePassword(next))
	assert.Error(t, u.ComparePassword(builders.DefaultPassword))
}

func TestChangePasswordComplete_WrongCode(t *testing.T) {
	t.Parallel()

	s := NewChangePasswordSuite(t)
	code := s.IssuedCode(t)

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	err := s.Complete.Handle(t.Context(), ChangePasswordComplete{
		UserID:          s.User.ID(),
		CurrentPassword: builders.DefaultPassword,
		NewPassword:     "n3w-secret",
		Code:            wrong,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, verification.ErrInvalidCode)

	u, err := s.UserRepo.GetUserByID(t.Context(), s.User.ID())
	require.NoError(t, err)
	assert.NoError(t, u.ComparePassword(builders.DefaultPassword))
}

func TestChangePasswordComplete_ExpiredCode(t *testing.T) {
	t.Parallel()

	s := NewChangePasswordSuite(t)
	rec := builders.NewRecordBuilder().
		WithEmail(s.User.Email()).
		WithAge(verification.CodeTTL + time.Minute).
		Build()
	s.CodeRepo.SeedRecord(t, rec)

	err := s.Complete.Handle(t.Context(), ChangePasswordComplete{
		UserID:          s.User.ID(),
		CurrentPassword: builders.DefaultPassword,
		NewPassword:     "n3w-secret",
		Code:            rec.Code(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, verification.ErrCodeExpired)
}

// The commit step re-proves the current password on its own. A valid
// code does not stand in for it.
func TestChangePasswordComplete_WrongCurrentPasswordAtCommit(t *testing.T) {
	t.Parallel()

	s := NewChangePasswordSuite(t)
	code := s.IssuedCode(t)

	err := s.Complete.Handle(t.Context(), ChangePasswordComplete{
		UserID:          s.User.ID(),
		CurrentPassword: "not-the-password",
		NewPassword:     "n3w-secret",
		Code:            code,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, user.ErrWrongPassword)

	u, err := s.UserRepo.GetUserByID(t.Context(), s.User.ID())
	require.NoError(t, err)
	assert.NoError(t, u.ComparePassword(builders.DefaultPassword))
}

func TestChangePasswordComplete_ShortNewPassword(t *testing.T) {
	t.Parallel()

	s := NewChangePasswordSuite(t)
	code := s.IssuedCode(t)

	err := s.Complete.Handle(t.Context(), ChangePasswordComplete{
		UserID:          s.User.ID(),
		CurrentPassword: builders.DefaultPassword,
		NewPassword:     "short",
		Code:            code,
	})
	require.Error(t, err)

	u, err := s.UserRepo.GetUserByID(t.Context(), s.User.ID())
	require.NoError(t, err)
	assert.NoError(t, u.ComparePassword(builders.DefaultPassword))
}
