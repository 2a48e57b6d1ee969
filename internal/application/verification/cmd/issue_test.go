package cmd

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/campusfound/campusfound-backend/internal/domain/verification"
	"gitlab.com/campusfound/campusfound-backend/tests/builders"
	"gitlab.com/campusfound/campusfound-backend/tests/mocks"
)

var sixDigitRx = regexp.MustCompile(`^[0-9]{6}$`)

func TestIssueCodeHandler_HappyPath(t *testing.T) {
	t.Parallel()

	mockRepo := mocks.NewVerificationRepo()
	handler := NewIssueCodeHandler(IssueCodeHandlerArgs{Repo: mockRepo})

	err := handler.Handle(t.Context(), IssueCode{Email: builders.DefaultEmail})
	require.NoError(t, err)

	rec, err := mockRepo.LatestByEmail(context.Background(), builders.DefaultEmail)
	require.NoError(t, err)
	assert.Regexp(t, sixDigitRx, rec.Code())
	assert.False(t, rec.CreatedAt().IsZero())

	e := mocks.RequireEventExists(t, mockRepo.EventRepo, &verification.CodeIssued{})
	assert.Equal(t, builders.DefaultEmail, e.Email)
	assert.Equal(t, rec.Code(), e.Code)
}

func TestIssueCodeHandler_InvalidEmail_ShouldReturnError(t *testing.T) {
	t.Parallel()

	tests := []string{"", "not-an-email", "a@"}

	for _, email := range tests {
		t.Run(email, func(t *testing.T) {
			t.Parallel()

			mockRepo := mocks.NewVerificationRepo()
			handler := NewIssueCodeHandler(IssueCodeHandlerArgs{Repo: mockRepo})

			err := handler.Handle(t.Context(), IssueCode{Email: email})
			require.Error(t, err)
			mockRepo.AssertRecordCountByEmail(t, email, 0)
			mockRepo.AssertEventCount(t, 0)
		})
	}
}

func TestResendCodeHandler_KeepsEarlierRecords(t *testing.T) {
	t.Parallel()

	mockRepo := mocks.NewVerificationRepo()
	issue := NewIssueCodeHandler(IssueCodeHandlerArgs{Repo: mockRepo})
	resend := NewResendCodeHandler(ResendCodeHandlerArgs{Repo: mockRepo})

	require.NoError(t, issue.Handle(t.Context(), IssueCode{Email: builders.DefaultEmail}))
	first, err := mockRepo.LatestByEmail(context.Background(), builders.DefaultEmail)
	require.NoError(t, err)

	require.NoError(t, resend.Handle(t.Context(), ResendCode{Email: builders.DefaultEmail}))

	mockRepo.AssertRecordCountByEmail(t, builders.DefaultEmail, 2)
	mockRepo.AssertRecordExists(t, builders.DefaultEmail, first.Code())

	e := mocks.RequireEventExists(t, mockRepo.EventRepo, &verification.CodeResent{})
	assert.Equal(t, builders.DefaultEmail, e.Email)
}
