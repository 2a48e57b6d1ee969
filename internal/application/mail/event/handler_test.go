package mailevent_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mailevent "gitlab.com/campusfound/campusfound-backend/internal/application/mail/event"
	"gitlab.com/campusfound/campusfound-backend/internal/domain/event"
	"gitlab.com/campusfound/campusfound-backend/internal/domain/user"
	"gitlab.com/campusfound/campusfound-backend/internal/domain/verification"
	"gitlab.com/campusfound/campusfound-backend/tests/builders"
	"gitlab.com/campusfound/campusfound-backend/tests/mocks"
)

func newHandler(sender *mocks.MockMailSender) *mailevent.MailEventHandler {
	return mailevent.NewMailEventHandler(mailevent.MailEventHandlerArgs{
		Mailsender: sender,
		AppBaseURL: "http://localhost:3000",
	})
}

func TestMailEventHandler_HandleCodeIssued(t *testing.T) {
	t.Parallel()

	sender := mocks.NewMockMailSender()
	handler := newHandler(sender)

	err := handler.HandleCodeIssued(t.Context(), &verification.CodeIssued{
		Header:   event.NewEventHeader(),
		RecordID: verification.NewID(),
		Email:    builders.DefaultEmail,
		Code:     builders.DefaultCode,
	})
	require.NoError(t, err)

	sender.AssertMailSent(t, builders.DefaultEmail, mailevent.CodeIssuedSubject)

	sent := sender.GetSentMails()
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].HTML, builders.DefaultCode)
	assert.Contains(t, sent[0].HTML, "expires in 2 minutes")
}

func TestMailEventHandler_HandleCodeIssued_InvalidEvent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		email string
		code  string
	}{
		{name: "missing email", email: "", code: builders.DefaultCode},
		{name: "malformed email", email: "not-an-email", code: builders.DefaultCode},
		{name: "missing code", email: builders.DefaultEmail, code: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sender := mocks.NewMockMailSender()
			handler := newHandler(sender)

			err := handler.HandleCodeIssued(t.Context(), &verification.CodeIssued{
				Header:   event.NewEventHeader(),
				RecordID: verification.NewID(),
				Email:    tt.email,
				Code:     tt.code,
			})
			require.Error(t, err)
			assert.Empty(t, sender.GetSentMails())
		})
	}
}

func TestMailEventHandler_HandleCodeResent(t *testing.T) {
	t.Parallel()

	sender := mocks.NewMockMailSender()
	handler := newHandler(sender)

	err := handler.HandleCodeResent(t.Context(), &verification.CodeResent{
		Header:   event.NewEventHeader(),
		RecordID: verification.NewID(),
		Email:    builders.DefaultEmail,
		Code:     "271828",
	})
	require.NoError(t, err)

	sender.AssertMailSent(t, builders.DefaultEmail, mailevent.CodeResentSubject)

	sent := sender.GetSentMails()
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].HTML, "271828")
}

func TestMailEventHandler_HandleUserRegistered(t *testing.T) {
	t.Parallel()

	sender := mocks.NewMockMailSender()
	handler := newHandler(sender)

	err := handler.HandleUserRegistered(t.Context(), &user.Registered{
		Header:    event.NewEventHeader(),
		UserID:    user.NewID(),
		Email:     builders.DefaultEmail,
		FirstName: "Aruzhan",
	})
	require.NoError(t, err)

	sender.AssertMailSent(t, builders.DefaultEmail, mailevent.UserRegisteredSubject)

	sent := sender.GetSentMails()
	require.Len(t, sent, 1)
	assert.True(t, strings.Contains(sent[0].HTML, "Aruzhan"))
}

func TestMailEventHandler_NilEventsAreIgnored(t *testing.T) {
	t.Parallel()

	sender := mocks.NewMockMailSender()
	handler := newHandler(sender)

	require.NoError(t, handler.HandleCodeIssued(t.Context(), nil))
	require.NoError(t, handler.HandleCodeResent(t.Context(), nil))
	require.NoError(t, handler.HandleUserRegistered(t.Context(), nil))
	assert.Empty(t, sender.GetSentMails())
}
