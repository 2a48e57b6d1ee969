package mocks

import (
	"context"
	"strings"
	"sync"
	"testing"

	"gitlab.com/campusfound/campusfound-backend/internal/domain/valueobject/mails"
)

type MockMailSender struct {
	mu        sync.Mutex
	sentMails []mails.Payload
}

func NewMockMailSender() *MockMailSender {
	return &MockMailSender{
		sentMails: make([]mails.Payload, 0),
	}
}

func (m *MockMailSender) SendMail(ctx context.Context, payload mails.Payload) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sentMails = append(m.sentMails, payload)
	return nil
}

func (m *MockMailSender) GetSentMails() []mails.Payload {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]mails.Payload{}, m.sentMails...)
}

func (m *MockMailSender) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sentMails = make([]mails.Payload, 0)
}

func (m *MockMailSender) AssertMailSent(t *testing.T, email, subject string) {
	t.Helper()

	for _, mail := range m.GetSentMails() {
		if mail.To == email && strings.Contains(mail.Subject, subject) {
			return
		}
	}
	t.Errorf("expected mail to %s with subject containing %q not found", email, subject)
}

func (m *MockMailSender) AssertNoMailSent(t *testing.T, email string) {
	t.Helper()

	for _, mail := range m.GetSentMails() {
		if mail.To == email {
			t.Errorf("expected no mail to %s, but found one with subject %q", email, mail.Subject)
			return
		}
	}
}
