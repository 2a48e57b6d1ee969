package verification

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/campusfound/campusfound-backend/pkg/randcode"
)

const testEmail = "dana.s@campus.edu"

func TestNewRecord(t *testing.T) {
	t.Parallel()

	rec, err := NewRecord(testEmail)
	require.NoError(t, err)

	assert.Equal(t, testEmail, rec.Email())
	assert.Len(t, rec.Code(), CodeLength)
	assert.WithinDuration(t, time.Now().UTC(), rec.CreatedAt(), time.Second)
	assert.Equal(t, rec.CreatedAt().Add(CodeTTL), rec.ExpiresAt())

	n, err := strconv.Atoi(rec.Code())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, randcode.NumericCodeMin)
	assert.LessOrEqual(t, n, randcode.NumericCodeMax)

	events := rec.GetUncommittedEvents()
	require.Len(t, events, 1)
	issued, ok := events[0].(*CodeIssued)
	require.True(t, ok)
	assert.Equal(t, rec.ID(), issued.RecordID)
	assert.Equal(t, rec.Email(), issued.Email)
	assert.Equal(t, rec.Code(), issued.Code)
}

func TestNewRecord_InvalidEmail(t *testing.T) {
	t.Parallel()

	tests := []string{"", "missing-at-sign", "@", "a@"}
	for _, email := range tests {
		t.Run(email, func(t *testing.T) {
			t.Parallel()

			rec, err := NewRecord(email)
			require.Error(t, err)
			assert.Nil(t, rec)
		})
	}
}

func TestNewResentRecord(t *testing.T) {
	t.Parallel()

	rec, err := NewResentRecord(testEmail)
	require.NoError(t, err)

	events := rec.GetUncommittedEvents()
	require.Len(t, events, 1)
	resent, ok := events[0].(*CodeResent)
	require.True(t, ok)
	assert.Equal(t, rec.Code(), resent.Code)
}

func TestRecord_CheckAt(t *testing.T) {
	t.Parallel()

	created := time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC)
	rec := Rehydrate(RehydrateArgs{
		ID:        NewID(),
		Email:     testEmail,
		Code:      "314159",
		CreatedAt: created,
	})

	tests := []struct {
		name    string
		at      time.Time
		wantErr error
	}{
		{name: "immediately", at: created},
		{name: "within ttl", at: created.Add(119 * time.Second)},
		{name: "exactly ttl", at: created.Add(CodeTTL)},
		{name: "just past ttl", at: created.Add(121 * time.Second), wantErr: ErrCodeExpired},
		{name: "a day later", at: created.Add(24 * time.Hour), wantErr: ErrCodeExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := rec.CheckAt(tt.at)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestRecord_CheckAt_NilRecord(t *testing.T) {
	t.Parallel()

	var rec *Record
	err := rec.CheckAt(time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCode)
}
