package workers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/campusfound/campusfound-backend/internal/domain/verification"
	"gitlab.com/campusfound/campusfound-backend/tests/builders"
	"gitlab.com/campusfound/campusfound-backend/tests/mocks"
)

func TestRetentionSweeper_Sweep(t *testing.T) {
	t.Parallel()

	repo := mocks.NewVerificationRepo()
	now := time.Now().UTC()

	stale := builders.NewRecordBuilder().
		WithCode("111111").
		WithCreatedAt(now.Add(-verification.RetentionAge - time.Hour)).
		Build()
	expiredButRetained := builders.NewRecordBuilder().
		WithCode("222222").
		WithCreatedAt(now.Add(-2 * verification.CodeTTL)).
		Build()
	fresh := builders.NewRecordBuilder().
		WithCode("333333").
		WithCreatedAt(now).
		Build()

	repo.SeedRecord(t, stale)
	repo.SeedRecord(t, expiredButRetained)
	repo.SeedRecord(t, fresh)

	sweeper := NewRetentionSweeper(RetentionSweeperArgs{
		Deleter: repo,
		Now:     func() time.Time { return now },
	})

	require.NoError(t, sweeper.Sweep(t.Context()))

	// Only records past the retention window go; an expired code inside
	// the window is still kept for support lookups.
	repo.AssertRecordCountByEmail(t, builders.DefaultEmail, 2)
	repo.AssertRecordExists(t, builders.DefaultEmail, "222222")
	repo.AssertRecordExists(t, builders.DefaultEmail, "333333")
}

func TestRetentionSweeper_Sweep_NothingToDelete(t *testing.T) {
	t.Parallel()

	repo := mocks.NewVerificationRepo()
	repo.SeedRecord(t, builders.NewRecordBuilder().Build())

	sweeper := NewRetentionSweeper(RetentionSweeperArgs{Deleter: repo})

	require.NoError(t, sweeper.Sweep(t.Context()))
	repo.AssertRecordCountByEmail(t, builders.DefaultEmail, 1)
}

func TestNewRetentionSweeper_RequiresDeleter(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		NewRetentionSweeper(RetentionSweeperArgs{})
	})
}

func TestRetentionSweeper_StartAndStop(t *testing.T) {
	t.Parallel()

	repo := mocks.NewVerificationRepo()
	sweeper := NewRetentionSweeper(RetentionSweeperArgs{
		Deleter:  repo,
		Schedule: "@every 1h",
	})

	require.NoError(t, sweeper.Start())
	<-sweeper.Stop().Done()
}
