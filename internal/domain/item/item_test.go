package item

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/campusfound/campusfound-backend/internal/domain/user"
)

func validArgs() NewItemArgs {
	return NewItemArgs{
		ReporterID: user.NewID(),
		Kind:       KindLost,
		Name:       "Black leather wallet",
		Location:   "Main library, 2nd floor",
	}
}

func TestNewItem(t *testing.T) {
	t.Parallel()

	args := validArgs()
	it, err := NewItem(args)
	require.NoError(t, err)

	assert.Equal(t, args.ReporterID, it.ReporterID())
	assert.Equal(t, KindLost, it.Kind())
	assert.Equal(t, args.Name, it.Name())
	assert.Equal(t, StatusOpen, it.Status())
	assert.False(t, it.CreatedAt().IsZero())

	events := it.GetUncommittedEvents()
	require.Len(t, events, 1)
	reported, ok := events[0].(*Reported)
	require.True(t, ok)
	assert.Equal(t, it.ID(), reported.ItemID)
	assert.Equal(t, args.ReporterID, reported.ReporterID)
}

func TestNewItem_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*NewItemArgs)
		wantErr error
	}{
		{
			name:   "missing reporter",
			mutate: func(a *NewItemArgs) { a.ReporterID = user.ID{} },
		},
		{
			name:    "bad kind",
			mutate:  func(a *NewItemArgs) { a.Kind = "stolen" },
			wantErr: ErrInvalidKind,
		},
		{
			name:   "empty name",
			mutate: func(a *NewItemArgs) { a.Name = "" },
		},
		{
			name:   "single letter name",
			mutate: func(a *NewItemArgs) { a.Name = "x" },
		},
		{
			name:   "name too long",
			mutate: func(a *NewItemArgs) { a.Name = strings.Repeat("a", MaxNameLen+1) },
		},
		{
			name:   "empty location",
			mutate: func(a *NewItemArgs) { a.Location = "" },
		},
		{
			name:   "description too long",
			mutate: func(a *NewItemArgs) { a.Description = strings.Repeat("a", MaxDescriptionLen+1) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			args := validArgs()
			tt.mutate(&args)

			it, err := NewItem(args)
			require.Error(t, err)
			assert.Nil(t, it)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestItem_Resolve(t *testing.T) {
	t.Parallel()

	it, err := NewItem(validArgs())
	require.NoError(t, err)

	require.NoError(t, it.Resolve(it.ReporterID()))
	assert.Equal(t, StatusResolved, it.Status())
}

func TestItem_Resolve_OnlyReporter(t *testing.T) {
	t.Parallel()

	it, err := NewItem(validArgs())
	require.NoError(t, err)

	err = it.Resolve(user.NewID())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotReporter)
	assert.Equal(t, StatusOpen, it.Status())
}

func TestItem_Resolve_Twice(t *testing.T) {
	t.Parallel()

	it, err := NewItem(validArgs())
	require.NoError(t, err)

	require.NoError(t, it.Resolve(it.ReporterID()))

	err = it.Resolve(it.ReporterID())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAlreadyResolved)
}
