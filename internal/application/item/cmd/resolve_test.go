package itemcmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/campusfound/campusfound-backend/internal/domain/item"
	"gitlab.com/campusfound/campusfound-backend/internal/domain/user"
	"gitlab.com/campusfound/campusfound-backend/pkg/errorx"
	"gitlab.com/campusfound/campusfound-backend/tests/builders"
	"gitlab.com/campusfound/campusfound-backend/tests/mocks"
)

func TestResolveHandler_HappyPath(t *testing.T) {
	t.Parallel()

	repo := mocks.NewItemRepo()
	handler := NewResolveHandler(ResolveHandlerArgs{ItemRepo: repo})

	reporter := user.NewID()
	it := builders.NewItemBuilder().WithReporter(reporter).Build()
	repo.SeedItem(t, it)

	err := handler.Handle(t.Context(), Resolve{ItemID: it.ID(), UserID: reporter})
	require.NoError(t, err)

	stored := repo.AssertItemExists(t, it.ID())
	require.NotNil(t, stored)
	assert.Equal(t, item.StatusResolved, stored.Status())
}

func TestResolveHandler_NotReporter(t *testing.T) {
	t.Parallel()

	repo := mocks.NewItemRepo()
	handler := NewResolveHandler(ResolveHandlerArgs{ItemRepo: repo})

	it := builders.NewItemBuilder().Build()
	repo.SeedItem(t, it)

	err := handler.Handle(t.Context(), Resolve{ItemID: it.ID(), UserID: user.NewID()})
	require.Error(t, err)
	assert.ErrorIs(t, err, item.ErrNotReporter)

	stored := repo.AssertItemExists(t, it.ID())
	require.NotNil(t, stored)
	assert.Equal(t, item.StatusOpen, stored.Status())
}

func TestResolveHandler_AlreadyResolved(t *testing.T) {
	t.Parallel()

	repo := mocks.NewItemRepo()
	handler := NewResolveHandler(ResolveHandlerArgs{ItemRepo: repo})

	reporter := user.NewID()
	it := builders.NewItemBuilder().
		WithReporter(reporter).
		WithStatus(item.StatusResolved).
		Build()
	repo.SeedItem(t, it)

	err := handler.Handle(t.Context(), Resolve{ItemID: it.ID(), UserID: reporter})
	require.Error(t, err)
	assert.ErrorIs(t, err, item.ErrAlreadyResolved)
}

func TestResolveHandler_UnknownItem(t *testing.T) {
	t.Parallel()

	repo := mocks.NewItemRepo()
	handler := NewResolveHandler(ResolveHandlerArgs{ItemRepo: repo})

	err := handler.Handle(t.Context(), Resolve{ItemID: item.NewID(), UserID: user.NewID()})
	require.Error(t, err)
	assert.True(t, errorx.IsNotFound(err))
}
