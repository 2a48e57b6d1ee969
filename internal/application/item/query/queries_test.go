package itemquery

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/campusfound/campusfound-backend/internal/domain/item"
	"gitlab.com/campusfound/campusfound-backend/pkg/errorx"
	"gitlab.com/campusfound/campusfound-backend/tests/builders"
	"gitlab.com/campusfound/campusfound-backend/tests/mocks"
)

func TestHandler_GetItem(t *testing.T) {
	t.Parallel()

	repo := mocks.NewItemRepo()
	handler := NewHandler(HandlerArgs{Reader: repo})

	it := builders.NewItemBuilder().Build()
	repo.SeedItem(t, it)

	got, err := handler.GetItem(t.Context(), it.ID())
	require.NoError(t, err)
	assert.Equal(t, it.ID(), got.ID())

	_, err = handler.GetItem(t.Context(), item.NewID())
	require.Error(t, err)
	assert.True(t, errorx.IsNotFound(err))
}

func TestHandler_ListItems_FiltersAndPaginates(t *testing.T) {
	t.Parallel()

	repo := mocks.NewItemRepo()
	handler := NewHandler(HandlerArgs{Reader: repo})

	for range 3 {
		repo.SeedItem(t, builders.NewItemBuilder().WithKind(item.KindLost).Build())
	}
	repo.SeedItem(t, builders.NewItemBuilder().WithKind(item.KindFound).Build())
	repo.SeedItem(t, builders.NewItemBuilder().
		WithKind(item.KindLost).
		WithStatus(item.StatusResolved).
		Build())

	lost, err := handler.ListItems(t.Context(), ListItems{Kind: item.KindLost})
	require.NoError(t, err)
	assert.Len(t, lost, 4)

	open, err := handler.ListItems(t.Context(), ListItems{Kind: item.KindLost, Status: item.StatusOpen})
	require.NoError(t, err)
	assert.Len(t, open, 3)

	page1, err := handler.ListItems(t.Context(), ListItems{Kind: item.KindLost, Size: 2})
	require.NoError(t, err)
	assert.Len(t, page1, 2)

	page2, err := handler.ListItems(t.Context(), ListItems{Kind: item.KindLost, Page: 2, Size: 2})
	require.NoError(t, err)
	assert.Len(t, page2, 2)

	page3, err := handler.ListItems(t.Context(), ListItems{Kind: item.KindLost, Page: 3, Size: 2})
	require.NoError(t, err)
	assert.Empty(t, page3)
}

func TestHandler_ListItems_ClampsPageSize(t *testing.T) {
	t.Parallel()

	repo := &recordingReader{}
	handler := NewHandler(HandlerArgs{Reader: repo})

	_, err := handler.ListItems(t.Context(), ListItems{Size: MaxPageSize + 50})
	require.NoError(t, err)
	assert.Equal(t, MaxPageSize, repo.lastFilter.Limit)

	_, err = handler.ListItems(t.Context(), ListItems{Size: -1, Page: -1})
	require.NoError(t, err)
	assert.Equal(t, DefaultPageSize, repo.lastFilter.Limit)
	assert.Equal(t, 0, repo.lastFilter.Offset)
}

func TestHandler_GetTopMatches_OrderedByOverallScore(t *testing.T) {
	t.Parallel()

	repo := mocks.NewItemRepo()
	handler := NewHandler(HandlerArgs{Reader: repo})

	it := builders.NewItemBuilder().Build()
	repo.SeedItem(t, it)

	low := item.NewID()
	high := item.NewID()
	mid := item.NewID()
	require.NoError(t, repo.ReplaceMatches(t.Context(), it.ID(), []item.Match{
		{ItemID: it.ID(), MatchedItemID: low, Scores: item.Scores{Overall: 0.2}},
		{ItemID: it.ID(), MatchedItemID: high, Scores: item.Scores{Overall: 0.9}},
		{ItemID: it.ID(), MatchedItemID: mid, Scores: item.Scores{Overall: 0.5}},
	}))

	matches, err := handler.GetTopMatches(t.Context(), it.ID(), 2)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, high, matches[0].MatchedItemID)
	assert.Equal(t, mid, matches[1].MatchedItemID)
}

func TestHandler_GetTopMatches_DefaultLimit(t *testing.T) {
	t.Parallel()

	repo := &recordingReader{}
	handler := NewHandler(HandlerArgs{Reader: repo})

	_, err := handler.GetTopMatches(t.Context(), item.NewID(), 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultTopMatches, repo.lastLimit)
}

type recordingReader struct {
	lastFilter item.Filter
	lastLimit  int
}

func (r *recordingReader) GetItemByID(ctx context.Context, id item.ID) (*item.Item, error) {
	return nil, errorx.NewNotFound()
}

func (r *recordingReader) ListItems(ctx context.Context, filter item.Filter) ([]*item.Item, error) {
	r.lastFilter = filter
	return nil, nil
}

func (r *recordingReader) GetTopMatches(ctx context.Context, id item.ID, limit int) ([]item.Match, error) {
	r.lastLimit = limit
	return nil, nil
}
