package itemcmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/campusfound/campusfound-backend/internal/domain/item"
	"gitlab.com/campusfound/campusfound-backend/tests/builders"
	"gitlab.com/campusfound/campusfound-backend/tests/mocks"
)

func TestIngestMatchesHandler_ReplacesExistingSet(t *testing.T) {
	t.Parallel()

	repo := mocks.NewItemRepo()
	handler := NewIngestMatchesHandler(IngestMatchesHandlerArgs{ItemRepo: repo})

	it := builders.NewItemBuilder().Build()
	repo.SeedItem(t, it)

	first := IngestMatches{
		ItemID: it.ID(),
		Matches: []MatchInput{
			{MatchedItemID: item.NewID(), Scores: item.Scores{Overall: 0.8}},
			{MatchedItemID: item.NewID(), Scores: item.Scores{Overall: 0.6}},
			{MatchedItemID: item.NewID(), Scores: item.Scores{Overall: 0.4}},
		},
	}
	require.NoError(t, handler.Handle(t.Context(), first))
	repo.AssertMatchCount(t, it.ID(), 3)

	best := item.NewID()
	second := IngestMatches{
		ItemID: it.ID(),
		Matches: []MatchInput{
			{MatchedItemID: best, Scores: item.Scores{Overall: 0.9}},
		},
	}
	require.NoError(t, handler.Handle(t.Context(), second))
	repo.AssertMatchCount(t, it.ID(), 1)

	matches, err := repo.GetTopMatches(t.Context(), it.ID(), 10)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, best, matches[0].MatchedItemID)
	assert.Equal(t, it.ID(), matches[0].ItemID)
	assert.False(t, matches[0].CreatedAt.IsZero())
}

func TestIngestMatchesHandler_EmptySnapshotClearsMatches(t *testing.T) {
	t.Parallel()

	repo := mocks.NewItemRepo()
	handler := NewIngestMatchesHandler(IngestMatchesHandlerArgs{ItemRepo: repo})

	it := builders.NewItemBuilder().Build()
	repo.SeedItem(t, it)

	require.NoError(t, handler.Handle(t.Context(), IngestMatches{
		ItemID: it.ID(),
		Matches: []MatchInput{
			{MatchedItemID: item.NewID(), Scores: item.Scores{Overall: 0.7}},
		},
	}))
	repo.AssertMatchCount(t, it.ID(), 1)

	require.NoError(t, handler.Handle(t.Context(), IngestMatches{ItemID: it.ID()}))
	repo.AssertMatchCount(t, it.ID(), 0)
}
