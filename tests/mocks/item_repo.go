package mocks

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"

	"gitlab.com/campusfound/campusfound-backend/internal/domain/item"
	"gitlab.com/campusfound/campusfound-backend/pkg/errorx"
)

type ItemRepo struct {
	*EventRepo
	dbbyID  map[item.ID]*item.Item
	order   []item.ID
	matches map[item.ID][]item.Match
	mu      sync.Mutex
}

func NewItemRepo() *ItemRepo {
	return &ItemRepo{
		EventRepo: NewEventRepo(),
		dbbyID:    make(map[item.ID]*item.Item),
		matches:   make(map[item.ID][]item.Match),
	}
}

func (r *ItemRepo) SaveItem(ctx context.Context, i *item.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i == nil {
		return errors.New("item cannot be nil")
	}
	if _, exists := r.dbbyID[i.ID()]; exists {
		return errorx.NewDuplicateEntry()
	}

	r.dbbyID[i.ID()] = i
	r.order = append(r.order, i.ID())
	r.appendEvents(i.GetUncommittedEvents()...)
	i.MarkEventsAsCommitted()

	return nil
}

func (r *ItemRepo) GetItemByID(ctx context.Context, id item.ID) (*item.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i, exists := r.dbbyID[id]; exists {
		return i, nil
	}
	return nil, errorx.NewNotFound()
}

func (r *ItemRepo) ListItems(ctx context.Context, filter item.Filter) ([]*item.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var all []*item.Item
	for idx := len(r.order) - 1; idx >= 0; idx-- {
		i := r.dbbyID[r.order[idx]]
		if filter.Kind != "" && i.Kind() != filter.Kind {
			continue
		}
		if filter.Status != "" && i.Status() != filter.Status {
			continue
		}
		all = append(all, i)
	}

	if filter.Offset >= len(all) {
		return nil, nil
	}
	all = all[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(all) {
		all = all[:filter.Limit]
	}
	return all, nil
}

func (r *ItemRepo) UpdateItem(ctx context.Context, id item.ID, fn func(context.Context, *item.Item) error) error {
	if fn == nil {
		return errors.New("update function cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i, exists := r.dbbyID[id]
	if !exists {
		return errorx.NewNotFound()
	}

	fnerr := fn(ctx, i)
	if fnerr != nil && !errorx.IsPersistable(fnerr) {
		return fmt.Errorf("failed to apply update function: %w", fnerr)
	}

	r.dbbyID[id] = i
	r.appendEvents(i.GetUncommittedEvents()...)
	i.MarkEventsAsCommitted()

	if fnerr != nil && errorx.IsPersistable(fnerr) {
		return fmt.Errorf("failed to apply update function: %w", fnerr)
	}
	return nil
}

func (r *ItemRepo) ReplaceMatches(ctx context.Context, id item.ID, matches []item.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.matches[id] = append([]item.Match{}, matches...)
	return nil
}

func (r *ItemRepo) GetTopMatches(ctx context.Context, id item.ID, limit int) ([]item.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	matches := append([]item.Match{}, r.matches[id]...)
	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].Scores.Overall > matches[b].Scores.Overall
	})

	if limit > 0 && limit < len(matches) {
		matches = matches[:limit]
	}
	return matches, nil
}

func (r *ItemRepo) SeedItem(t *testing.T, i *item.Item) {
	t.Helper()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.dbbyID[i.ID()]; exists {
		t.Fatalf("item with ID %s already exists", i.ID())
	}

	r.dbbyID[i.ID()] = i
	r.order = append(r.order, i.ID())
}

func (r *ItemRepo) AssertItemExists(t *testing.T, id item.ID) *item.Item {
	t.Helper()

	r.mu.Lock()
	defer r.mu.Unlock()

	i, exists := r.dbbyID[id]
	if !exists {
		t.Errorf("expected item with ID %s to exist, but it does not", id)
		return nil
	}
	return i
}

func (r *ItemRepo) AssertMatchCount(t *testing.T, id item.ID, expected int) *ItemRepo {
	t.Helper()

	r.mu.Lock()
	defer r.mu.Unlock()

	if got := len(r.matches[id]); got != expected {
		t.Errorf("expected %d matches for item %s, but got %d", expected, id, got)
	}
	return r
}
