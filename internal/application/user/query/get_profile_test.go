package userquery_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userquery "gitlab.com/campusfound/campusfound-backend/internal/application/user/query"
	"gitlab.com/campusfound/campusfound-backend/internal/domain/user"
	"gitlab.com/campusfound/campusfound-backend/pkg/errorx"
	"gitlab.com/campusfound/campusfound-backend/tests/builders"
	"gitlab.com/campusfound/campusfound-backend/tests/mocks"
)

func TestGetProfileHandler_CacheMiss_PopulatesCache(t *testing.T) {
	t.Parallel()

	userRepo := mocks.NewUserRepo()
	cache := mocks.NewProfileCache()
	handler := userquery.NewGetProfileHandler(userquery.GetProfileHandlerArgs{
		UserGetter: userRepo,
		Cache:      cache,
	})

	u := builders.NewUserBuilder().Build()
	userRepo.SeedUser(t, u)

	p, err := handler.Handle(t.Context(), u.ID())
	require.NoError(t, err)
	assert.Equal(t, u.ID().String(), p.ID)
	assert.Equal(t, u.Email(), p.Email)
	assert.Equal(t, u.Role().String(), p.Role)

	cached := cache.AssertCached(t, u.ID())
	require.NotNil(t, cached)
	assert.Equal(t, p.Email, cached.Email)
}

func TestGetProfileHandler_CacheHit_SkipsDatabase(t *testing.T) {
	t.Parallel()

	userRepo := mocks.NewUserRepo()
	cache := mocks.NewProfileCache()
	handler := userquery.NewGetProfileHandler(userquery.GetProfileHandlerArgs{
		UserGetter: userRepo,
		Cache:      cache,
	})

	id := user.NewID()
	cache.SeedProfile(t, id, &userquery.Profile{
		ID:    id.String(),
		Email: builders.DefaultEmail,
	})

	// The user is not in the repo; a hit must never reach it.
	p, err := handler.Handle(t.Context(), id)
	require.NoError(t, err)
	assert.Equal(t, builders.DefaultEmail, p.Email)
}

func TestGetProfileHandler_CacheFailures_AreTolerated(t *testing.T) {
	t.Parallel()

	userRepo := mocks.NewUserRepo()
	cache := mocks.NewProfileCache()
	cache.GetErr = assert.AnError
	cache.SetErr = assert.AnError
	handler := userquery.NewGetProfileHandler(userquery.GetProfileHandlerArgs{
		UserGetter: userRepo,
		Cache:      cache,
	})

	u := builders.NewUserBuilder().Build()
	userRepo.SeedUser(t, u)

	p, err := handler.Handle(t.Context(), u.ID())
	require.NoError(t, err)
	assert.Equal(t, u.Email(), p.Email)
}

func TestGetProfileHandler_UnknownUser(t *testing.T) {
	t.Parallel()

	handler := userquery.NewGetProfileHandler(userquery.GetProfileHandlerArgs{
		UserGetter: mocks.NewUserRepo(),
		Cache:      mocks.NewProfileCache(),
	})

	_, err := handler.Handle(t.Context(), user.NewID())
	require.Error(t, err)
	assert.True(t, errorx.IsNotFound(err))
}
