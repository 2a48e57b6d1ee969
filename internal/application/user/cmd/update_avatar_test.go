package usercmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/campusfound/campusfound-backend/internal/domain/user"
	"gitlab.com/campusfound/campusfound-backend/tests/builders"
	"gitlab.com/campusfound/campusfound-backend/tests/mocks"
)

const testMediaBaseURL = "http://localhost:9000/campusfound-media"

func TestUpdateAvatarHandler_HappyPath(t *testing.T) {
	t.Parallel()

	userRepo := mocks.NewUserRepo()
	storage := mocks.NewObjectStorage()
	u := builders.NewUserBuilder().Build()
	userRepo.SeedUser(t, u)

	handler := NewUpdateAvatarHandler(UpdateAvatarHandlerArgs{
		AvatarDomainService: user.NewAvatarService(testMediaBaseURL),
		Storage:             storage,
		UserRepo:            userRepo,
	})

	content := strings.Repeat("a", 2*user.MinAvatarSize)
	err := handler.Handle(t.Context(), &UpdateAvatar{
		UserID:      u.ID(),
		File:        strings.NewReader(content),
		Size:        int64(len(content)),
		ContentType: "image/png",
		Filename:    "me.png",
	})
	require.NoError(t, err)

	storage.AssertObjectCount(t, 1)

	updated, err := userRepo.GetUserByID(t.Context(), u.ID())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(updated.AvatarURL(), testMediaBaseURL+"/avatars/"))

	e := mocks.RequireEventExists(t, userRepo.EventRepo, &user.AvatarUpdated{})
	assert.Equal(t, u.ID(), e.UserID)
	assert.Equal(t, updated.AvatarURL(), e.AvatarURL)
}

func TestUpdateAvatarHandler_RejectsBadFiles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		contentType string
		size        int64
	}{
		{name: "wrong content type", contentType: "application/pdf", size: 1024},
		{name: "too large", contentType: "image/jpeg", size: user.MaxAvatarSize + 1},
		{name: "too small", contentType: "image/jpeg", size: user.MinAvatarSize - 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			userRepo := mocks.NewUserRepo()
			storage := mocks.NewObjectStorage()
			u := builders.NewUserBuilder().Build()
			userRepo.SeedUser(t, u)

			handler := NewUpdateAvatarHandler(UpdateAvatarHandlerArgs{
				AvatarDomainService: user.NewAvatarService(testMediaBaseURL),
				Storage:             storage,
				UserRepo:            userRepo,
			})

			err := handler.Handle(t.Context(), &UpdateAvatar{
				UserID:      u.ID(),
				File:        strings.NewReader("x"),
				Size:        tt.size,
				ContentType: tt.contentType,
				Filename:    "me.bin",
			})
			require.Error(t, err)

			storage.AssertObjectCount(t, 0)

			unchanged, err := userRepo.GetUserByID(t.Context(), u.ID())
			require.NoError(t, err)
			assert.Empty(t, unchanged.AvatarURL())
		})
	}
}

func TestUpdateAvatarHandler_UploadFailure_LeavesUserUnchanged(t *testing.T) {
	t.Parallel()

	userRepo := mocks.NewUserRepo()
	storage := mocks.NewObjectStorage()
	storage.UploadErr = assert.AnError
	u := builders.NewUserBuilder().Build()
	userRepo.SeedUser(t, u)

	handler := NewUpdateAvatarHandler(UpdateAvatarHandlerArgs{
		AvatarDomainService: user.NewAvatarService(testMediaBaseURL),
		Storage:             storage,
		UserRepo:            userRepo,
	})

	content := strings.Repeat("a", 2*user.MinAvatarSize)
	err := handler.Handle(t.Context(), &UpdateAvatar{
		UserID:      u.ID(),
		File:        strings.NewReader(content),
		Size:        int64(len(content)),
		ContentType: "image/png",
		Filename:    "me.png",
	})
	require.Error(t, err)

	unchanged, err := userRepo.GetUserByID(t.Context(), u.ID())
	require.NoError(t, err)
	assert.Empty(t, unchanged.AvatarURL())
}
