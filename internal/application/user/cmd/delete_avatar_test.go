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

type deleteAvatarSuite struct {
	Update   *UpdateAvatarHandler
	Delete   *DeleteAvatarHandler
	UserRepo *mocks.UserRepo
	Storage  *mocks.ObjectStorage
	User     *user.User
}

func newDeleteAvatarSuite(t *testing.T) *deleteAvatarSuite {
	t.Helper()

	userRepo := mocks.NewUserRepo()
	storage := mocks.NewObjectStorage()
	avatarService := user.NewAvatarService(testMediaBaseURL)

	u := builders.NewUserBuilder().Build()
	userRepo.SeedUser(t, u)

	return &deleteAvatarSuite{
		Update: NewUpdateAvatarHandler(UpdateAvatarHandlerArgs{
			AvatarDomainService: avatarService,
			Storage:             storage,
			UserRepo:            userRepo,
		}),
		Delete: NewDeleteAvatarHandler(DeleteAvatarHandlerArgs{
			AvatarDomainService: avatarService,
			Storage:             storage,
			UserRepo:            userRepo,
		}),
		UserRepo: userRepo,
		Storage:  storage,
		User:     u,
	}
}

func (s *deleteAvatarSuite) uploadAvatar(t *testing.T) {
	t.Helper()

	content := strings.Repeat("a", 2*user.MinAvatarSize)
	err := s.Update.Handle(t.Context(), &UpdateAvatar{
		UserID:      s.User.ID(),
		File:        strings.NewReader(content),
		Size:        int64(len(content)),
		ContentType: "image/png",
		Filename:    "me.png",
	})
	require.NoError(t, err)
	s.Storage.AssertObjectCount(t, 1)
}

func TestDeleteAvatarHandler_HappyPath(t *testing.T) {
	t.Parallel()

	s := newDeleteAvatarSuite(t)
	s.uploadAvatar(t)

	err := s.Delete.Handle(t.Context(), &DeleteAvatar{UserID: s.User.ID()})
	require.NoError(t, err)

	s.Storage.AssertObjectCount(t, 0)

	updated, err := s.UserRepo.GetUserByID(t.Context(), s.User.ID())
	require.NoError(t, err)
	assert.Empty(t, updated.AvatarURL())
}

func TestDeleteAvatarHandler_NoAvatar_IsNoop(t *testing.T) {
	t.Parallel()

	s := newDeleteAvatarSuite(t)

	err := s.Delete.Handle(t.Context(), &DeleteAvatar{UserID: s.User.ID()})
	require.NoError(t, err)

	s.Storage.AssertObjectCount(t, 0)
	s.UserRepo.EventRepo.AssertEventNotExists(t, &user.AvatarUpdated{})
}

func TestDeleteAvatarHandler_StorageFailure_StillClearsURL(t *testing.T) {
	t.Parallel()

	s := newDeleteAvatarSuite(t)
	s.uploadAvatar(t)
	s.Storage.DeleteErr = assert.AnError

	err := s.Delete.Handle(t.Context(), &DeleteAvatar{UserID: s.User.ID()})
	require.NoError(t, err)

	// The orphaned object stays behind; the profile must not.
	s.Storage.AssertObjectCount(t, 1)

	updated, err := s.UserRepo.GetUserByID(t.Context(), s.User.ID())
	require.NoError(t, err)
	assert.Empty(t, updated.AvatarURL())
}

func TestDeleteAvatarHandler_UnknownUser(t *testing.T) {
	t.Parallel()

	s := newDeleteAvatarSuite(t)

	err := s.Delete.Handle(t.Context(), &DeleteAvatar{UserID: user.NewID()})
	require.Error(t, err)
}
