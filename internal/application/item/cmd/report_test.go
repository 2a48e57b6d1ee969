package itemcmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/campusfound/campusfound-backend/internal/domain/item"
	"gitlab.com/campusfound/campusfound-backend/internal/domain/user"
	"gitlab.com/campusfound/campusfound-backend/tests/mocks"
)

const testPhotoBaseURL = "http://localhost:9000/campusfound-media"

func newReportHandler(repo *mocks.ItemRepo, storage *mocks.ObjectStorage) *ReportHandler {
	return NewReportHandler(ReportHandlerArgs{
		ItemRepo:     repo,
		Storage:      storage,
		PhotoBaseURL: testPhotoBaseURL,
	})
}

func validReport() Report {
	return Report{
		ReporterID: user.NewID(),
		Kind:       item.KindFound,
		Name:       "Silver water bottle",
		Location:   "Gym locker room",
	}
}

func TestReportHandler_WithoutPhoto(t *testing.T) {
	t.Parallel()

	repo := mocks.NewItemRepo()
	storage := mocks.NewObjectStorage()
	handler := newReportHandler(repo, storage)

	it, err := handler.Handle(t.Context(), validReport())
	require.NoError(t, err)
	require.NotNil(t, it)

	assert.Empty(t, it.PhotoURL())
	assert.Equal(t, item.StatusOpen, it.Status())
	storage.AssertObjectCount(t, 0)
	repo.AssertItemExists(t, it.ID())

	e := mocks.RequireEventExists(t, repo.EventRepo, &item.Reported{})
	assert.Equal(t, it.ID(), e.ItemID)
}

func TestReportHandler_WithPhoto(t *testing.T) {
	t.Parallel()

	repo := mocks.NewItemRepo()
	storage := mocks.NewObjectStorage()
	handler := newReportHandler(repo, storage)

	content := strings.Repeat("a", 2*item.MinPhotoSize)
	cmd := validReport()
	cmd.Photo = strings.NewReader(content)
	cmd.PhotoSize = int64(len(content))
	cmd.PhotoContentType = "image/jpeg"

	it, err := handler.Handle(t.Context(), cmd)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(it.PhotoURL(), testPhotoBaseURL+"/items/"))
	storage.AssertObjectCount(t, 1)
}

func TestReportHandler_RejectsBadPhoto(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		contentType string
		size        int64
		wantErr     error
	}{
		{name: "wrong content type", contentType: "video/mp4", size: 1024, wantErr: item.ErrInvalidFileType},
		{name: "too large", contentType: "image/png", size: item.MaxPhotoSize + 1, wantErr: item.ErrPhotoTooLarge},
		{name: "too small", contentType: "image/png", size: item.MinPhotoSize - 1, wantErr: item.ErrPhotoTooSmall},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := mocks.NewItemRepo()
			storage := mocks.NewObjectStorage()
			handler := newReportHandler(repo, storage)

			cmd := validReport()
			cmd.Photo = strings.NewReader("x")
			cmd.PhotoSize = tt.size
			cmd.PhotoContentType = tt.contentType

			it, err := handler.Handle(t.Context(), cmd)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, it)

			storage.AssertObjectCount(t, 0)
			repo.AssertEventCount(t, 0)
		})
	}
}

func TestReportHandler_InvalidItem_NothingSaved(t *testing.T) {
	t.Parallel()

	repo := mocks.NewItemRepo()
	storage := mocks.NewObjectStorage()
	handler := newReportHandler(repo, storage)

	cmd := validReport()
	cmd.Kind = "stolen"

	it, err := handler.Handle(t.Context(), cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, item.ErrInvalidKind)
	assert.Nil(t, it)

	repo.AssertEventCount(t, 0)
}
