package item

import "gitlab.com/campusfound/campusfound-backend/pkg/errorx"

var (
	ErrInvalidKind     = errorx.NewInvalidRequest().WithKey("invalid_item_kind")
	ErrNotReporter     = errorx.NewForbidden().WithKey("not_item_reporter")
	ErrAlreadyResolved = errorx.NewAlreadyProcessed().WithKey("item_already_resolved")

	ErrInvalidFileType = errorx.NewInvalidRequest().WithKey("invalid_file_type")
	ErrPhotoTooLarge   = errorx.NewInvalidRequest().WithKey("file_too_large")
	ErrPhotoTooSmall   = errorx.NewInvalidRequest().WithKey("file_too_small")
)
