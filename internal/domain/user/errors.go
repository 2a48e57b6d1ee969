package user

import "gitlab.com/campusfound/campusfound-backend/pkg/errorx"

var (
	ErrEmailTaken    = errorx.NewConflict().WithKey("email_taken")
	ErrWrongPassword = errorx.NewInvalidCredentials().WithKey("wrong_current_password")
	ErrInvalidRole   = errorx.NewInvalidRequest().WithKey("invalid_role")

	ErrInvalidFileType = errorx.NewInvalidRequest().WithKey("invalid_file_type")
	ErrPhotoTooLarge   = errorx.NewInvalidRequest().WithKey("file_too_large")
	ErrPhotoTooSmall   = errorx.NewInvalidRequest().WithKey("file_too_small")
)
