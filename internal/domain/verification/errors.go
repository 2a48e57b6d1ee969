package verification

import "gitlab.com/campusfound/campusfound-backend/pkg/errorx"

var (
	// ErrInvalidCode: no stored record matches the (email, code) pair.
	ErrInvalidCode = errorx.NewInvalidVerificationCode()
	// ErrCodeExpired: a record matched but more than CodeTTL has passed
	// since its server-assigned creation time. The record is kept; the
	// user must request a resend.
	ErrCodeExpired = errorx.NewVerificationCodeExpired()
)
