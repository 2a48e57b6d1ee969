package validationx

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// MinPasswordLen matches the client-side rule: passwords shorter than six
// characters are rejected before any network call is made.
const (
	MinPasswordLen = 6
	MaxPasswordLen = 72 // bcrypt input limit

	MinNameLen = 2
	MaxNameLen = 100
)

var ErrPasswordTooShort = validation.NewError(
	"validation_password_too_short",
	"password should be at least 6 characters",
)

var codeRx = regexp.MustCompile(`^[0-9]{6}$`)

var ErrInvalidCodeFormat = validation.NewError(
	"validation_is_verification_code",
	"must be a 6-digit numeric code",
)

var (
	EmailRules = []validation.Rule{
		validation.Required,
		validation.Length(3, 254),
		is.EmailFormat,
	}

	NameRules = []validation.Rule{
		validation.Required,
		validation.Length(MinNameLen, MaxNameLen),
	}

	PasswordRules = []validation.Rule{
		validation.Required,
		validation.Length(MinPasswordLen, MaxPasswordLen).ErrorObject(ErrPasswordTooShort),
	}

	CodeRules = []validation.Rule{
		validation.Required,
		validation.Match(codeRx).ErrorObject(ErrInvalidCodeFormat),
	}
)
