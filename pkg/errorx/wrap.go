package errorx

import (
	"errors"
	"fmt"
)

// Wrap annotates err with the operation name. Returns nil for nil err.
func Wrap(err error, op string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}

// Persistable marks an error whose aggregate mutations must still be
// persisted; update-by-closure repositories commit the write and then
// return the error to the caller. Used for counters such as failed
// verification attempts.
type Persistable struct {
	Err error
}

func (e *Persistable) Error() string { return e.Err.Error() }
func (e *Persistable) Unwrap() error { return e.Err }

func NewPersistable(err error) *Persistable {
	if err == nil {
		return nil
	}
	return &Persistable{Err: err}
}

func IsPersistable(err error) bool {
	if err == nil {
		return false
	}

	var persistable *Persistable
	return errors.As(err, &persistable)
}
