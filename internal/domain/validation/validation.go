package validation

import (
	"errors"
	"fmt"
)

// Error is a client-facing validation failure. Its message is safe to return
// in a 400 response.
type Error struct {
	Message string
}

func (e *Error) Error() string { return e.Message }

func Errorf(format string, args ...any) error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

// As returns the validation error wrapped in err, if any.
func As(err error) (*Error, bool) {
	var ve *Error
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
