package hector

import "errors"
import "fmt"

var (
	ErrNotFound  = errors.New("not found")
	ErrNoCodec   = errors.New("no codec registered for column")
	ErrNoSession = errors.New("template not connected to a session")
)

type WrappedError struct {
	err     error
	wrapped error
}

func WrapError(msg string, err error) error { return WrappedError{errors.New(msg), err} }
func (wrap WrappedError) Error() string     { return fmt.Sprintf("%s: %s", wrap.err, wrap.wrapped) }
func (wrap WrappedError) Unwrap() error     { return wrap.wrapped }

func noCodecError(name interface{}) error {
	return fmt.Errorf("%w: %v", ErrNoCodec, name)
}
