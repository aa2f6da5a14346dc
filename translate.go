package hector

import goerrors "errors"

import "github.com/gocql/gocql"
import "github.com/juju/errors"

// An ExceptionsTranslator maps errors returned by a Session into the caller's error taxonomy.
type ExceptionsTranslator interface {
	Translate(err error) error
}

// TranslatorFunc adapts a function to the ExceptionsTranslator interface.
type TranslatorFunc func(error) error

func (f TranslatorFunc) Translate(err error) error { return f(err) }

// UnavailableError reports that the store could not serve a request at all: no live hosts, not
// enough replicas, or an overloaded or bootstrapping coordinator.
type UnavailableError struct {
	Err error
}

func (e *UnavailableError) Error() string { return "store unavailable: " + e.Err.Error() }
func (e *UnavailableError) Unwrap() error { return e.Err }

// IsUnavailable reports whether err, or an error it wraps, is an *UnavailableError.
func IsUnavailable(err error) bool {
	var u *UnavailableError
	return goerrors.As(err, &u)
}

// GocqlTranslator maps errors from a CassandraSession into layer-neutral errors:
//
//	timeouts                        errors.IsTimeout
//	unavailable or overloaded       IsUnavailable
//	syntax, invalid or config       errors.IsNotValid
//	bad credentials or permissions  errors.IsUnauthorized
//	table already exists            errors.IsAlreadyExists
//	gocql.ErrNotFound               errors.IsNotFound
//
// where errors is github.com/juju/errors. Other errors are returned unchanged.
type GocqlTranslator struct{}

func (GocqlTranslator) Translate(err error) error {
	if err == nil {
		return nil
	}
	cause := errors.Cause(err)
	var (
		writeTimeout *gocql.RequestErrWriteTimeout
		readTimeout  *gocql.RequestErrReadTimeout
		unavailable  *gocql.RequestErrUnavailable
		exists       *gocql.RequestErrAlreadyExists
		reqErr       gocql.RequestError
	)
	switch {
	case goerrors.Is(cause, gocql.ErrTimeoutNoResponse),
		goerrors.As(cause, &writeTimeout),
		goerrors.As(cause, &readTimeout):
		return errors.NewTimeout(err, "store request timed out")
	case goerrors.Is(cause, gocql.ErrNoConnections),
		goerrors.Is(cause, gocql.ErrUnavailable),
		goerrors.As(cause, &unavailable):
		return &UnavailableError{err}
	case goerrors.As(cause, &exists):
		return errors.NewAlreadyExists(err, "")
	case goerrors.Is(cause, gocql.ErrNotFound):
		return errors.NewNotFound(err, "")
	case goerrors.As(cause, &reqErr):
		return translateCode(err, reqErr.Code())
	}
	return err
}

func translateCode(err error, code int) error {
	switch code {
	case gocql.ErrCodeWriteTimeout, gocql.ErrCodeReadTimeout:
		return errors.NewTimeout(err, "store request timed out")
	case gocql.ErrCodeUnavailable, gocql.ErrCodeOverloaded, gocql.ErrCodeBootstrapping:
		return &UnavailableError{err}
	case gocql.ErrCodeSyntax, gocql.ErrCodeInvalid, gocql.ErrCodeConfig:
		return errors.NewNotValid(err, "")
	case gocql.ErrCodeCredentials, gocql.ErrCodeUnauthorized:
		return errors.NewUnauthorized(err, "")
	case gocql.ErrCodeAlreadyExists:
		return errors.NewAlreadyExists(err, "")
	}
	return err
}
