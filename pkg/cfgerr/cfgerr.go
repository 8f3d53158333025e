package cfgerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// ConfigurationError is raised for every defect found in a descriptor. It is
// never retried; the build that produced it is abandoned.
type ConfigurationError struct {
	Subject string
	Message string
	Err     error
}

func (e *ConfigurationError) Error() string {
	return "bad configuration: " + e.detail()
}

// detail renders the error without the leading "bad configuration" so that
// nested configuration errors read as one chain.
func (e *ConfigurationError) detail() string {
	msg := e.Message
	if e.Subject != "" {
		msg = e.Subject + ": " + msg
	}
	if inner, ok := e.Err.(*ConfigurationError); ok {
		msg += ": " + inner.detail()
	} else if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// Cause lets errors.Cause from github.com/pkg/errors walk past the wrapper.
func (e *ConfigurationError) Cause() error { return e.Err }

func New(subject string, format string, args ...interface{}) error {
	return &ConfigurationError{
		Subject: subject,
		Message: fmt.Sprintf(format, args...),
	}
}

func Wrap(err error, subject string, format string, args ...interface{}) error {
	return &ConfigurationError{
		Subject: subject,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// Is reports whether a ConfigurationError appears anywhere in err's chain.
func Is(err error) bool {
	_, ok := As(err)
	return ok
}

func As(err error) (*ConfigurationError, bool) {
	var ce *ConfigurationError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
