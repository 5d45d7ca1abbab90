// Package awserr collapses AWS SDK failures into a single error kind.
package awserr

import (
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
)

// UnknownCode is reported when a failure carries no AWS error code,
// e.g. a DNS or TLS error before the request reached the service.
const UnknownCode = "Unknown"

// ProviderError is the single error kind surfaced by the AWS layer.
type ProviderError struct {
	Op      string
	Code    string
	Message string
	Err     error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Op, e.Message, e.Code)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Wrap converts err into a ProviderError for the given API operation.
// Code and message come from the service's APIError when there is one.
// Errors that already are ProviderErrors pass through unchanged.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}

	var pe *ProviderError
	if errors.As(err, &pe) {
		return err
	}

	out := &ProviderError{
		Op:      op,
		Code:    UnknownCode,
		Message: err.Error(),
		Err:     err,
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		if code := apiErr.ErrorCode(); code != "" {
			out.Code = code
		}
		if msg := apiErr.ErrorMessage(); msg != "" {
			out.Message = msg
		}
	}
	return out
}

// New builds a ProviderError that did not originate in the SDK, such as an
// empty describe result for a named resource.
func New(op, code, message string) error {
	return &ProviderError{Op: op, Code: code, Message: message}
}
