package board

import (
	"context"
	"errors"
	"fmt"

	"bbs/internal/client"
)

// ValidationError rejects a submission before any request is issued.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s is required", e.Field)
}

func AsValidationError(err error) *ValidationError {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr
	}
	return nil
}

type ErrorKind int

const (
	ErrorKindNone ErrorKind = iota
	ErrorKindTransport
	ErrorKindResponse
	ErrorKindDecode
	ErrorKindValidation
	ErrorKindUnknown
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindNone:
		return "none"
	case ErrorKindTransport:
		return "transport"
	case ErrorKindResponse:
		return "response"
	case ErrorKindDecode:
		return "decode"
	case ErrorKindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Classify maps an error to its diagnostic kind. Users see one message per
// action regardless of kind.
func Classify(err error) ErrorKind {
	switch {
	case err == nil:
		return ErrorKindNone
	case AsValidationError(err) != nil:
		return ErrorKindValidation
	case client.AsAPIError(err) != nil:
		return ErrorKindResponse
	case client.AsDecodeError(err) != nil:
		return ErrorKindDecode
	case client.AsTransportError(err) != nil, errors.Is(err, context.DeadlineExceeded):
		return ErrorKindTransport
	default:
		return ErrorKindUnknown
	}
}
