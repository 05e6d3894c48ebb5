package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// TransportError reports a request that failed before any response arrived.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("transport error (%s %s): %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// APIError reports a response whose status was not 2xx.
type APIError struct {
	StatusCode int
	Code       int
	Message    string
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

// DecodeError reports a 2xx response whose body did not have the expected shape.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("decode error (%s): %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}

func AsTransportError(err error) *TransportError {
	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return transportErr
	}
	return nil
}

func AsDecodeError(err error) *DecodeError {
	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) {
		return decodeErr
	}
	return nil
}

func decodeAPIError(statusCode int, status string, body []byte) error {
	type errorPayload struct {
		Error          string `json:"error"`
		ErrorCode      int    `json:"ErrorCode"`
		ErrorMessageJP string `json:"ErrorMessageJP"`
		ErrorMessageEN string `json:"ErrorMessageEN"`
	}
	var payload errorPayload
	_ = json.Unmarshal(body, &payload)
	apiErr := &APIError{StatusCode: statusCode, Code: payload.ErrorCode}
	for _, candidate := range []string{payload.ErrorMessageEN, payload.ErrorMessageJP, payload.Error} {
		if message := strings.TrimSpace(candidate); message != "" {
			apiErr.Message = message
			return apiErr
		}
	}
	if strings.TrimSpace(status) == "" {
		status = http.StatusText(statusCode)
	}
	apiErr.Message = status
	return apiErr
}
