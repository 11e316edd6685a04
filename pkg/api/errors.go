package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrRequestFailed is returned for every unsuccessful API reply.
	ErrRequestFailed = errors.New("request failed")

	ErrNotFound     = fmt.Errorf("%w: not found", ErrRequestFailed)
	ErrUnauthorized = fmt.Errorf("%w: unauthorized", ErrRequestFailed)
	ErrConflict     = fmt.Errorf("%w: conflict", ErrRequestFailed)

	ErrInvalidAPIEndpoint = errors.New("invalid API endpoint")
)

const minHTTPErrorStatusCode = 400

// isOK returns true if statusCode is an OK HTTP status code: 0-399.
func isOK(statusCode int) bool {
	return statusCode < minHTTPErrorStatusCode
}

// ResponseError is an unsuccessful reply from the API server.
type ResponseError struct {
	StatusCode int
	Code       string
	Message    string
	RequestID  string
}

func (e *ResponseError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.kind(), e.Message)
	if e.RequestID != "" {
		msg += fmt.Sprintf(" (request id %s)", e.RequestID)
	}
	return msg
}

func (e *ResponseError) kind() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusConflict, http.StatusLocked:
		return ErrConflict
	default:
		return ErrRequestFailed
	}
}

func (e *ResponseError) Unwrap() error {
	return e.kind()
}

// responseAsError returns nil for successful replies, otherwise a
// *ResponseError built from the status and an Error body when present.
func responseAsError(resp *http.Response, body []byte) error {
	if resp == nil || isOK(resp.StatusCode) {
		return nil
	}
	respErr := &ResponseError{
		StatusCode: resp.StatusCode,
		Message:    http.StatusText(resp.StatusCode),
		RequestID:  resp.Header.Get(RequestIDHeader),
	}
	if resp.Status != "" {
		respErr.Message = resp.Status
	}
	var apiError Error
	if json.Unmarshal(body, &apiError) == nil && apiError.Message != "" {
		respErr.Message = apiError.Message
		respErr.Code = apiError.Code
	}
	return respErr
}
