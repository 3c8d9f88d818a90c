package grantsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error codes used by the grantlink service.
const (
	ErrorCodeInvalidRequest = "invalid_request"
	ErrorCodeUnauthorized   = "unauthorized"
	ErrorCodeNotFound       = "not_found"
	ErrorCodeTokenRequired  = "token_required"
	ErrorCodeTokenRejected  = "token_rejected"
	ErrorCodeTokenExhausted = "token_exhausted"
	ErrorCodeServerError    = "server_error"
)

// APIError is a typed error decoded from a grantlink error response. Use
// errors.As to inspect the code and status of a failed SDK call.
type APIError struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int `json:"-"`

	// Code is the machine-readable error code.
	Code string `json:"error"`

	// Description is the human-readable description.
	Description string `json:"error_description"`
}

func (e *APIError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("grantlink: %s: %s (HTTP %d)", e.Code, e.Description, e.StatusCode)
	}
	return fmt.Sprintf("grantlink: %s (HTTP %d)", e.Code, e.StatusCode)
}

// IsNotFound reports whether err is an APIError with HTTP 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsExhausted reports whether err is an APIError with HTTP 410, the status
// a guarded endpoint returns once a token's uses are spent.
func IsExhausted(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusGone
}

// parseErrorResponse turns a non-2xx response body into an *APIError. A
// body that is not the standard envelope still yields a usable error.
func parseErrorResponse(statusCode int, body []byte) error {
	var envelope ErrorResponse
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Error == "" {
		return &APIError{
			StatusCode:  statusCode,
			Code:        ErrorCodeServerError,
			Description: http.StatusText(statusCode),
		}
	}

	return &APIError{
		StatusCode:  statusCode,
		Code:        envelope.Error,
		Description: envelope.ErrorDescription,
	}
}
