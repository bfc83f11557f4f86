package provider

import (
	"errors"
	"fmt"

	"google.golang.org/api/googleapi"
)

// CodeMalformedResponse marks responses from the provider that are missing
// required fields and cannot be trusted downstream.
const CodeMalformedResponse = 502

// Error represents a failure reported by the external Google APIs.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("provider error %d: %s", e.Code, e.Message)
}

// Wrap translates a googleapi error into a provider Error. Errors that did
// not originate from the API (network failures, context cancellation) are
// returned unchanged.
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return &Error{Code: apiErr.Code, Message: apiErr.Message}
	}
	return err
}

// Malformed builds an Error for a provider response missing required fields.
func Malformed(message string) *Error {
	return &Error{Code: CodeMalformedResponse, Message: message}
}
