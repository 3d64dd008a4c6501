package model

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// MalformedResponseError reports a response body that does not match the
// expected schema. It is a hard failure for the poll cycle that hit it.
type MalformedResponseError struct {
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

var validate = validator.New()

// Parse decodes and validates a trip request response. Validation runs once
// here; the returned value is treated as immutable by all callers.
func Parse(body []byte) (*TripRequestResponse, error) {
	var resp TripRequestResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &MalformedResponseError{Err: err}
	}
	if err := validate.Struct(&resp); err != nil {
		return nil, &MalformedResponseError{Err: err}
	}
	return &resp, nil
}
