package eudr

import (
	"errors"
	"fmt"
	"net/http"
)

// InvalidInputError reports an uploaded parcel that could not be decoded.
// Handlers surface it as a client error.
type InvalidInputError struct {
	Reason string
	Err    error
}

func (e *InvalidInputError) Error() string {
	if e.Err == nil {
		return "invalid GeoJSON: " + e.Reason
	}
	if e.Reason == "" {
		return fmt.Sprintf("invalid GeoJSON: %v", e.Err)
	}
	return fmt.Sprintf("invalid GeoJSON: %s: %v", e.Reason, e.Err)
}

func (e *InvalidInputError) Unwrap() error {
	return e.Err
}

// UpstreamError is a failed call to the catalog or the tile service:
// transport errors, timeouts, non-2xx statuses and undecodable bodies.
type UpstreamError struct {
	Service    string
	StatusCode int
	Body       string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %d: %q", e.Service, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s: %v", e.Service, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// HTTPStatus maps an error from a check to a response status.
func HTTPStatus(err error) int {
	var inv *InvalidInputError
	if errors.As(err, &inv) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
