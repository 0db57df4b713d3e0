package fulfillment

import (
	"errors"
	"fmt"
)

var (
	ErrNotConfigured = errors.New("shipstation credentials not configured")
	ErrForeignHost   = errors.New("resource url is not on the shipstation host")
)

// APIError is a non-200 response from ShipStation.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("shipstation status %d: %s", e.Status, e.Body)
}
