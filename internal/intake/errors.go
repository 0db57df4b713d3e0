package intake

import "errors"

var (
	// ErrNotObject is returned by Decode when the payload is valid JSON but not an object.
	ErrNotObject = errors.New("form data is not a JSON object")
	// ErrInvalidDataURL is returned for malformed base64 data URLs.
	ErrInvalidDataURL = errors.New("invalid data url")
)
