package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// MaxBodyBytes caps request bodies
const MaxBodyBytes = 10 << 20

// ErrBodyTooLarge is returned by ParseJSON when the body exceeds MaxBodyBytes
var ErrBodyTooLarge = errors.New("request body too large")

// ParseJSON decodes JSON from the request body into dest.
// Unknown fields are ignored. An empty body is an error.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	return decode(w, r, dest, false)
}

// ParseOptionalJSON is ParseJSON but accepts an empty body, leaving dest
// untouched.
func ParseOptionalJSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	return decode(w, r, dest, true)
}

func decode(w http.ResponseWriter, r *http.Request, dest interface{}, allowEmpty bool) error {
	if r.Body == nil {
		if allowEmpty {
			return nil
		}
		return errors.New("invalid JSON: empty body")
	}
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return ErrBodyTooLarge
		case errors.Is(err, io.EOF) && allowEmpty:
			return nil
		case errors.Is(err, io.EOF):
			return errors.New("invalid JSON: empty body")
		}
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}
