// Package bind decodes and validates an HTTP request body into a struct.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/shashiranjanraj/orderservice/config"
	"github.com/shashiranjanraj/orderservice/pkg/validate"
)

// Validator is implemented by request types that validate nested data
// themselves. Others fall back to validate.Struct.
type Validator interface {
	Validate() validate.Errors
}

// JSON decodes r.Body as JSON into dest and runs validation.
// Returns (errs, nil) when there are validation failures.
// Returns (nil, err) when the body is empty, malformed or too large.
func JSON(w http.ResponseWriter, r *http.Request, dest interface{}) (validate.Errors, error) {
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxBodyBytes())

	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return nil, fmt.Errorf("request body too large (max %d bytes)", maxErr.Limit)
		case errors.Is(err, io.EOF):
			return nil, errors.New("request body is empty")
		default:
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
	}

	var errs validate.Errors
	if v, ok := dest.(Validator); ok {
		errs = v.Validate()
	} else {
		errs = validate.Struct(dest)
	}
	if validate.HasErrors(errs) {
		return errs, nil
	}
	return nil, nil
}
