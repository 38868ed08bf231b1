package services

import (
	"errors"
	"fmt"

	"github.com/Rakhulsr/go-catalog/app/helpers"
	"github.com/go-playground/validator/v10"
)

var (
	ErrNotFound           = errors.New("resource not found")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrBlobStore          = errors.New("blob store failure")
)

// ValidationError carries client-fixable problems keyed by field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("the given data was invalid (%d fields)", len(e.Fields))
}

// validationFields runs the struct tags of input. The returned map is never nil
// so callers can add existence and uniqueness problems to it.
func validationFields(v *validator.Validate, input interface{}) map[string]string {
	err := v.Struct(input)
	if err == nil {
		return map[string]string{}
	}
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		return helpers.FormatValidationErrors(errs)
	}
	return map[string]string{"input": err.Error()}
}

func failed(fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

func blobError(op, key string, err error) error {
	return fmt.Errorf("%w: %s %s: %v", ErrBlobStore, op, key, err)
}
