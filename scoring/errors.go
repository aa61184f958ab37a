package scoring

import (
	"errors"
	"fmt"
	"github.com/alex-pricope/hackathon-scoring/storage"
	"github.com/go-playground/validator/v10"
)

// ValidationError covers malformed input, out-of-bound scores and requests
// made before the data they depend on is complete.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string { return e.Message }

type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.ID)
}

func validationf(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func forbiddenf(format string, args ...interface{}) error {
	return &ForbiddenError{Message: fmt.Sprintf(format, args...)}
}

// notFoundOr maps storage.ErrNotFound to a NotFoundError and wraps anything
// else with the lookup that failed.
func notFoundOr(err error, entity, id string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return &NotFoundError{Entity: entity, ID: id}
	}
	return fmt.Errorf("load %s %s: %w", entity, id, err)
}

// fromValidator flattens validator field errors into one ValidationError.
func fromValidator(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{Message: err.Error()}
	}
	fe := fieldErrs[0]
	msg := fmt.Sprintf("invalid field %s: failed %s", fe.Namespace(), fe.Tag())
	if fe.Param() != "" {
		msg += "=" + fe.Param()
	}
	if len(fieldErrs) > 1 {
		msg += fmt.Sprintf(" (and %d more)", len(fieldErrs)-1)
	}
	return &ValidationError{Message: msg}
}
