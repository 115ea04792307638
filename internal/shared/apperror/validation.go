package apperror

import (
	"errors"
	"fmt"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// MissingField is the message used for absent required request fields.
func MissingField(field string) string {
	return fmt.Sprintf("Missing `%s` in request body", field)
}

// FromValidation converts an ozzo-validation result into a Validation error.
// Only one failing field is reported: the first of order that failed, or the
// first by name when order is empty or names none of them.
func FromValidation(err error, order ...string) error {
	if err == nil {
		return nil
	}

	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		if field, ok := firstFailing(fieldErrs, order); ok {
			return &Error{Kind: KindValidation, Message: fieldErrs[field].Error(), Err: err}
		}
	}

	var internal validation.InternalError
	if errors.As(err, &internal) {
		return Store("validation failed", err)
	}

	return &Error{Kind: KindValidation, Message: err.Error(), Err: err}
}

func firstFailing(fieldErrs validation.Errors, order []string) (string, bool) {
	for _, field := range order {
		if fieldErrs[field] != nil {
			return field, true
		}
	}

	fields := make([]string, 0, len(fieldErrs))
	for field, fieldErr := range fieldErrs {
		if fieldErr != nil {
			fields = append(fields, field)
		}
	}
	if len(fields) == 0 {
		return "", false
	}
	sort.Strings(fields)
	return fields[0], true
}
