package validator

import (
	"errors"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// Has reports whether a message was recorded for field.
func (v ValidationErrors) Has(field string) bool {
	for _, err := range v {
		if err.Field == field {
			return true
		}
	}
	return false
}

// FromOzzo converts the field errors returned by validation.ValidateStruct
// into ValidationErrors, sorted by field name. Any other error is returned
// unchanged so internal rule failures are not reported as bad input.
func FromOzzo(err error) error {
	if err == nil {
		return nil
	}

	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	errs := make(ValidationErrors, 0, len(fieldErrs))
	for field, fieldErr := range fieldErrs {
		if fieldErr == nil {
			continue
		}
		errs = append(errs, ValidationError{Field: field, Message: fieldErr.Error()})
	}
	if len(errs) == 0 {
		return nil
	}

	sort.Slice(errs, func(i, j int) bool { return errs[i].Field < errs[j].Field })
	return errs
}

// Merge appends extra to the field errors held by err. A nil err with no
// extra errors stays nil.
func Merge(err error, extra ...ValidationError) error {
	if err == nil {
		if len(extra) == 0 {
			return nil
		}
		return ValidationErrors(extra)
	}

	var errs ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}
	return append(errs, extra...)
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}
