// Package validation checks request payloads and stored records before they
// reach the services. Every failure unwraps to one of the sentinels in
// internal/common so that callers can classify it with errors.Is.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/focusflow/internal/common"
	"github.com/go-playground/validator/v10"
)

// Column bounds of the persisted layout.
const (
	MaxUsernameLen    = 150
	MaxEmailLen       = 150
	MaxPasswordLen    = 450
	MaxTaskNameLen    = 200
	MaxDescriptionLen = 350
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// FieldError names the offending field. Err is the sentinel it unwraps to.
type FieldError struct {
	Field  string
	Reason string
	Err    error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error { return e.Err }

// MissingKeysError lists required keys absent from a payload, in the order
// they are expected.
type MissingKeysError struct {
	Keys []string
}

func (e *MissingKeysError) Error() string {
	return "missing keys: " + strings.Join(e.Keys, ", ")
}

func (e *MissingKeysError) Unwrap() error { return common.ErrMissingKeys }

// checkStruct runs the struct tags and reports the first violation as a
// FieldError using the field's json name.
func checkStruct(v any, names map[string]string) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", common.ErrValidation, err)
	}

	fe := verrs[0]
	field := fe.Field()
	if n, ok := names[field]; ok {
		field = n
	}

	reason := fe.Tag()
	switch fe.Tag() {
	case "required":
		reason = "must not be empty"
	case "max":
		reason = "must be at most " + fe.Param() + " characters"
	case "gt":
		reason = "must be greater than " + fe.Param()
	}

	return &FieldError{Field: field, Reason: reason, Err: common.ErrValidation}
}
