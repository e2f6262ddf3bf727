// Package validations defines the request payload schemas. Each
// endpoint decodes into one of these structs and runs Check before any
// persistence call.
package validations

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var objectIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
		return objectIDPattern.MatchString(fl.Field().String())
	})
	return v
}

// Check validates a payload struct and returns the first violation as a
// readable error.
func Check(payload interface{}) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("%q failed on the %q rule", fe.Field(), fe.Tag())
	}
	return err
}

// IsObjectID reports whether s looks like a 24-hex document id.
func IsObjectID(s string) bool {
	return objectIDPattern.MatchString(s)
}
