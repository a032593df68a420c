package dto

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/crucial707/task-api/internal/apperror"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report fields by their JSON names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks req against its validate tags. Failures come back as a
// Validation error with a field -> failed tag map. The message is msg when a
// required field is missing, otherwise it names the first invalid field.
func Validate(req any, msg string) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperror.Internal(err)
	}
	fields := make(map[string]string, len(verrs))
	names := make([]string, 0, len(verrs))
	missing := false
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
		names = append(names, fe.Field())
		if fe.Tag() == "required" {
			missing = true
		}
	}
	if !missing {
		slices.Sort(names)
		msg = fmt.Sprintf("Invalid value for %s", names[0])
	}
	return apperror.ValidationFields(msg, fields)
}
