package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"

	"yamdb/internal/apperr"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var setupOnce sync.Once

// Setup registers the custom tags (username, slug, score) and JSON field
// naming on gin's validator engine. Safe to call more than once.
func Setup() {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			panic("validation: gin binding engine is not go-playground/validator")
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
		mustRegister(v, "username", func(fl validator.FieldLevel) bool {
			return Username(fl.Field().String()) == nil
		})
		mustRegister(v, "slug", func(fl validator.FieldLevel) bool {
			return Slug(fl.Field().String()) == nil
		})
		mustRegister(v, "score", func(fl validator.FieldLevel) bool {
			return Score(int(fl.Field().Int())) == nil
		})
	})
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: register %q: %v", tag, err))
	}
}

func engine() *validator.Validate {
	Setup()
	return binding.Validator.Engine().(*validator.Validate)
}

var messageTemplates = map[string]string{
	"required": "%s is required",
	"email":    "%s must be a valid email address",
	"username": "%s may contain only letters, digits and @/./+/-/_ and must not be \"me\"",
	"slug":     "%s may contain only latin letters, digits, hyphens and underscores",
	"score":    "%s must be between 1 and 10",
	"dive":     "%s contains an invalid value",
}

var messageTemplatesWithParam = map[string]string{
	"oneof": "%s must be one of: %s",
	"gte":   "%s must be greater than or equal to %s",
	"lte":   "%s must be less than or equal to %s",
}

// FromBindError converts an error from gin's ShouldBind* into a validation
// error naming the first offending field.
func FromBindError(err error) error {
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return apperr.Validation(fe.Field(), fieldMessage(fe))
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return apperr.Validation(typeErr.Field, fmt.Sprintf("%s must be of type %s", typeErr.Field, typeErr.Type))
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return apperr.Validation("", "request body must be valid JSON")
	}

	return apperr.Validation("", err.Error())
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	if tmpl, ok := messageTemplates[fe.Tag()]; ok {
		return fmt.Sprintf(tmpl, field)
	}
	if tmpl, ok := messageTemplatesWithParam[fe.Tag()]; ok {
		return fmt.Sprintf(tmpl, field, fe.Param())
	}

	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "min":
		if isString {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if isString {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
