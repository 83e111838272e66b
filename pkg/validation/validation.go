// Package validation binds JSON request bodies through gin's validator and
// turns failures into itemized field errors.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/studyhub/studyhub/backend/go-services/pkg/response"
)

var setupOnce sync.Once

// Setup registers the custom rules on gin's validator engine:
// json tag names in error paths and the `notblank` rule.
func Setup() {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
		_ = v.RegisterValidation("notblank", validators.NotBlank)
	})
}

// Messages maps a field path to the message reported for it. Keys are tried
// from most to least specific: "field.tag", then "field". Slice indexes are
// ignored, so "schedule.day.notblank" matches "schedule[3].day".
type Messages map[string]string

func (m Messages) lookup(field, tag string) string {
	norm := indexRe.ReplaceAllString(field, "")
	for _, k := range []string{field + "." + tag, norm + "." + tag, field, norm} {
		if msg, ok := m[k]; ok {
			return msg
		}
	}
	if tag == "type" {
		return fmt.Sprintf("%s has an invalid type", field)
	}
	return fmt.Sprintf("%s is invalid", field)
}

var indexRe = regexp.MustCompile(`\[\d+\]`)

const maxEchoedValue = 256

// BindJSON decodes the request body into obj and validates it. An empty body
// validates as an empty object so every missing field is reported.
func BindJSON(c *gin.Context, obj interface{}, msgs Messages) []response.FieldError {
	Setup()
	err := c.ShouldBindJSON(obj)
	if errors.Is(err, io.EOF) {
		err = binding.Validator.ValidateStruct(obj)
	}
	if err == nil {
		return nil
	}
	return FieldErrors(err, msgs)
}

// FieldErrors converts binding errors into itemized field errors.
func FieldErrors(err error, msgs Messages) []response.FieldError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]response.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			field := fieldPath(fe.Namespace())
			out = append(out, response.FieldError{
				Field:   field,
				Message: msgs.lookup(field, fe.Tag()),
				Value:   echo(fe.Value()),
			})
		}
		return out
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return []response.FieldError{{Field: field, Message: msgs.lookup(field, "type")}}
	}

	return []response.FieldError{{Field: "body", Message: "Request body must be valid JSON"}}
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func echo(v interface{}) interface{} {
	if v == nil {
		return nil
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
	case reflect.String:
		if rv.Len() > maxEchoedValue {
			return nil
		}
	}
	return v
}
