// Package bind decodes and validates request payloads, mapping every failure to
// a project error the responder can render
package bind

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entrans "github.com/go-playground/validator/v10/translations/en"

	perr "itinerary/internal/platform/errors"
)

// DefaultMaxJSON bounds ParseJSON when the caller passes no limit
const DefaultMaxJSON int64 = 1 << 20

var (
	once  sync.Once
	valid *validator.Validate
	trans ut.Translator
)

func setup() {
	once.Do(func() {
		loc := en.New()
		trans, _ = ut.New(loc, loc).GetTranslator("en")

		valid = validator.New(validator.WithRequiredStructEnabled())
		valid.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			switch name {
			case "-", "":
				return f.Name
			}
			return name
		})
		_ = entrans.RegisterDefaultTranslations(valid, trans)

		message(valid, "min", "{0} must be at least {1}")
		message(valid, "max", "{0} must be at most {1}")
		_ = valid.RegisterValidation("notblank", notBlank)
		message(valid, "notblank", "{0} must contain more than whitespace")
		_ = valid.RegisterValidation("filename", fileName)
		message(valid, "filename", "{0} must be a plain file name without separators")
	})
}

func message(v *validator.Validate, tag, text string) {
	_ = v.RegisterTranslation(tag, trans,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field(), fe.Param())
			return s
		},
	)
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// fileName rejects separators, parent references and control characters
func fileName(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	if s == "." || s == ".." || strings.ContainsAny(s, `/\`) {
		return false
	}
	return !strings.ContainsFunc(s, unicode.IsControl)
}

// Validate runs the struct tags on v. The first failing field becomes a
// Validation error carrying the field name
func Validate(v any) error {
	setup()
	err := valid.Struct(v)
	if err == nil {
		return nil
	}
	var fields validator.ValidationErrors
	if errors.As(err, &fields) && len(fields) > 0 {
		fe := fields[0]
		return perr.WithField(perr.Newf(perr.ErrorCodeValidation, "%s", fe.Translate(trans)), fe.Field())
	}
	return perr.Wrap(err, perr.ErrorCodeValidation, "validation error")
}

// ParseJSON decodes exactly one JSON value into T and validates it.
// Unknown fields and trailing data are rejected; a body over maxBytes
// (DefaultMaxJSON when <= 0) is TooLarge
func ParseJSON[T any](w http.ResponseWriter, r *http.Request, maxBytes int64) (T, error) {
	var out T
	if maxBytes <= 0 {
		maxBytes = DefaultMaxJSON
	}
	body := http.MaxBytesReader(w, r.Body, maxBytes)
	defer func() { _ = body.Close() }()

	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		var tooBig *http.MaxBytesError
		switch {
		case errors.As(err, &tooBig):
			return out, perr.TooLargef("request body exceeds %d bytes", tooBig.Limit)
		case errors.Is(err, io.EOF):
			return out, perr.JSONErrf("empty body")
		}
		return out, perr.JSONErrf("invalid JSON: %v", err)
	}
	if dec.More() {
		return out, perr.JSONErrf("unexpected data after the JSON value")
	}
	if err := Validate(out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}
