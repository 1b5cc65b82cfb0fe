// Package validation wires go-playground/validator with the record rules
// shared by every entity kind.
package validation

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/odyssey-erp/stockroom/internal/shared"
)

const (
	// TagEmail validates the contact email shape.
	TagEmail = "contact_email"
	// TagPhone validates the contact phone shape.
	TagPhone = "contact_phone"
	// TagFlat rejects characters the pipe-delimited files cannot carry.
	TagFlat = "flat"
	// TagFinite rejects NaN and infinite floats.
	TagFinite = "finite"
)

const minPhoneDigits = 7

var (
	once     sync.Once
	instance *validator.Validate
)

// Validator returns the process-wide validator with custom tags registered.
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				return field.Name
			}
			return name
		})
		mustRegister(v, TagEmail, func(fl validator.FieldLevel) bool { return Email(fl.Field().String()) })
		mustRegister(v, TagPhone, func(fl validator.FieldLevel) bool { return Phone(fl.Field().String()) })
		mustRegister(v, TagFlat, func(fl validator.FieldLevel) bool { return Flat(fl.Field().String()) })
		mustRegister(v, TagFinite, func(fl validator.FieldLevel) bool { return Finite(fl.Field().Float()) })
		instance = v
	})
	return instance
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Errorf("validation: register %s: %w", tag, err))
	}
}

// FieldError describes one failing field.
type FieldError struct {
	Field string
	Tag   string
	Param string
}

func (e FieldError) String() string {
	if e.Param != "" {
		return fmt.Sprintf("%s failed %s=%s", e.Field, e.Tag, e.Param)
	}
	return fmt.Sprintf("%s failed %s", e.Field, e.Tag)
}

// FieldErrors lists every failing field of a record. It matches
// shared.ErrInvalidRecord under errors.Is.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.String()
	}
	return fmt.Sprintf("%s: %s", shared.ErrInvalidRecord, strings.Join(parts, "; "))
}

// Unwrap ties the error to shared.ErrInvalidRecord.
func (e FieldErrors) Unwrap() error { return shared.ErrInvalidRecord }

// Fields returns field -> message pairs for display.
func (e FieldErrors) Fields() map[string]string {
	out := make(map[string]string, len(e))
	for _, fe := range e {
		out[fe.Field] = fe.String()
	}
	return out
}

// Struct validates v against its `validate` tags.
func Struct(v any) error {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", shared.ErrInvalidRecord, err)
	}
	out := make(FieldErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Tag: fe.Tag(), Param: fe.Param()})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return out
}

// Email reports whether s has exactly one '@' followed somewhere later by a '.'.
func Email(s string) bool {
	at := strings.IndexByte(s, '@')
	if at < 0 || strings.Count(s, "@") != 1 {
		return false
	}
	return strings.IndexByte(s[at+1:], '.') >= 0
}

// Phone reports whether s holds only digits and "+-() " with at least seven digits.
func Phone(s string) bool {
	digits := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '+', r == '-', r == ' ', r == '(', r == ')':
		default:
			return false
		}
	}
	return digits >= minPhoneDigits
}

// Flat reports whether s can be stored in a single pipe-delimited field.
func Flat(s string) bool {
	return !strings.ContainsAny(s, "|\r\n")
}

// Finite reports whether f is neither NaN nor infinite.
func Finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
