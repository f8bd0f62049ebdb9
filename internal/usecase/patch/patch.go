// Package patch applies partial JSON updates through ordered, typed setter
// tables instead of reflection.
package patch

import (
	"context"
	"fmt"
	"sort"

	"github.com/rutea-api/internal/domain"
	"github.com/rutea-api/internal/pkg/errors"
)

// IDKey is never patched.
const IDKey = "id"

// Setter applies one decoded JSON value to target.
type Setter[T any] func(ctx context.Context, target *T, value any) error

// Field - one entry of a dispatch table
type Field[T any] struct {
	Name string
	Set  Setter[T]
}

// Table - ordered field dispatch table for T. Setters run in declaration
// order, which fixes the order relationships are resolved in.
type Table[T any] struct {
	fields []Field[T]
	known  map[string]struct{}
}

// NewTable builds a table from fields in resolution order. It panics on a
// duplicate key.
func NewTable[T any](fields ...Field[T]) *Table[T] {
	known := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if _, dup := known[f.Name]; dup {
			panic(fmt.Sprintf("patch: duplicate field %q", f.Name))
		}
		known[f.Name] = struct{}{}
	}
	return &Table[T]{fields: fields, known: known}
}

// Apply runs the setters for the keys present in payload. Coercion problems
// are collected across all keys and returned as one VALIDATION_ERROR; any
// other setter error (an unresolved relationship) stops at once. Unknown
// keys and "id" are returned in ignored, sorted.
func (t *Table[T]) Apply(ctx context.Context, target *T, payload map[string]any) (ignored []string, err error) {
	invalid := map[string]string{}

	for _, f := range t.fields {
		value, ok := payload[f.Name]
		if !ok {
			continue
		}
		if err := f.Set(ctx, target, value); err != nil {
			if fe, ok := err.(*FieldError); ok {
				invalid[fe.Field] = fe.Message
				continue
			}
			return nil, err
		}
	}

	for key := range payload {
		if _, ok := t.known[key]; !ok && key != IDKey {
			ignored = append(ignored, key)
		}
	}
	sort.Strings(ignored)

	if len(invalid) > 0 {
		return ignored, errors.NewValidationError(invalid)
	}
	return ignored, nil
}

// FieldError - a value that could not be coerced to the field's type
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

func invalid(field, kind string, cause error) *FieldError {
	return &FieldError{Field: field, Message: fmt.Sprintf("%s must be %s: %v", field, kind, cause)}
}

// IntField sets an int property.
func IntField[T any](name string, set func(*T, int)) Field[T] {
	return Field[T]{Name: name, Set: func(_ context.Context, t *T, v any) error {
		n, err := Int(v)
		if err != nil {
			return invalid(name, "an integer", err)
		}
		set(t, n)
		return nil
	}}
}

// Float32Field sets a float32 property.
func Float32Field[T any](name string, set func(*T, float32)) Field[T] {
	return Field[T]{Name: name, Set: func(_ context.Context, t *T, v any) error {
		f, err := Float32(v)
		if err != nil {
			return invalid(name, "a number", err)
		}
		set(t, f)
		return nil
	}}
}

// Float64Field sets a float64 property.
func Float64Field[T any](name string, set func(*T, float64)) Field[T] {
	return Field[T]{Name: name, Set: func(_ context.Context, t *T, v any) error {
		f, err := Float64(v)
		if err != nil {
			return invalid(name, "a number", err)
		}
		set(t, f)
		return nil
	}}
}

// BoolField sets a bool property.
func BoolField[T any](name string, set func(*T, bool)) Field[T] {
	return Field[T]{Name: name, Set: func(_ context.Context, t *T, v any) error {
		b, err := Bool(v)
		if err != nil {
			return invalid(name, "a boolean", err)
		}
		set(t, b)
		return nil
	}}
}

// StringField sets a string property; null becomes "".
func StringField[T any](name string, set func(*T, string)) Field[T] {
	return Field[T]{Name: name, Set: func(_ context.Context, t *T, v any) error {
		s, err := String(v)
		if err != nil {
			return invalid(name, "a string", err)
		}
		set(t, s)
		return nil
	}}
}

// NullableStringField sets an optional string; null clears it.
func NullableStringField[T any](name string, set func(*T, *string)) Field[T] {
	return Field[T]{Name: name, Set: func(_ context.Context, t *T, v any) error {
		s, err := NullableString(v)
		if err != nil {
			return invalid(name, "a string", err)
		}
		set(t, s)
		return nil
	}}
}

// DateField sets a domain.Date from a yyyy-MM-dd string.
func DateField[T any](name string, set func(*T, domain.Date)) Field[T] {
	return Field[T]{Name: name, Set: func(_ context.Context, t *T, v any) error {
		d, err := Date(v)
		if err != nil {
			return invalid(name, "a date", err)
		}
		set(t, d)
		return nil
	}}
}

// DateTimeField sets a domain.DateTime from a yyyy-MM-ddTHH:mm:ss string.
func DateTimeField[T any](name string, set func(*T, domain.DateTime)) Field[T] {
	return Field[T]{Name: name, Set: func(_ context.Context, t *T, v any) error {
		d, err := DateTime(v)
		if err != nil {
			return invalid(name, "a date-time", err)
		}
		set(t, d)
		return nil
	}}
}

// RefField coerces an id and hands it to resolve, whose error (typically a
// not-found) aborts the patch.
func RefField[T any](name string, resolve func(ctx context.Context, t *T, id int64) error) Field[T] {
	return Field[T]{Name: name, Set: func(ctx context.Context, t *T, v any) error {
		id, err := Int64(v)
		if err != nil {
			return invalid(name, "an integer id", err)
		}
		return resolve(ctx, t, id)
	}}
}

// RefListField is RefField for a list of ids.
func RefListField[T any](name string, resolve func(ctx context.Context, t *T, ids []int64) error) Field[T] {
	return Field[T]{Name: name, Set: func(ctx context.Context, t *T, v any) error {
		ids, err := Int64Slice(v)
		if err != nil {
			return invalid(name, "an array of integer ids", err)
		}
		return resolve(ctx, t, ids)
	}}
}
