package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"
)

// Kind classifies a decode failure.
type Kind int

const (
	KindMalformedJSON Kind = iota + 1
	KindMissingField
	KindTypeMismatch
	KindUnknownVariant
)

func (k Kind) String() string {
	switch k {
	case KindMalformedJSON:
		return "malformed_json"
	case KindMissingField:
		return "missing_field"
	case KindTypeMismatch:
		return "type_mismatch"
	case KindUnknownVariant:
		return "unknown_variant"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is.
var (
	ErrMalformedJSON  = errors.New("malformed json")
	ErrMissingField   = errors.New("missing field")
	ErrTypeMismatch   = errors.New("type mismatch")
	ErrUnknownVariant = errors.New("unknown transaction variant")
)

// DecodeError describes why a payload could not be decoded. Path is the dotted
// JSON path of the offending field ("tx.data.signType").
type DecodeError struct {
	Kind     Kind
	Path     string
	Expected string
	Actual   string

	// Tag is the discriminator value for KindUnknownVariant
	Tag string

	Err error
}

func (e *DecodeError) Error() string {
	path := e.Path
	if path == "" {
		path = "(root)"
	}
	switch e.Kind {
	case KindMalformedJSON:
		return fmt.Sprintf("malformed json: %v", e.Err)
	case KindMissingField:
		return fmt.Sprintf("missing field %q", path)
	case KindTypeMismatch:
		return fmt.Sprintf("type mismatch at %q: expected %s, got %s", path, e.Expected, e.Actual)
	case KindUnknownVariant:
		return fmt.Sprintf("unknown transaction variant %q at %q", e.Tag, path)
	default:
		return "decode error"
	}
}

// Field is the last segment of Path.
func (e *DecodeError) Field() string {
	if i := strings.LastIndexByte(e.Path, '.'); i >= 0 {
		return e.Path[i+1:]
	}
	return e.Path
}

func (e *DecodeError) Is(target error) bool {
	switch target {
	case ErrMalformedJSON:
		return e.Kind == KindMalformedJSON
	case ErrMissingField:
		return e.Kind == KindMissingField
	case ErrTypeMismatch:
		return e.Kind == KindTypeMismatch
	case ErrUnknownVariant:
		return e.Kind == KindUnknownVariant
	}
	return false
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func malformed(err error) *DecodeError {
	return &DecodeError{Kind: KindMalformedJSON, Err: err}
}

func missing(path string) *DecodeError {
	return &DecodeError{Kind: KindMissingField, Path: path}
}

func mismatch(path, expected string, raw json.RawMessage) *DecodeError {
	return &DecodeError{Kind: KindTypeMismatch, Path: path, Expected: expected, Actual: describe(raw)}
}

func unknownVariant(path, tag string) *DecodeError {
	return &DecodeError{Kind: KindUnknownVariant, Path: path, Tag: tag, Actual: tag}
}

// fromUnmarshal maps an encoding/json failure under base onto a DecodeError.
func fromUnmarshal(base string, err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return &DecodeError{
			Kind:     KindTypeMismatch,
			Path:     join(base, typeErr.Field),
			Expected: jsonKind(typeErr.Type),
			Actual:   typeErr.Value,
			Err:      err,
		}
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return malformed(err)
	}
	return &DecodeError{Kind: KindTypeMismatch, Path: base, Err: err}
}

// describe renders an observed JSON value for error messages.
func describe(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	if s == "" {
		return "nothing"
	}
	const limit = 64
	if len(s) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut] + "..."
	}
	switch s[0] {
	case '{':
		return "object"
	case '[':
		return "array"
	case '"':
		return "string " + s
	case 't', 'f':
		return "bool " + s
	case 'n':
		return "null"
	default:
		return "number " + s
	}
}

func jsonKind(t reflect.Type) string {
	if t == nil {
		return "value"
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "bool"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "integer"
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "unsigned integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Struct, reflect.Map:
		return "object"
	case reflect.Pointer:
		return jsonKind(t.Elem())
	default:
		return t.String()
	}
}

func join(base, field string) string {
	switch {
	case base == "":
		return field
	case field == "":
		return base
	default:
		return base + "." + field
	}
}
