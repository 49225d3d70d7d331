package geojson

import (
	"errors"
	"fmt"
)

// Error kinds. Match with errors.Is; use errors.As with *Error for the path.
var (
	ErrMalformedCoordinate     = errors.New("malformed coordinate")
	ErrMalformedEnvelope       = errors.New("malformed envelope")
	ErrMissingField            = errors.New("missing field")
	ErrNotAnArray              = errors.New("not an array")
	ErrNotAnObject             = errors.New("not an object")
	ErrUnknownGeometryType     = errors.New("unknown geometry type")
	ErrUnsupportedGeometryType = errors.New("unsupported geometry type")
	ErrTypeMismatch            = errors.New("type mismatch")
	ErrInvalidGeometry         = errors.New("invalid geometry")
	ErrNestingTooDeep          = errors.New("nesting too deep")
	ErrInvalidJSON             = errors.New("invalid json")
	ErrPayload                 = errors.New("invalid payload")
)

// Error describes a failed encode or decode. Kind is one of the Err*
// values above; Path locates the offending node in gjson path syntax,
// empty for the document root.
type Error struct {
	Kind   error
	Path   string
	Detail string
	Cause  error
}

func (e *Error) Error() string {
	msg := "geojson: " + e.Kind.Error()
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

func newError(kind error, path string, format string, args ...any) *Error {
	return &Error{Kind: kind, Path: path, Detail: fmt.Sprintf(format, args...)}
}

func wrapError(kind error, path string, cause error) *Error {
	return &Error{Kind: kind, Path: path, Cause: cause}
}

// join appends a member name or array index to a gjson path.
func join(path string, key any) string {
	if path == "" {
		return fmt.Sprint(key)
	}
	return fmt.Sprintf("%s.%v", path, key)
}
