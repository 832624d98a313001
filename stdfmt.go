package stdfmt

import (
	"errors"
	"fmt"
	"io"
)

// Sentinel errors for programmatic error handling. Every error returned by the
// engine is a [*FormatError] that unwraps to one of these.
var (
	ErrSyntax   = errors.New("format syntax error")
	ErrIndex    = errors.New("argument index out of range")
	ErrType     = errors.New("argument type mismatch")
	ErrValue    = errors.New("invalid argument value")
	ErrResource = errors.New("resource limit exceeded")
)

// FormatError describes a failure while validating or rendering a format
// string. Pos is the byte offset in the format string, or -1 when the failure
// is not tied to a position.
type FormatError struct {
	Kind error
	Pos  int
	Msg  string
}

func (e *FormatError) Error() string {
	if e.Pos >= 0 {
		return fmt.Sprintf("%s at offset %d: %s", e.Kind, e.Pos, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Unwrap returns the sentinel the error belongs to.
func (e *FormatError) Unwrap() error { return e.Kind }

func errorf(kind error, pos int, format string, args ...any) error {
	return &FormatError{Kind: kind, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

var classic = NewPrinter(Classic)

// Format renders args according to format and returns the result.
func Format(format string, args ...any) (string, error) {
	return classic.Format(format, args...)
}

// MustFormat is like [Format] but panics on error. It is meant for format
// strings validated ahead of time with [Check] or [MustCompile].
func MustFormat(format string, args ...any) string {
	s, err := classic.Format(format, args...)
	if err != nil {
		panic(err)
	}
	return s
}

// Append renders args according to format, appends the result to dst and
// returns the extended buffer.
func Append(dst []byte, format string, args ...any) ([]byte, error) {
	return classic.Append(dst, format, args...)
}

// FormatTo renders args according to format directly into w and returns the
// number of bytes written.
func FormatTo(w io.Writer, format string, args ...any) (int, error) {
	return classic.FormatTo(w, format, args...)
}

// FormatToN renders at most len(dst) bytes into dst. It returns the number of
// bytes written and the size the complete output would have had.
func FormatToN(dst []byte, format string, args ...any) (n, size int, err error) {
	return classic.FormatToN(dst, format, args...)
}

// FormattedSize returns the length in bytes of the rendered output without
// producing it.
func FormattedSize(format string, args ...any) (int, error) {
	return classic.FormattedSize(format, args...)
}
