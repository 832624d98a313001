package lint

import (
	"errors"

	"github.com/bjaus/stdfmt"
)

// Finding is one format string that failed validation.
type Finding struct {
	File    string `json:"file" yaml:"file"`
	Line    int    `json:"line" yaml:"line"`
	Column  int    `json:"column" yaml:"column"`
	Call    string `json:"call" yaml:"call"`
	Format  string `json:"format" yaml:"format"`
	Kind    string `json:"kind" yaml:"kind"`
	Offset  int    `json:"offset" yaml:"offset"`
	Message string `json:"message" yaml:"message"`
}

// Location renders file:line:column.
func (f Finding) Location() string {
	return stdfmt.MustFormat("{}:{}:{}", f.File, f.Line, f.Column)
}

func (f Finding) Row() []string {
	msg := f.Message
	if f.Offset >= 0 {
		msg = stdfmt.MustFormat("{} (offset {} in {:?})", f.Message, f.Offset, f.Format)
	}
	return []string{f.Location(), f.Kind, msg, f.Call}
}

func (Finding) Header() []string {
	return []string{"Location", "Kind", "Message", "Call"}
}

// KindOf names the error category of err: syntax, index, type, value or
// resource. Anything else is "error".
func KindOf(err error) string {
	switch {
	case errors.Is(err, stdfmt.ErrSyntax):
		return "syntax"
	case errors.Is(err, stdfmt.ErrIndex):
		return "index"
	case errors.Is(err, stdfmt.ErrType):
		return "type"
	case errors.Is(err, stdfmt.ErrValue):
		return "value"
	case errors.Is(err, stdfmt.ErrResource):
		return "resource"
	default:
		return "error"
	}
}

func newFinding(call, format string, err error) Finding {
	f := Finding{Call: call, Format: format, Kind: KindOf(err), Offset: -1, Message: err.Error()}
	var fe *stdfmt.FormatError
	if errors.As(err, &fe) {
		f.Offset = fe.Pos
		f.Message = fe.Msg
	}
	return f
}
