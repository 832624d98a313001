package lint

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"math"
	"strconv"
	"strings"

	"github.com/bjaus/stdfmt"
)

// ErrUnsupportedArg reports an argument expression EvalArgs cannot evaluate.
var ErrUnsupportedArg = errors.New("unsupported argument expression")

// ParseLine splits an interactive input line into a format string and its
// arguments. A line starting with a double quote or backquote is a Go
// argument list: a string literal followed by literal arguments, as in
//
//	"{:>8.2f}|{}", 3.14159, 'x'
//
// Any other line is taken verbatim as a format with no arguments.
func ParseLine(line string) (string, []any, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || (trimmed[0] != '"' && trimmed[0] != '`') {
		return line, nil, nil
	}
	expr, err := parser.ParseExpr("f(" + trimmed + ")")
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	call := expr.(*ast.CallExpr)
	if len(call.Args) == 0 || call.Ellipsis.IsValid() {
		return "", nil, fmt.Errorf("%w: expected a format literal", ErrUnsupportedArg)
	}
	format, ok := constString(call.Args[0])
	if !ok {
		return "", nil, fmt.Errorf("%w: the format must be a string literal", ErrUnsupportedArg)
	}
	args := make([]any, len(call.Args)-1)
	for i, e := range call.Args[1:] {
		v, err := evalExpr(e)
		if err != nil {
			return "", nil, fmt.Errorf("argument %d: %w", i, err)
		}
		args[i] = v
	}
	return format, args, nil
}

func evalExpr(e ast.Expr) (any, error) {
	switch e := e.(type) {
	case *ast.ParenExpr:
		return evalExpr(e.X)
	case *ast.BasicLit:
		return evalLit(e)
	case *ast.Ident:
		switch e.Name {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
	case *ast.UnaryExpr:
		v, err := evalExpr(e.X)
		if err != nil {
			return nil, err
		}
		switch e.Op {
		case token.ADD:
			return v, nil
		case token.SUB:
			return negate(v)
		case token.NOT:
			if b, ok := v.(bool); ok {
				return !b, nil
			}
		}
	case *ast.CallExpr:
		if len(e.Args) == 1 && !e.Ellipsis.IsValid() {
			v, err := evalExpr(e.Args[0])
			if err != nil {
				return nil, err
			}
			return convert(e.Fun, v)
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedArg, exprString(e))
}

func evalLit(lit *ast.BasicLit) (any, error) {
	switch lit.Kind {
	case token.INT:
		if v, err := strconv.ParseInt(lit.Value, 0, 64); err == nil {
			return int(v), nil
		}
		return strconv.ParseUint(lit.Value, 0, 64)
	case token.FLOAT:
		return strconv.ParseFloat(lit.Value, 64)
	case token.IMAG:
		f, err := strconv.ParseFloat(strings.TrimSuffix(lit.Value, "i"), 64)
		return complex(0, f), err
	case token.CHAR:
		r, _, _, err := strconv.UnquoteChar(lit.Value[1:len(lit.Value)-1], '\'')
		return r, err
	case token.STRING:
		return strconv.Unquote(lit.Value)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedArg, lit.Value)
}

func negate(v any) (any, error) {
	switch v := v.(type) {
	case int:
		return -v, nil
	case uint64:
		if v == 1<<63 {
			return int64(math.MinInt64), nil
		}
	case float64:
		return -v, nil
	case complex128:
		return -v, nil
	case rune:
		return -v, nil
	}
	return nil, fmt.Errorf("%w: cannot negate %T", ErrUnsupportedArg, v)
}

// convert applies a conversion such as int8(x), []byte(s) or char('x').
func convert(fun ast.Expr, v any) (any, error) {
	name := exprString(fun)
	if s, ok := v.(string); ok {
		switch name {
		case "string":
			return s, nil
		case "[]byte":
			return []byte(s), nil
		}
		return nil, fmt.Errorf("%w: cannot convert string with %s", ErrUnsupportedArg, name)
	}
	if name == "char" || strings.HasSuffix(name, ".Char") {
		i, ok := toInt64(v)
		if !ok {
			return nil, fmt.Errorf("%w: char of %T", ErrUnsupportedArg, v)
		}
		return stdfmt.Char(i), nil
	}
	if f, ok := v.(float64); ok {
		switch name {
		case "float32":
			return float32(f), nil
		case "float64":
			return f, nil
		}
	}
	i, ok := toInt64(v)
	if !ok {
		if u, isUint := v.(uint64); isUint && name == "uint64" {
			return u, nil
		}
		return nil, fmt.Errorf("%w: cannot convert %T with %s", ErrUnsupportedArg, v, name)
	}
	switch name {
	case "int":
		return int(i), nil
	case "int8":
		return int8(i), nil
	case "int16":
		return int16(i), nil
	case "int32", "rune":
		return int32(i), nil
	case "int64":
		return i, nil
	case "uint":
		return uint(i), nil
	case "uint8", "byte":
		return uint8(i), nil
	case "uint16":
		return uint16(i), nil
	case "uint32":
		return uint32(i), nil
	case "uint64":
		return uint64(i), nil
	case "float32":
		return float32(i), nil
	case "float64":
		return float64(i), nil
	case "bool":
		return nil, fmt.Errorf("%w: cannot convert %T to bool", ErrUnsupportedArg, v)
	}
	return nil, fmt.Errorf("%w: unknown conversion %s", ErrUnsupportedArg, name)
}

func toInt64(v any) (int64, bool) {
	switch v := v.(type) {
	case int:
		return int64(v), true
	case int64:
		return v, true
	case rune:
		return int64(v), true
	}
	return 0, false
}

func exprString(e ast.Expr) string {
	switch e := e.(type) {
	case *ast.Ident:
		return e.Name
	case *ast.SelectorExpr:
		return exprString(e.X) + "." + e.Sel.Name
	case *ast.ArrayType:
		if e.Len == nil {
			return "[]" + exprString(e.Elt)
		}
	case *ast.BasicLit:
		return e.Value
	}
	return fmt.Sprintf("%T", e)
}
