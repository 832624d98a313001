package lint

import (
	"go/ast"
	"go/token"
	"strconv"

	"github.com/bjaus/stdfmt"
)

var builtinTypes = map[string]stdfmt.ArgType{
	"bool":       stdfmt.TypeOf[bool](),
	"int":        stdfmt.TypeOf[int](),
	"int8":       stdfmt.TypeOf[int8](),
	"int16":      stdfmt.TypeOf[int16](),
	"int32":      stdfmt.TypeOf[int32](),
	"rune":       stdfmt.TypeOf[rune](),
	"int64":      stdfmt.TypeOf[int64](),
	"uint":       stdfmt.TypeOf[uint](),
	"uint8":      stdfmt.TypeOf[uint8](),
	"byte":       stdfmt.TypeOf[byte](),
	"uint16":     stdfmt.TypeOf[uint16](),
	"uint32":     stdfmt.TypeOf[uint32](),
	"uint64":     stdfmt.TypeOf[uint64](),
	"uintptr":    stdfmt.TypeOf[uintptr](),
	"float32":    stdfmt.TypeOf[float32](),
	"float64":    stdfmt.TypeOf[float64](),
	"complex64":  stdfmt.TypeOf[complex64](),
	"complex128": stdfmt.TypeOf[complex128](),
	"string":     stdfmt.TypeOf[string](),
}

var packageTypes = map[string]stdfmt.ArgType{
	"Char":    stdfmt.TypeOf[stdfmt.Char](),
	"Int128":  stdfmt.TypeOf[stdfmt.Int128](),
	"Uint128": stdfmt.TypeOf[stdfmt.Uint128](),
}

// inferer maps argument expressions to ArgTypes. pkg is the local name the
// formatting package is imported under, "." for a dot import and "" when the
// file does not import it.
type inferer struct {
	pkg string
}

// isPkgSel reports whether e names pkg.name.
func (in inferer) isPkgSel(e ast.Expr, name string) bool {
	switch e := e.(type) {
	case *ast.SelectorExpr:
		id, ok := e.X.(*ast.Ident)
		return ok && in.pkg != "" && id.Name == in.pkg && e.Sel.Name == name
	case *ast.Ident:
		return in.pkg == "." && e.Name == name
	}
	return false
}

// valueType infers the type of a value argument. Only literals and
// conversions of literals are inferred; everything else is Unknown.
func (in inferer) valueType(e ast.Expr) stdfmt.ArgType {
	switch e := e.(type) {
	case *ast.ParenExpr:
		return in.valueType(e.X)
	case *ast.BasicLit:
		switch e.Kind {
		case token.INT:
			return builtinTypes["int"]
		case token.FLOAT:
			return builtinTypes["float64"]
		case token.IMAG:
			return builtinTypes["complex128"]
		case token.CHAR:
			return builtinTypes["rune"]
		case token.STRING:
			return builtinTypes["string"]
		}
	case *ast.UnaryExpr:
		switch e.Op {
		case token.ADD, token.SUB, token.XOR, token.NOT:
			return in.valueType(e.X)
		}
	case *ast.Ident:
		if e.Name == "true" || e.Name == "false" {
			return builtinTypes["bool"]
		}
	case *ast.CallExpr:
		if len(e.Args) != 1 || e.Ellipsis.IsValid() {
			return stdfmt.Unknown
		}
		return in.typeExpr(e.Fun)
	}
	return stdfmt.Unknown
}

// typeExpr maps a type expression to its ArgType.
func (in inferer) typeExpr(e ast.Expr) stdfmt.ArgType {
	switch e := e.(type) {
	case *ast.ParenExpr:
		return in.typeExpr(e.X)
	case *ast.Ident:
		if t, ok := builtinTypes[e.Name]; ok {
			return t
		}
		if in.pkg == "." {
			if t, ok := packageTypes[e.Name]; ok {
				return t
			}
		}
	case *ast.SelectorExpr:
		for name, t := range packageTypes {
			if in.isPkgSel(e, name) {
				return t
			}
		}
	case *ast.ArrayType:
		if id, ok := e.Elt.(*ast.Ident); ok && e.Len == nil && (id.Name == "byte" || id.Name == "uint8") {
			return stdfmt.TypeOf[[]byte]()
		}
	}
	return stdfmt.Unknown
}

// argType infers an ArgType expression as passed to Check and Compile:
// pkg.TypeOf[T]() or pkg.Unknown.
func (in inferer) argType(e ast.Expr) stdfmt.ArgType {
	switch e := e.(type) {
	case *ast.ParenExpr:
		return in.argType(e.X)
	case *ast.CallExpr:
		if len(e.Args) != 0 {
			return stdfmt.Unknown
		}
		if ix, ok := e.Fun.(*ast.IndexExpr); ok && in.isPkgSel(ix.X, "TypeOf") {
			return in.typeExpr(ix.Index)
		}
	}
	return stdfmt.Unknown
}

// constString evaluates a string literal or a concatenation of them.
func constString(e ast.Expr) (string, bool) {
	switch e := e.(type) {
	case *ast.ParenExpr:
		return constString(e.X)
	case *ast.BasicLit:
		if e.Kind != token.STRING {
			return "", false
		}
		s, err := strconv.Unquote(e.Value)
		return s, err == nil
	case *ast.BinaryExpr:
		if e.Op != token.ADD {
			return "", false
		}
		l, ok := constString(e.X)
		if !ok {
			return "", false
		}
		r, ok := constString(e.Y)
		return l + r, ok
	}
	return "", false
}
