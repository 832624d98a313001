package lint

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"path"
	"strconv"

	"github.com/bjaus/stdfmt"
)

// ErrParse wraps Go syntax errors in a scanned file.
var ErrParse = errors.New("cannot parse Go source")

var packageFuncs = map[string]FuncSpec{
	"Format":        {Format: 0},
	"MustFormat":    {Format: 0},
	"FormattedSize": {Format: 0},
	"Append":        {Format: 1},
	"FormatTo":      {Format: 1},
	"FormatToN":     {Format: 1},
	"Check":         {Format: 0, Types: true},
	"Compile":       {Format: 0, Types: true},
	"MustCompile":   {Format: 0, Types: true},
}

var printerMethods = map[string]FuncSpec{
	"Format":        {Format: 0},
	"FormattedSize": {Format: 0},
	"Append":        {Format: 1},
	"FormatTo":      {Format: 1},
	"FormatToN":     {Format: 1},
}

// FileResult is what checking one file produces. Line and column positions in
// Findings are filled in; File is left to the caller.
type FileResult struct {
	Findings []Finding `json:"findings"`
	// Calls counts checked calls with a constant format.
	Calls int `json:"calls"`
	// Dynamic counts matching calls whose format is not a constant.
	Dynamic int `json:"dynamic"`
}

type fileChecker struct {
	inferer
	cfg      Config
	fset     *token.FileSet
	printers map[string]bool
	res      FileResult
}

// CheckSource validates every recognised call in one Go file.
func CheckSource(filename string, src []byte, cfg Config) (FileResult, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, filename, src, parser.SkipObjectResolution)
	if err != nil {
		return FileResult{}, fmt.Errorf("%w: %w", ErrParse, err)
	}
	c := &fileChecker{
		inferer:  inferer{pkg: importName(f, cfg.Package)},
		cfg:      cfg,
		fset:     fset,
		printers: make(map[string]bool, len(cfg.Printers)),
	}
	for _, p := range cfg.Printers {
		c.printers[p] = true
	}
	ast.Inspect(f, func(n ast.Node) bool {
		if call, ok := n.(*ast.CallExpr); ok {
			c.call(call)
		}
		return true
	})
	return c.res, nil
}

// importName returns the name pkgPath is imported under in f.
func importName(f *ast.File, pkgPath string) string {
	for _, imp := range f.Imports {
		p, err := strconv.Unquote(imp.Path.Value)
		if err != nil || p != pkgPath {
			continue
		}
		if imp.Name == nil {
			return path.Base(p)
		}
		if imp.Name.Name == "_" {
			return ""
		}
		return imp.Name.Name
	}
	return ""
}

// resolve finds the spec for the function a call invokes.
func (c *fileChecker) resolve(call *ast.CallExpr) (string, FuncSpec, bool) {
	switch fun := call.Fun.(type) {
	case *ast.Ident:
		if c.pkg == "." {
			if spec, ok := packageFuncs[fun.Name]; ok {
				return fun.Name, spec, true
			}
		}
		spec, ok := c.cfg.Functions[fun.Name]
		return fun.Name, spec, ok
	case *ast.SelectorExpr:
		method := fun.Sel.Name
		switch x := fun.X.(type) {
		case *ast.Ident:
			name := x.Name + "." + method
			if spec, ok := c.cfg.Functions[name]; ok {
				return name, spec, true
			}
			if c.pkg != "" && c.pkg != "." && x.Name == c.pkg {
				spec, ok := packageFuncs[method]
				return name, spec, ok
			}
			if c.printers[x.Name] {
				spec, ok := printerMethods[method]
				return name, spec, ok
			}
		case *ast.CallExpr:
			if c.isPkgSel(x.Fun, "NewPrinter") {
				spec, ok := printerMethods[method]
				return "Printer." + method, spec, ok
			}
		}
	}
	return "", FuncSpec{}, false
}

func (c *fileChecker) call(call *ast.CallExpr) {
	name, spec, ok := c.resolve(call)
	if !ok || spec.Format < 0 || spec.Format >= len(call.Args) {
		return
	}
	// Spread arguments hide the count.
	if call.Ellipsis.IsValid() && len(call.Args) > spec.Format+1 {
		return
	}
	formatArg := call.Args[spec.Format]
	format, ok := constString(formatArg)
	if !ok {
		c.res.Dynamic++
		return
	}
	c.res.Calls++

	rest := call.Args[spec.Format+1:]
	types := make([]stdfmt.ArgType, len(rest))
	for i, e := range rest {
		if spec.Types {
			types[i] = c.argType(e)
		} else {
			types[i] = c.valueType(e)
		}
	}
	if err := stdfmt.Check(format, types...); err != nil {
		f := newFinding(name, format, err)
		pos := c.fset.Position(formatArg.Pos())
		f.Line, f.Column = pos.Line, pos.Column
		c.res.Findings = append(c.res.Findings, f)
	}
}
