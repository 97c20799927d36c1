package sandbox

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"regexp"
	"strconv"
	"strings"
)

const (
	hostImportPath = "jeopardy"
	entryPoint     = "Analyze"
	entryShim      = "jstatsEntry"
)

// allowedImports is the stdlib subset analysis programs may use.
var allowedImports = map[string]bool{
	"errors":  true,
	"fmt":     true,
	"math":    true,
	"sort":    true,
	"strconv": true,
	"strings": true,
}

var bannedPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bos\.`),
	regexp.MustCompile(`\bexec\.`),
	regexp.MustCompile(`\bsyscall\.`),
	regexp.MustCompile(`\bunsafe\.`),
	regexp.MustCompile(`\breflect\.`),
	regexp.MustCompile(`\bruntime\.`),
	regexp.MustCompile(`\bplugin\.`),
	regexp.MustCompile(`\binterp\b`),
	regexp.MustCompile(`//go:`),
}

var packageClause = regexp.MustCompile(`(?m)^\s*package\s+\w+`)

// program is a statically checked analysis source ready for the interpreter.
type program struct {
	source string
	entry  string
}

// prepare checks code against the analysis contract and appends the
// entry shim that feeds the host inputs into Analyze.
func prepare(code string) (program, error) {
	src := strings.TrimSpace(code)
	if src == "" {
		return program{}, newExecError(KindCompile, code, errors.New("empty program"))
	}
	if !packageClause.MatchString(src) {
		src = "package main\n\n" + src
	}

	for _, re := range bannedPatterns {
		if loc := re.FindStringIndex(src); loc != nil {
			return program{}, newExecError(KindUnsafe, code, fmt.Errorf("forbidden construct %q", src[loc[0]:loc[1]]))
		}
	}

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "analysis.go", src, parser.AllErrors)
	if err != nil {
		return program{}, newExecError(KindCompile, code, err)
	}
	if file.Name.Name != "main" {
		return program{}, newExecError(KindCompile, code, fmt.Errorf("package %s: analysis programs must be package main", file.Name.Name))
	}

	qualifier, imported, err := checkImports(file)
	if err != nil {
		return program{}, newExecError(KindUnsafe, code, err)
	}
	if !imported {
		return program{}, newExecError(KindCompile, code, fmt.Errorf("program must import %q", hostImportPath))
	}
	if err := checkDecls(file); err != nil {
		var execErr *ExecError
		if errors.As(err, &execErr) {
			execErr.Code = code
			return program{}, execErr
		}
		return program{}, newExecError(KindCompile, code, err)
	}

	shim := fmt.Sprintf("\n\nfunc %s() %sResult {\n\treturn %s(%sGames, %sFuncs)\n}\n",
		entryShim, qualifier, entryPoint, qualifier, qualifier)
	return program{source: src + shim, entry: "main." + entryShim + "()"}, nil
}

// checkImports enforces the allowlist and returns how the host package is
// referenced in the file.
func checkImports(file *ast.File) (qualifier string, imported bool, err error) {
	for _, spec := range file.Imports {
		path, uerr := strconv.Unquote(spec.Path.Value)
		if uerr != nil {
			return "", false, fmt.Errorf("bad import %s", spec.Path.Value)
		}
		if path == hostImportPath {
			switch {
			case spec.Name == nil:
				qualifier, imported = hostImportPath+".", true
			case spec.Name.Name == ".":
				qualifier, imported = "", true
			case spec.Name.Name == "_":
			default:
				qualifier, imported = spec.Name.Name+".", true
			}
			continue
		}
		if !allowedImports[path] {
			return "", false, fmt.Errorf("import %q is not allowed", path)
		}
	}
	return qualifier, imported, nil
}

func checkDecls(file *ast.File) error {
	var (
		found bool
		err   error
	)
	ast.Inspect(file, func(n ast.Node) bool {
		if err != nil {
			return false
		}
		switch node := n.(type) {
		case *ast.GoStmt:
			err = newExecError(KindUnsafe, "", errors.New("goroutines are not allowed"))
		case *ast.FuncDecl:
			if node.Recv != nil {
				break
			}
			switch node.Name.Name {
			case entryPoint:
				found = true
			case entryShim, "init":
				err = fmt.Errorf("function name %s is reserved", node.Name.Name)
			}
		}
		return true
	})
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("program must define func %s", entryPoint)
	}
	return nil
}
