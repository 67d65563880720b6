package test

import (
	"go/parser"
	"go/token"
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

const modulePath = "github.com/starblitz/balance-backend"

// importRules pins the layering of the module: the pure balance core sees
// only the standard library, state holders see the core but no transport,
// and nothing reaches into cmd. A violation here is an architecture bug
// even when the build still compiles.
var importRules = map[string][]string{
	"internal/balance":  {},
	"internal/settings": {modulePath + "/internal/balance"},
	"internal/shop":     {modulePath + "/internal/balance"},
	"internal/config": {
		modulePath + "/internal/balance",
		"gopkg.in/yaml.v3",
	},
	"internal/live": {"github.com/gorilla/websocket"},
	"internal/auth": {"github.com/golang-jwt/jwt/v5"},
}

// stdlib paths have no dot in their first segment.
func isStdlib(path string) bool {
	first, _, _ := strings.Cut(path, "/")
	return !strings.Contains(first, ".")
}

// moduleImports parses every non-test source file under dir (relative to
// the repo root) and returns the union of its imports.
func moduleImports(t *testing.T, dir string) map[string][]string {
	t.Helper()
	found := make(map[string][]string) // import path -> files using it
	fset := token.NewFileSet()
	root := filepath.Join("..", dir)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		f, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			return err
		}
		for _, imp := range f.Imports {
			p, err := strconv.Unquote(imp.Path.Value)
			if err != nil {
				return err
			}
			found[p] = append(found[p], path)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", dir, err)
	}
	return found
}

func TestImportGraphHygiene(t *testing.T) {
	for dir, allowed := range importRules {
		allowedSet := make(map[string]bool, len(allowed))
		for _, p := range allowed {
			allowedSet[p] = true
		}
		for imp, files := range moduleImports(t, dir) {
			if isStdlib(imp) || allowedSet[imp] {
				continue
			}
			t.Errorf("%s imports %q (from %v), which its layer does not allow", dir, imp, files)
		}
	}
}

func TestNothingImportsCmd(t *testing.T) {
	for _, dir := range []string{
		"internal/balance", "internal/settings", "internal/shop",
		"internal/config", "internal/live", "internal/auth",
	} {
		for imp, files := range moduleImports(t, dir) {
			if strings.HasPrefix(imp, modulePath+"/cmd") {
				t.Errorf("%s imports the binary package %q (from %v)", dir, imp, files)
			}
		}
	}
}

func TestBalanceCoreIsPure(t *testing.T) {
	// belt and braces on top of the rule table: the evaluator must stay
	// free of io, network and os concerns entirely
	for imp, files := range moduleImports(t, "internal/balance") {
		for _, banned := range []string{"net", "os", "io", "syscall"} {
			if imp == banned || strings.HasPrefix(imp, banned+"/") {
				t.Errorf("internal/balance imports %q (from %v)", imp, files)
			}
		}
	}
}
