package internalcheck

import (
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

const (
	modulePath   = "github.com/heartbeats/poet-go"
	bindingsPath = modulePath + "/internal/bindings"
	safePath     = modulePath + "/pkg/poet"
)

func loadModule(t *testing.T) []*packages.Package {
	t.Helper()

	cfg := &packages.Config{
		Mode: packages.NeedImports | packages.NeedFiles | packages.NeedName,
	}
	pkgs, err := packages.Load(cfg, modulePath+"/...")
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}
	return pkgs
}

// No package other than internal/bindings may import unsafe. This keeps the
// "no raw pointers above the bindings layer" contract enforced rather than
// aspirational.
func TestUnsafeConfinedToBindings(t *testing.T) {
	var findings []string

	for _, pkg := range loadModule(t) {
		if pkg.PkgPath == bindingsPath {
			continue
		}
		for path := range pkg.Imports {
			if path == "unsafe" {
				findings = append(findings, pkg.PkgPath+" imports unsafe")
			}
		}
	}

	if len(findings) > 0 {
		t.Fatalf("boundary violation:\n%s", strings.Join(findings, "\n"))
	}
}

// Only the safe surface may import the bindings package; everything else goes
// through pkg/poet so no native handle or status code can leak upward.
func TestBindingsImportedOnlyBySafeSurface(t *testing.T) {
	var findings []string

	for _, pkg := range loadModule(t) {
		if pkg.PkgPath == safePath || pkg.PkgPath == bindingsPath {
			continue
		}
		for path := range pkg.Imports {
			if path == bindingsPath {
				findings = append(findings, pkg.PkgPath+" imports "+bindingsPath)
			}
		}
	}

	if len(findings) > 0 {
		t.Fatalf("boundary violation:\n%s", strings.Join(findings, "\n"))
	}
}
