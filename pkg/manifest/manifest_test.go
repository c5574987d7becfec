package manifest

import (
	"bufio"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/ritzau/lockgraph/pkg/model"
)

func parseString(t *testing.T, contents string) ([]model.Requirement, error) {
	t.Helper()
	return Parse(bufio.NewScanner(strings.NewReader(contents)))
}

func TestParsePreservesOrder(t *testing.T) {
	declared, err := parseString(t, `
# direct dependencies
requires Plack 1.0
requires Try::Tiny

requires JSON::XS 2.0 # fast backend
`)
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}

	want := []model.Requirement{
		{Module: "Plack", Minimum: "1.0"},
		{Module: "Try::Tiny"},
		{Module: "JSON::XS", Minimum: "2.0"},
	}
	if !reflect.DeepEqual(declared, want) {
		t.Errorf("declared = %v, want %v", declared, want)
	}
}

func TestParseRejectsUnknownDirective(t *testing.T) {
	_, err := parseString(t, "provides Foo 1.0\n")
	if err == nil {
		t.Fatal("expected error for unknown directive")
	}
	if !strings.Contains(err.Error(), "line 1") {
		t.Errorf("expected line number in error, got %v", err)
	}
}

func TestParseRejectsMalformedRequires(t *testing.T) {
	_, err := parseString(t, "requires\n")
	if err == nil {
		t.Error("expected error for bare requires")
	}

	_, err = parseString(t, "requires Foo 1.0 extra\n")
	if err == nil {
		t.Error("expected error for trailing tokens")
	}
}

func TestLoadMissingManifest(t *testing.T) {
	declared, err := Load(filepath.Join(t.TempDir(), "Depsfile"))
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if declared != nil {
		t.Errorf("expected no declarations for missing manifest, got %v", declared)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Depsfile")
	if err := os.WriteFile(path, []byte("requires Foo 1.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	declared, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	want := []model.Requirement{{Module: "Foo", Minimum: "1.0"}}
	if !reflect.DeepEqual(declared, want) {
		t.Errorf("declared = %v, want %v", declared, want)
	}
}
