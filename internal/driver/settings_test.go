package driver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aolang/ao/internal/ast"
)

func TestDefaultSettingsIsZeroValue(t *testing.T) {
	s := DefaultSettings()
	if s.Verbose || s.StrictIndentation || len(s.UnitSearchPaths) != 0 {
		t.Fatalf("got %+v, want zero value", s)
	}
}

func TestLoadSettingsFromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	yaml := "verbose: true\nstrict_indentation: true\nunit_search_paths:\n  - ./units\n  - ./vendor/units\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if !s.Verbose || !s.StrictIndentation {
		t.Errorf("got %+v, want both flags true", s)
	}
	if len(s.UnitSearchPaths) != 2 || s.UnitSearchPaths[0] != "./units" {
		t.Errorf("UnitSearchPaths = %v", s.UnitSearchPaths)
	}
}

func TestLoadSettingsMissingFileIsError(t *testing.T) {
	if _, err := LoadSettings(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing settings file")
	}
}

func TestLoadParsesFixtureFile(t *testing.T) {
	res, diagErr := Load(DefaultSettings(), "../../testdata/fixtures/counter.ao")
	if diagErr != nil {
		t.Fatalf("Load: %v", diagErr)
	}
	if res.Root.Kind != ast.ModuleDefinition {
		t.Fatalf("Root.Kind = %v, want ModuleDefinition", res.Root.Kind)
	}
	if len(res.Root.Children) != 1 || res.Root.Children[0].Kind != ast.ContractDefinition {
		t.Fatalf("module children = %v, want single ContractDefinition", res.Root.Children)
	}
	if res.TokenCount == 0 {
		t.Error("TokenCount = 0, want > 0")
	}
}

func TestLoadMissingFileReturnsDiagnostic(t *testing.T) {
	_, diagErr := Load(DefaultSettings(), filepath.Join(t.TempDir(), "missing.ao"))
	if diagErr == nil {
		t.Fatal("expected a diagnostic for a missing file")
	}
}

func TestLoadRejectsWrongExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("let x: num = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, diagErr := Load(DefaultSettings(), path)
	if diagErr == nil {
		t.Fatal("expected a diagnostic for a non-.ao file")
	}
	if diagErr.Code != "E_DRIVER_BAD_EXTENSION" {
		t.Errorf("Code = %q, want E_DRIVER_BAD_EXTENSION", diagErr.Code)
	}
}

func TestLoadRejectsExtensionlessFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "noextension")
	if err := os.WriteFile(path, []byte("let x: num = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, diagErr := Load(DefaultSettings(), path)
	if diagErr == nil {
		t.Fatal("expected a diagnostic for an extensionless file")
	}
	if diagErr.Code != "E_DRIVER_BAD_EXTENSION" {
		t.Errorf("Code = %q, want E_DRIVER_BAD_EXTENSION", diagErr.Code)
	}
}

func TestLoadSurfacesParserErrorAsDiagnostic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.ao")
	if err := os.WriteFile(path, []byte("if a:\nb\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, diagErr := Load(DefaultSettings(), path)
	if diagErr == nil {
		t.Fatal("expected a diagnostic for an empty if-body")
	}
	if diagErr.Code != "E_PARSE_EXPECTING_OPERAND" {
		t.Errorf("Code = %q, want E_PARSE_EXPECTING_OPERAND", diagErr.Code)
	}
}
