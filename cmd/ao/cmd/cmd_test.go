package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFixture(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.ao")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestLexCommandPrintsTokens(t *testing.T) {
	path := writeFixture(t, "let x: num = 1\n")
	var out bytes.Buffer
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w
	_, runErr := runCommand(t, "lex", path)
	w.Close()
	os.Stdout = old
	out.ReadFrom(r)
	if runErr != nil {
		t.Fatalf("lex command: %v", runErr)
	}
	if !strings.Contains(out.String(), "let") {
		t.Errorf("output missing %q token: %q", "let", out.String())
	}
}

func TestLexCommandRejectsWrongExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.txt")
	if err := os.WriteFile(path, []byte("let x: num = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, runErr := runCommand(t, "lex", path)
	if runErr == nil {
		t.Fatal("expected lex to reject a non-.ao file")
	}
}

func TestCheckCommandReportsOK(t *testing.T) {
	path := writeFixture(t, "let x: num = 1\n")
	var out bytes.Buffer
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w
	_, runErr := runCommand(t, "check", path)
	w.Close()
	os.Stdout = old
	out.ReadFrom(r)
	if runErr != nil {
		t.Fatalf("check command: %v", runErr)
	}
	if !strings.Contains(out.String(), "ok") {
		t.Errorf("output = %q, want it to contain ok", out.String())
	}
}

func TestCheckCommandReportsFailureOnMalformedInput(t *testing.T) {
	path := writeFixture(t, "if a:\nb\n")
	_, runErr := runCommand(t, "check", path)
	if runErr == nil {
		t.Fatal("expected check to fail on an empty if-body")
	}
}

func TestParseCommandJSONOutputIsQueryable(t *testing.T) {
	path := writeFixture(t, "let x: num = 1\n")
	var out bytes.Buffer
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w
	_, runErr := runCommand(t, "parse", "--query", "kind", path)
	w.Close()
	os.Stdout = old
	out.ReadFrom(r)
	if runErr != nil {
		t.Fatalf("parse --query: %v", runErr)
	}
	if !strings.Contains(out.String(), "ModuleDefinition") {
		t.Errorf("output = %q, want ModuleDefinition", out.String())
	}
}

func TestVersionCommandPrintsVersion(t *testing.T) {
	var out bytes.Buffer
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w
	_, runErr := runCommand(t, "version")
	w.Close()
	os.Stdout = old
	out.ReadFrom(r)
	if runErr != nil {
		t.Fatalf("version command: %v", runErr)
	}
	if !strings.Contains(out.String(), Version) {
		t.Errorf("output = %q, want version %q", out.String(), Version)
	}
}
