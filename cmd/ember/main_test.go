package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"ember/internal/diagfmt"
)

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := newRootCmd()
	var outBuf, errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(append([]string{"--color", "off", "--ui", "off"}, args...))
	_, err = cmd.ExecuteC()
	return outBuf.String(), errBuf.String(), err
}

func writeSource(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(src), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestRunEval(t *testing.T) {
	t.Chdir(t.TempDir())
	stdout, stderr, err := execute(t, "run", "-e", "1; 2.5; ; True;")
	if err != nil {
		t.Fatalf("run: %v\nstderr: %s", err, stderr)
	}
	if stdout != "1\n2.5\nTrue\n" {
		t.Fatalf("stdout = %q", stdout)
	}
}

func TestRunFilesInArgumentOrder(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	b := writeSource(t, dir, "b.em", "2;")
	a := writeSource(t, dir, "a.em", "1;")
	stdout, _, err := execute(t, "run", "--jobs", "2", b, a)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if stdout != "2\n1\n" {
		t.Fatalf("stdout = %q, want values of b before a", stdout)
	}
}

func TestRunReportsDiagnostics(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	tests := []struct {
		name string
		src  string
		code string
	}{
		{"undefined name", "x;", "EVL7001"},
		{"missing semicolon", "1 2;", "SYN2001"},
		{"eof", "1", "SYN2002"},
		{"unknown char", "1 $;", "LEX1001"},
		{"invalid token", "1a;", "LEX1002"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSource(t, dir, "prog.em", tt.src)
			stdout, stderr, err := execute(t, "run", path)
			if !errors.Is(err, errReported) {
				t.Fatalf("err = %v, want errReported", err)
			}
			if stdout != "" {
				t.Errorf("stdout = %q, want nothing", stdout)
			}
			if !strings.Contains(stderr, tt.code) {
				t.Errorf("stderr missing %s:\n%s", tt.code, stderr)
			}
			if !strings.Contains(stderr, "1 error\n") {
				t.Errorf("stderr missing summary:\n%s", stderr)
			}
		})
	}
}

func TestRunJSONDiagnostics(t *testing.T) {
	t.Chdir(t.TempDir())
	_, stderr, err := execute(t, "--diagnostics-format", "json", "run", "-e", "y;")
	if !errors.Is(err, errReported) {
		t.Fatalf("err = %v, want errReported", err)
	}
	var out diagfmt.DiagnosticsOutput
	if err := json.Unmarshal([]byte(stderr), &out); err != nil {
		t.Fatalf("decode: %v\n%s", err, stderr)
	}
	if out.Count != 1 || out.Diagnostics[0].Code != "EVL7001" {
		t.Fatalf("unexpected output: %+v", out)
	}
}

func TestRunUsesManifestMain(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeSource(t, dir, "main.em", "False;")
	writeSource(t, dir, "ember.toml", "[package]\nname = \"demo\"\n\n[run]\nmain = \"main.em\"\n")

	stdout, _, err := execute(t, "run")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if stdout != "False\n" {
		t.Fatalf("stdout = %q", stdout)
	}
}

func TestRunWithoutTargets(t *testing.T) {
	t.Chdir(t.TempDir())
	_, _, err := execute(t, "run")
	if err == nil || !strings.Contains(err.Error(), "no ember.toml found") {
		t.Fatalf("err = %v", err)
	}
}

func TestManifestErrorsAreFatal(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeSource(t, dir, "ember.toml", "[package]\nname = \"demo\"\ncolour = \"on\"\n")
	_, _, err := execute(t, "run", "-e", "1;")
	if err == nil || !strings.Contains(err.Error(), "unknown keys") {
		t.Fatalf("err = %v", err)
	}
}

func TestTokenizeFormats(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := writeSource(t, dir, "t.em", "let x;")

	stdout, _, err := execute(t, "tokenize", path)
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 3 {
		t.Fatalf("pretty lines = %d:\n%s", len(lines), stdout)
	}
	for i, kind := range []string{"Keyword", "Name", "Symbol"} {
		if !strings.Contains(lines[i], kind) {
			t.Errorf("line %d = %q, want kind %s", i, lines[i], kind)
		}
	}

	stdout, _, err = execute(t, "tokenize", "--raw", "--format", "json", path)
	if err != nil {
		t.Fatalf("tokenize --raw: %v", err)
	}
	var raw []diagfmt.TokenOutput
	if err := json.Unmarshal([]byte(stdout), &raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	var joined strings.Builder
	for _, tok := range raw {
		joined.WriteString(tok.Text)
	}
	if joined.String() != "let x;" {
		t.Fatalf("raw tokens do not cover the file: %q", joined.String())
	}

	stdout, _, err = execute(t, "tokenize", "--format", "msgpack", path)
	if err != nil {
		t.Fatalf("tokenize msgpack: %v", err)
	}
	var decoded []diagfmt.TokenOutput
	if err := msgpack.Unmarshal([]byte(stdout), &decoded); err != nil {
		t.Fatalf("decode msgpack: %v", err)
	}
	if len(decoded) != 3 || decoded[1].Text != "x" {
		t.Fatalf("decoded = %+v", decoded)
	}

	if _, _, err := execute(t, "tokenize", "--format", "xml", path); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestParseFormats(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := writeSource(t, dir, "p.em", "1;\n;\nflag;")

	stdout, _, err := execute(t, "parse", path)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	for _, want := range []string{"Item[0]: TopLevel", "Int 1", "Item[1]: Empty", "Name flag"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("tree missing %q:\n%s", want, stdout)
		}
	}

	stdout, _, err = execute(t, "parse", "--format", "yaml", path)
	if err != nil {
		t.Fatalf("parse yaml: %v", err)
	}
	var node diagfmt.ASTNodeOutput
	if err := yaml.Unmarshal([]byte(stdout), &node); err != nil {
		t.Fatalf("decode yaml: %v", err)
	}
	if node.Type != "Program" || len(node.Children) != 3 {
		t.Fatalf("node = %+v", node)
	}

	bad := writeSource(t, dir, "bad.em", "1 1;")
	stdout, stderr, err := execute(t, "parse", bad)
	if !errors.Is(err, errReported) {
		t.Fatalf("err = %v", err)
	}
	if stdout != "" || !strings.Contains(stderr, "expected semicolon, found `1`") {
		t.Fatalf("stdout=%q stderr=%q", stdout, stderr)
	}
}

func TestVersionJSON(t *testing.T) {
	t.Chdir(t.TempDir())
	stdout, _, err := execute(t, "version", "--format", "json", "--hash")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	var payload versionPayload
	if err := json.Unmarshal([]byte(stdout), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Tool != "ember" || payload.Version == "" || payload.GitCommit == "" {
		t.Fatalf("payload = %+v", payload)
	}
	if payload.BuildDate != "" {
		t.Fatalf("build date should be omitted without --date")
	}
}

func TestInvalidGlobalFlags(t *testing.T) {
	t.Chdir(t.TempDir())
	tests := [][]string{
		{"--color", "maybe", "version"},
		{"--diagnostics-format", "xml", "version"},
		{"--ui", "sometimes", "version"},
		{"--trace-level", "loud", "version"},
		{"--trace-format", "xml", "--trace-level", "phase", "version"},
	}
	for _, args := range tests {
		if _, _, err := execute(t, args...); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
}

func TestTimingsOutput(t *testing.T) {
	t.Chdir(t.TempDir())
	_, stderr, err := execute(t, "--timings", "run", "-e", "1;")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, want := range []string{"lexed", "parsed", "analyzed", "ran"} {
		if !strings.Contains(stderr, want) {
			t.Errorf("stderr missing %q:\n%s", want, stderr)
		}
	}
}

func TestRingTraceDumpedOnExit(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	out := filepath.Join(dir, "trace.ndjson")
	_, _, err := execute(t, "--trace", out, "--trace-level", "phase", "--trace-mode", "ring", "run", "-e", "1;")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read trace: %v", err)
	}
	if !strings.Contains(string(data), `"name":"lex"`) {
		t.Errorf("ring dump missing lex stage:\n%s", data)
	}
}

func TestTraceFormatOverridesExtension(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	out := filepath.Join(dir, "trace.log")
	_, _, err := execute(t, "--trace", out, "--trace-level", "phase", "--trace-mode", "ring",
		"--trace-format", "ndjson", "run", "-e", "1;")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read trace: %v", err)
	}
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		var ev map[string]any
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			t.Fatalf("not ndjson: %q: %v", line, err)
		}
	}
	// спаны драйвера вложены в корневой спан команды
	if !strings.Contains(string(data), `"name":"ember run"`) {
		t.Errorf("trace missing root command span:\n%s", data)
	}
}

func TestPathModeFlag(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.Mkdir(filepath.Join(dir, "src"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeSource(t, filepath.Join(dir, "src"), "prog.em", "x;")

	_, stderr, err := execute(t, "--path-mode", "basename", "run", filepath.Join("src", "prog.em"))
	if !errors.Is(err, errReported) {
		t.Fatalf("err = %v, want errReported", err)
	}
	if !strings.Contains(stderr, "prog.em:1:1") || strings.Contains(stderr, filepath.Join("src", "prog.em")) {
		t.Errorf("basename path mode not applied:\n%s", stderr)
	}
}

func TestProfilingFlags(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	cpu := filepath.Join(dir, "cpu.out")
	mem := filepath.Join(dir, "mem.out")
	if _, _, err := execute(t, "--cpu-profile", cpu, "--mem-profile", mem, "run", "-e", "1;"); err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, p := range []string{cpu, mem} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("profile not written: %v", err)
		}
	}
}

func TestRunTestdataPrograms(t *testing.T) {
	programs, err := filepath.Abs(filepath.Join("..", "..", "testdata", "programs"))
	if err != nil {
		t.Fatal(err)
	}
	errorsDir, err := filepath.Abs(filepath.Join("..", "..", "testdata", "errors"))
	if err != nil {
		t.Fatal(err)
	}
	t.Chdir(t.TempDir())

	stdout, stderr, err := execute(t, "run", programs)
	if err != nil {
		t.Fatalf("run: %v\n%s", err, stderr)
	}
	want := "1\n2.5\nTrue\nFalse\n" + "9223372036854775807\n0.0001\n1e+20\n0.5\n5.0\n"
	if stdout != want {
		t.Fatalf("stdout = %q, want %q", stdout, want)
	}

	_, stderr, err = execute(t, "--diagnostics-format", "short", "run", errorsDir)
	if !errors.Is(err, errReported) {
		t.Fatalf("err = %v", err)
	}
	for _, code := range []string{"LEX1001", "LEX1002", "SYN2001", "SYN2002", "EVL7001"} {
		if !strings.Contains(stderr, code) {
			t.Errorf("stderr missing %s:\n%s", code, stderr)
		}
	}
}

func TestRunTestdataProject(t *testing.T) {
	dir, err := filepath.Abs(filepath.Join("..", "..", "testdata", "project"))
	if err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)
	stdout, _, err := execute(t, "--trace", filepath.Join(t.TempDir(), "trace.log"), "run")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if stdout != "True\n42\n" {
		t.Fatalf("stdout = %q", stdout)
	}
}
