package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestLoadManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestName), `
[package]
name = "demo"

[run]
main = "src/main.em"

[diagnostics]
max = 5
color = "off"

[trace]
level = "phase"
`)
	writeFile(t, filepath.Join(root, "src", "main.em"), "1;")

	m, ok, err := LoadManifest(filepath.Join(root, "src"))
	if err != nil || !ok {
		t.Fatalf("LoadManifest: ok=%v err=%v", ok, err)
	}
	if m.Config.Package.Name != "demo" || m.Config.Diagnostics.Max != 5 || m.Config.Trace.Level != "phase" {
		t.Fatalf("unexpected config: %+v", m.Config)
	}

	mainPath, err := m.ResolveMain()
	if err != nil {
		t.Fatalf("ResolveMain: %v", err)
	}
	if filepath.Base(mainPath) != "main.em" {
		t.Fatalf("unexpected main path %q", mainPath)
	}
}

func TestLoadManifestMissing(t *testing.T) {
	_, ok, err := LoadManifest(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		// ember.toml где-то выше временной директории
		t.Skip("found an ember.toml above the temp dir")
	}
}

func TestDecodeConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"no package", `[run]
main = "a.em"`, "missing [package]"},
		{"empty name", `[package]
name = ""`, "missing [package].name"},
		{"unknown key", `[package]
name = "x"
colour = "on"`, "unknown keys: package.colour"},
		{"bad color", `[package]
name = "x"
[diagnostics]
color = "maybe"`, "[diagnostics].color"},
		{"negative max", `[package]
name = "x"
[diagnostics]
max = -1`, "[diagnostics].max"},
		{"syntax", `[package`, "failed to parse TOML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeConfig("ember.toml", tt.text)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("DecodeConfig error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestResolveMainRejectsNonSource(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "main.txt"), "")
	m := &Manifest{Path: filepath.Join(root, ManifestName), Root: root, Config: Config{Run: RunConfig{Main: "main.txt"}}}
	if _, err := m.ResolveMain(); err == nil {
		t.Fatal("expected error for non-.em main")
	}
	m.Config.Run.Main = "missing.em"
	if _, err := m.ResolveMain(); err == nil || !strings.Contains(err.Error(), "does not exist") {
		t.Fatalf("expected missing-file error, got %v", err)
	}
}

func TestDigest(t *testing.T) {
	a := Sum([]byte("1;"))
	b := Sum([]byte("2;"))
	if a == b {
		t.Fatal("distinct inputs must hash differently")
	}
	if Combine(a, b) == Combine(b, a) {
		t.Fatal("Combine must be order sensitive")
	}
	if len(a.String()) != 64 {
		t.Fatalf("hex digest length = %d", len(a.String()))
	}
}

func TestFindManifestSkipsDirectories(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, ManifestName), []byte("[package]\nname = \"top\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	inner := filepath.Join(root, "pkg")
	// каталог с именем манифеста не считается манифестом
	if err := os.MkdirAll(filepath.Join(inner, ManifestName), 0o755); err != nil {
		t.Fatal(err)
	}

	m, ok, err := LoadManifest(inner)
	if err != nil || !ok {
		t.Fatalf("LoadManifest: %v %v", ok, err)
	}
	want, _ := filepath.Abs(root)
	if m.Root != want || m.Config.Package.Name != "top" {
		t.Fatalf("root = %q name = %q, want %q top", m.Root, m.Config.Package.Name, want)
	}
}
