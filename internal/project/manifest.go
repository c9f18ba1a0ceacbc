package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// SourceExt is the extension of ember source files.
const SourceExt = ".em"

// Manifest is a decoded ember.toml together with its location.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the sections of ember.toml.
type Config struct {
	Package     PackageConfig     `toml:"package"`
	Run         RunConfig         `toml:"run"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
	Trace       TraceConfig       `toml:"trace"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

type RunConfig struct {
	Main string `toml:"main"`
}

// DiagnosticsConfig задаёт значения по умолчанию для флагов диагностики.
// Нулевые значения означают "не задано".
type DiagnosticsConfig struct {
	Max    int    `toml:"max"`
	Color  string `toml:"color"`
	Format string `toml:"format"`
}

type TraceConfig struct {
	Level  string `toml:"level"`
	Output string `toml:"output"`
	Mode   string `toml:"mode"`
}

// LoadManifest finds and decodes the nearest ember.toml above startDir.
// ok is false when no manifest exists.
func LoadManifest(startDir string) (m *Manifest, ok bool, err error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

// LoadConfig decodes and validates a manifest file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is the discovered manifest
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to read manifest: %w", path, err)
	}
	return DecodeConfig(path, string(data))
}

// DecodeConfig is LoadConfig for in-memory text; name is used in errors.
func DecodeConfig(name, text string) (Config, error) {
	var cfg Config
	meta, err := toml.Decode(text, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", name, err)
	}
	if err := validate(name, meta, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validate(path string, meta toml.MetaData, cfg *Config) error {
	if !meta.IsDefined("package") {
		return fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return fmt.Errorf("%s: missing [package].name", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if cfg.Diagnostics.Max < 0 {
		return fmt.Errorf("%s: [diagnostics].max must not be negative", path)
	}
	switch cfg.Diagnostics.Color {
	case "", "auto", "on", "off":
	default:
		return fmt.Errorf("%s: [diagnostics].color must be auto, on or off", path)
	}
	switch cfg.Diagnostics.Format {
	case "", "pretty", "json", "short":
	default:
		return fmt.Errorf("%s: [diagnostics].format must be pretty, json or short", path)
	}
	return nil
}

// ResolveMain returns the absolute path of [run].main.
func (m *Manifest) ResolveMain() (string, error) {
	if m == nil {
		return "", fmt.Errorf("missing project manifest")
	}
	mainRel := strings.TrimSpace(m.Config.Run.Main)
	if mainRel == "" {
		return "", fmt.Errorf("%s: missing [run].main", m.Path)
	}
	mainPath := filepath.Join(m.Root, filepath.FromSlash(mainRel))
	info, err := os.Stat(mainPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%s: [run].main path does not exist: %s", m.Path, mainPath)
		}
		return "", fmt.Errorf("%s: failed to stat [run].main: %w", m.Path, err)
	}
	if info.IsDir() || filepath.Ext(mainPath) != SourceExt {
		return "", fmt.Errorf("%s: [run].main must be a %s file", m.Path, SourceExt)
	}
	return mainPath, nil
}
