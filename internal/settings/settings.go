// Package settings loads the optional cutejson settings file.
package settings

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/amterp/cutejson"
	"gopkg.in/yaml.v3"
)

// Color modes accepted by the color setting and the --color flag.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// File mirrors the settings file. Unset fields leave the defaults alone.
type File struct {
	Indent     cutejson.IndentationPolicy `yaml:"indent" toml:"indent"`
	SpaceCount *int                       `yaml:"space_count" toml:"space_count"`
	Color      string                     `yaml:"color" toml:"color"`
}

// Load reads a settings file. The format follows the extension: .yaml and
// .yml are YAML, .toml is TOML. Unknown keys are rejected.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings %s: %w", path, err)
	}

	var f File
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse YAML settings %s: %w", path, err)
		}
	case ".toml":
		meta, err := toml.Decode(string(data), &f)
		if err != nil {
			return nil, fmt.Errorf("failed to parse TOML settings %s: %w", path, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown key %q in TOML settings %s", undecoded[0].String(), path)
		}
	default:
		return nil, fmt.Errorf("unsupported settings format %q for %s (want .yaml, .yml or .toml)", ext, path)
	}

	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("settings validation failed for %s: %w", path, err)
	}
	return &f, nil
}

// Validate checks the values without touching any defaults.
func (f *File) Validate() error {
	if _, err := f.Apply(cutejson.NewBuilder()).Build(); err != nil {
		return err
	}
	if f.Color != "" && !ValidColor(f.Color) {
		return fmt.Errorf("color must be one of %s, %s or %s, got %q", ColorAuto, ColorAlways, ColorNever, f.Color)
	}
	return nil
}

// Apply copies the fields that are set onto b.
func (f *File) Apply(b *cutejson.Builder) *cutejson.Builder {
	if f.Indent != 0 {
		b.WithIndentationPolicy(f.Indent)
	}
	if f.SpaceCount != nil {
		b.WithSpaceCount(*f.SpaceCount)
	}
	return b
}

// ValidColor reports whether mode is a known color mode.
func ValidColor(mode string) bool {
	switch mode {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	}
	return false
}
