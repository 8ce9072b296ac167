package descriptor

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a descriptor file syntax.
type Format string

// Supported descriptor formats.
const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// Formats lists the supported formats.
var Formats = []Format{FormatYAML, FormatTOML, FormatJSON}

// ParseFormat parses a format name such as "yaml", "yml", "toml" or "json".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// DetectFormat picks the format from the file extension.
func DetectFormat(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnsupportedFormat, path)
	}
	return ParseFormat(ext)
}

// Load reads a descriptor file, expands ${VAR} references and applies the
// overrides in order. The result is not validated.
func Load(path string, overrides ...Override) (*Descriptor, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open descriptor %s: %w", path, err)
	}
	defer f.Close()

	d, err := LoadFromReader(f, format, overrides...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	l := logger()
	l.Debug().
		Str("path", path).
		Str("format", string(format)).
		Int("overrides", len(overrides)).
		Msg("descriptor loaded")
	return d, nil
}

// LoadFromReader parses a descriptor in the given format from r.
func LoadFromReader(r io.Reader, format Format, overrides ...Override) (*Descriptor, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read descriptor: %w", err)
	}
	d, err := Unmarshal(ExpandEnv(content), format)
	if err != nil {
		return nil, err
	}
	if len(overrides) == 0 {
		return d, nil
	}
	return applyOverrides(d, overrides)
}

// Unmarshal decodes data in the given format. Unknown fields are rejected.
func Unmarshal(data []byte, format Format) (*Descriptor, error) {
	var d Descriptor
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&d); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse descriptor YAML: %w", err)
		}
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&d); err != nil {
			return nil, fmt.Errorf("failed to parse descriptor TOML: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&d); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse descriptor JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return &d, nil
}

// Marshal encodes d in the given format.
func Marshal(d *Descriptor, format Format) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return nil, fmt.Errorf("failed to encode descriptor YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to encode descriptor YAML: %w", err)
		}
	case FormatTOML:
		enc := toml.NewEncoder(&buf)
		enc.SetIndentTables(true)
		if err := enc.Encode(d); err != nil {
			return nil, fmt.Errorf("failed to encode descriptor TOML: %w", err)
		}
	case FormatJSON:
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(d); err != nil {
			return nil, fmt.Errorf("failed to encode descriptor JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return escapeEnv(buf.Bytes()), nil
}

// Write encodes d in the format implied by path and writes it there.
func Write(path string, d *Descriptor) error {
	format, err := DetectFormat(path)
	if err != nil {
		return err
	}
	data, err := Marshal(d, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write descriptor %s: %w", path, err)
	}
	return nil
}
