package descriptor

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Override sets one field of a descriptor by its JSON path, e.g.
// "minSdk=23" or "buildTypes.0.signingConfig=release".
type Override struct {
	Path  string
	Value string
}

func (o Override) String() string {
	return o.Path + "=" + o.Value
}

// ParseOverride parses "path=value".
func ParseOverride(s string) (Override, error) {
	path, value, ok := strings.Cut(s, "=")
	path = strings.TrimSpace(path)
	if !ok || path == "" {
		return Override{}, fmt.Errorf("%w: %q, expected path=value", ErrInvalidOverride, s)
	}
	return Override{Path: path, Value: value}, nil
}

// ParseOverrides parses each "path=value" pair.
func ParseOverrides(pairs []string) ([]Override, error) {
	out := make([]Override, 0, len(pairs))
	for _, p := range pairs {
		o, err := ParseOverride(p)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

// typedValue picks the JSON type of an override value. A field that already
// holds a string stays a string; a double-quoted value is always a string;
// otherwise integers and booleans are recognized.
func typedValue(doc []byte, o Override) any {
	if current := gjson.GetBytes(doc, o.Path); current.Type == gjson.String {
		return o.Value
	}
	if unquoted, err := strconv.Unquote(o.Value); err == nil && strings.HasPrefix(o.Value, `"`) {
		return unquoted
	}
	if n, err := strconv.Atoi(o.Value); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(o.Value); err == nil {
		return b
	}
	return o.Value
}

func applyOverrides(d *Descriptor, overrides []Override) (*Descriptor, error) {
	doc, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to encode descriptor: %w", err)
	}
	for _, o := range overrides {
		doc, err = sjson.SetBytes(doc, o.Path, typedValue(doc, o))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidOverride, o, err)
		}
	}
	out, err := Unmarshal(doc, FormatJSON)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOverride, err)
	}
	return out, nil
}

// Query returns the field at a gjson path. Strings are returned unquoted;
// numbers, booleans, objects and arrays as JSON.
func Query(d *Descriptor, path string) (string, error) {
	doc, err := json.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("failed to encode descriptor: %w", err)
	}
	res := gjson.GetBytes(doc, path)
	if !res.Exists() {
		return "", fmt.Errorf("%w: %s", ErrFieldNotFound, path)
	}
	if res.Type == gjson.String {
		return res.Str, nil
	}
	return res.Raw, nil
}
