package loader

import (
	"fmt"
	"io"
	"os"

	"github.com/tidwall/gjson"

	"github.com/dshills/queuestage/internal/sched/prop"
)

// JSONLoader loads snapshots from JSON dumps. Two shapes are accepted: a
// flat object mapping full keys to values, or a wrapper object with a
// "properties" array of {"name": ..., "value": ...} entries (the shape
// scheduler-conf endpoints produce).
type JSONLoader struct {
	fs   FileSystem
	path string
}

// NewJSONLoader creates a JSON loader for the given path.
func NewJSONLoader(path string) *JSONLoader {
	return &JSONLoader{fs: DefaultFS(), path: path}
}

// NewJSONLoaderWithFS creates a JSON loader with a custom file system.
func NewJSONLoaderWithFS(fs FileSystem, path string) *JSONLoader {
	return &JSONLoader{fs: fs, path: path}
}

// Load reads the snapshot from the configured path.
func (l *JSONLoader) Load() ([]prop.Property, error) {
	return l.LoadFrom(l.path)
}

// LoadFrom reads a snapshot from a specific path.
func (l *JSONLoader) LoadFrom(path string) ([]prop.Property, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // File doesn't exist, not an error
		}
		return nil, fmt.Errorf("reading snapshot %s: %w", path, err)
	}
	return l.parse(path, data)
}

// LoadFromReader reads a snapshot from an io.Reader.
func (l *JSONLoader) LoadFromReader(r io.Reader) ([]prop.Property, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	return l.parse("<reader>", data)
}

func (l *JSONLoader) parse(source string, data []byte) ([]prop.Property, error) {
	if !gjson.ValidBytes(data) {
		return nil, &ParseError{Path: source, Message: "invalid JSON"}
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, &ParseError{Path: source, Message: "expected a JSON object at top level"}
	}

	var props []prop.Property

	if list := root.Get("properties"); list.IsArray() {
		list.ForEach(func(_, entry gjson.Result) bool {
			name := entry.Get("name").String()
			if name != "" {
				props = append(props, prop.Property{Name: name, Value: entry.Get("value").String()})
			}
			return true
		})
		return props, nil
	}

	root.ForEach(func(key, value gjson.Result) bool {
		props = append(props, prop.Property{Name: key.String(), Value: value.String()})
		return true
	})
	return props, nil
}
