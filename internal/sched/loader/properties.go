package loader

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dshills/queuestage/internal/sched/prop"
)

// PropertiesLoader loads snapshots from Java-style .properties files:
// one "key=value" per line, "#" or "!" comments, blank lines ignored.
type PropertiesLoader struct {
	fs   FileSystem
	path string
}

// NewPropertiesLoader creates a properties loader for the given path.
func NewPropertiesLoader(path string) *PropertiesLoader {
	return &PropertiesLoader{fs: DefaultFS(), path: path}
}

// NewPropertiesLoaderWithFS creates a properties loader with a custom
// file system.
func NewPropertiesLoaderWithFS(fs FileSystem, path string) *PropertiesLoader {
	return &PropertiesLoader{fs: fs, path: path}
}

// Load reads the snapshot from the configured path.
func (l *PropertiesLoader) Load() ([]prop.Property, error) {
	return l.LoadFrom(l.path)
}

// LoadFrom reads a snapshot from a specific path.
func (l *PropertiesLoader) LoadFrom(path string) ([]prop.Property, error) {
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
func (l *PropertiesLoader) LoadFromReader(r io.Reader) ([]prop.Property, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	return l.parse("<reader>", data)
}

func (l *PropertiesLoader) parse(source string, data []byte) ([]prop.Property, error) {
	var props []prop.Property

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, &ParseError{
				Path:    source,
				Line:    lineNo,
				Message: fmt.Sprintf("expected key=value, got %q", line),
			}
		}
		props = append(props, prop.Property{Name: key, Value: strings.TrimSpace(value)})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading snapshot %s: %w", source, err)
	}
	return props, nil
}
