package loader

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dshills/queuestage/internal/sched/prop"
)

// XMLLoader loads snapshots from Hadoop configuration XML files
// (<configuration><property><name/><value/></property>...).
type XMLLoader struct {
	fs   FileSystem
	path string
}

// NewXMLLoader creates an XML loader for the given path.
func NewXMLLoader(path string) *XMLLoader {
	return &XMLLoader{fs: DefaultFS(), path: path}
}

// NewXMLLoaderWithFS creates an XML loader with a custom file system.
func NewXMLLoaderWithFS(fs FileSystem, path string) *XMLLoader {
	return &XMLLoader{fs: fs, path: path}
}

// Load reads the snapshot from the configured path.
func (l *XMLLoader) Load() ([]prop.Property, error) {
	return l.LoadFrom(l.path)
}

// LoadFrom reads a snapshot from a specific path.
func (l *XMLLoader) LoadFrom(path string) ([]prop.Property, error) {
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
func (l *XMLLoader) LoadFromReader(r io.Reader) ([]prop.Property, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	return l.parse("<reader>", data)
}

// xmlConfiguration mirrors the Hadoop configuration file layout.
type xmlConfiguration struct {
	XMLName    xml.Name      `xml:"configuration"`
	Properties []xmlProperty `xml:"property"`
}

type xmlProperty struct {
	Name  string `xml:"name"`
	Value string `xml:"value"`
}

func (l *XMLLoader) parse(source string, data []byte) ([]prop.Property, error) {
	var conf xmlConfiguration
	if err := xml.Unmarshal(data, &conf); err != nil {
		return nil, &ParseError{
			Path:    source,
			Message: err.Error(),
			Err:     err,
		}
	}

	props := make([]prop.Property, 0, len(conf.Properties))
	for _, p := range conf.Properties {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			continue
		}
		props = append(props, prop.Property{Name: name, Value: strings.TrimSpace(p.Value)})
	}
	return props, nil
}
