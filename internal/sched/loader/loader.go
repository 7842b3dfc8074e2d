// Package loader reads flat capacity-scheduler property snapshots from
// files in several formats.
//
// Three formats are supported: Hadoop configuration XML
// (capacity-scheduler.xml), Java-style .properties files, and JSON dumps
// (either a flat key/value object or a {"properties": [...]} wrapper).
// All loaders produce the same flat property list the trie builder
// consumes.
package loader

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/queuestage/internal/sched/prop"
)

// Loader is the interface for snapshot loaders.
type Loader interface {
	// Load reads the snapshot and returns its flat property list.
	// Returns nil, nil if the source doesn't exist (not an error).
	Load() ([]prop.Property, error)
}

// FileLoader is the interface for loaders that read from files.
type FileLoader interface {
	Loader
	// LoadFrom reads a snapshot from a specific path.
	LoadFrom(path string) ([]prop.Property, error)
}

// ReaderLoader is the interface for loaders that read from an io.Reader.
type ReaderLoader interface {
	// LoadFromReader reads a snapshot from a reader.
	LoadFromReader(r io.Reader) ([]prop.Property, error)
}

// FileSystem is an abstraction for file system operations, allowing
// tests to use in-memory file systems.
type FileSystem interface {
	fs.FS
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
	// Stat returns file info for path.
	Stat(path string) (fs.FileInfo, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// Open implements fs.FS.
func (OSFS) Open(name string) (fs.File, error) {
	return os.Open(name)
}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Stat returns file info for path.
func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// DefaultFS returns the default file system (OS).
func DefaultFS() FileSystem {
	return OSFS{}
}

// ForPath returns a loader chosen by file extension: .xml, .json, and
// .properties (the default for anything else).
func ForPath(path string) FileLoader {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xml":
		return NewXMLLoader(path)
	case ".json":
		return NewJSONLoader(path)
	default:
		return NewPropertiesLoader(path)
	}
}
