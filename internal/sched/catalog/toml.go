package catalog

import (
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// tomlFile is the on-disk shape of a catalog extension file.
type tomlFile struct {
	Definitions []tomlDefinition `toml:"definition"`
}

type tomlDefinition struct {
	Key         string `toml:"key"`
	Placeholder string `toml:"placeholder"`
	DisplayName string `toml:"display-name"`
	Type        string `toml:"type"`
	Default     string `toml:"default"`
}

// LoadTOML merges property definitions from a TOML file into the catalog.
// A missing file is not an error. Definitions for already-registered keys
// are rejected per Register semantics.
func (c *Catalog) LoadTOML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading catalog file %s: %w", path, err)
	}
	return c.loadTOML(path, data)
}

// LoadTOMLFromReader merges property definitions from a reader.
func (c *Catalog) LoadTOMLFromReader(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading catalog: %w", err)
	}
	return c.loadTOML("<reader>", data)
}

func (c *Catalog) loadTOML(source string, data []byte) error {
	var file tomlFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing catalog file %s: %w", source, err)
	}

	for _, td := range file.Definitions {
		def := Definition{
			Key:          td.Key,
			Placeholder:  td.Placeholder,
			DisplayName:  td.DisplayName,
			Type:         parseValueType(td.Type),
			DefaultValue: td.Default,
		}
		if err := c.Register(def); err != nil {
			return fmt.Errorf("catalog file %s: %w", source, err)
		}
	}
	return nil
}

// parseValueType maps a type name from a catalog file to a ValueType.
// Unknown names fall back to TypeString.
func parseValueType(name string) ValueType {
	switch name {
	case "number":
		return TypeNumber
	case "bool":
		return TypeBool
	case "capacity":
		return TypeCapacity
	case "acl":
		return TypeACL
	case "enum":
		return TypeEnum
	default:
		return TypeString
	}
}
