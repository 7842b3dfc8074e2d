package loader

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestXMLLoader(t *testing.T) {
	path := writeFile(t, "capacity-scheduler.xml", `<?xml version="1.0"?>
<configuration>
  <property>
    <name>yarn.scheduler.capacity.root.queues</name>
    <value>a,b</value>
  </property>
  <property>
    <name>yarn.scheduler.capacity.root.a.capacity</name>
    <value>40</value>
  </property>
  <property>
    <name></name>
    <value>ignored</value>
  </property>
</configuration>`)

	props, err := NewXMLLoader(path).Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(props) != 2 {
		t.Fatalf("props = %v, want 2 (nameless entries skipped)", props)
	}
	if props[0].Name != "yarn.scheduler.capacity.root.queues" || props[0].Value != "a,b" {
		t.Errorf("props[0] = %v", props[0])
	}
}

func TestXMLLoader_Malformed(t *testing.T) {
	path := writeFile(t, "bad.xml", "<configuration><property>")

	_, err := NewXMLLoader(path).Load()
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if parseErr.Path != path {
		t.Errorf("ParseError.Path = %q", parseErr.Path)
	}
}

func TestXMLLoader_MissingFile(t *testing.T) {
	props, err := NewXMLLoader(filepath.Join(t.TempDir(), "absent.xml")).Load()
	if err != nil {
		t.Fatalf("missing file is not an error, got %v", err)
	}
	if props != nil {
		t.Errorf("props = %v, want nil", props)
	}
}

func TestPropertiesLoader(t *testing.T) {
	path := writeFile(t, "snapshot.properties", `# capacity scheduler snapshot
! alternate comment

yarn.scheduler.capacity.root.queues=a,b
yarn.scheduler.capacity.root.a.capacity = 40
yarn.scheduler.capacity.root.a.acl_submit_applications=user1,user2 group1
`)

	props, err := NewPropertiesLoader(path).Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(props) != 3 {
		t.Fatalf("props = %v, want 3", props)
	}
	if props[1].Name != "yarn.scheduler.capacity.root.a.capacity" || props[1].Value != "40" {
		t.Errorf("whitespace around = not trimmed: %v", props[1])
	}
	// Values may themselves contain '='-free commas and spaces.
	if props[2].Value != "user1,user2 group1" {
		t.Errorf("props[2].Value = %q", props[2].Value)
	}
}

func TestPropertiesLoader_BadLine(t *testing.T) {
	path := writeFile(t, "bad.properties", "just-a-key-no-value\n")

	_, err := NewPropertiesLoader(path).Load()
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if parseErr.Line != 1 {
		t.Errorf("ParseError.Line = %d, want 1", parseErr.Line)
	}
}

func TestJSONLoader_FlatObject(t *testing.T) {
	loader := NewJSONLoader("")
	props, err := loader.LoadFromReader(strings.NewReader(`{
		"yarn.scheduler.capacity.root.queues": "a",
		"yarn.scheduler.capacity.root.a.capacity": "40"
	}`))
	if err != nil {
		t.Fatalf("LoadFromReader() error: %v", err)
	}
	if len(props) != 2 {
		t.Fatalf("props = %v, want 2", props)
	}
}

func TestJSONLoader_PropertiesArray(t *testing.T) {
	loader := NewJSONLoader("")
	props, err := loader.LoadFromReader(strings.NewReader(`{
		"properties": [
			{"name": "yarn.scheduler.capacity.root.queues", "value": "a"},
			{"name": "", "value": "skipped"},
			{"name": "yarn.scheduler.capacity.root.a.capacity", "value": "40"}
		]
	}`))
	if err != nil {
		t.Fatalf("LoadFromReader() error: %v", err)
	}
	if len(props) != 2 {
		t.Fatalf("props = %v, want 2 (nameless entries skipped)", props)
	}
	if props[1].Name != "yarn.scheduler.capacity.root.a.capacity" {
		t.Errorf("props[1] = %v", props[1])
	}
}

func TestJSONLoader_Invalid(t *testing.T) {
	loader := NewJSONLoader("")

	if _, err := loader.LoadFromReader(strings.NewReader("{nope")); err == nil {
		t.Error("invalid JSON should error")
	}
	if _, err := loader.LoadFromReader(strings.NewReader(`["array"]`)); err == nil {
		t.Error("non-object top level should error")
	}
}

func TestForPath(t *testing.T) {
	if _, ok := ForPath("a/b/capacity-scheduler.xml").(*XMLLoader); !ok {
		t.Error("ForPath(.xml) should pick the XML loader")
	}
	if _, ok := ForPath("dump.JSON").(*JSONLoader); !ok {
		t.Error("ForPath(.json) should pick the JSON loader, case-insensitively")
	}
	if _, ok := ForPath("snapshot.properties").(*PropertiesLoader); !ok {
		t.Error("ForPath should default to the properties loader")
	}
}
