// Package script parses YAML edit scripts and applies them to a session.
//
// An edit script is a batch of staged operations written by hand or by
// tooling:
//
//	add:
//	  - path: root.engineering
//	    capacity-mode: weight
//	    properties:
//	      capacity: "3w"
//	update:
//	  - path: root.default
//	    properties:
//	      capacity: "55"
//	delete:
//	  - root.sandbox
//
// Update properties are written with local names and expanded to full
// keys against the session catalog before staging.
package script

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dshills/queuestage/internal/sched"
	"github.com/dshills/queuestage/internal/sched/prop"
	"github.com/dshills/queuestage/internal/sched/staging"
)

// Script is a parsed edit script.
type Script struct {
	Add    []AddOp    `yaml:"add"`
	Update []UpdateOp `yaml:"update"`
	Delete []string   `yaml:"delete"`
}

// AddOp stages one new queue.
type AddOp struct {
	// Path is the new queue's absolute path.
	Path string `yaml:"path"`

	// CapacityMode is the optional capacity-mode display hint.
	CapacityMode string `yaml:"capacity-mode"`

	// Properties is the initial property map, keyed by local name.
	Properties map[string]string `yaml:"properties"`
}

// UpdateOp stages one queue's cumulative modifications.
type UpdateOp struct {
	// Path is the queue's absolute path.
	Path string `yaml:"path"`

	// CapacityMode is the optional capacity-mode display hint.
	CapacityMode string `yaml:"capacity-mode"`

	// Properties maps local names to new values.
	Properties map[string]string `yaml:"properties"`
}

// ParseFile reads and parses an edit script from a file.
func ParseFile(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading edit script %s: %w", path, err)
	}
	return parse(path, data)
}

// Parse reads and parses an edit script from a reader.
func Parse(r io.Reader) (*Script, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading edit script: %w", err)
	}
	return parse("<reader>", data)
}

func parse(source string, data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing edit script %s: %w", source, err)
	}
	for i, op := range s.Add {
		if op.Path == "" {
			return nil, fmt.Errorf("edit script %s: add entry %d has no path", source, i)
		}
	}
	for i, op := range s.Update {
		if op.Path == "" {
			return nil, fmt.Errorf("edit script %s: update entry %d has no path", source, i)
		}
	}
	return &s, nil
}

// Apply stages every operation in the script against a session, in
// add, update, delete order so that updates may target queues the same
// script adds.
func (s *Script) Apply(session *sched.Session) {
	cat := session.Catalog()

	for _, op := range s.Add {
		session.Add(op.Path, staging.Blueprint{
			Path:             op.Path,
			Properties:       op.Properties,
			CapacityModeHint: op.CapacityMode,
		})
	}
	for _, op := range s.Update {
		mods := make(map[string]string, len(op.Properties)+1)
		for local, value := range op.Properties {
			mods[prop.ToFullKey(cat, op.Path, local)] = value
		}
		if op.CapacityMode != "" {
			mods[staging.UIHintKey] = op.CapacityMode
		}
		session.Update(op.Path, mods)
	}
	for _, path := range s.Delete {
		session.Delete(path)
	}
}
