// Package bank loads declarative suites from JSON or YAML files
// and registers them on a suite.
package bank

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"digital.vasic.coccyx/pkg/assertion"
	"digital.vasic.coccyx/pkg/suite"
)

// Bank holds suite files in load order.
type Bank struct {
	mu      sync.RWMutex
	files   []*BankFile
	sources []string
}

// New creates a new empty Bank.
func New() *Bank {
	return &Bank{}
}

// ParseKind maps a kind name from a bank file to an assertion
// kind.
func ParseKind(name string) (assertion.Kind, error) {
	switch name {
	case "assertEqual", "equal":
		return assertion.KindEqual, nil
	case "assertNotEqual", "notEqual":
		return assertion.KindNotEqual, nil
	default:
		return 0, fmt.Errorf("unknown assertion kind %q", name)
	}
}

func decodeFile(path string) (*BankFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bank file %s: %w", path, err)
	}

	var file BankFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &file)
	default:
		err = json.Unmarshal(data, &file)
	}
	if err != nil {
		return nil, fmt.Errorf("parse bank file %s: %w", path, err)
	}
	return &file, nil
}

// LoadFile loads a suite file. The file must pass validation.
func (b *Bank) LoadFile(path string) error {
	file, err := decodeFile(path)
	if err != nil {
		return err
	}
	if errs := Validate(file); len(errs) > 0 {
		return fmt.Errorf("invalid bank file %s: %w", path, errs[0])
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.files = append(b.files, file)
	b.sources = append(b.sources, path)
	return nil
}

// LoadDir loads all .json, .yaml and .yml files from a
// directory in name order.
func (b *Bank) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read bank directory %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !isBankFile(entry.Name()) {
			continue
		}
		if err := b.LoadFile(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// LoadPath loads a file or, when path is a directory, every
// bank file inside it.
func (b *Bank) LoadPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat bank path %s: %w", path, err)
	}
	if info.IsDir() {
		return b.LoadDir(path)
	}
	return b.LoadFile(path)
}

func isBankFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

// Register declares every loaded file's groups and tests on s,
// in load order.
func (b *Bank) Register(s *suite.Suite) {
	b.mu.RLock()
	files := make([]*BankFile, len(b.files))
	copy(files, b.files)
	b.mu.RUnlock()

	for _, file := range files {
		for _, t := range file.Tests {
			s.Test(t.Label, registerTest(t))
		}
		for _, g := range file.Groups {
			s.Group(g.Label, registerGroup(g))
		}
	}
}

func registerGroup(def GroupDef) func(*suite.Group) {
	return func(g *suite.Group) {
		for _, t := range def.Tests {
			g.Test(t.Label, registerTest(t))
		}
		for _, nested := range def.Groups {
			g.Group(nested.Label, registerGroup(nested))
		}
	}
}

func registerTest(def TestDef) func(*suite.Assert) {
	return func(a *suite.Assert) {
		for _, ad := range def.Assertions {
			// Kinds are checked when the file is loaded.
			kind, _ := ParseKind(ad.Kind)
			value := suite.Literal(ad.Actual)
			if kind == assertion.KindNotEqual {
				a.NotEqual(value, ad.Expected, ad.Label)
			} else {
				a.Equal(value, ad.Expected, ad.Label)
			}
		}
	}
}

// Count returns the number of assertions across loaded files.
func (b *Bank) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	n := 0
	for _, f := range b.files {
		for _, t := range f.Tests {
			n += len(t.Assertions)
		}
		for _, g := range f.Groups {
			n += countGroup(g)
		}
	}
	return n
}

func countGroup(g GroupDef) int {
	n := 0
	for _, t := range g.Tests {
		n += len(t.Assertions)
	}
	for _, nested := range g.Groups {
		n += countGroup(nested)
	}
	return n
}

// Sources returns the list of loaded file paths.
func (b *Bank) Sources() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	result := make([]string, len(b.sources))
	copy(result, b.sources)
	return result
}
