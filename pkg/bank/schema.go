package bank

// BankFile is the on-disk form of a declarative suite. JSON and
// YAML files share the same structure.
type BankFile struct {
	Version  string         `json:"version" yaml:"version"`
	Name     string         `json:"name" yaml:"name"`
	Groups   []GroupDef     `json:"groups" yaml:"groups"`
	Tests    []TestDef      `json:"tests,omitempty" yaml:"tests,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// GroupDef declares a group. Nested groups are registered inside
// the enclosing group, after its tests.
type GroupDef struct {
	Label  string     `json:"label" yaml:"label"`
	Tests  []TestDef  `json:"tests" yaml:"tests"`
	Groups []GroupDef `json:"groups,omitempty" yaml:"groups,omitempty"`
}

// TestDef declares a test and its assertions.
type TestDef struct {
	Label      string         `json:"label" yaml:"label"`
	Assertions []AssertionDef `json:"assertions" yaml:"assertions"`
}

// AssertionDef declares one assertion with literal values. Kind
// is "assertEqual" or "assertNotEqual"; "equal" and "notEqual"
// are accepted as short forms.
type AssertionDef struct {
	Label    string `json:"label" yaml:"label"`
	Kind     string `json:"kind" yaml:"kind"`
	Actual   any    `json:"actual" yaml:"actual"`
	Expected any    `json:"expected" yaml:"expected"`
}
