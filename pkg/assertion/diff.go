package assertion

import (
	"reflect"

	"github.com/google/go-cmp/cmp"
)

var diffOptions = []cmp.Option{
	cmp.Exporter(func(reflect.Type) bool { return true }),
	cmp.Transformer("ordered", func(m *OrderedMap) map[string]any {
		if m == nil {
			return nil
		}
		out := make(map[string]any, m.Len())
		for pair := m.Oldest(); pair != nil; pair = pair.Next() {
			out[pair.Key] = pair.Value
		}
		return out
	}),
}

// Diff renders a human-readable structural diff between expected
// and actual. Lines prefixed with "-" come from expected and
// lines prefixed with "+" from actual. It returns an empty
// string when the values cannot be diffed.
func Diff(expected, actual any) (out string) {
	defer func() {
		if recover() != nil {
			out = ""
		}
	}()
	return cmp.Diff(expected, actual, diffOptions...)
}
