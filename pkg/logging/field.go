package logging

import "time"

// StringField creates a Field with a string value.
func StringField(key, value string) Field {
	return Field{Key: key, Value: value}
}

// IntField creates a Field with an integer value.
func IntField(key string, value int) Field {
	return Field{Key: key, Value: value}
}

// BoolField creates a Field with a boolean value.
func BoolField(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

// DurationField records d in its String form, e.g. "1.5s".
func DurationField(key string, d time.Duration) Field {
	return Field{Key: key, Value: d.String()}
}

// ErrorField creates a Field for an error value. If err is nil,
// the value is set to the string "<nil>".
func ErrorField(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: "<nil>"}
	}
	return Field{Key: "error", Value: err.Error()}
}

// AssertionFields identifies a queued assertion by its group,
// test and assertion labels. Extra fields are appended.
func AssertionFields(group, test, label string, extra ...Field) []Field {
	fields := make([]Field, 0, 3+len(extra))
	fields = append(fields,
		Field{Key: "group", Value: group},
		Field{Key: "test", Value: test},
		Field{Key: "assertion", Value: label},
	)
	return append(fields, extra...)
}

// mergeFields returns a copy of base extended with fields.
func mergeFields(base map[string]any, fields []Field) map[string]any {
	merged := make(map[string]any, len(base)+len(fields))
	for k, v := range base {
		merged[k] = v
	}
	for _, f := range fields {
		merged[f.Key] = f.Value
	}
	return merged
}
