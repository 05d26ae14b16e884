package logging

import (
	"fmt"
	"strings"
)

// RedactingLogger masks configured secrets before entries reach
// the inner logger. Assertion values may carry credentials read
// from the environment, so the run logger is wrapped with one
// when secrets are configured.
//
// Messages, string fields, error fields and string slices are
// rewritten. Secrets of four characters or fewer are ignored.
type RedactingLogger struct {
	inner    Logger
	replacer *strings.Replacer
}

// NewRedactingLogger creates a logger that redacts secrets.
func NewRedactingLogger(inner Logger, secrets ...string) *RedactingLogger {
	var pairs []string
	for _, s := range secrets {
		if len(s) > 4 {
			pairs = append(pairs, s, maskSecret(s))
		}
	}
	return &RedactingLogger{
		inner:    inner,
		replacer: strings.NewReplacer(pairs...),
	}
}

// maskSecret keeps the first four characters.
func maskSecret(s string) string {
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return s[:4] + strings.Repeat("*", len(s)-4)
}

func (r *RedactingLogger) scrub(fields []Field) []Field {
	out := make([]Field, len(fields))
	for i, f := range fields {
		out[i] = f
		switch v := f.Value.(type) {
		case string:
			out[i].Value = r.replacer.Replace(v)
		case error:
			out[i].Value = r.replacer.Replace(v.Error())
		case fmt.Stringer:
			out[i].Value = r.replacer.Replace(v.String())
		case []string:
			masked := make([]string, len(v))
			for j, s := range v {
				masked[j] = r.replacer.Replace(s)
			}
			out[i].Value = masked
		}
	}
	return out
}

func (r *RedactingLogger) Info(msg string, fields ...Field) {
	r.inner.Info(r.replacer.Replace(msg), r.scrub(fields)...)
}

func (r *RedactingLogger) Warn(msg string, fields ...Field) {
	r.inner.Warn(r.replacer.Replace(msg), r.scrub(fields)...)
}

func (r *RedactingLogger) Error(msg string, fields ...Field) {
	r.inner.Error(r.replacer.Replace(msg), r.scrub(fields)...)
}

func (r *RedactingLogger) Debug(msg string, fields ...Field) {
	r.inner.Debug(r.replacer.Replace(msg), r.scrub(fields)...)
}

// WithFields scrubs fields before handing them to the inner
// logger.
func (r *RedactingLogger) WithFields(fields ...Field) Logger {
	return &RedactingLogger{
		inner:    r.inner.WithFields(r.scrub(fields)...),
		replacer: r.replacer,
	}
}

// Close closes the inner logger.
func (r *RedactingLogger) Close() error {
	return r.inner.Close()
}
