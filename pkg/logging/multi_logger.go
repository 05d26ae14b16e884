package logging

import "errors"

// MultiLogger fans out log calls to multiple loggers, e.g. a
// terminal logger and a JSON log file.
type MultiLogger struct {
	loggers []Logger
}

// NewMultiLogger creates a logger that writes to every non-nil
// logger given.
func NewMultiLogger(loggers ...Logger) *MultiLogger {
	m := &MultiLogger{}
	for _, l := range loggers {
		if l != nil {
			m.loggers = append(m.loggers, l)
		}
	}
	return m
}

func (m *MultiLogger) each(fn func(Logger)) {
	for _, l := range m.loggers {
		fn(l)
	}
}

func (m *MultiLogger) Info(msg string, fields ...Field) {
	m.each(func(l Logger) { l.Info(msg, fields...) })
}

func (m *MultiLogger) Warn(msg string, fields ...Field) {
	m.each(func(l Logger) { l.Warn(msg, fields...) })
}

func (m *MultiLogger) Error(msg string, fields ...Field) {
	m.each(func(l Logger) { l.Error(msg, fields...) })
}

func (m *MultiLogger) Debug(msg string, fields ...Field) {
	m.each(func(l Logger) { l.Debug(msg, fields...) })
}

// WithFields applies fields to every inner logger.
func (m *MultiLogger) WithFields(fields ...Field) Logger {
	children := make([]Logger, 0, len(m.loggers))
	m.each(func(l Logger) { children = append(children, l.WithFields(fields...)) })
	return &MultiLogger{loggers: children}
}

// Close closes every inner logger and joins their errors.
func (m *MultiLogger) Close() error {
	var errs []error
	m.each(func(l Logger) {
		if err := l.Close(); err != nil {
			errs = append(errs, err)
		}
	})
	return errors.Join(errs...)
}
