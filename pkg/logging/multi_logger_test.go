package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMultiLogger_FansOut(t *testing.T) {
	var a, b bytes.Buffer
	m := NewMultiLogger(
		NewConsoleLoggerTo(&a, LevelDebug),
		NewJSONLoggerTo(&b, LevelDebug),
	)

	m.Info("info")
	m.Warn("warn")
	m.Error("error")
	m.Debug("debug")

	for _, out := range []string{a.String(), b.String()} {
		assert.Contains(t, out, "info")
		assert.Contains(t, out, "warn")
		assert.Contains(t, out, "error")
		assert.Contains(t, out, "debug")
	}
}

func TestMultiLogger_WithFields(t *testing.T) {
	var a bytes.Buffer
	m := NewMultiLogger(NewConsoleLoggerTo(&a, LevelInfo))

	m.WithFields(StringField("group", "G")).Info("x")
	assert.Contains(t, a.String(), "group=G")
}

func TestMultiLogger_CloseJoinsErrors(t *testing.T) {
	first := new(mockLogger)
	second := new(mockLogger)
	third := new(mockLogger)
	first.On("Close").Return(errors.New("first"))
	second.On("Close").Return(nil)
	third.On("Close").Return(errors.New("third"))

	err := NewMultiLogger(first, nil, second, third).Close()
	assert.EqualError(t, err, "first\nthird")
	second.AssertExpectations(t)
}

func TestMultiLogger_Empty(t *testing.T) {
	m := NewMultiLogger()
	m.Info("dropped")
	assert.NoError(t, m.Close())
}

func TestNullLogger(t *testing.T) {
	var l Logger = NullLogger{}
	l.Info("x")
	l.Warn("x")
	l.Error("x")
	l.Debug("x")
	assert.Equal(t, NullLogger{}, l.WithFields(StringField("a", "b")))
	assert.NoError(t, l.Close())
}
