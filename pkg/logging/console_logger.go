package logging

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// consoleStyles colors the level tag and the dimmed parts of a
// console entry. The renderer drops colors when the output is
// not a terminal.
type consoleStyles struct {
	dim    lipgloss.Style
	levels map[LogLevel]lipgloss.Style
}

func newConsoleStyles(w io.Writer) *consoleStyles {
	r := lipgloss.NewRenderer(w)
	return &consoleStyles{
		dim: r.NewStyle().Foreground(lipgloss.Color("8")),
		levels: map[LogLevel]lipgloss.Style{
			LevelDebug: r.NewStyle().Foreground(lipgloss.Color("8")),
			LevelInfo:  r.NewStyle().Foreground(lipgloss.Color("4")),
			LevelWarn:  r.NewStyle().Foreground(lipgloss.Color("3")),
			LevelError: r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		},
	}
}

// ConsoleLogger writes colored single-line entries of the form
// "15:04:05 [INFO ] queue_stable {length=4, ticks=2}".
type ConsoleLogger struct {
	mu      *sync.Mutex
	output  io.Writer
	styles *consoleStyles
	level  LogLevel
	fields map[string]any
}

// NewConsoleLogger creates a console logger writing to stderr.
// Entries below level are dropped.
func NewConsoleLogger(level LogLevel) *ConsoleLogger {
	return NewConsoleLoggerTo(os.Stderr, level)
}

// NewConsoleLoggerTo creates a console logger writing to w.
func NewConsoleLoggerTo(w io.Writer, level LogLevel) *ConsoleLogger {
	return &ConsoleLogger{
		mu:     &sync.Mutex{},
		output: w,
		styles: newConsoleStyles(w),
		level:  level,
		fields: make(map[string]any),
	}
}

func formatFields(all map[string]any) string {
	if len(all) == 0 {
		return ""
	}
	keys := make([]string, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, all[k])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (c *ConsoleLogger) log(level LogLevel, msg string, fields []Field) {
	if level < c.level {
		return
	}
	name := level.String()
	line := fmt.Sprintf("%s [%s%s] %s",
		c.styles.dim.Render(time.Now().Format("15:04:05")),
		c.styles.levels[level].Render(name),
		strings.Repeat(" ", max(0, 5-len(name))),
		msg,
	)
	if f := formatFields(mergeFields(c.fields, fields)); f != "" {
		line += " " + c.styles.dim.Render(f)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.output, line)
}

func (c *ConsoleLogger) Info(msg string, fields ...Field) {
	c.log(LevelInfo, msg, fields)
}

func (c *ConsoleLogger) Warn(msg string, fields ...Field) {
	c.log(LevelWarn, msg, fields)
}

func (c *ConsoleLogger) Error(msg string, fields ...Field) {
	c.log(LevelError, msg, fields)
}

func (c *ConsoleLogger) Debug(msg string, fields ...Field) {
	c.log(LevelDebug, msg, fields)
}

// WithFields returns a logger sharing the same output with
// additional default fields.
func (c *ConsoleLogger) WithFields(fields ...Field) Logger {
	return &ConsoleLogger{
		mu:     c.mu,
		output: c.output,
		styles: c.styles,
		level:  c.level,
		fields: mergeFields(c.fields, fields),
	}
}

// Close is a no-op for ConsoleLogger.
func (c *ConsoleLogger) Close() error {
	return nil
}
