// Package env reads .env files and resolves variables with the
// process environment taking precedence.
package env

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

// Loader defines the interface for environment variable management.
type Loader interface {
	// Load reads variables from one or more .env files.
	Load(paths ...string) error
	// Get retrieves an environment variable value.
	Get(key string) string
	// Lookup retrieves a variable and reports whether it is set.
	Lookup(key string) (string, bool)
	// GetRequired retrieves a required environment variable or returns error.
	GetRequired(key string) (string, error)
	// GetWithDefault retrieves an environment variable with a default fallback.
	GetWithDefault(key, defaultValue string) string
	// WithPrefix returns every known variable whose name starts with prefix.
	WithPrefix(prefix string) map[string]string
	// Set sets an environment variable.
	Set(key, value string) error
	// All returns all loaded environment variables.
	All() map[string]string
}

// DefaultLoader implements Loader on top of godotenv.
type DefaultLoader struct {
	mu     sync.RWMutex
	vars   map[string]string
	loaded bool
}

// NewLoader creates an empty DefaultLoader.
func NewLoader() *DefaultLoader {
	return &DefaultLoader{vars: make(map[string]string)}
}

// Load parses each file in order. A later file overrides keys
// from an earlier one. The process environment is not modified.
func (l *DefaultLoader) Load(paths ...string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, path := range paths {
		vars, err := godotenv.Read(path)
		if err != nil {
			return fmt.Errorf("read env file %s: %w", path, err)
		}
		for k, v := range vars {
			l.vars[k] = v
		}
	}

	l.loaded = true
	return nil
}

func (l *DefaultLoader) Get(key string) string {
	v, _ := l.Lookup(key)
	return v
}

func (l *DefaultLoader) Lookup(key string) (string, bool) {
	// OS env takes precedence
	if v, ok := os.LookupEnv(key); ok {
		return v, true
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	v, ok := l.vars[key]
	return v, ok
}

func (l *DefaultLoader) GetRequired(key string) (string, error) {
	v := l.Get(key)
	if v == "" {
		return "", fmt.Errorf("required environment variable %s is not set", key)
	}
	return v, nil
}

func (l *DefaultLoader) GetWithDefault(key, defaultValue string) string {
	if v := l.Get(key); v != "" {
		return v
	}
	return defaultValue
}

func (l *DefaultLoader) WithPrefix(prefix string) map[string]string {
	result := make(map[string]string)

	l.mu.RLock()
	for k, v := range l.vars {
		if strings.HasPrefix(k, prefix) {
			result[k] = v
		}
	}
	l.mu.RUnlock()

	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if ok && strings.HasPrefix(k, prefix) {
			result[k] = v
		}
	}
	return result
}

func (l *DefaultLoader) Set(key, value string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.vars[key] = value
	return os.Setenv(key, value)
}

func (l *DefaultLoader) All() map[string]string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	result := make(map[string]string, len(l.vars))
	for k, v := range l.vars {
		result[k] = v
	}
	return result
}
