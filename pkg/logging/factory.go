package logging

import "fmt"

// Options selects and configures a Logger.
type Options struct {
	// Format is one of "console", "json", "zap" or
	// "zap-console".
	Format string

	// Level is the minimum level name ("debug", "info",
	// "warn", "error").
	Level string

	// OutputPath is a JSON lines log file. With the "json"
	// format it replaces stdout; with the other formats the file
	// is written alongside the terminal output.
	OutputPath string

	// Secrets are masked in every message and string field.
	Secrets []string
}

// New builds the Logger described by opts.
func New(opts Options) (Logger, error) {
	level := ParseLevel(opts.Level)

	var logger Logger
	switch opts.Format {
	case "", "console":
		logger = NewConsoleLogger(level)
	case "json":
		jl, err := newFileLogger(opts.OutputPath, level)
		return withSecrets(jl, err, opts.Secrets)
	case "zap", "zap-console":
		encoding := "json"
		if opts.Format == "zap-console" {
			encoding = "console"
		}
		zl, err := NewZapLogger(encoding, level)
		if err != nil {
			return nil, fmt.Errorf("failed to build zap logger: %w", err)
		}
		logger = zl
	default:
		return nil, fmt.Errorf("unknown log format: %s", opts.Format)
	}

	if opts.OutputPath != "" {
		file, err := newFileLogger(opts.OutputPath, level)
		if err != nil {
			_ = logger.Close()
			return nil, err
		}
		logger = NewMultiLogger(logger, file)
	}
	return withSecrets(logger, nil, opts.Secrets)
}

func newFileLogger(path string, level LogLevel) (Logger, error) {
	jl, err := NewJSONLogger(LoggerConfig{OutputPath: path, Level: level})
	if err != nil {
		return nil, err
	}
	return jl, nil
}

func withSecrets(logger Logger, err error, secrets []string) (Logger, error) {
	if err != nil {
		return nil, err
	}
	if len(secrets) > 0 {
		logger = NewRedactingLogger(logger, secrets...)
	}
	return logger, nil
}
