// Package logging configures the structured logger shared by the client
// and the command line tool.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config holds logging configuration.
type Config struct {
	Format string `yaml:"format" env:"GIANTBOMB_LOG_FORMAT"` // "json" or "text"
	Level  string `yaml:"level" env:"GIANTBOMB_LOG_LEVEL"`   // "debug", "info", "warn", "error"
}

// DefaultConfig returns sensible logging defaults. The library is quiet
// unless asked otherwise, so the default level is warn.
func DefaultConfig() Config {
	return Config{
		Format: "text",
		Level:  "warn",
	}
}

const apiKeyParam = "api_key="

// Redacted replaces masked secrets.
const Redacted = "REDACTED"

var logger *slog.Logger

// Setup initializes the global logger on stderr.
func Setup(cfg Config) {
	SetupWithWriter(cfg, os.Stderr)
}

// SetupWithWriter initializes the global logger on w.
func SetupWithWriter(cfg Config, w io.Writer) {
	opts := &slog.HandlerOptions{
		Level:       parseLevel(cfg.Level),
		ReplaceAttr: redactAttr,
	}

	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger = slog.New(handler).With("component", "giantbomb")
	slog.SetDefault(logger)
}

// RedactURL masks the api_key value in a request URL or query string.
func RedactURL(rawURL string) string {
	i := strings.Index(rawURL, apiKeyParam)
	if i < 0 {
		return rawURL
	}
	start := i + len(apiKeyParam)
	end := strings.IndexByte(rawURL[start:], '&')
	if end < 0 {
		return rawURL[:start] + Redacted
	}
	return rawURL[:start] + Redacted + rawURL[start+end:]
}

// redactAttr keeps API keys out of every log record, including the text of
// logged errors.
func redactAttr(_ []string, a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindString:
		if s := a.Value.String(); strings.Contains(s, apiKeyParam) {
			return slog.String(a.Key, RedactURL(s))
		}
	case slog.KindAny:
		if err, ok := a.Value.Any().(error); ok && strings.Contains(err.Error(), apiKeyParam) {
			return slog.String(a.Key, RedactURL(err.Error()))
		}
	}
	return a
}

// parseLevel converts a string level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Get returns the configured logger, or the default if not set up.
func Get() *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}

func Debug(msg string, args ...any) {
	Get().Debug(msg, args...)
}

func Info(msg string, args ...any) {
	Get().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	Get().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	Get().Error(msg, args...)
}
