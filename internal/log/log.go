package log

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	clog "github.com/charmbracelet/log"
)

// LoggerConfigurator is a data structure used to configure logging.
type LoggerConfigurator struct {
	Writer          io.Writer
	Level           string
	TimeFormatTempl string
	Caller          bool
}

// NewLogConfigurator creates a new LoggerConfigurator.
func NewLogConfigurator() *LoggerConfigurator {
	return &LoggerConfigurator{
		Writer:          os.Stderr,
		Level:           "INFO",
		TimeFormatTempl: time.RFC3339,
	}
}

// Output returns the log writer instance.
func (config *LoggerConfigurator) Output() io.Writer {
	return config.Writer
}

// LogLevel returns the log level.
func (config *LoggerConfigurator) LogLevel() string {
	return config.Level
}

// TimestampFormat returns the log timestamp format.
func (config *LoggerConfigurator) TimestampFormat() string {
	return config.TimeFormatTempl
}

// ReportCaller reports whether file:line is added to each entry.
func (config *LoggerConfigurator) ReportCaller() bool {
	return config.Caller
}

// Configurator has methods to fetch the logging configuration values.
type Configurator interface {
	LogLevel() string
	Output() io.Writer
	TimestampFormat() string
	ReportCaller() bool
}

var defaultLogger *clog.Logger

// TerminateFunc defines logic for termination of fatal log messages.
var TerminateFunc = terminate

// Replaceable termination logic for testing fatal errors
func terminate() {
	os.Exit(1)
}

// New creates a logger writing to w at INFO level.
func New(w io.Writer) *clog.Logger {
	l := clog.NewWithOptions(w, clog.Options{
		Level:           clog.InfoLevel,
		ReportTimestamp: true,
		TimeFormat:      "01-02 15:04:05.000",
	})
	l.SetStyles(styles())
	return l
}

// GetDefaultLogger returns the default logger implementation.
func GetDefaultLogger() *clog.Logger {
	if defaultLogger == nil {
		defaultLogger = New(os.Stderr)
	}
	return defaultLogger
}

// Setup configures the default logger. Unknown levels fall back to INFO.
func Setup(config Configurator) {
	l := GetDefaultLogger()
	if w := config.Output(); w != nil {
		l.SetOutput(w)
	}
	level, _ := ParseLevel(config.LogLevel())
	l.SetLevel(level)
	if f := config.TimestampFormat(); f != "" {
		l.SetTimeFormat(f)
	}
	l.SetReportCaller(config.ReportCaller())
}

// ParseLevel converts a level name to a Level. The empty string is INFO.
func ParseLevel(text string) (clog.Level, bool) {
	switch strings.ToUpper(strings.TrimSpace(text)) {
	case "DEBUG":
		return clog.DebugLevel, true
	case "INFO", "":
		return clog.InfoLevel, true
	case "WARN":
		return clog.WarnLevel, true
	case "ERROR":
		return clog.ErrorLevel, true
	case "FATAL":
		return clog.FatalLevel, true
	default:
		return clog.InfoLevel, false
	}
}

func styles() *clog.Styles {
	s := clog.DefaultStyles()
	badge := func(label, colour string) lipgloss.Style {
		return lipgloss.NewStyle().
			SetString(label).
			Padding(0, 1, 0, 1).
			Background(lipgloss.Color(colour)).
			Foreground(lipgloss.Color("15"))
	}
	s.Levels[clog.DebugLevel] = badge("DEBUG", "240")
	s.Levels[clog.InfoLevel] = badge("INFO", "33")
	s.Levels[clog.WarnLevel] = badge("WARN", "214")
	s.Levels[clog.ErrorLevel] = badge("ERROR", "196")
	s.Levels[clog.FatalLevel] = badge("FATAL", "88")

	s.Keys["score"] = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	s.Values["score"] = lipgloss.NewStyle().Bold(true)
	return s
}

// SetOutput sets the io.Writer to which all future log messages will be written.
func SetOutput(w io.Writer) {
	GetDefaultLogger().SetOutput(w)
}

// SetLogLevel sets a filter on the minimum level of messages that will be logged.
func SetLogLevel(level clog.Level) {
	GetDefaultLogger().SetLevel(level)
}

// GetLogLevel get the log level of the default logger.
func GetLogLevel() clog.Level {
	return GetDefaultLogger().GetLevel()
}

// Fatal logs a message at FATAL level and then calls TerminateFunc.
func Fatal(msg interface{}, keyvals ...interface{}) {
	GetDefaultLogger().Log(clog.FatalLevel, msg, keyvals...)
	TerminateFunc()
}

// Fatalf logs a formatted message at FATAL level and then calls TerminateFunc.
func Fatalf(format string, args ...interface{}) {
	GetDefaultLogger().Logf(clog.FatalLevel, format, args...)
	TerminateFunc()
}

// Debug logs a message at DEBUG level with optional key-value pairs.
func Debug(msg interface{}, keyvals ...interface{}) {
	GetDefaultLogger().Debug(msg, keyvals...)
}

// Debugf logs a formatted message at DEBUG level.
func Debugf(format string, args ...interface{}) {
	GetDefaultLogger().Debugf(format, args...)
}

// Info logs a message at INFO level with optional key-value pairs.
func Info(msg interface{}, keyvals ...interface{}) {
	GetDefaultLogger().Info(msg, keyvals...)
}

// Infof logs a formatted message at INFO level.
func Infof(format string, args ...interface{}) {
	GetDefaultLogger().Infof(format, args...)
}

// Warn logs a message at WARN level with optional key-value pairs.
func Warn(msg interface{}, keyvals ...interface{}) {
	GetDefaultLogger().Warn(msg, keyvals...)
}

// Warnf logs a formatted message at WARN level.
func Warnf(format string, args ...interface{}) {
	GetDefaultLogger().Warnf(format, args...)
}

// Error logs a message at ERROR level with optional key-value pairs.
func Error(msg interface{}, keyvals ...interface{}) {
	GetDefaultLogger().Error(msg, keyvals...)
}

// Errorf logs a formatted message at ERROR level.
func Errorf(format string, args ...interface{}) {
	GetDefaultLogger().Errorf(format, args...)
}
