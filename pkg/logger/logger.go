// Package logger provides a comprehensive logging system with multiple outputs.
// Console, file and Discord webhook outputs are all driven by one logrus instance:
// the console is its writer, the files and the webhooks are hooks.
package logger

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
)

// LogLevel represents the severity level of a log message
type LogLevel int

const (
	LevelCritical LogLevel = iota
	LevelError
	LevelWarn
	LevelSuccess
	LevelInfo
	LevelDebug
	LevelSystem
)

const (
	fieldPrefix = "prefix"
	fieldLevel  = "pancy_level"
	colorReset  = "\033[0m"
	timeLayout  = "2006-01-02 15:04:05"
)

// String returns the string representation of the log level
func (l LogLevel) String() string {
	switch l {
	case LevelCritical:
		return "CRITICAL"
	case LevelError:
		return "ERROR"
	case LevelWarn:
		return "WARN"
	case LevelSuccess:
		return "SUCCESS"
	case LevelInfo:
		return "INFO"
	case LevelDebug:
		return "DEBUG"
	case LevelSystem:
		return "SYSTEM"
	default:
		return "UNKNOWN"
	}
}

// Color returns the ANSI color code for the log level
func (l LogLevel) Color() string {
	switch l {
	case LevelCritical:
		return "\033[1;31m"
	case LevelError:
		return "\033[31m"
	case LevelWarn:
		return "\033[33m"
	case LevelSuccess:
		return "\033[32m"
	case LevelInfo:
		return "\033[36m"
	case LevelDebug:
		return "\033[35m"
	case LevelSystem:
		return "\033[34m"
	default:
		return colorReset
	}
}

// DiscordColor returns the Discord embed color for the log level
func (l LogLevel) DiscordColor() int {
	switch l {
	case LevelCritical, LevelError:
		return 0xFF0000
	case LevelWarn:
		return 0xFFFF00
	case LevelSuccess:
		return 0x00FF00
	case LevelInfo:
		return 0x0000FF
	case LevelDebug:
		return 0x800080
	case LevelSystem:
		return 0x808080
	default:
		return 0xFFFFFF
	}
}

// logrusLevel maps the bot levels onto logrus severities.
// SUCCESS and SYSTEM are informational.
func (l LogLevel) logrusLevel() logrus.Level {
	switch l {
	case LevelCritical, LevelError:
		return logrus.ErrorLevel
	case LevelWarn:
		return logrus.WarnLevel
	case LevelDebug:
		return logrus.DebugLevel
	default:
		return logrus.InfoLevel
	}
}

// lineFormatter renders "[time] [LEVEL] [prefix]: message".
type lineFormatter struct {
	colors bool
}

func (f *lineFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	level, _ := entry.Data[fieldLevel].(LogLevel)
	prefix, _ := entry.Data[fieldPrefix].(string)

	name := level.String()
	if f.colors {
		name = level.Color() + name + colorReset
	}

	line := fmt.Sprintf("[%s] [%s] [%s]: %s\n", entry.Time.Format(timeLayout), name, prefix, entry.Message)
	return []byte(line), nil
}

// fileHook appends every entry to the combined log and errors to the error log.
type fileHook struct {
	combined  io.Writer
	errors    io.Writer
	formatter logrus.Formatter
}

func (h *fileHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *fileHook) Fire(entry *logrus.Entry) error {
	line, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}
	if h.combined != nil {
		_, _ = h.combined.Write(line)
	}
	if level, _ := entry.Data[fieldLevel].(LogLevel); level <= LevelError && h.errors != nil {
		_, _ = h.errors.Write(line)
	}
	return nil
}

// webhookHook forwards entries to Discord webhooks in the background.
type webhookHook struct {
	errorURL string
	logsURL  string
	client   *http.Client
}

func (h *webhookHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *webhookHook) Fire(entry *logrus.Entry) error {
	level, _ := entry.Data[fieldLevel].(LogLevel)
	prefix, _ := entry.Data[fieldPrefix].(string)

	url := h.logsURL
	if level <= LevelError {
		url = h.errorURL
	}
	if url == "" {
		return nil
	}

	go h.send(url, level, prefix, entry.Message)
	return nil
}

func (h *webhookHook) send(url string, level LogLevel, prefix, message string) {
	payload := map[string]interface{}{
		"embeds": []interface{}{
			map[string]interface{}{
				"title":       fmt.Sprintf("[%s] %s", level.String(), prefix),
				"description": fmt.Sprintf("```%s```", message),
				"color":       level.DiscordColor(),
				"timestamp":   time.Now().Format(time.RFC3339),
				"footer": map[string]string{
					"text": "💫 Developed by PancyStudio | PancyGuard Go",
				},
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return
	}

	resp, err := h.client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return
	}
	resp.Body.Close()
}

// Logger is the main logging structure
type Logger struct {
	logrus    *logrus.Logger
	logFile   *os.File
	errorFile *os.File
	mu        sync.Mutex
}

// logger is the global logger instance
var (
	logger *Logger
	once   sync.Once
)

// Init initializes the global logger instance
func Init(errorWebhook, logsWebhook string) *Logger {
	once.Do(func() {
		logger = NewLogger(errorWebhook, logsWebhook)
	})
	return logger
}

// Get returns the global logger instance
func Get() *Logger {
	once.Do(func() {
		logger = NewLogger("", "")
	})
	return logger
}

// NewLogger creates a new Logger writing to the console, ./logs and the given webhooks
func NewLogger(errorWebhook, logsWebhook string) *Logger {
	l := &Logger{logrus: logrus.New()}

	l.logrus.SetOutput(os.Stdout)
	l.logrus.SetFormatter(&lineFormatter{colors: true})
	l.logrus.SetLevel(logrus.DebugLevel)

	logsDir := filepath.Join(".", "logs")
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		fmt.Printf("Error creating logs directory: %v\n", err)
	}

	var err error
	l.logFile, err = os.OpenFile(filepath.Join(logsDir, "combined.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Printf("Error opening combined log file: %v\n", err)
	}
	l.errorFile, err = os.OpenFile(filepath.Join(logsDir, "error.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Printf("Error opening error log file: %v\n", err)
	}

	hook := &fileHook{formatter: &lineFormatter{}}
	if l.logFile != nil {
		hook.combined = l.logFile
	}
	if l.errorFile != nil {
		hook.errors = l.errorFile
	}
	l.logrus.AddHook(hook)

	if errorWebhook != "" || logsWebhook != "" {
		l.logrus.AddHook(&webhookHook{
			errorURL: errorWebhook,
			logsURL:  logsWebhook,
			client:   &http.Client{Timeout: 5 * time.Second},
		})
	}

	return l
}

// SetOutput redirects console output, mainly for tests
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logrus.SetOutput(w)
}

func (l *Logger) log(level LogLevel, message string, prefix string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.logrus.WithFields(logrus.Fields{
		fieldLevel:  level,
		fieldPrefix: prefix,
	}).Log(level.logrusLevel(), message)
}

// Close closes the log files
func (l *Logger) Close() {
	if l.logFile != nil {
		l.logFile.Close()
	}
	if l.errorFile != nil {
		l.errorFile.Close()
	}
}

// Critical logs a critical message
func (l *Logger) Critical(message string, prefix string) {
	l.log(LevelCritical, message, prefix)
}

// Error logs an error message
func (l *Logger) Error(message string, prefix string) {
	l.log(LevelError, message, prefix)
}

// Warn logs a warning message
func (l *Logger) Warn(message string, prefix string) {
	l.log(LevelWarn, message, prefix)
}

// Success logs a success message
func (l *Logger) Success(message string, prefix string) {
	l.log(LevelSuccess, message, prefix)
}

// Info logs an info message
func (l *Logger) Info(message string, prefix string) {
	l.log(LevelInfo, message, prefix)
}

// Debug logs a debug message
func (l *Logger) Debug(message string, prefix string) {
	l.log(LevelDebug, message, prefix)
}

// System logs a system message
func (l *Logger) System(message string, prefix string) {
	l.log(LevelSystem, message, prefix)
}

// Package-level functions for convenience

// Critical logs a critical message using the global logger
func Critical(message string, prefix string) {
	Get().Critical(message, prefix)
}

// Error logs an error message using the global logger
func Error(message string, prefix string) {
	Get().Error(message, prefix)
}

// Warn logs a warning message using the global logger
func Warn(message string, prefix string) {
	Get().Warn(message, prefix)
}

// Success logs a success message using the global logger
func Success(message string, prefix string) {
	Get().Success(message, prefix)
}

// Info logs an info message using the global logger
func Info(message string, prefix string) {
	Get().Info(message, prefix)
}

// Debug logs a debug message using the global logger
func Debug(message string, prefix string) {
	Get().Debug(message, prefix)
}

// System logs a system message using the global logger
func System(message string, prefix string) {
	Get().System(message, prefix)
}
