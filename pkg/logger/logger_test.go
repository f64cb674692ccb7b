package logger

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func TestNewLogger(t *testing.T) {
	l := NewLogger("", "")
	if l == nil {
		t.Fatal("Expected logger to be created, got nil")
	}
	l.SetOutput(io.Discard)

	l.Info("Test info message", "TEST")
	l.Warn("Test warning message", "TEST")
	l.Debug("Test debug message", "TEST")
	l.System("Test system message", "TEST")
	l.Success("Test success message", "TEST")

	l.Close()
}

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LevelCritical, "CRITICAL"},
		{LevelError, "ERROR"},
		{LevelWarn, "WARN"},
		{LevelSuccess, "SUCCESS"},
		{LevelInfo, "INFO"},
		{LevelDebug, "DEBUG"},
		{LevelSystem, "SYSTEM"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.level.String(); got != tt.expected {
				t.Errorf("LogLevel.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestLogLevelDiscordColor(t *testing.T) {
	tests := []struct {
		level LogLevel
		color int
	}{
		{LevelCritical, 0xFF0000},
		{LevelError, 0xFF0000},
		{LevelWarn, 0xFFFF00},
		{LevelSuccess, 0x00FF00},
		{LevelInfo, 0x0000FF},
		{LevelDebug, 0x800080},
		{LevelSystem, 0x808080},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			if got := tt.level.DiscordColor(); got != tt.color {
				t.Errorf("LogLevel.DiscordColor() = %v, want %v", got, tt.color)
			}
		})
	}
}

func TestLogrusLevelMapping(t *testing.T) {
	tests := []struct {
		level LogLevel
		want  logrus.Level
	}{
		{LevelCritical, logrus.ErrorLevel},
		{LevelError, logrus.ErrorLevel},
		{LevelWarn, logrus.WarnLevel},
		{LevelSuccess, logrus.InfoLevel},
		{LevelInfo, logrus.InfoLevel},
		{LevelDebug, logrus.DebugLevel},
		{LevelSystem, logrus.InfoLevel},
	}

	for _, tt := range tests {
		if got := tt.level.logrusLevel(); got != tt.want {
			t.Errorf("%s.logrusLevel() = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestLineFormatter(t *testing.T) {
	entry := &logrus.Entry{
		Time:    time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC),
		Message: "guardado",
		Data: logrus.Fields{
			fieldLevel:  LevelWarn,
			fieldPrefix: "Store",
		},
	}

	out, err := (&lineFormatter{}).Format(entry)
	if err != nil {
		t.Fatalf("Format() returned error: %v", err)
	}

	want := "[2024-05-01 10:30:00] [WARN] [Store]: guardado\n"
	if string(out) != want {
		t.Errorf("Format() = %q, want %q", string(out), want)
	}
}

func TestFileHookSplitsErrors(t *testing.T) {
	var combined, errs bytes.Buffer

	l := &Logger{logrus: logrus.New()}
	l.logrus.SetOutput(io.Discard)
	l.logrus.SetLevel(logrus.DebugLevel)
	l.logrus.AddHook(&fileHook{combined: &combined, errors: &errs, formatter: &lineFormatter{}})

	l.Info("hola", "TEST")
	l.Error("fallo", "TEST")
	l.Critical("caida", "TEST")

	if got := strings.Count(combined.String(), "\n"); got != 3 {
		t.Errorf("combined lines = %v, want %v", got, 3)
	}
	if got := strings.Count(errs.String(), "\n"); got != 2 {
		t.Errorf("error lines = %v, want %v", got, 2)
	}
	if strings.Contains(errs.String(), "hola") {
		t.Error("info message should not reach the error log")
	}
}

func TestLogFileCreation(t *testing.T) {
	logsDir := filepath.Join(".", "logs")
	os.RemoveAll(logsDir)
	defer os.RemoveAll(logsDir)

	l := NewLogger("", "")
	defer l.Close()

	if _, err := os.Stat(logsDir); os.IsNotExist(err) {
		t.Error("Expected logs directory to be created")
	}

	for _, name := range []string{"combined.log", "error.log"} {
		if _, err := os.Stat(filepath.Join(logsDir, name)); os.IsNotExist(err) {
			t.Errorf("Expected %s to be created", name)
		}
	}
}

func TestGlobalLoggerInit(t *testing.T) {
	logger = nil
	once = sync.Once{}

	l := Init("", "")
	if l == nil {
		t.Fatal("Expected Init to return a logger")
	}

	if l2 := Init("different", "different"); l != l2 {
		t.Error("Expected Init to return the same logger on subsequent calls")
	}

	if l3 := Get(); l != l3 {
		t.Error("Expected Get to return the same logger")
	}

	l.Close()
}
