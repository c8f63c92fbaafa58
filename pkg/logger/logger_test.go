package logger

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"storefront/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)


func TestNilLoggerSafety(t *testing.T) {
	original := log
	defer func() { log = original }()

	log = nil
	Info("test info")
	Warn("test warn")
	Error("test error")

	if With(zap.String("key", "value")) == nil {
		t.Error("With() returned nil logger")
	}
	if WithRequestID("test-id") == nil {
		t.Error("WithRequestID() returned nil logger")
	}
	if FromContext(context.Background()) == nil {
		t.Error("FromContext() returned nil logger")
	}
	if err := Sync(); err != nil {
		t.Errorf("Sync() on nil logger: %v", err)
	}
}

func TestDevelopmentConfig(t *testing.T) {
	devConfig := &config.LogConfig{
		Level:  "debug",
		Output: "stdout",
	}

	if err := Init(devConfig, "development"); err != nil {
		t.Fatalf("Failed to initialize development logger: %v", err)
	}
	defer Sync()

	if !log.Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug level should be enabled")
	}
	Info("Development logger initialized", zap.String("env", "development"))
}

func TestDynamicLogLevel(t *testing.T) {
	if err := Init(&config.LogConfig{Level: "debug", Output: "stdout"}, "development"); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}
	defer Sync()

	UpdateLevel("WARN")
	if log.Core().Enabled(zapcore.InfoLevel) {
		t.Error("info should be disabled after UpdateLevel(WARN)")
	}
	UpdateLevel("debug")
	if !log.Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug should be enabled after UpdateLevel(debug)")
	}
	UpdateLevel("verbose")
	if log.Core().Enabled(zapcore.DebugLevel) || !log.Core().Enabled(zapcore.InfoLevel) {
		t.Error("unknown level names should fall back to info")
	}
}

func TestFileOutput(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "logs", "storefront.log")

	fileConfig := &config.LogConfig{
		Level:    "info",
		Format:   "json",
		Output:   "file",
		FilePath: testFile,
	}

	if err := Init(fileConfig, "production"); err != nil {
		t.Fatalf("Failed to initialize file logger: %v", err)
	}

	for i := 0; i < 10; i++ {
		Info("Log entry for test", zap.Int("entry", i))
	}
	Sync()

	fileInfo, err := os.Stat(testFile)
	if err != nil {
		t.Fatalf("Log file not created: %v", err)
	}
	if fileInfo.Size() == 0 {
		t.Fatal("Log file is empty")
	}
}

func TestBothOutputWritesFile(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "storefront.log")

	err := Init(&config.LogConfig{
		Level:      "info",
		Format:     "json",
		Output:     "both",
		FilePath:   testFile,
		MaxSizeMB:  1,
		MaxBackups: 1,
	}, "production")
	if err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}
	Info("order placed", zap.String("order_number", "ORD-1-001"))
	Sync()

	data, err := os.ReadFile(testFile)
	if err != nil {
		t.Fatalf("Log file not created: %v", err)
	}
	if !strings.Contains(string(data), "ORD-1-001") {
		t.Errorf("log file missing entry: %s", data)
	}
}

func TestFromContextCarriesRequestID(t *testing.T) {
	original := log
	defer func() { log = original }()

	core, logs := observer.New(zapcore.InfoLevel)
	log = zap.New(core)

	ctx := ContextWithRequestID(context.Background(), "req-42")
	FromContext(ctx).Info("checkout committed")

	entries := logs.FilterMessage("checkout committed").All()
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["request_id"]; got != "req-42" {
		t.Errorf("request_id = %v, want req-42", got)
	}

	if RequestIDFromContext(context.Background()) != "" {
		t.Error("empty context should carry no request id")
	}
}

func TestReplaceRestores(t *testing.T) {
	original := log
	core, logs := observer.New(zapcore.InfoLevel)

	restore := Replace(zap.New(core))
	Info("captured")
	restore()

	if logs.FilterMessage("captured").Len() != 1 {
		t.Error("replacement logger should receive entries")
	}
	if log != original {
		t.Error("restore should reinstate the previous logger")
	}
}
