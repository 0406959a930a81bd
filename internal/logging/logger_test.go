package logging_test

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"artalign/internal/logging"
)

func readLog(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	return string(content)
}

func TestConsoleLoggerOmitsCallerForInfo(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console-info.log")
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("message without caller", logging.Float64("bleu", 0.123456789))

	content := readLog(t, logPath)
	if strings.Contains(content, ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", content)
	}
	if !strings.Contains(content, "bleu: 0.123457") {
		t.Fatalf("expected float formatted with six digits, got %q", content)
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console-debug.log")
	logger, err := logging.New(logging.Options{Format: "console", Level: "debug", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("message with caller")

	if content := readLog(t, logPath); !strings.Contains(content, ".go:") {
		t.Fatalf("expected caller information in debug logs, got %q", content)
	}
}

func TestConsoleHeaderCarriesComponentBookAndBatch(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "header.log")
	base, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	ctx := logging.WithBatch(logging.WithBook(logging.WithRunID(context.Background(), "run-1"), "1900_de.txt"), 2)
	logger := logging.WithContext(ctx, logging.NewComponentLogger(base, "batch"))

	logger.Info("batch aligned", logging.Int("pairs", 12))

	content := readLog(t, logPath)
	if !strings.Contains(content, "INFO [batch] 1900_de.txt (batch 2) - batch aligned") {
		t.Fatalf("unexpected header: %q", content)
	}
	if !strings.Contains(content, "    pairs: 12") {
		t.Fatalf("expected indented field, got %q", content)
	}
	if strings.Contains(content, "run-1") {
		t.Fatalf("console output should omit run id: %q", content)
	}
}

func TestNewJSONLogger(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "json.log")
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	ctx := logging.WithRunID(context.Background(), "run-42")
	logging.WithContext(ctx, logger).Info("json message", logging.String("k", "v"))

	var record map[string]any
	if err := json.Unmarshal(bytes.TrimSpace([]byte(readLog(t, logPath))), &record); err != nil {
		t.Fatalf("decode json log: %v", err)
	}
	if record["msg"] != "json message" || record["k"] != "v" || record["level"] != "info" {
		t.Fatalf("unexpected record: %v", record)
	}
	if record["run_id"] != "run-42" {
		t.Fatalf("expected run_id field, got %v", record)
	}
	if _, ok := record["ts"]; !ok {
		t.Fatalf("expected ts key, got %v", record)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewInvalidLevelDefaultsToInfo(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "level.log")
	logger, err := logging.New(logging.Options{Format: "console", Level: "invalid", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("debug should be disabled at default level")
	}
	if !logger.Enabled(context.Background(), slog.LevelInfo) {
		t.Fatal("info should be enabled at default level")
	}
}

func TestOutputsFor(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	outputs, err := logging.OutputsFor(dir)
	if err != nil {
		t.Fatalf("OutputsFor returned error: %v", err)
	}
	if len(outputs) != 2 || outputs[0] != "stderr" || outputs[1] != filepath.Join(dir, logging.LogFileName) {
		t.Fatalf("unexpected outputs: %v", outputs)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Fatalf("expected log dir to be created: %v", err)
	}
	outputs, err = logging.OutputsFor("")
	if err != nil || len(outputs) != 1 {
		t.Fatalf("expected stderr only, got %v (%v)", outputs, err)
	}
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "warn.log")
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logging.WarnWithContext(logger, "store unavailable", "store_open_failed", logging.String(logging.FieldImpact, "history not recorded"))

	var record map[string]any
	if err := json.Unmarshal(bytes.TrimSpace([]byte(readLog(t, logPath))), &record); err != nil {
		t.Fatalf("decode json log: %v", err)
	}
	if record[logging.FieldEventType] != "store_open_failed" {
		t.Fatalf("missing event type: %v", record)
	}
	if record[logging.FieldImpact] != "history not recorded" {
		t.Fatalf("impact should not be overwritten: %v", record)
	}
	if record[logging.FieldErrorHint] == nil {
		t.Fatalf("missing error hint default: %v", record)
	}
}
