package logger

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func TestErrorCarriesRequestID(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "erp-test", Level: ParseLevel("debug"), Output: buf})

	ctx := log.WithRequestID(context.Background(), "req-42")
	log.Error(ctx, "ingest failed", errors.New("locked by another upload"))

	if !bytes.Contains(buf.Bytes(), []byte(`"request_id"`)) {
		t.Fatalf("expected request_id in entry: %s", buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte("locked by another upload")) {
		t.Fatalf("expected wrapped error in entry: %s", buf.String())
	}
}

func TestContextFieldsPropagate(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "erp-test", Level: ParseLevel("debug"), Output: buf})

	ctx := log.WithFields(context.Background(), map[string]any{"order_number": "103"})
	log.Info(ctx, "order created")

	if !bytes.Contains(buf.Bytes(), []byte(`"order_number"`)) {
		t.Fatalf("expected order_number field in entry: %s", buf.String())
	}
}

func TestLevelFiltersDebug(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "erp-test", Level: ParseLevel("warn"), Output: buf})

	log.Info(context.Background(), "should be dropped")
	if buf.Len() != 0 {
		t.Fatalf("info entry should be filtered at warn level: %s", buf.String())
	}
	log.Warn(context.Background(), "kept")
	if buf.Len() == 0 {
		t.Fatal("warn entry should pass at warn level")
	}
}

func TestParseLevelFallsBack(t *testing.T) {
	if lvl := ParseLevel(""); lvl != zerolog.InfoLevel {
		t.Fatalf("empty level should fall back to info, got %v", lvl)
	}
	if lvl := ParseLevel("loud"); lvl != zerolog.InfoLevel {
		t.Fatalf("unknown level should fall back to info, got %v", lvl)
	}
	if lvl := ParseLevel("WARN"); lvl != zerolog.WarnLevel {
		t.Fatalf("level parsing should be case-insensitive, got %v", lvl)
	}
}
