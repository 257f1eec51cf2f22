package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewWithWriter(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf)

	log.Info().Str("bank", "HDFC Bank").Msg("statement extracted")

	out := buf.String()
	if !strings.Contains(out, `"bank":"HDFC Bank"`) {
		t.Errorf("missing field in output: %s", out)
	}
	if !strings.Contains(out, `"message":"statement extracted"`) {
		t.Errorf("missing message in output: %s", out)
	}
}

func TestLevelFiltering(t *testing.T) {
	if got := New(false).GetLevel(); got != zerolog.InfoLevel {
		t.Errorf("default level: got %s, want info", got)
	}
	if got := New(true).GetLevel(); got != zerolog.DebugLevel {
		t.Errorf("debug level: got %s, want debug", got)
	}
}

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf)

	ctx := WithContext(context.Background(), log)
	ctxLog := FromContext(ctx)
	ctxLog.Info().Msg("through context")

	if !strings.Contains(buf.String(), "through context") {
		t.Errorf("context logger did not write to original buffer: %s", buf.String())
	}
}

func TestFromContextFallback(t *testing.T) {
	// Must not panic on a bare context.
	log := FromContext(context.Background())
	if log.GetLevel() != zerolog.InfoLevel {
		t.Errorf("fallback level: got %s, want info", log.GetLevel())
	}
}
