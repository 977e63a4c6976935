package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNew(t *testing.T) {
	log := New()
	if log.GetLevel() == zerolog.Disabled {
		t.Error("Expected logger to be enabled")
	}
}

func TestNewWithWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithWriter(buf)

	log.Info().Msg("test message")

	if !strings.Contains(buf.String(), "test message") {
		t.Errorf("Expected output to contain 'test message', got: %s", buf.String())
	}
}

func TestContextRoundTrip(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithWriter(buf)

	ctx := WithContext(context.Background(), log)
	got := FromContext(ctx)

	got.Info().Msg("from context")
	if !strings.Contains(buf.String(), "from context") {
		t.Error("logger retrieved from context did not write to the original buffer")
	}
}

func TestFromContextWithoutLogger(t *testing.T) {
	log := FromContext(context.Background())
	if log.GetLevel() == zerolog.Disabled {
		t.Error("Expected a usable default logger")
	}
}
