package bootstrap

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	feedbackoutadapter "passby/internal/modules/feedback/adapter/out"
	"passby/internal/platform/config"
)

func TestNewFeedbackSinkSelection(t *testing.T) {
	t.Parallel()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	sink := newFeedbackSink(config.Config{}, logger)
	if _, ok := sink.(*feedbackoutadapter.TerminalSink); !ok {
		t.Fatalf("no plugin configured: got %T, want *TerminalSink", sink)
	}

	missing := config.Config{FeedbackPlugin: filepath.Join(t.TempDir(), "absent")}
	sink = newFeedbackSink(missing, logger)
	if _, ok := sink.(*feedbackoutadapter.NoopSink); !ok {
		t.Fatalf("missing plugin binary: got %T, want *NoopSink", sink)
	}

	binary := filepath.Join(t.TempDir(), "feedback-plugin")
	if err := os.WriteFile(binary, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatalf("write plugin stub: %v", err)
	}
	sink = newFeedbackSink(config.Config{FeedbackPlugin: binary}, logger)
	if _, ok := sink.(*feedbackoutadapter.PluginSink); !ok {
		t.Fatalf("present plugin binary: got %T, want *PluginSink", sink)
	}
}
