package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/go-plugin"

	feedbackrpc "passby/internal/modules/feedback/adapter/out/rpc"
)

// server is a reference feedback plugin. It has no haptic hardware to
// drive, so it renders each pattern as terminal bells on stderr with the
// requested on/off timing. Useful for exercising the plugin transport.
type server struct{}

func (s *server) GetMetadata(_ context.Context, _ *feedbackrpc.Empty) (*feedbackrpc.Metadata, error) {
	return &feedbackrpc.Metadata{
		Name:    "reference",
		Version: "1.0.0",
	}, nil
}

func (s *server) Play(ctx context.Context, in *feedbackrpc.PlayRequest) (*feedbackrpc.PlayResponse, error) {
	if in.Kind == "" {
		return nil, fmt.Errorf("kind is required")
	}
	if len(in.Pattern) == 0 {
		return &feedbackrpc.PlayResponse{Played: false}, nil
	}
	for i, ms := range in.Pattern {
		if ms < 0 {
			return nil, fmt.Errorf("negative duration at index %d", i)
		}
		if i%2 == 0 {
			_, _ = fmt.Fprint(os.Stderr, "\a")
		}
		select {
		case <-ctx.Done():
			return &feedbackrpc.PlayResponse{Played: false}, ctx.Err()
		case <-time.After(time.Duration(ms) * time.Millisecond):
		}
	}
	return &feedbackrpc.PlayResponse{Played: true}, nil
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: feedbackrpc.HandshakeConfig,
		Plugins:         feedbackrpc.PluginMap(&server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
