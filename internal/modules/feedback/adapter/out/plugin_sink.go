package out

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"time"

	feedbackrpc "passby/internal/modules/feedback/adapter/out/rpc"
	"passby/internal/modules/feedback/domain"
	feedbackout "passby/internal/modules/feedback/port/out"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"
)

const (
	pluginStartTimeout = 3 * time.Second
	pluginCallTimeout  = 2 * time.Second
)

// PluginSink plays feedback through an external plugin binary speaking the
// feedback gRPC contract. The plugin process is started on first use and
// kept around: feedback happens on every recorded gesture, so a spawn per
// call would dominate the latency.
type PluginSink struct {
	binary string

	mu     sync.Mutex
	client *plugin.Client
	rpc    feedbackrpc.FeedbackPluginClient
}

func NewPluginSink(binary string) feedbackout.Sink {
	return &PluginSink{binary: binary}
}

func (s *PluginSink) Emit(ctx context.Context, kind domain.Kind, pattern domain.Pattern) error {
	client, err := s.connect()
	if err != nil {
		return err
	}

	callCtx, cancel := callContext(ctx, pluginCallTimeout)
	defer cancel()
	if _, err := client.Play(callCtx, &feedbackrpc.PlayRequest{Kind: string(kind), Pattern: pattern}); err != nil {
		// A dead plugin process gets one restart on the next emit.
		s.reset()
		return fmt.Errorf("play feedback: %w", err)
	}
	return nil
}

func (s *PluginSink) Close() error {
	s.reset()
	return nil
}

func (s *PluginSink) connect() (feedbackrpc.FeedbackPluginClient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rpc != nil {
		return s.rpc, nil
	}

	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  feedbackrpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          feedbackrpc.PluginMap(nil),
		Cmd:              exec.Command(s.binary),
		Managed:          true,
		StartTimeout:     pluginStartTimeout,
		Logger:           hclog.New(&hclog.LoggerOptions{Output: io.Discard, Level: hclog.NoLevel}),
	})

	rpcClient, err := client.Client()
	if err != nil {
		client.Kill()
		return nil, fmt.Errorf("start feedback plugin: %w", err)
	}
	raw, err := rpcClient.Dispense(feedbackrpc.PluginMapKey)
	if err != nil {
		client.Kill()
		return nil, fmt.Errorf("dispense feedback plugin: %w", err)
	}
	typed, ok := raw.(feedbackrpc.FeedbackPluginClient)
	if !ok {
		client.Kill()
		return nil, fmt.Errorf("feedback plugin rpc client type mismatch")
	}

	s.client = client
	s.rpc = typed
	return typed, nil
}

func (s *PluginSink) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client != nil {
		s.client.Kill()
	}
	s.client = nil
	s.rpc = nil
}

func callContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}
