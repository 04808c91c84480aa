package main

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"sync"

	"github.com/hashicorp/go-plugin"

	"vclock/internal/modules/feedback/adapter/out/rpc"
)

// server plays sounds through an external command named by
// VCLOCK_CHIME_PLAYER (for example paplay or afplay) with files from
// VCLOCK_SOUNDS_DIR. Without a command it rings the controlling terminal.
type server struct {
	player    string
	soundsDir string

	mu     sync.Mutex
	cancel context.CancelFunc
}

func (s *server) GetMetadata(context.Context, *rpc.Empty) (*rpc.Metadata, error) {
	return &rpc.Metadata{Name: "chime", Version: "1.0.0", Formats: []string{"mp3", "wav", "ogg"}}, nil
}

func (s *server) Play(_ context.Context, in *rpc.PlayRequest) (*rpc.PlayResponse, error) {
	s.stop()
	if in.Volume <= 0 {
		return &rpc.PlayResponse{}, nil
	}
	if s.player == "" {
		tty, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
		if err != nil {
			return &rpc.PlayResponse{Blocked: true, Reason: "no terminal attached"}, nil
		}
		defer tty.Close()
		_, _ = tty.WriteString("\a")
		return &rpc.PlayResponse{}, nil
	}
	if _, err := exec.LookPath(s.player); err != nil {
		return &rpc.PlayResponse{Blocked: true, Reason: "player command not found"}, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()
	path := filepath.Join(s.soundsDir, filepath.Base(in.Sound))
	go func() {
		for {
			_ = exec.CommandContext(ctx, s.player, path).Run()
			if !in.Loop || ctx.Err() != nil {
				return
			}
		}
	}()
	return &rpc.PlayResponse{}, nil
}

func (s *server) Stop(context.Context, *rpc.Empty) (*rpc.Empty, error) {
	s.stop()
	return &rpc.Empty{}, nil
}

func (s *server) stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func main() {
	impl := &server{
		player:    os.Getenv("VCLOCK_CHIME_PLAYER"),
		soundsDir: os.Getenv("VCLOCK_SOUNDS_DIR"),
	}
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: rpc.HandshakeConfig,
		Plugins:         rpc.PluginMap(impl),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
