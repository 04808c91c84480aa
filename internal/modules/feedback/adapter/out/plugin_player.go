package out

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"sync"
	"time"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	"vclock/internal/modules/feedback/adapter/out/rpc"
	"vclock/internal/modules/feedback/domain"
	feedbackout "vclock/internal/modules/feedback/port/out"
	apperrors "vclock/internal/platform/errors"
)

const (
	defaultStartTimeout = 3 * time.Second
	defaultCallTimeout  = 5 * time.Second
)

var sha256Pattern = regexp.MustCompile(`^[a-f0-9]{64}$`)

// PluginPlayer delegates playback to an external player binary over the
// go-plugin gRPC transport. The process is started lazily and kept for
// the lifetime of the player since playback state lives in it.
type PluginPlayer struct {
	binary   string
	checksum string
	logOut   io.Writer

	mu     sync.Mutex
	client *plugin.Client
	rpc    rpc.SoundPlayerClient
}

func NewPluginPlayer(binary, checksum string, logOut io.Writer) (*PluginPlayer, error) {
	if binary == "" {
		return nil, fmt.Errorf("plugin binary path is required: %w", apperrors.ErrInvalidInput)
	}
	if !sha256Pattern.MatchString(checksum) {
		return nil, fmt.Errorf("plugin sha256 must be lowercase 64-char hex: %w", apperrors.ErrInvalidInput)
	}
	if logOut == nil {
		logOut = io.Discard
	}
	return &PluginPlayer{binary: binary, checksum: checksum, logOut: logOut}, nil
}

var _ feedbackout.Player = (*PluginPlayer)(nil)

// Metadata starts the plugin if needed and reports what it is.
func (p *PluginPlayer) Metadata(ctx context.Context) (rpc.Metadata, error) {
	client, err := p.connect()
	if err != nil {
		return rpc.Metadata{}, err
	}
	callCtx, cancel := callContext(ctx, defaultCallTimeout)
	defer cancel()
	meta, err := client.GetMetadata(callCtx)
	if err != nil {
		return rpc.Metadata{}, fmt.Errorf("get metadata: %w", err)
	}
	return *meta, nil
}

func (p *PluginPlayer) Play(ctx context.Context, sound string, opts domain.PlayOptions) error {
	client, err := p.connect()
	if err != nil {
		return err
	}
	callCtx, cancel := callContext(ctx, defaultCallTimeout)
	defer cancel()
	resp, err := client.Play(callCtx, &rpc.PlayRequest{Sound: sound, Loop: opts.Loop, Volume: opts.Volume})
	if err != nil {
		p.reset()
		return fmt.Errorf("play %s: %w", sound, err)
	}
	if resp.Blocked {
		return fmt.Errorf("%s: %w", resp.Reason, apperrors.ErrPlaybackBlocked)
	}
	return nil
}

func (p *PluginPlayer) Stop(ctx context.Context) error {
	p.mu.Lock()
	client := p.rpc
	p.mu.Unlock()
	if client == nil {
		return nil
	}
	callCtx, cancel := callContext(ctx, defaultCallTimeout)
	defer cancel()
	if err := client.Stop(callCtx); err != nil {
		p.reset()
		return fmt.Errorf("stop: %w", err)
	}
	return nil
}

// Close kills the plugin process.
func (p *PluginPlayer) Close() error {
	p.reset()
	return nil
}

func (p *PluginPlayer) connect() (rpc.SoundPlayerClient, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.rpc != nil && p.client != nil && !p.client.Exited() {
		return p.rpc, nil
	}
	if err := checksumMatches(p.binary, p.checksum); err != nil {
		return nil, err
	}
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  rpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          rpc.PluginMap(nil),
		Cmd:              exec.Command(p.binary),
		Managed:          true,
		StartTimeout:     defaultStartTimeout,
		Logger:           hclog.New(&hclog.LoggerOptions{Name: "sound-plugin", Output: p.logOut, Level: hclog.Warn}),
	})
	rpcClient, err := client.Client()
	if err != nil {
		client.Kill()
		return nil, fmt.Errorf("start plugin client: %w", err)
	}
	raw, err := rpcClient.Dispense(rpc.PluginMapKey)
	if err != nil {
		client.Kill()
		return nil, fmt.Errorf("dispense plugin: %w", err)
	}
	typed, ok := raw.(rpc.SoundPlayerClient)
	if !ok {
		client.Kill()
		return nil, fmt.Errorf("plugin rpc client type mismatch")
	}
	p.client = client
	p.rpc = typed
	return typed, nil
}

func (p *PluginPlayer) reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.client != nil {
		p.client.Kill()
	}
	p.client = nil
	p.rpc = nil
}

func checksumMatches(path, expected string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read plugin binary: %w", err)
	}
	hash := sha256.Sum256(payload)
	if hex.EncodeToString(hash[:]) != expected {
		return fmt.Errorf("plugin checksum mismatch for %s: %w", path, apperrors.ErrInvalidInput)
	}
	return nil
}

func callContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}
