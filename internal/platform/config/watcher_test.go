package config

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatcherReloadsOnWrite(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte("log_level: info\n"), 0o644))

	var mu sync.Mutex
	var got []Config
	opts := Options{DataDir: dir, EnvFile: filepath.Join(dir, "none"), LookupEnv: noEnv}
	w, err := NewWatcher(opts, path, func(c Config) {
		mu.Lock()
		got = append(got, c)
		mu.Unlock()
	}, nil)
	require.NoError(t, err)
	w.SetDebounce(20 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, w.Start(ctx))
	t.Cleanup(func() { _ = w.Stop() })

	require.NoError(t, os.WriteFile(path, []byte("log_level: debug\nlocale: es\n"), 0o644))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) > 0 && got[len(got)-1].LogLevel == "debug"
	}, 3*time.Second, 10*time.Millisecond)

	mu.Lock()
	require.Equal(t, "es", got[len(got)-1].Locale)
	mu.Unlock()
	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
}
