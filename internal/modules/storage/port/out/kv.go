package out

import (
	"context"
	"errors"
)

var ErrQuotaExceeded = errors.New("storage quota exceeded")

// KV is a flat byte store. Keys arrive fully namespaced.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Close() error
}
