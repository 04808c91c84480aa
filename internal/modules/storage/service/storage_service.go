package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"vclock/internal/modules/storage/domain"
	storageout "vclock/internal/modules/storage/port/out"
	"vclock/internal/platform/clock"
	apperrors "vclock/internal/platform/errors"
	"vclock/internal/platform/id"
	"vclock/internal/platform/logging"
	"vclock/internal/platform/metrics"
)

type StorageService struct {
	clock   clock.Clock
	idGen   id.Generator
	kv      storageout.KV
	logger  *slog.Logger
	metrics metrics.Recorder

	// serializes read-modify-write sequences
	mu sync.Mutex
}

func NewStorageService(clock clock.Clock, idGen id.Generator, kv storageout.KV, logger *slog.Logger, rec metrics.Recorder) *StorageService {
	return &StorageService{
		clock:   clock,
		idGen:   idGen,
		kv:      kv,
		logger:  logging.OrDiscard(logger),
		metrics: metrics.OrNoop(rec),
	}
}

// Get decodes the stored value onto dst. dst should already hold defaults:
// fields missing from the stored JSON keep them. Malformed JSON is reported
// as absent.
func (s *StorageService) Get(ctx context.Context, key string, dst any) (bool, error) {
	raw, ok, err := s.kv.Get(ctx, domain.Prefix+key)
	if err != nil {
		return false, s.fail("get", key, err)
	}
	if !ok {
		return false, nil
	}
	if !json.Valid(raw) {
		s.logger.Warn("discarding malformed stored value", logging.Key(key))
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			s.logger.Warn("stored value has mistyped fields", logging.Key(key), logging.Err(err))
			return true, nil
		}
		s.logger.Warn("discarding undecodable stored value", logging.Key(key), logging.Err(err))
		return false, nil
	}
	return true, nil
}

func (s *StorageService) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return s.fail("encode", key, err)
	}
	if err := s.kv.Set(ctx, domain.Prefix+key, raw); err != nil {
		return s.fail("set", key, err)
	}
	return nil
}

func (s *StorageService) Remove(ctx context.Context, key string) error {
	if err := s.kv.Delete(ctx, domain.Prefix+key); err != nil {
		return s.fail("delete", key, err)
	}
	return nil
}

func (s *StorageService) AddRecentItem(ctx context.Context, kind string, data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return s.fail("encode", kind, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var items []domain.RecentItem
	if _, err := s.Get(ctx, kind, &items); err != nil {
		return err
	}
	items = domain.PushRecent(items, domain.RecentItem{
		ID:        s.idGen.New(),
		Timestamp: s.clock.Now().UnixMilli(),
		Data:      raw,
	})
	return s.Set(ctx, kind, items)
}

func (s *StorageService) RecentItems(ctx context.Context, kind string) ([]domain.RecentItem, error) {
	var items []domain.RecentItem
	if _, err := s.Get(ctx, kind, &items); err != nil {
		return nil, err
	}
	return domain.CapRecent(items), nil
}

// Clear removes every namespaced key and leaves foreign keys alone.
func (s *StorageService) Clear(ctx context.Context) error {
	keys, err := s.prefixedKeys(ctx)
	if err != nil {
		return err
	}
	for _, k := range keys {
		if err := s.kv.Delete(ctx, k); err != nil {
			return s.fail("clear", strings.TrimPrefix(k, domain.Prefix), err)
		}
	}
	return nil
}

// Export renders all namespaced values as one indented JSON object keyed by
// the bare key names.
func (s *StorageService) Export(ctx context.Context) (string, error) {
	keys, err := s.prefixedKeys(ctx)
	if err != nil {
		return "", err
	}
	out := make(map[string]json.RawMessage, len(keys))
	for _, k := range keys {
		raw, ok, err := s.kv.Get(ctx, k)
		if err != nil {
			return "", s.fail("export", k, err)
		}
		clean := strings.TrimPrefix(k, domain.Prefix)
		if !ok || !json.Valid(raw) {
			out[clean] = json.RawMessage("null")
			continue
		}
		out[clean] = raw
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode export: %w", err)
	}
	return string(data), nil
}

// Import writes every top-level member of a JSON object under its key.
// Recent lists are trimmed to MaxRecent on the way in.
func (s *StorageService) Import(ctx context.Context, data string) error {
	var in map[string]json.RawMessage
	if err := json.Unmarshal([]byte(data), &in); err != nil {
		s.logger.Error("import rejected", logging.Err(err))
		return fmt.Errorf("import: %v: %w", err, apperrors.ErrInvalidInput)
	}
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		raw := in[k]
		if domain.IsRecentKey(k) {
			raw = s.capRecent(k, raw)
		}
		if err := s.kv.Set(ctx, domain.Prefix+k, raw); err != nil {
			return s.fail("import", k, err)
		}
	}
	return nil
}

// capRecent returns raw unchanged when it is not a recent list or already
// fits.
func (s *StorageService) capRecent(key string, raw json.RawMessage) json.RawMessage {
	var items []domain.RecentItem
	if err := json.Unmarshal(raw, &items); err != nil || len(items) <= domain.MaxRecent {
		return raw
	}
	capped, err := json.Marshal(domain.CapRecent(items))
	if err != nil {
		return raw
	}
	s.logger.Warn("trimming imported recent items", logging.Key(key), slog.Int("count", len(items)))
	return capped
}

// UsedSpace sums key and value lengths of namespaced entries.
func (s *StorageService) UsedSpace(ctx context.Context) (int, int, error) {
	keys, err := s.prefixedKeys(ctx)
	if err != nil {
		return 0, 0, err
	}
	total := 0
	for _, k := range keys {
		raw, _, err := s.kv.Get(ctx, k)
		if err != nil {
			return 0, 0, s.fail("usage", k, err)
		}
		total += len(k) + len(raw)
	}
	return total, len(keys), nil
}

// HasSpaceAvailable probes the backend with a throwaway write.
func (s *StorageService) HasSpaceAvailable(ctx context.Context) bool {
	probe := domain.Prefix + "test"
	if err := s.kv.Set(ctx, probe, []byte("test")); err != nil {
		return false
	}
	return s.kv.Delete(ctx, probe) == nil
}

func (s *StorageService) VisualSettings(ctx context.Context) domain.VisualSettings {
	v := domain.DefaultVisualSettings()
	if _, err := s.Get(ctx, "visualSettings", &v); err != nil {
		return domain.DefaultVisualSettings()
	}
	return v.Normalize()
}

func (s *StorageService) SaveVisualSettings(ctx context.Context, v domain.VisualSettings) error {
	return s.Set(ctx, "visualSettings", v)
}

// Theme returns the saved theme; ok is false when none was chosen yet.
func (s *StorageService) Theme(ctx context.Context) (domain.Theme, bool) {
	var raw string
	found, err := s.Get(ctx, "theme", &raw)
	if err != nil || !found {
		return "", false
	}
	t, err := domain.ParseTheme(raw)
	if err != nil {
		return "", false
	}
	return t, true
}

func (s *StorageService) SetTheme(ctx context.Context, t domain.Theme) error {
	return s.Set(ctx, "theme", string(t))
}

func (s *StorageService) prefixedKeys(ctx context.Context) ([]string, error) {
	all, err := s.kv.Keys(ctx)
	if err != nil {
		return nil, s.fail("keys", "", err)
	}
	keys := make([]string, 0, len(all))
	for _, k := range all {
		if strings.HasPrefix(k, domain.Prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *StorageService) fail(op, key string, err error) error {
	s.metrics.IncStoreError(op)
	s.logger.Error("storage operation failed", logging.Op(op), logging.Key(key), logging.Err(err))
	return fmt.Errorf("storage %s %s: %w", op, key, err)
}
