package category

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"uploadapi/internal/metrics"
)

var tracer = otel.Tracer("uploadapi/internal/category")

// FileStore is a category set persisted as a JSON array of strings.
// Every successful Create rewrites the whole file. Creations are serialized,
// so two concurrent requests for the same name cannot both succeed.
type FileStore struct {
	path    string
	log     zerolog.Logger
	metrics *metrics.Metrics

	mu    sync.RWMutex
	names []string
}

var _ Set = (*FileStore)(nil)

// NewFileStore loads the category file at path, creating it (and its parent
// directories) with an empty list when it does not exist. A file that cannot be
// parsed is treated as an empty list; the failure is logged and counted.
func NewFileStore(path string, log zerolog.Logger, m *metrics.Metrics) (*FileStore, error) {
	s := &FileStore{
		path:    path,
		log:     log.With().Str("component", "category_store").Logger(),
		metrics: m,
		names:   []string{},
	}

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create category dir: %w", err)
		}
		if err := s.persist(s.names); err != nil {
			return nil, err
		}
		s.log.Info().Str("path", path).Msg("category file created")
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("read category file: %w", err)
	}

	var names []string
	if err := json.Unmarshal(raw, &names); err != nil || names == nil {
		s.log.Error().Err(err).Str("path", path).Msg("category file unreadable, starting with no categories")
		s.metrics.CategoryLoadFailed()
		return s, nil
	}

	s.names = names
	s.log.Info().Str("path", path).Int("count", len(names)).Msg("categories loaded")
	return s, nil
}

func (s *FileStore) List(_ context.Context) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string{}, s.names...)
}

func (s *FileStore) Contains(_ context.Context, name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Contains(s.names, name)
}

func (s *FileStore) Create(ctx context.Context, name string) (string, error) {
	_, span := tracer.Start(ctx, "category.Create")
	defer span.End()

	normalized := Normalize(name)
	span.SetAttributes(attribute.String("category", normalized))
	if err := validate(normalized); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if slices.Contains(s.names, normalized) {
		return "", ErrConflict
	}

	next := append(slices.Clip(s.names), normalized)
	if err := s.persist(next); err != nil {
		span.RecordError(err)
		return "", err
	}
	s.names = next
	s.metrics.CategoryCreated()
	s.log.Info().Str("category", normalized).Msg("category created")
	return normalized, nil
}

// persist writes names to a temporary file next to the target and renames it into place.
func (s *FileStore) persist(names []string) error {
	data, err := json.MarshalIndent(names, "", "  ")
	if err != nil {
		return fmt.Errorf("encode categories: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".categories-*.json")
	if err != nil {
		return fmt.Errorf("write categories: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write categories: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write categories: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("write categories: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("write categories: %w", err)
	}
	return nil
}
