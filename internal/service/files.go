package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"mime/multipart"
	"path"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"uploadapi/internal/category"
	"uploadapi/internal/metrics"
	"uploadapi/internal/model"
	"uploadapi/internal/storage"
)

var (
	ErrInvalidCategory = errors.New("invalid category")
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrNotFound        = errors.New("file not found")
	ErrInvalidFilename = errors.New("invalid file name")
)

var tracer = otel.Tracer("uploadapi/internal/service")

// DocumentTypes is the content type allow-list for document uploads.
var DocumentTypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"text/plain",
	"application/vnd.ms-excel",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"application/vnd.ms-powerpoint",
	"application/vnd.openxmlformats-officedocument.presentationml.presentation",
}

// Family describes one resource family: which categories it has, where its files
// are stored and which uploads it accepts.
type Family struct {
	Name string
	// Prefix is prepended to every storage key; empty stores categories at the root.
	Prefix string
	// Field is the multipart field carrying the files. It also starts every stored name.
	Field      string
	Categories category.Set
	// AllowedTypes restricts uploads by content type. Empty accepts anything.
	AllowedTypes []string
	// WithMetadata adds size and upload time to listings.
	WithMetadata bool
}

// Documents is the document family: persisted categories, a content type allow-list,
// files below dir.
func Documents(set category.Set, dir string) Family {
	return Family{
		Name:         "documents",
		Prefix:       dir,
		Field:        "documents",
		Categories:   set,
		AllowedTypes: DocumentTypes,
		WithMetadata: true,
	}
}

// Images is the image family: fixed categories stored at the root, any content type.
func Images(set category.Set) Family {
	return Family{
		Name:       "images",
		Field:      "photos",
		Categories: set,
	}
}

// FileService defines the use cases of one resource family.
type FileService interface {
	// Field is the multipart field name uploads are read from.
	Field() string

	// Categories lists the family's categories.
	Categories(ctx context.Context) []string

	// CreateCategory adds a category and returns its normalized name.
	CreateCategory(ctx context.Context, name string) (string, error)

	// Upload validates the whole batch, then writes every file. Nothing is written
	// when validation fails, and files already written are removed when a later write fails.
	Upload(ctx context.Context, category string, files []*multipart.FileHeader) ([]model.StoredFile, error)

	// List reads the files of a category back from storage.
	List(ctx context.Context, category string) ([]model.StoredFile, error)

	// Delete removes one file from a category.
	Delete(ctx context.Context, category, filename string) error
}

type fileService struct {
	family  Family
	store   storage.Storage
	namer   *Namer
	log     zerolog.Logger
	metrics *metrics.Metrics
}

// NewFileService constructs the FileService of one family.
func NewFileService(f Family, store storage.Storage, namer *Namer, log zerolog.Logger, m *metrics.Metrics) FileService {
	return &fileService{
		family:  f,
		store:   store,
		namer:   namer,
		log:     log.With().Str("component", "files").Str("family", f.Name).Logger(),
		metrics: m,
	}
}

func (s *fileService) Field() string {
	return s.family.Field
}

func (s *fileService) Categories(ctx context.Context) []string {
	return s.family.Categories.List(ctx)
}

func (s *fileService) CreateCategory(ctx context.Context, name string) (string, error) {
	return s.family.Categories.Create(ctx, name)
}

func (s *fileService) Upload(ctx context.Context, cat string, files []*multipart.FileHeader) ([]model.StoredFile, error) {
	ctx, span := s.start(ctx, "files.Upload", cat, attribute.Int("files", len(files)))
	defer span.End()

	if !s.family.Categories.Contains(ctx, cat) {
		s.metrics.UploadRejected(s.family.Name, "invalid_category")
		return nil, ErrInvalidCategory
	}

	types := make([]string, len(files))
	for i, fh := range files {
		ct := mediaType(fh.Header.Get("Content-Type"))
		if !s.accepts(ct) {
			s.metrics.UploadRejected(s.family.Name, "unsupported_type")
			s.log.Info().Str("category", cat).Str("filename", fh.Filename).Str("content_type", ct).Msg("upload rejected")
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, ct)
		}
		types[i] = ct
	}

	stored := make([]model.StoredFile, 0, len(files))
	written := make([]string, 0, len(files))
	for i, fh := range files {
		name := s.namer.Name(s.family.Field, fh.Filename)
		key := s.key(cat, name)

		info, err := s.put(ctx, key, fh, types[i])
		if err != nil {
			span.RecordError(err)
			s.log.Error().Err(err).Str("category", cat).Str("filename", fh.Filename).Msg("upload write failed")
			s.rollback(ctx, written)
			return nil, fmt.Errorf("store %s: %w", fh.Filename, err)
		}
		written = append(written, key)
		stored = append(stored, model.StoredFile{Name: name, UploadedAt: info.LastModified, Size: info.Size})
		s.metrics.FileStored(s.family.Name)
	}

	s.log.Info().Str("category", cat).Int("files", len(stored)).Msg("upload stored")
	return stored, nil
}

func (s *fileService) put(ctx context.Context, key string, fh *multipart.FileHeader, contentType string) (storage.ObjectInfo, error) {
	f, err := fh.Open()
	if err != nil {
		return storage.ObjectInfo{}, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	return s.store.Put(ctx, key, f, storage.PutObjectOptions{
		Size:        fh.Size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": fh.Filename,
		},
	})
}

// rollback removes the files of a failed batch. It outlives request cancellation.
func (s *fileService) rollback(ctx context.Context, keys []string) {
	ctx = context.WithoutCancel(ctx)
	for _, key := range keys {
		if err := s.store.Delete(ctx, key); err != nil && !errors.Is(err, storage.ErrObjectNotFound) {
			s.log.Error().Err(err).Str("key", key).Msg("rollback delete failed")
		}
	}
}

func (s *fileService) List(ctx context.Context, cat string) ([]model.StoredFile, error) {
	ctx, span := s.start(ctx, "files.List", cat)
	defer span.End()

	if !s.family.Categories.Contains(ctx, cat) {
		return nil, ErrInvalidCategory
	}

	objs, err := s.store.List(ctx, s.key(cat))
	if err != nil {
		// No directory yet means nothing was uploaded. Anything else is
		// reported as empty too, but made visible to operators.
		if !errors.Is(err, fs.ErrNotExist) {
			span.RecordError(err)
			s.metrics.ListingFailed(s.family.Name)
			s.log.Warn().Err(err).Str("category", cat).Msg("listing failed, reporting no files")
		}
		return []model.StoredFile{}, nil
	}

	out := make([]model.StoredFile, 0, len(objs))
	for _, o := range objs {
		f := model.StoredFile{Name: path.Base(o.Key)}
		if s.family.WithMetadata {
			f.Size = o.Size
			f.UploadedAt = o.LastModified
		}
		out = append(out, f)
	}
	return out, nil
}

func (s *fileService) Delete(ctx context.Context, cat, filename string) error {
	ctx, span := s.start(ctx, "files.Delete", cat)
	defer span.End()

	if !s.family.Categories.Contains(ctx, cat) {
		return ErrInvalidCategory
	}
	if filename == "" || filename == "." || filename == ".." || strings.ContainsAny(filename, `/\`) {
		return ErrInvalidFilename
	}

	if err := s.store.Delete(ctx, s.key(cat, filename)); err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return ErrNotFound
		}
		span.RecordError(err)
		s.log.Error().Err(err).Str("category", cat).Str("filename", filename).Msg("delete failed")
		return fmt.Errorf("delete %s: %w", filename, err)
	}

	s.metrics.FileDeleted(s.family.Name)
	s.log.Info().Str("category", cat).Str("filename", filename).Msg("file deleted")
	return nil
}

func (s *fileService) key(parts ...string) string {
	return path.Join(append([]string{s.family.Prefix}, parts...)...)
}

func (s *fileService) accepts(contentType string) bool {
	if len(s.family.AllowedTypes) == 0 {
		return true
	}
	return slices.Contains(s.family.AllowedTypes, contentType)
}

func (s *fileService) start(ctx context.Context, name, cat string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs,
		attribute.String("family", s.family.Name),
		attribute.String("category", cat),
	)
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// mediaType strips parameters such as charset from a Content-Type header.
func mediaType(contentType string) string {
	if contentType == "" {
		return "application/octet-stream"
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return mt
}
