package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"uploadapi/internal/category"
	"uploadapi/internal/metrics"
	"uploadapi/internal/model"
	"uploadapi/internal/storage"
	storeMocks "uploadapi/internal/storage/mocks"
)

type testFile struct {
	name        string
	contentType string
	content     string
}

// formFiles encodes files as a multipart body and parses it back, the way the
// HTTP layer hands them to the service.
func formFiles(t *testing.T, field string, files ...testFile) []*multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, field, f.name))
		if f.contentType != "" {
			h.Set("Content-Type", f.contentType)
		}
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write([]byte(f.content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File[field]
}

type fixture struct {
	root   string
	docs   FileService
	images FileService
	set    *category.FileStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := filepath.Join(t.TempDir(), "uploads")

	store, err := storage.NewLocal(root)
	require.NoError(t, err)
	set, err := category.NewFileStore(filepath.Join(root, "documents", "categories.json"), zerolog.Nop(), nil)
	require.NoError(t, err)

	namer := NewNamer()
	return &fixture{
		root:   root,
		docs:   NewFileService(Documents(set, "documents"), store, namer, zerolog.Nop(), nil),
		images: NewFileService(Images(category.NewStaticSet(category.ImageCategories...)), store, namer, zerolog.Nop(), nil),
		set:    set,
	}
}

func TestFileService_Field(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, "documents", f.docs.Field())
	assert.Equal(t, "photos", f.images.Field())
}

func TestFileService_Categories(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	assert.Empty(t, f.docs.Categories(ctx))
	assert.Equal(t, category.ImageCategories, f.images.Categories(ctx))

	got, err := f.docs.CreateCategory(ctx, "Garage ")
	require.NoError(t, err)
	assert.Equal(t, "garage", got)
	assert.Equal(t, []string{"garage"}, f.docs.Categories(ctx))

	_, err = f.docs.CreateCategory(ctx, "garage")
	assert.ErrorIs(t, err, category.ErrConflict)

	_, err = f.images.CreateCategory(ctx, "attic")
	assert.ErrorIs(t, err, category.ErrReadOnly)
}

func TestFileService_UploadDocuments(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.docs.CreateCategory(ctx, "invoices")
	require.NoError(t, err)

	files := formFiles(t, "documents",
		testFile{"march.pdf", "application/pdf", "%PDF-1.4 march"},
		testFile{"notes.txt", "text/plain; charset=utf-8", "hello"},
	)

	stored, err := f.docs.Upload(ctx, "invoices", files)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Regexp(t, `^documents-\d+\.pdf$`, stored[0].Name)
	assert.Regexp(t, `^documents-\d+\.txt$`, stored[1].Name)
	assert.NotEqual(t, stored[0].Name, stored[1].Name)

	raw, err := os.ReadFile(filepath.Join(f.root, "documents", "invoices", stored[0].Name))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 march", string(raw))

	listed, err := f.docs.List(ctx, "invoices")
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, stored[0].Name, listed[0].Name)
	assert.Equal(t, int64(len("%PDF-1.4 march")), listed[0].Size)
	assert.WithinDuration(t, time.Now(), listed[0].UploadedAt, time.Minute)
}

func TestFileService_UploadRejections(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown document category", func(t *testing.T) {
		f := newFixture(t)
		files := formFiles(t, "documents", testFile{"a.pdf", "application/pdf", "x"})

		_, err := f.docs.Upload(ctx, "missing", files)
		assert.ErrorIs(t, err, ErrInvalidCategory)
		_, statErr := os.Stat(filepath.Join(f.root, "documents", "missing"))
		assert.True(t, errors.Is(statErr, os.ErrNotExist))
	})

	t.Run("unknown image category", func(t *testing.T) {
		f := newFixture(t)
		files := formFiles(t, "photos", testFile{"a.jpg", "image/jpeg", "x"})

		_, err := f.images.Upload(ctx, "unknown-category", files)
		assert.ErrorIs(t, err, ErrInvalidCategory)
		_, statErr := os.Stat(filepath.Join(f.root, "unknown-category"))
		assert.True(t, errors.Is(statErr, os.ErrNotExist))
	})

	t.Run("one disallowed type rejects the batch", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.docs.CreateCategory(ctx, "invoices")
		require.NoError(t, err)

		files := formFiles(t, "documents",
			testFile{"ok.pdf", "application/pdf", "x"},
			testFile{"evil.exe", "application/x-msdownload", "MZ"},
		)
		_, err = f.docs.Upload(ctx, "invoices", files)
		assert.ErrorIs(t, err, ErrUnsupportedType)

		listed, err := f.docs.List(ctx, "invoices")
		require.NoError(t, err)
		assert.Empty(t, listed)
	})

	t.Run("missing content type is not a document", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.docs.CreateCategory(ctx, "invoices")
		require.NoError(t, err)

		files := formFiles(t, "documents", testFile{"blob", "", "x"})
		_, err = f.docs.Upload(ctx, "invoices", files)
		assert.ErrorIs(t, err, ErrUnsupportedType)
	})
}

func TestFileService_UploadImagesAnyType(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	files := formFiles(t, "photos",
		testFile{"kitchen.jpg", "image/jpeg", "jpeg"},
		testFile{"weird.bin", "application/octet-stream", "bin"},
	)
	stored, err := f.images.Upload(ctx, "cuisine", files)
	require.NoError(t, err)
	require.Len(t, stored, 2)

	listed, err := f.images.List(ctx, "cuisine")
	require.NoError(t, err)
	require.Len(t, listed, 2)
	for _, l := range listed {
		assert.Regexp(t, `^photos-\d+\.(jpg|bin)$`, l.Name)
		assert.Zero(t, l.Size)
		assert.True(t, l.UploadedAt.IsZero())
	}

	_, err = os.Stat(filepath.Join(f.root, "cuisine", stored[0].Name))
	assert.NoError(t, err)
}

func TestFileService_UploadRollback(t *testing.T) {
	ctx := context.Background()
	mStore := new(storeMocks.MockStorage)
	svc := NewFileService(Images(category.NewStaticSet("sdb")), mStore, &Namer{now: fixedClock(time.UnixMilli(5000))}, zerolog.Nop(), nil)

	files := formFiles(t, "photos",
		testFile{"a.jpg", "image/jpeg", "a"},
		testFile{"b.jpg", "image/jpeg", "b"},
	)

	mStore.On("Put", mock.Anything, "sdb/photos-5000.jpg", mock.Anything, mock.Anything).
		Return(storage.ObjectInfo{Key: "sdb/photos-5000.jpg", Size: 1}, nil).Once()
	mStore.On("Put", mock.Anything, "sdb/photos-5001.jpg", mock.Anything, mock.Anything).
		Return(storage.ObjectInfo{}, errors.New("disk full")).Once()
	mStore.On("Delete", mock.Anything, "sdb/photos-5000.jpg").Return(nil).Once()

	_, err := svc.Upload(ctx, "sdb", files)
	assert.ErrorContains(t, err, "disk full")
	assert.False(t, errors.Is(err, ErrInvalidCategory))
	mStore.AssertExpectations(t)
}

func TestFileService_UploadPassesContentType(t *testing.T) {
	ctx := context.Background()
	mStore := new(storeMocks.MockStorage)
	set := category.NewStaticSet("contracts")
	svc := NewFileService(Documents(set, "documents"), mStore, &Namer{now: fixedClock(time.UnixMilli(42))}, zerolog.Nop(), nil)

	files := formFiles(t, "documents", testFile{"c.docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", "doc"})

	mStore.On("Put", mock.Anything, "documents/contracts/documents-42.docx", mock.Anything, storage.PutObjectOptions{
		Size:        3,
		ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		Metadata:    map[string]string{"original-filename": "c.docx"},
	}).Return(func(_ context.Context, key string, r io.Reader, _ storage.PutObjectOptions) storage.ObjectInfo {
		data, _ := io.ReadAll(r)
		return storage.ObjectInfo{Key: key, Size: int64(len(data))}
	}, nil).Once()

	stored, err := svc.Upload(ctx, "contracts", files)
	require.NoError(t, err)
	assert.Equal(t, []model.StoredFile{{Name: "documents-42.docx", Size: 3}}, stored)
	mStore.AssertExpectations(t)
}

func TestFileService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("never uploaded", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.docs.CreateCategory(ctx, "empty")
		require.NoError(t, err)

		listed, err := f.docs.List(ctx, "empty")
		require.NoError(t, err)
		assert.NotNil(t, listed)
		assert.Empty(t, listed)

		photos, err := f.images.List(ctx, "couloir")
		require.NoError(t, err)
		assert.Empty(t, photos)
	})

	t.Run("unknown category", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.docs.List(ctx, "nope")
		assert.ErrorIs(t, err, ErrInvalidCategory)
		_, err = f.images.List(ctx, "nope")
		assert.ErrorIs(t, err, ErrInvalidCategory)
	})

	t.Run("storage failure reads as empty and is counted", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		m, err := metrics.New(reg)
		require.NoError(t, err)

		mStore := new(storeMocks.MockStorage)
		svc := NewFileService(Images(category.NewStaticSet("sdb")), mStore, NewNamer(), zerolog.Nop(), m)
		mStore.On("List", mock.Anything, "sdb").Return(nil, errors.New("permission denied")).Once()

		listed, err := svc.List(ctx, "sdb")
		require.NoError(t, err)
		assert.Empty(t, listed)

		mfs, err := reg.Gather()
		require.NoError(t, err)
		var failures float64
		for _, mf := range mfs {
			if mf.GetName() == "upload_listing_failures_total" {
				failures = mf.GetMetric()[0].GetCounter().GetValue()
			}
		}
		assert.Equal(t, float64(1), failures)
		mStore.AssertExpectations(t)
	})
}

func TestFileService_Delete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	stored, err := f.images.Upload(ctx, "reserve", formFiles(t, "photos", testFile{"box.png", "image/png", "png"}))
	require.NoError(t, err)
	name := stored[0].Name

	require.NoError(t, f.images.Delete(ctx, "reserve", name))
	assert.ErrorIs(t, f.images.Delete(ctx, "reserve", name), ErrNotFound)

	listed, err := f.images.List(ctx, "reserve")
	require.NoError(t, err)
	assert.Empty(t, listed)

	assert.ErrorIs(t, f.images.Delete(ctx, "attic", name), ErrInvalidCategory)
	for _, bad := range []string{"..", "../categories.json", `a\b`, ""} {
		assert.ErrorIs(t, f.images.Delete(ctx, "reserve", bad), ErrInvalidFilename, "filename %q", bad)
	}
}

func TestFileService_DeleteStorageError(t *testing.T) {
	mStore := new(storeMocks.MockStorage)
	svc := NewFileService(Images(category.NewStaticSet("sdb")), mStore, NewNamer(), zerolog.Nop(), nil)
	mStore.On("Delete", mock.Anything, "sdb/photos-1.jpg").Return(errors.New("read-only file system")).Once()

	err := svc.Delete(context.Background(), "sdb", "photos-1.jpg")
	assert.ErrorContains(t, err, "read-only file system")
	assert.False(t, errors.Is(err, ErrNotFound))
	mStore.AssertExpectations(t)
}
