package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestLocal_CreationTimeSurvivesTouch(t *testing.T) {
	ctx := context.Background()
	s, root := newLocal(t)
	before := time.Now().Add(-time.Second)

	_, err := s.Put(ctx, "sdb/photos-1.jpg", strings.NewReader("jpeg"), PutObjectOptions{Size: 4})
	require.NoError(t, err)

	p := filepath.Join(root, "sdb", "photos-1.jpg")
	var stx unix.Statx_t
	if err := unix.Statx(unix.AT_FDCWD, p, 0, unix.STATX_BTIME, &stx); err != nil || stx.Mask&unix.STATX_BTIME == 0 {
		t.Skip("filesystem does not record birth time")
	}

	old := time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(p, old, old))

	info, err := s.Stat(ctx, "sdb/photos-1.jpg")
	require.NoError(t, err)
	assert.True(t, info.LastModified.After(before), "got %s", info.LastModified)

	objs, err := s.List(ctx, "sdb")
	require.NoError(t, err)
	require.Len(t, objs, 1)
	assert.Equal(t, info.LastModified, objs[0].LastModified)
}
