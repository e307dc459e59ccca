package storage

import (
	"io/fs"
	"time"

	"golang.org/x/sys/unix"
)

// createdAt reports the file's birth time when the filesystem records one,
// and its modification time otherwise.
func createdAt(p string, fi fs.FileInfo) time.Time {
	var stx unix.Statx_t
	err := unix.Statx(unix.AT_FDCWD, p, unix.AT_SYMLINK_NOFOLLOW, unix.STATX_BTIME, &stx)
	if err != nil || stx.Mask&unix.STATX_BTIME == 0 {
		return fi.ModTime()
	}
	return time.Unix(stx.Btime.Sec, int64(stx.Btime.Nsec))
}
