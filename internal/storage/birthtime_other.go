//go:build !linux

package storage

import (
	"io/fs"
	"time"
)

func createdAt(_ string, fi fs.FileInfo) time.Time {
	return fi.ModTime()
}
