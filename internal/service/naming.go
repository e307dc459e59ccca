package service

import (
	"path/filepath"
	"strconv"
	"sync"
	"time"
)

// Namer derives stored file names of the form <field>-<epoch-millis><ext>.
// The millisecond stamps it hands out are strictly increasing, so two files
// named in the same millisecond still get distinct names.
type Namer struct {
	now func() time.Time

	mu   sync.Mutex
	last int64
}

// NewNamer returns a Namer reading the wall clock.
func NewNamer() *Namer {
	return &Namer{now: time.Now}
}

// Name returns the storage name for a file sent under field with the given original name.
func (n *Namer) Name(field, original string) string {
	n.mu.Lock()
	ms := n.now().UnixMilli()
	if ms <= n.last {
		ms = n.last + 1
	}
	n.last = ms
	n.mu.Unlock()

	return field + "-" + strconv.FormatInt(ms, 10) + filepath.Ext(original)
}
