package category

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrInvalidName = errors.New("invalid category name")
	ErrConflict    = errors.New("category already exists")
	ErrReadOnly    = errors.New("category set is read-only")
)

// Set is a named group of categories. Each category maps to one storage directory.
type Set interface {
	// List returns a snapshot of the categories in creation order.
	List(ctx context.Context) []string

	// Contains reports whether name is a member of the set. name is matched verbatim.
	Contains(ctx context.Context, name string) bool

	// Create normalizes name, adds it to the set and returns the stored form.
	Create(ctx context.Context, name string) (string, error)
}

// Normalize trims name, lowercases it and replaces every run of whitespace with a single hyphen.
func Normalize(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

// validate rejects normalized names that cannot be used as a single directory segment.
func validate(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return ErrInvalidName
	}
	return nil
}

// ImageCategories is the compiled-in image category list.
var ImageCategories = []string{"commerce", "sous-sol", "cuisine", "couloir", "sdb", "reserve"}

// StaticSet is an immutable category set.
type StaticSet struct {
	names []string
	index map[string]struct{}
}

var _ Set = (*StaticSet)(nil)

// NewStaticSet returns a set holding exactly names.
func NewStaticSet(names ...string) *StaticSet {
	s := &StaticSet{
		names: append([]string(nil), names...),
		index: make(map[string]struct{}, len(names)),
	}
	for _, n := range names {
		s.index[n] = struct{}{}
	}
	return s
}

func (s *StaticSet) List(_ context.Context) []string {
	return append([]string{}, s.names...)
}

func (s *StaticSet) Contains(_ context.Context, name string) bool {
	_, ok := s.index[name]
	return ok
}

func (s *StaticSet) Create(_ context.Context, _ string) (string, error) {
	return "", ErrReadOnly
}
