// Package mergefs stacks several file systems on top of each other.
package mergefs

import (
	"errors"
	"io/fs"
	"slices"
	"strings"
)

// FS looks up each name in its layers in order. The first layer that has the
// name wins.
type FS struct {
	layers []fs.FS
}

var (
	_ fs.StatFS    = (*FS)(nil)
	_ fs.ReadDirFS = (*FS)(nil)
)

func New(layers ...fs.FS) *FS {
	return &FS{layers: slices.Clone(layers)}
}

func firstOf[T any](layers []fs.FS, op string, name string, f func(fs.FS) (T, error)) (T, error) {
	var zero T
	if !fs.ValidPath(name) {
		return zero, &fs.PathError{Op: op, Path: name, Err: fs.ErrInvalid}
	}
	for _, l := range layers {
		res, err := f(l)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return res, err
	}
	return zero, &fs.PathError{Op: op, Path: name, Err: fs.ErrNotExist}
}

func (m *FS) Open(name string) (fs.File, error) {
	return firstOf(m.layers, "open", name, func(l fs.FS) (fs.File, error) {
		return l.Open(name)
	})
}

func (m *FS) Stat(name string) (fs.FileInfo, error) {
	return firstOf(m.layers, "stat", name, func(l fs.FS) (fs.FileInfo, error) {
		return fs.Stat(l, name)
	})
}

// ReadDir merges the directory listings of all the layers. Entries from upper
// layers hide the entries with the same name below.
func (m *FS) ReadDir(name string) ([]fs.DirEntry, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrInvalid}
	}
	seen := make(map[string]struct{})
	var res []fs.DirEntry
	found := false
	for _, l := range m.layers {
		entries, err := fs.ReadDir(l, name)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, err
		}
		found = true
		for _, e := range entries {
			if _, ok := seen[e.Name()]; ok {
				continue
			}
			seen[e.Name()] = struct{}{}
			res = append(res, e)
		}
	}
	if !found {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrNotExist}
	}
	slices.SortFunc(res, func(a, b fs.DirEntry) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return res, nil
}
