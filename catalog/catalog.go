// Package catalog reads asset catalogs: directories of named color sets and
// image sets, each entry being a directory with a kind-specific extension.
package catalog

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/teranos/assetgen/errors"
)

// Kind is the type of asset an entry holds.
type Kind string

const (
	KindColor Kind = "color"
	KindImage Kind = "image"
)

// Extension markers for catalog entry directories.
const (
	ColorSetExt = ".colorset"
	ImageSetExt = ".imageset"
)

// ErrUnknownKind is returned for a kind that has no extension marker.
var ErrUnknownKind = errors.New("unknown asset kind")

// ParseKind converts a config string to a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindColor:
		return KindColor, nil
	case KindImage:
		return KindImage, nil
	default:
		return "", errors.Wrapf(ErrUnknownKind, "%q (supported: color, image)", s)
	}
}

// Extension returns the directory extension marking entries of this kind.
func (k Kind) Extension() string {
	switch k {
	case KindColor:
		return ColorSetExt
	case KindImage:
		return ImageSetExt
	default:
		return ""
	}
}

// Entry is one named asset in a catalog.
type Entry struct {
	// Name is the directory name with its extension marker removed
	Name string
	Kind Kind
	// Path is the entry directory
	Path string
	// ModTime is the directory's modification time as reported by Scan
	ModTime time.Time
}

// Scan lists the entries of the given kind directly under dir, in directory
// listing order. Non-directories and directories with another extension are
// ignored.
func Scan(fs afero.Fs, dir string, kind Kind) ([]Entry, error) {
	ext := kind.Extension()
	if ext == "" {
		return nil, errors.Wrapf(ErrUnknownKind, "%q", kind)
	}

	infos, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read catalog %s", dir)
	}

	entries := make([]Entry, 0, len(infos))
	for _, info := range infos {
		if !info.IsDir() || filepath.Ext(info.Name()) != ext {
			continue
		}
		entries = append(entries, Entry{
			Name:    strings.TrimSuffix(info.Name(), ext),
			Kind:    kind,
			Path:    filepath.Join(dir, info.Name()),
			ModTime: info.ModTime(),
		})
	}

	return entries, nil
}

// Paths returns the entry directories, in order.
func Paths(entries []Entry) []string {
	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.Path
	}
	return paths
}

// Exists reports whether dir is an existing directory.
func Exists(fs afero.Fs, dir string) bool {
	info, err := fs.Stat(dir)
	if err != nil {
		return false
	}
	return info.IsDir()
}
