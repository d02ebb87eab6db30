// Package discovery lists the immediate children of the working directory.
package discovery

import (
	"path/filepath"

	"github.com/spf13/afero"

	"abik/internal/domain"
	"abik/internal/logger"
)

// Lister reads and removes entries of a directory on an afero filesystem
type Lister struct {
	fs afero.Fs
}

// NewLister creates a lister over fs
func NewLister(fs afero.Fs) *Lister {
	return &Lister{fs: fs}
}

// NewOSLister creates a lister over the real filesystem
func NewOSLister() *Lister {
	return NewLister(afero.NewOsFs())
}

// Fs exposes the underlying filesystem
func (l *Lister) Fs() afero.Fs {
	return l.fs
}

// Children lists files and directories directly under root, in listing
// order. A missing or unreadable root lists as empty.
func (l *Lister) Children(root string) []domain.Entry {
	infos, err := afero.ReadDir(l.fs, root)
	if err != nil {
		logger.L().Warn("discovery.list_failed", "root", root, "err", err)
		return nil
	}

	entries := make([]domain.Entry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, domain.Entry{
			Name:  info.Name(),
			Path:  filepath.Join(root, info.Name()),
			IsDir: info.IsDir(),
		})
	}
	return entries
}

// Dirs lists only the sub-directories directly under root
func (l *Lister) Dirs(root string) []domain.Entry {
	var dirs []domain.Entry
	for _, e := range l.Children(root) {
		if e.IsDir {
			dirs = append(dirs, e)
		}
	}
	return dirs
}

// RemoveAll deletes path and everything below it
func (l *Lister) RemoveAll(path string) error {
	return l.fs.RemoveAll(path)
}
