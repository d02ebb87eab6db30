package engine

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
)

const (
	// ConfigFile is written by the unpack tool and required by the repack tool
	ConfigFile = "bootimg.cfg"
	// ProjectFile records how a project was extracted
	ProjectFile = ".abik.toml"
)

// Project is the metadata kept next to an extracted image
type Project struct {
	Kind              ImageKind `toml:"kind"`
	Source            string    `toml:"source"`
	DecompressRamdisk bool      `toml:"decompress_ramdisk"`
	ExtractedAt       time.Time `toml:"extracted_at"`
}

// WriteProject stores p in dir
func WriteProject(fs afero.Fs, dir string, p Project) error {
	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}
	return afero.WriteFile(fs, filepath.Join(dir, ProjectFile), data, 0o644)
}

// ReadProject loads the metadata of the project in dir
func ReadProject(fs afero.Fs, dir string) (*Project, error) {
	data, err := afero.ReadFile(fs, filepath.Join(dir, ProjectFile))
	if err != nil {
		return nil, err
	}
	var p Project
	if err := toml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ProjectFile, err)
	}
	return &p, nil
}
