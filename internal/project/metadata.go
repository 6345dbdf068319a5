// Package project reads the metadata of the project under test.
package project

import (
	"encoding/json"
	"fmt"
	"os"
)

// DefaultManifest is the metadata file read when no path is configured.
const DefaultManifest = "package.json"

// Metadata is the subset of the project manifest karmaconf uses.
type Metadata struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// TestName is the human-readable run name, e.g. "omnipath v1.4.0".
func (m Metadata) TestName() string {
	return m.Name + " v" + m.Version
}

// Source supplies project metadata on demand.
type Source interface {
	Load() (Metadata, error)
}

// FileSource loads metadata from a package.json style manifest.
type FileSource struct {
	Path string
}

// NewFileSource returns a FileSource for path, or DefaultManifest when path is empty.
func NewFileSource(path string) *FileSource {
	if path == "" {
		path = DefaultManifest
	}
	return &FileSource{Path: path}
}

// Load reads and decodes the manifest.
func (f *FileSource) Load() (Metadata, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return Metadata{}, fmt.Errorf("failed to read project manifest %s: %w", f.Path, err)
	}
	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return Metadata{}, fmt.Errorf("failed to parse project manifest %s: %w", f.Path, err)
	}
	return meta, nil
}

// Static is a Source that always returns the same metadata.
type Static Metadata

// Load returns the wrapped metadata.
func (s Static) Load() (Metadata, error) {
	return Metadata(s), nil
}
