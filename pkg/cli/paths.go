package cli

import (
	"os"
	"path/filepath"
)

// Paths locates the CLI's files under ~/.flexbuf.
type Paths struct {
	// HomeDir is the user's home directory.
	HomeDir string
}

// NewPaths returns Paths rooted at the current user's home directory.
func NewPaths() (*Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return &Paths{HomeDir: home}, nil
}

// BaseDir returns ~/.flexbuf.
func (p *Paths) BaseDir() string {
	return filepath.Join(p.HomeDir, DefaultBaseDir)
}

// ConfigFile returns ~/.flexbuf/config.yaml.
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.BaseDir(), DefaultConfigFile)
}

// SnapshotDir returns ~/.flexbuf/snapshots.
func (p *Paths) SnapshotDir() string {
	return filepath.Join(p.BaseDir(), "snapshots")
}

// ExportDir returns ~/.flexbuf/exports.
func (p *Paths) ExportDir() string {
	return filepath.Join(p.BaseDir(), "exports")
}

// ExportPath returns a path within the export directory.
func (p *Paths) ExportPath(name string) string {
	return filepath.Join(p.ExportDir(), name)
}

// EnsureDir creates dir and its parents if needed.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}
