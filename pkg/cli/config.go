package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/haivivi/flexbuf/pkg/buffer"
	"github.com/haivivi/flexbuf/pkg/storage"
)

const (
	// DefaultBaseDir is the configuration directory under the home directory.
	DefaultBaseDir = ".flexbuf"
	// DefaultConfigFile is the configuration filename.
	DefaultConfigFile = "config.yaml"
)

// Config is the CLI configuration file. It holds named profiles, kubectl
// style, and remembers which one is current.
type Config struct {
	// CurrentProfile is the name of the active profile.
	CurrentProfile string `yaml:"current_profile,omitempty"`

	// Profiles maps profile names to their settings.
	Profiles map[string]*Profile `yaml:"profiles,omitempty"`

	configPath string
}

// Profile bundles buffer settings with snapshot and export settings.
type Profile struct {
	Name string `yaml:"name" json:"name"`

	// Buffer configures every FlexBuffer the CLI creates.
	Buffer buffer.Config `yaml:"buffer,omitempty" json:"buffer"`

	// SnapshotDir is the BadgerDB directory for snapshots.
	// Defaults to ~/.flexbuf/snapshots.
	SnapshotDir string `yaml:"snapshot_dir,omitempty" json:"snapshot_dir,omitempty"`

	// S3 configures s3:// export and import targets.
	S3 storage.S3Config `yaml:"s3,omitempty" json:"s3"`
}

// LoadConfig loads the configuration from path, or from
// ~/.flexbuf/config.yaml when path is empty. A missing file yields an empty
// configuration that is written on the first Save.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		p, err := NewPaths()
		if err != nil {
			return nil, err
		}
		path = p.ConfigFile()
	}

	cfg := &Config{
		Profiles:   make(map[string]*Profile),
		configPath: path,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if cfg.Profiles == nil {
		cfg.Profiles = make(map[string]*Profile)
	}
	for name, p := range cfg.Profiles {
		if p == nil {
			cfg.Profiles[name] = &Profile{}
			p = cfg.Profiles[name]
		}
		p.Name = name
	}
	cfg.configPath = path
	return cfg, nil
}

// Save writes the configuration, creating its directory if needed.
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(c.configPath), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(c.configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Path returns the config file path.
func (c *Config) Path() string {
	return c.configPath
}

// AddProfile stores p under name, replacing any existing profile, and
// saves. The first profile added becomes current.
func (c *Config) AddProfile(name string, p *Profile) error {
	if name == "" {
		return fmt.Errorf("profile name is required")
	}
	if err := p.Buffer.Validate(); err != nil {
		return err
	}
	p.Name = name
	c.Profiles[name] = p
	if c.CurrentProfile == "" {
		c.CurrentProfile = name
	}
	return c.Save()
}

// DeleteProfile removes a profile and saves.
func (c *Config) DeleteProfile(name string) error {
	if _, ok := c.Profiles[name]; !ok {
		return fmt.Errorf("profile %q not found", name)
	}
	delete(c.Profiles, name)
	if c.CurrentProfile == name {
		c.CurrentProfile = ""
	}
	return c.Save()
}

// UseProfile makes name the current profile and saves.
func (c *Config) UseProfile(name string) error {
	if _, ok := c.Profiles[name]; !ok {
		return fmt.Errorf("profile %q not found", name)
	}
	c.CurrentProfile = name
	return c.Save()
}

// GetProfile returns the named profile.
func (c *Config) GetProfile(name string) (*Profile, error) {
	p, ok := c.Profiles[name]
	if !ok {
		return nil, fmt.Errorf("profile %q not found", name)
	}
	return p, nil
}

// ResolveProfile returns the named profile, or the current one when name
// is empty. With neither, it returns a default profile.
func (c *Config) ResolveProfile(name string) (*Profile, error) {
	if name != "" {
		return c.GetProfile(name)
	}
	if c.CurrentProfile != "" {
		return c.GetProfile(c.CurrentProfile)
	}
	return &Profile{Name: "default"}, nil
}

// ListProfiles returns all profile names in sorted order.
func (c *Config) ListProfiles() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SnapshotPath returns the snapshot directory of the profile, falling back
// to paths.SnapshotDir().
func (p *Profile) SnapshotPath(paths *Paths) string {
	if p.SnapshotDir != "" {
		return p.SnapshotDir
	}
	return paths.SnapshotDir()
}

// Masked returns a copy of p that is safe to print.
func (p *Profile) Masked() *Profile {
	cp := *p
	cp.S3.SecretAccessKey = MaskSecret(cp.S3.SecretAccessKey)
	return &cp
}

// MaskSecret masks a secret for display, keeping the first and last four
// characters of long values.
func MaskSecret(s string) string {
	if len(s) <= 8 {
		return strings.Repeat("*", len(s))
	}
	return s[:4] + strings.Repeat("*", len(s)-8) + s[len(s)-4:]
}
