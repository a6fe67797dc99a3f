package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	// appDir is the subdirectory used under the XDG config/state trees
	appDir = "fuse-archive-yazi"

	// NotifierYazi routes notifications through yazi's notify command
	NotifierYazi = "yazi"
	// NotifierDesktop routes notifications over D-Bus desktop notifications
	NotifierDesktop = "desktop"
)

// Config holds the daemon configuration
type Config struct {
	// SmartEnter opens non-archive files instead of entering them
	SmartEnter bool `toml:"smart_enter"`
	// MountDir is the base directory all mount points are created under
	MountDir string `toml:"mount_dir"`
	// SocketPath is the Unix socket the daemon listens on
	SocketPath string `toml:"socket"`
	// RegistryPath is where the mount registry is persisted
	RegistryPath string `toml:"registry"`
	// StartupCleanup runs one reconciliation pass at daemon startup,
	// seeding candidates from the persisted registry
	StartupCleanup bool `toml:"startup_cleanup"`
	// Notifier selects the notification channel: "yazi" or "desktop"
	Notifier string `toml:"notifier"`
}

// DefaultConfigPath returns the default location for the config file
func DefaultConfigPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appDir, "config.toml")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", appDir, "config.toml")
	}
	return filepath.Join("/tmp", appDir, "config.toml")
}

// DefaultSocketPath returns the default Unix socket path for the daemon
func DefaultSocketPath() string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, appDir+".sock")
	}
	return filepath.Join("/tmp", appDir+".sock")
}

// stateDir resolves the base state directory: XDG_STATE_HOME, then the
// conventional home-relative location, then /tmp.
func stateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return dir
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "state")
	}
	return "/tmp"
}

// Load loads configuration from a TOML file
// Returns an empty config if the file doesn't exist
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return cfg, nil
}

// Merge merges CLI flags into the config, with CLI flags taking precedence
// over config file values. Empty CLI values are ignored.
func (c *Config) Merge(mountDir, socketPath, notifier string) {
	if mountDir != "" {
		c.MountDir = mountDir
	}
	if socketPath != "" {
		c.SocketPath = socketPath
	}
	if notifier != "" {
		c.Notifier = notifier
	}
}

// ApplyDefaults applies default values for any unset fields. The mount
// directory default is resolved from the state tree and always carries
// the application subpath.
func (c *Config) ApplyDefaults() {
	if c.MountDir == "" {
		c.MountDir = filepath.Join(stateDir(), appDir, "mounts")
	}
	if c.SocketPath == "" {
		c.SocketPath = DefaultSocketPath()
	}
	if c.RegistryPath == "" {
		c.RegistryPath = filepath.Join(stateDir(), appDir, "registry.json")
	}
	if c.Notifier == "" {
		c.Notifier = NotifierYazi
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if !filepath.IsAbs(c.MountDir) {
		return fmt.Errorf("mount_dir must be an absolute path, got %q", c.MountDir)
	}

	if c.Notifier != NotifierYazi && c.Notifier != NotifierDesktop {
		return fmt.Errorf("notifier must be %q or %q, got %q", NotifierYazi, NotifierDesktop, c.Notifier)
	}

	return nil
}
