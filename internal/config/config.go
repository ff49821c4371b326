package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// Config represents the sitegen configuration
type Config struct {
	ContentDir      string `yaml:"content_dir"`
	ImagesDir       string `yaml:"images_dir"`
	PublicImagesDir string `yaml:"public_images_dir"`
	OutputDir       string `yaml:"output_dir"`
	Package         string `yaml:"package"`
	ImagePrefix     string `yaml:"image_prefix"`
	PublicImagePath string `yaml:"public_image_path"`
	LogFile         string `yaml:"log_file,omitempty"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		ContentDir:      "content/articles",
		ImagesDir:       "content/images",
		PublicImagesDir: "public/images",
		OutputDir:       "generated/content",
		Package:         "content",
		ImagePrefix:     "../images/",
		PublicImagePath: "/images/",
	}
}

// localConfigName is the per-project config file looked up in the
// working directory before falling back to the XDG config directory.
const localConfigName = "sitegen.yaml"

// ConfigPath returns the path to the config file.
// A sitegen.yaml in the working directory wins over the XDG location.
// Can be overridden for testing
var ConfigPath = func() string {
	if _, err := os.Stat(localConfigName); err == nil {
		return localConfigName
	}
	return filepath.Join(xdg.ConfigHome, "sitegen", "config.yaml")
}

// ManifestPath returns the path to the build manifest file.
// Can be overridden for testing
var ManifestPath = func() string {
	return filepath.Join(".sitegen", "manifest.json")
}

// Load reads configuration from disk, returning defaults when no
// config file exists.
func Load() (*Config, error) {
	configPath := ConfigPath()
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.ExpandPaths(); err != nil {
		return nil, fmt.Errorf("failed to expand paths: %w", err)
	}

	return cfg, nil
}

// Save writes configuration to disk
func (c *Config) Save() error {
	configPath := ConfigPath()
	configDir := filepath.Dir(configPath)

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.ContentDir == "" {
		return fmt.Errorf("content_dir cannot be empty")
	}
	if c.ImagesDir == "" {
		return fmt.Errorf("images_dir cannot be empty")
	}
	if c.PublicImagesDir == "" {
		return fmt.Errorf("public_images_dir cannot be empty")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir cannot be empty")
	}
	if c.Package == "" {
		return fmt.Errorf("package cannot be empty")
	}
	if c.ImagePrefix == "" {
		return fmt.Errorf("image_prefix cannot be empty")
	}
	if c.PublicImagePath == "" {
		return fmt.Errorf("public_image_path cannot be empty")
	}
	return nil
}

// ExpandPaths expands any ~ or relative paths to absolute paths
func (c *Config) ExpandPaths() error {
	var err error

	c.ContentDir, err = expandPath(c.ContentDir)
	if err != nil {
		return fmt.Errorf("failed to expand content_dir: %w", err)
	}

	c.ImagesDir, err = expandPath(c.ImagesDir)
	if err != nil {
		return fmt.Errorf("failed to expand images_dir: %w", err)
	}

	c.PublicImagesDir, err = expandPath(c.PublicImagesDir)
	if err != nil {
		return fmt.Errorf("failed to expand public_images_dir: %w", err)
	}

	c.OutputDir, err = expandPath(c.OutputDir)
	if err != nil {
		return fmt.Errorf("failed to expand output_dir: %w", err)
	}

	if c.LogFile != "" {
		c.LogFile, err = expandPath(c.LogFile)
		if err != nil {
			return fmt.Errorf("failed to expand log_file: %w", err)
		}
	}

	return nil
}

// expandPath expands ~ to home directory and converts to absolute path
func expandPath(path string) (string, error) {
	if path == "" {
		return path, nil
	}

	// Expand ~ to home directory
	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if len(path) == 1 {
			return homeDir, nil
		}
		path = filepath.Join(homeDir, path[1:])
	}

	// Convert to absolute path
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	return absPath, nil
}
