package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultBinaryBytes is the number of leading bytes sampled for the
// binary/text heuristic.
const DefaultBinaryBytes = 1024

// Config represents the fully resolved scan configuration. It is built
// once per invocation from defaults, an optional config file, and CLI
// flags, and is passed explicitly into every component; nothing reads
// ambient process-wide defaults.
type Config struct {
	// BeforeContext is the number of context lines shown before each match
	BeforeContext int `yaml:"before_context"`

	// AfterContext is the number of context lines shown after each match
	AfterContext int `yaml:"after_context"`

	// IgnoreCase makes pattern matching case-insensitive
	IgnoreCase bool `yaml:"ignore_case"`

	// ShowLineNumbers prefixes output lines with their line numbers
	ShowLineNumbers bool `yaml:"show_line_numbers"`

	// ShowFilename prints a filename header above each file's matches
	ShowFilename bool `yaml:"show_filename"`

	// NamesOnly suppresses match bodies and prints matching filenames only
	NamesOnly bool `yaml:"names_only"`

	// InvertFiles prints the names of searched files with no match instead
	InvertFiles bool `yaml:"-"`

	// SkipDirs is the set of directory base names never descended into
	SkipDirs []string `yaml:"skip_dirs"`

	// SkipExts is the set of file name suffixes never searched.
	// Entries are literal suffixes, so both ".pyc" and "#" are legal.
	SkipExts []string `yaml:"skip_exts"`

	// SkipHiddenDirs skips directories whose name starts with "."
	SkipHiddenDirs bool `yaml:"skip_hidden_dirs"`

	// SkipHiddenFiles skips files whose name starts with "."
	SkipHiddenFiles bool `yaml:"skip_hidden_files"`

	// SkipBackupFiles skips editor backup files (see BackupSuffixes)
	SkipBackupFiles bool `yaml:"skip_backup_files"`

	// SkipSymlinkDirs skips symlinked directories
	SkipSymlinkDirs bool `yaml:"skip_symlink_dirs"`

	// SkipSymlinkFiles skips symlinked files
	SkipSymlinkFiles bool `yaml:"skip_symlink_files"`

	// SkipBinaryFiles skips files the binary detector classifies binary
	SkipBinaryFiles bool `yaml:"skip_binary_files"`

	// BackupSuffixes are the name suffixes treated as backup files
	BackupSuffixes []string `yaml:"backup_suffixes"`

	// BackupPrefixes are the name prefixes treated as backup files.
	// A prefix entry matches Emacs-style autosave names such as "#foo#".
	BackupPrefixes []string `yaml:"backup_prefixes"`

	// BinaryBytes is the size of the sample fed to the binary detector
	BinaryBytes int `yaml:"binary_bytes"`

	// Unsorted yields directory entries in platform order instead of
	// name-sorted order. Sorted order is the default so output is
	// reproducible for identical directory contents.
	Unsorted bool `yaml:"unsorted"`

	// NullSeparated terminates emitted filenames with NUL instead of newline
	NullSeparated bool `yaml:"-"`

	// Color controls colorized output: auto, always, or never
	Color string `yaml:"color"`

	// LogLevel sets diagnostic verbosity (debug, info, warn, error)
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns a Config with grin's stock skip policy.
func DefaultConfig() *Config {
	return &Config{
		BeforeContext:    0,
		AfterContext:     0,
		ShowLineNumbers:  true,
		ShowFilename:     true,
		SkipDirs:         []string{".git", "CVS", "RCS", ".svn", ".hg", ".bzr", "build", "dist"},
		SkipExts:         []string{".pyc", ".pyo", ".so", ".o", ".a", ".tgz"},
		SkipHiddenDirs:   true,
		SkipHiddenFiles:  true,
		SkipBackupFiles:  true,
		SkipSymlinkDirs:  true,
		SkipSymlinkFiles: true,
		SkipBinaryFiles:  true,
		BackupSuffixes:   []string{"~"},
		BackupPrefixes:   []string{"#"},
		BinaryBytes:      DefaultBinaryBytes,
		Color:            "auto",
		LogLevel:         "warn",
	}
}

// LoadConfig loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration without error.
// If the file exists but is malformed, returns an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Unmarshal into a raw map first so absent keys keep their
	// defaults while present keys override, even with zero values.
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if _, ok := raw["before_context"]; ok {
		cfg.BeforeContext = fileCfg.BeforeContext
	}
	if _, ok := raw["after_context"]; ok {
		cfg.AfterContext = fileCfg.AfterContext
	}
	if _, ok := raw["ignore_case"]; ok {
		cfg.IgnoreCase = fileCfg.IgnoreCase
	}
	if _, ok := raw["show_line_numbers"]; ok {
		cfg.ShowLineNumbers = fileCfg.ShowLineNumbers
	}
	if _, ok := raw["show_filename"]; ok {
		cfg.ShowFilename = fileCfg.ShowFilename
	}
	if _, ok := raw["names_only"]; ok {
		cfg.NamesOnly = fileCfg.NamesOnly
	}
	if _, ok := raw["skip_dirs"]; ok {
		cfg.SkipDirs = fileCfg.SkipDirs
	}
	if _, ok := raw["skip_exts"]; ok {
		cfg.SkipExts = fileCfg.SkipExts
	}
	if _, ok := raw["skip_hidden_dirs"]; ok {
		cfg.SkipHiddenDirs = fileCfg.SkipHiddenDirs
	}
	if _, ok := raw["skip_hidden_files"]; ok {
		cfg.SkipHiddenFiles = fileCfg.SkipHiddenFiles
	}
	if _, ok := raw["skip_backup_files"]; ok {
		cfg.SkipBackupFiles = fileCfg.SkipBackupFiles
	}
	if _, ok := raw["skip_symlink_dirs"]; ok {
		cfg.SkipSymlinkDirs = fileCfg.SkipSymlinkDirs
	}
	if _, ok := raw["skip_symlink_files"]; ok {
		cfg.SkipSymlinkFiles = fileCfg.SkipSymlinkFiles
	}
	if _, ok := raw["skip_binary_files"]; ok {
		cfg.SkipBinaryFiles = fileCfg.SkipBinaryFiles
	}
	if _, ok := raw["backup_suffixes"]; ok {
		cfg.BackupSuffixes = fileCfg.BackupSuffixes
	}
	if _, ok := raw["backup_prefixes"]; ok {
		cfg.BackupPrefixes = fileCfg.BackupPrefixes
	}
	if _, ok := raw["binary_bytes"]; ok {
		cfg.BinaryBytes = fileCfg.BinaryBytes
	}
	if _, ok := raw["unsorted"]; ok {
		cfg.Unsorted = fileCfg.Unsorted
	}
	if _, ok := raw["color"]; ok {
		cfg.Color = fileCfg.Color
	}
	if _, ok := raw["log_level"]; ok {
		cfg.LogLevel = fileCfg.LogLevel
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .grin.yaml in the
// specified directory, falling back to defaults when absent.
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, ".grin.yaml"))
}

// SplitList parses a comma-separated flag value into its non-empty
// elements. An empty value yields an empty (not nil) slice so "skip
// nothing" is representable.
func SplitList(value string) []string {
	out := []string{}
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate validates the configuration values.
// Returns an error if any values are invalid.
func (c *Config) Validate() error {
	if c.BeforeContext < 0 {
		return fmt.Errorf("before_context must be >= 0, got %d", c.BeforeContext)
	}
	if c.AfterContext < 0 {
		return fmt.Errorf("after_context must be >= 0, got %d", c.AfterContext)
	}
	if c.BinaryBytes <= 0 {
		return fmt.Errorf("binary_bytes must be > 0, got %d", c.BinaryBytes)
	}
	if c.NamesOnly && c.InvertFiles {
		return fmt.Errorf("files-with-matches and files-without-matches are mutually exclusive")
	}

	switch c.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("invalid color mode %q, must be one of: auto, always, never", c.Color)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: debug, info, warn, error", c.LogLevel)
	}

	return nil
}
