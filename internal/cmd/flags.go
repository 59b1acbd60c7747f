// Package cmd constructs the grin and grind cobra commands and
// resolves their configuration from defaults, the optional .grin.yaml
// config file, environment-injected arguments, and CLI flags.
package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/rkern/grin/internal/config"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// addTraversalFlags registers the skip-policy flags shared by grin and
// grind. Defaults shown in help come from the stock configuration.
func addTraversalFlags(cmd *cobra.Command) {
	def := config.DefaultConfig()

	cmd.Flags().BoolP("no-skip-hidden-files", "s", false, "do not skip .hidden files")
	cmd.Flags().BoolP("no-skip-hidden-dirs", "S", false, "do not skip .hidden directories")
	cmd.Flags().BoolP("no-skip-backup-files", "b", false, "do not skip backup files (trailing ~, leading #)")
	cmd.Flags().StringP("skip-dirs", "d", strings.Join(def.SkipDirs, ","), "comma-separated list of directory names to skip")
	cmd.Flags().BoolP("no-skip-dirs", "D", false, "do not skip any directories")
	cmd.Flags().StringP("skip-exts", "e", strings.Join(def.SkipExts, ","), "comma-separated list of file name suffixes to skip")
	cmd.Flags().BoolP("no-skip-exts", "E", false, "do not skip any file extensions")
	cmd.Flags().Bool("follow", false, "follow symlinks to directories and files")
	cmd.Flags().Bool("no-skip-binary", false, "do not skip files that look binary")
	cmd.Flags().Bool("unsorted", false, "visit directory entries in platform order instead of sorted")
	cmd.Flags().String("config", "", "path to config file (default: ./.grin.yaml)")
	cmd.Flags().BoolP("verbose", "v", false, "log per-file scan details")
}

// loadBaseConfig loads the config file named by --config, or the
// default .grin.yaml in the working directory.
func loadBaseConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath != "" {
		return config.LoadConfig(configPath)
	}
	return config.LoadConfigFromDir(".")
}

// applyTraversalFlags merges the shared skip flags into cfg. Flags the
// user did not touch leave the config-file/default values in place.
func applyTraversalFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()

	if v, _ := flags.GetBool("no-skip-hidden-files"); v {
		cfg.SkipHiddenFiles = false
	}
	if v, _ := flags.GetBool("no-skip-hidden-dirs"); v {
		cfg.SkipHiddenDirs = false
	}
	if v, _ := flags.GetBool("no-skip-backup-files"); v {
		cfg.SkipBackupFiles = false
	}
	if flags.Changed("skip-dirs") {
		v, _ := flags.GetString("skip-dirs")
		cfg.SkipDirs = config.SplitList(v)
	}
	if v, _ := flags.GetBool("no-skip-dirs"); v {
		cfg.SkipDirs = nil
	}
	if flags.Changed("skip-exts") {
		v, _ := flags.GetString("skip-exts")
		cfg.SkipExts = config.SplitList(v)
	}
	if v, _ := flags.GetBool("no-skip-exts"); v {
		cfg.SkipExts = nil
	}
	if v, _ := flags.GetBool("follow"); v {
		cfg.SkipSymlinkDirs = false
		cfg.SkipSymlinkFiles = false
	}
	if v, _ := flags.GetBool("no-skip-binary"); v {
		cfg.SkipBinaryFiles = false
	}
	if v, _ := flags.GetBool("unsorted"); v {
		cfg.Unsorted = true
	}
	if v, _ := flags.GetBool("verbose"); v {
		cfg.LogLevel = "debug"
	}
}
