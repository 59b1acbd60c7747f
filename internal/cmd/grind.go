package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rkern/grin/internal/config"
	"github.com/rkern/grin/internal/display"
	"github.com/rkern/grin/internal/fileutil"
	"github.com/rkern/grin/internal/finder"
	"github.com/rkern/grin/internal/walker"
)

// NewGrindCommand creates the grind root command, the find-like
// companion to grin. It walks the same filtered tree but matches file
// names against a glob instead of matching content.
func NewGrindCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grind [flags] <glob>",
		Short: "Find files by name glob using grin's directory filtering",
		Long: `Grind locates files whose base name matches a glob pattern (*, ?,
[...]), applying the same directory, extension, and binary filtering as
a grin search. Options can be preloaded through the GRIND_ARGS
environment variable.

Examples:
  grind '*.py'                   # all Python files under .
  grind --dirs src,test '*.go'   # search specific trees
  grind -0 '*.c' | xargs -0 wc   # NUL-separated output`,
		Version:      Version,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         runGrind,
	}

	cmd.Flags().StringSlice("dirs", []string{"."}, "the directories to start from")
	cmd.Flags().BoolP("null-separated", "0", false, "print the filenames separated by NULs")
	cmd.Flags().String("color", "", "colorize output: auto, always, or never")
	addTraversalFlags(cmd)

	return cmd
}

// runGrind implements the grind command logic.
func runGrind(cmd *cobra.Command, args []string) error {
	cfg, err := loadBaseConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyGrindFlags(cmd, cfg)
	applyTraversalFlags(cmd, cfg)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	applyColorMode(cfg)

	log := newRunLogger(cmd, cfg)
	rec := fileutil.NewRecognizer(cfg)
	walk := walker.New(cfg, rec, log.LogDiagnostic)

	dirs, _ := cmd.Flags().GetStringSlice("dirs")
	walk.AddRoots(dirs...)
	if err := walk.Start(); err != nil {
		return err
	}

	// An invalid glob aborts before any walking, like a bad regex.
	find, err := finder.New(walk, args[0])
	if err != nil {
		return err
	}

	emit := display.NewEmitter(cmd.OutOrStdout(), cfg)
	for {
		res, ok := find.Next()
		if !ok {
			return nil
		}
		if err := emit.EmitFile(res); err != nil {
			return fmt.Errorf("failed to write results: %w", err)
		}
	}
}

// applyGrindFlags merges grind-specific flags into cfg. Find results
// are always path-only, so the emitter runs in names-only mode.
func applyGrindFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()

	cfg.NamesOnly = true
	if v, _ := flags.GetBool("null-separated"); v {
		cfg.NullSeparated = true
	}
	if flags.Changed("color") {
		cfg.Color, _ = flags.GetString("color")
	}
}
