package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/rkern/grin/internal/config"
	"github.com/rkern/grin/internal/display"
	"github.com/rkern/grin/internal/engine"
	"github.com/rkern/grin/internal/fileutil"
	"github.com/rkern/grin/internal/logger"
	"github.com/rkern/grin/internal/matcher"
	"github.com/rkern/grin/internal/walker"
)

// NewGrinCommand creates the grin root command.
func NewGrinCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grin [flags] <regex> [path...]",
		Short: "Recursively search text files for a regular expression",
		Long: `Grin searches recursively through a directory tree for lines matching
a regular expression, skipping version-control directories, hidden and
backup files, known binary extensions, and files whose content looks
binary. Gzip- and bzip2-compressed text files are searched
transparently.

Options can be preloaded through the GRIN_ARGS environment variable;
its contents are shell-split and parsed before the command line.
Defaults can also be set in a .grin.yaml config file.

Examples:
  grin TODO src/                 # search a tree
  grin -C 2 'func \w+' main.go   # two lines of context either side
  grin -l needle .               # filenames only
  grin -f - needle < filelist    # roots from stdin, one per line`,
		Version:      Version,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE:         runGrin,
	}

	cmd.Flags().BoolP("ignore-case", "i", false, "ignore case in the regex")
	cmd.Flags().IntP("after-context", "A", 0, "number of context lines to show after the match")
	cmd.Flags().IntP("before-context", "B", 0, "number of context lines to show before the match")
	cmd.Flags().IntP("context", "C", 0, "number of context lines to show on either side of the match")
	cmd.Flags().BoolP("line-number", "n", true, "show line numbers")
	cmd.Flags().BoolP("no-line-number", "N", false, "do not show line numbers")
	cmd.Flags().BoolP("with-filename", "H", true, "show the filenames of files that match")
	cmd.Flags().Bool("without-filename", false, "do not show the filenames of files that match")
	cmd.Flags().BoolP("files-with-matches", "l", false, "show only the filenames, not the matches")
	cmd.Flags().BoolP("files-without-matches", "L", false, "show the filenames of searched files with no match")
	cmd.Flags().StringP("files-from-file", "f", "", "read paths to search from this file, one per line; - for stdin")
	cmd.Flags().BoolP("null-separated", "0", false, "NUL-separate paths read from --files-from-file and printed by -l")
	cmd.Flags().String("color", "", "colorize output: auto, always, or never")
	addTraversalFlags(cmd)

	return cmd
}

// runGrin implements the grin command logic.
func runGrin(cmd *cobra.Command, args []string) error {
	cfg, err := loadBaseConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyGrinFlags(cmd, cfg)
	applyTraversalFlags(cmd, cfg)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	applyColorMode(cfg)

	// An unparseable pattern is fatal before any scanning begins.
	eval, err := matcher.NewRegexpEvaluator(args[0], cfg.IgnoreCase)
	if err != nil {
		return err
	}
	scanner, err := matcher.NewScanner(eval, cfg.BeforeContext, cfg.AfterContext)
	if err != nil {
		return err
	}

	log := newRunLogger(cmd, cfg)
	rec := fileutil.NewRecognizer(cfg)
	walk := walker.New(cfg, rec, log.LogDiagnostic)

	listPath, _ := cmd.Flags().GetString("files-from-file")
	nulSeparated, _ := cmd.Flags().GetBool("null-separated")
	if listPath != "" {
		if err := addListRoots(cmd, walk, listPath, nulSeparated); err != nil {
			return err
		}
	}
	walk.AddRoots(args[1:]...)
	if listPath == "" && len(args) == 1 {
		walk.AddRoots(".")
	}
	if err := walk.Start(); err != nil {
		return err
	}

	eng := engine.New(cfg, walk, scanner, log.LogDiagnostic)
	emit := display.NewEmitter(cmd.OutOrStdout(), cfg)

	for {
		res, ok := eng.Next()
		if !ok {
			return nil
		}
		log.LogDebug(fmt.Sprintf("emitting %s", res.Path))
		if err := emit.EmitFile(res); err != nil {
			return fmt.Errorf("failed to write results: %w", err)
		}
	}
}

// applyGrinFlags merges grin-specific flags into cfg.
func applyGrinFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()

	if v, _ := flags.GetBool("ignore-case"); v {
		cfg.IgnoreCase = true
	}
	if flags.Changed("after-context") {
		cfg.AfterContext, _ = flags.GetInt("after-context")
	}
	if flags.Changed("before-context") {
		cfg.BeforeContext, _ = flags.GetInt("before-context")
	}
	if flags.Changed("context") {
		n, _ := flags.GetInt("context")
		cfg.BeforeContext = n
		cfg.AfterContext = n
	}
	if flags.Changed("line-number") {
		cfg.ShowLineNumbers, _ = flags.GetBool("line-number")
	}
	if v, _ := flags.GetBool("no-line-number"); v {
		cfg.ShowLineNumbers = false
	}
	if flags.Changed("with-filename") {
		cfg.ShowFilename, _ = flags.GetBool("with-filename")
	}
	if v, _ := flags.GetBool("without-filename"); v {
		cfg.ShowFilename = false
	}
	if v, _ := flags.GetBool("files-with-matches"); v {
		cfg.NamesOnly = true
	}
	if v, _ := flags.GetBool("files-without-matches"); v {
		cfg.InvertFiles = true
	}
	if v, _ := flags.GetBool("null-separated"); v {
		cfg.NullSeparated = true
	}
	if flags.Changed("color") {
		cfg.Color, _ = flags.GetString("color")
	}
}

// applyColorMode pins the color library's global switch to the
// resolved mode, so "always" survives piped output.
func applyColorMode(cfg *config.Config) {
	switch cfg.Color {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	}
}

// newRunLogger builds the diagnostics logger for a run, writing to
// stderr at the configured level.
func newRunLogger(cmd *cobra.Command, cfg *config.Config) logger.Logger {
	useColor := cfg.Color == "always"
	if cfg.Color == "auto" {
		if f, ok := cmd.ErrOrStderr().(*os.File); ok {
			useColor = isTerminalFile(f)
		}
	}
	return logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel, useColor)
}

// addListRoots feeds the walker the newline- or NUL-delimited path
// list named by --files-from-file ("-" reads stdin).
func addListRoots(cmd *cobra.Command, walk *walker.Walker, listPath string, nulSeparated bool) error {
	if listPath == "-" {
		return walk.AddRootsFromList(cmd.InOrStdin(), nulSeparated)
	}
	f, err := os.Open(listPath)
	if err != nil {
		return fmt.Errorf("failed to open file list: %w", err)
	}
	defer f.Close()
	return walk.AddRootsFromList(f, nulSeparated)
}
