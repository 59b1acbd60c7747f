package cmd

import (
	"fmt"
	"os"

	shlex "github.com/flynn/go-shlex"
	"github.com/mattn/go-isatty"
)

// ArgsWithEnv prepends the shell-split contents of the named
// environment variable to argv, so users can preload default options
// (GRIN_ARGS="-C 2 --color always"). Command-line arguments come
// last and therefore win any flag conflicts.
func ArgsWithEnv(envVar string, argv []string) ([]string, error) {
	raw := os.Getenv(envVar)
	if raw == "" {
		return argv, nil
	}
	extra, err := shlex.Split(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", envVar, err)
	}
	return append(extra, argv...), nil
}

// isTerminalFile reports whether the file is an interactive terminal.
func isTerminalFile(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
