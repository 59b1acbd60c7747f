package main

import (
	"fmt"
	"os"

	"github.com/rkern/grin/internal/cmd"
)

func main() {
	rootCmd := cmd.NewGrindCommand()

	args, err := cmd.ArgsWithEnv("GRIND_ARGS", os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	rootCmd.SetArgs(args)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
