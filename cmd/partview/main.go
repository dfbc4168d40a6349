package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/partview/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "partview",
	Short: "A viewer and inspector for STL models from local files and URLs",
	Long: `partview renders STL (Stereolithography) models. It serves an interactive
browser viewer, writes single-frame snapshots and prints precise model
measurements. Remote models are fetched directly or through a configurable
CORS proxy with automatic fallback between the two routes.`,
	Version: version.Full(),
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
