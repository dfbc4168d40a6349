package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/partview/internal/web"
	"github.com/philipparndt/partview/pkg/config"
	"github.com/spf13/cobra"
)

var (
	serveAddr  string
	serveProxy string
	serveFPS   int
	serveNoHUD bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the browser viewer",
	Long: `Serve the interactive viewer page and its websocket render sessions.
Open http://localhost:8380/?src=<url> to view a model.`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8380", "Listen address")
	serveCmd.Flags().StringVar(&serveProxy, "cors-proxy", "", "Proxy URL template for remote models")
	serveCmd.Flags().IntVar(&serveFPS, "fps", 0, "Render loop frames per second")
	serveCmd.Flags().BoolVar(&serveNoHUD, "no-hud", false, "Disable the model info overlay")
}

func runServe(cmd *cobra.Command, args []string) {
	settings := loadSettings()
	if serveProxy != "" {
		settings.CORSProxy = serveProxy
	}
	if serveFPS > 0 {
		settings.FPS = serveFPS
	}
	if serveNoHUD {
		settings.ShowHUD = false
	}

	server := web.NewServer(serveAddr, config.Static(settings))
	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
