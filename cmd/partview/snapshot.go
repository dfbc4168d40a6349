package main

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/philipparndt/partview/pkg/scene"
	"github.com/philipparndt/partview/pkg/stl"
	"github.com/spf13/cobra"
)

var (
	snapshotOut    string
	snapshotWidth  int
	snapshotHeight int
	snapshotProxy  string
	snapshotYaw    float64
	snapshotPitch  float64
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot <src>",
	Short: "Render a model to a PNG image",
	Long:  "Fetch or read a model, normalize it and render a single shaded frame to a PNG file.",
	Args:  cobra.ExactArgs(1),
	Run:   runSnapshot,
}

func init() {
	rootCmd.AddCommand(snapshotCmd)

	snapshotCmd.Flags().StringVarP(&snapshotOut, "output", "o", "snapshot.png", "Output PNG path")
	snapshotCmd.Flags().IntVar(&snapshotWidth, "width", 800, "Image width in pixels")
	snapshotCmd.Flags().IntVar(&snapshotHeight, "height", 600, "Image height in pixels")
	snapshotCmd.Flags().StringVar(&snapshotProxy, "cors-proxy", "", "Proxy URL template for remote models")
	snapshotCmd.Flags().Float64Var(&snapshotYaw, "yaw", 0.3, "Camera yaw in radians")
	snapshotCmd.Flags().Float64Var(&snapshotPitch, "pitch", 0.3, "Camera pitch in radians")
}

func runSnapshot(cmd *cobra.Command, args []string) {
	src := args[0]

	settings := loadSettings()
	if snapshotProxy == "" {
		snapshotProxy = settings.CORSProxy
	}

	model, err := loadModel(src, snapshotProxy)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading model: %v\n", err)
		os.Exit(1)
	}

	frame, err := renderSnapshot(model, snapshotWidth, snapshotHeight, snapshotYaw, snapshotPitch)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering model: %v\n", err)
		os.Exit(1)
	}

	out, err := os.Create(snapshotOut)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := png.Encode(out, frame); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding PNG: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s (%dx%d, %d triangles)\n", snapshotOut, snapshotWidth, snapshotHeight, model.TriangleCount())
}

// renderSnapshot paints one frame of the normalized model at the given
// camera pose.
func renderSnapshot(model *stl.Model, width, height int, yaw, pitch float64) (*image.RGBA, error) {
	view := scene.NewScene(30)
	if err := view.Attach(width, height); err != nil {
		return nil, err
	}
	defer view.Dispose()

	view.SetGeometry(model)
	view.SetView(yaw, pitch)
	return view.RenderFrame(), nil
}
