package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/partview/pkg/analysis"
	"github.com/spf13/cobra"
)

var infoProxy string

var infoCmd = &cobra.Command{
	Use:   "info <src>",
	Short: "Display general information about an STL model",
	Long:  "Show dimensions, triangle count, surface area and edge statistics for a local file or URL.",
	Args:  cobra.ExactArgs(1),
	Run:   runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().StringVar(&infoProxy, "cors-proxy", "", "Proxy URL template for remote models")
}

func runInfo(cmd *cobra.Command, args []string) {
	src := args[0]

	settings := loadSettings()
	if infoProxy == "" {
		infoProxy = settings.CORSProxy
	}

	model, err := loadModel(src, infoProxy)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading model: %v\n", err)
		os.Exit(1)
	}

	result := analysis.AnalyzeModel(model)

	fmt.Println("Model Information")
	fmt.Println("=================")
	if model.Name != "" {
		fmt.Printf("Name: %s\n", model.Name)
	}
	fmt.Printf("Source: %s\n\n", src)

	fmt.Println("Model Statistics:")
	fmt.Printf("  Triangles: %d\n", result.TriangleCount)
	fmt.Printf("  Edges: %d\n", result.EdgeCount)
	fmt.Printf("  Surface Area: %.6f square units\n\n", result.SurfaceArea)

	fmt.Println("Bounding Box:")
	fmt.Printf("  Min: %s\n", analysis.FormatVector(result.BoundingBox.Min))
	fmt.Printf("  Max: %s\n", analysis.FormatVector(result.BoundingBox.Max))
	fmt.Printf("  Center: %s\n\n", analysis.FormatVector(result.BoundingBox.Center()))

	fmt.Println("Dimensions:")
	fmt.Printf("  Width (X): %.6f units\n", result.Dimensions.X)
	fmt.Printf("  Depth (Y): %.6f units\n", result.Dimensions.Y)
	fmt.Printf("  Height (Z): %.6f units\n", result.Dimensions.Z)
	fmt.Printf("  Diagonal: %.6f units\n\n", result.BoundingBox.Diagonal())

	fmt.Println("Edge Lengths:")
	fmt.Printf("  Minimum: %.6f units\n", result.MinEdge)
	fmt.Printf("  Maximum: %.6f units\n", result.MaxEdge)
	fmt.Printf("  Average: %.6f units\n", result.AvgEdge)
}
