package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gomeasure/pkg/analysis"
	"github.com/philipparndt/gomeasure/pkg/stl"
)

var infoEdges int

var infoCmd = &cobra.Command{
	Use:   "info <file.stl>",
	Short: "Display general information about an STL file",
	Long:  "Show dimensions, triangle count, surface area and edge statistics.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().IntVarP(&infoEdges, "edges", "n", 0, "also list the n longest edges")
}

func runInfo(cmd *cobra.Command, args []string) error {
	filename := args[0]

	model, err := stl.Parse(filename)
	if err != nil {
		return fmt.Errorf("error parsing STL file: %w", err)
	}

	result := analysis.AnalyzeModel(model)
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "STL File Information")
	fmt.Fprintln(out, "====================")
	if model.Name != "" {
		fmt.Fprintf(out, "Name: %s\n", model.Name)
	}
	fmt.Fprintf(out, "File: %s\n\n", filename)

	fmt.Fprintln(out, "Model Statistics:")
	fmt.Fprintf(out, "  Triangles: %d\n", result.TriangleCount)
	fmt.Fprintf(out, "  Vertices: %d\n", result.VertexCount)
	fmt.Fprintf(out, "  Edges: %d\n", result.EdgeCount)
	fmt.Fprintf(out, "  Surface Area: %.6f m² (%.2f ft²)\n\n", result.SurfaceArea, result.SurfaceAreaSquareFeet())

	fmt.Fprintln(out, "Bounding Box:")
	fmt.Fprintf(out, "  Min: %s\n", analysis.FormatVector(result.BoundingBox.Min))
	fmt.Fprintf(out, "  Max: %s\n", analysis.FormatVector(result.BoundingBox.Max))
	fmt.Fprintf(out, "  Center: %s\n\n", analysis.FormatVector(result.BoundingBox.Center()))

	fmt.Fprintln(out, "Dimensions:")
	fmt.Fprintf(out, "  Width (X): %.6f m\n", result.Dimensions.X)
	fmt.Fprintf(out, "  Depth (Y): %.6f m\n", result.Dimensions.Y)
	fmt.Fprintf(out, "  Height (Z): %.6f m\n", result.Dimensions.Z)
	fmt.Fprintf(out, "  Diagonal: %.6f m (%.2f ft)\n", result.BoundingBox.Diagonal(), result.DiagonalFeet())
	fmt.Fprintf(out, "  Volume: %.6f m³\n\n", result.Volume)

	fmt.Fprintln(out, "Edge Lengths:")
	fmt.Fprintf(out, "  Minimum: %.6f m\n", result.MinEdgeLength)
	fmt.Fprintf(out, "  Maximum: %.6f m\n", result.MaxEdgeLength)
	fmt.Fprintf(out, "  Average: %.6f m\n", result.AvgEdgeLength)

	if infoEdges > 0 {
		edges := result.LongestEdges(infoEdges)
		fmt.Fprintf(out, "\nTop %d Longest Edges:\n", len(edges))
		for i, e := range edges {
			fmt.Fprintf(out, "  %2d. %.6f m  %s -> %s (triangle %d)\n",
				i+1, e.Length, analysis.FormatVector(e.Start), analysis.FormatVector(e.End), e.TriangleID)
		}
	}
	return nil
}
