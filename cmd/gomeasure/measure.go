package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gomeasure/internal/measurement"
	"github.com/philipparndt/gomeasure/pkg/analysis"
	"github.com/philipparndt/gomeasure/pkg/geometry"
	"github.com/philipparndt/gomeasure/pkg/stl"
)

var (
	measureMode   measurement.Mode
	measurePoints []string
	measureModel  string
	measureSnap   bool
	measureNormal string
)

var measureCmd = &cobra.Command{
	Use:   "measure --point x,y,z [--point x,y,z ...]",
	Short: "Measure between points without opening the viewer",
	Long: `Feed points through the same measurement session the viewer uses and
print the reading. Points are committed in order. Rejected points are
reported and skipped.

With --model the nearest model vertex is shown for every point, and --snap
moves points onto nearby vertices or edges first.`,
	Example: `  gomeasure measure --point 0,0,0 --point 3.048,0,0
  gomeasure measure --mode angle --point 1,0,0 --point 0,0,0 --point 0,1,0
  gomeasure measure --mode area --normal 0,0,1 --point 0,0,0 --point 1,0,0 --point 1,1,0`,
	Args: cobra.NoArgs,
	RunE: runMeasure,
}

func init() {
	rootCmd.AddCommand(measureCmd)

	flags := measureCmd.Flags()
	flags.Var(&measureMode, "mode", "measurement mode: length, angle or area")
	flags.StringArrayVarP(&measurePoints, "point", "p", nil, "point as x,y,z (repeatable)")
	flags.StringVarP(&measureModel, "model", "m", "", "STL file used for nearest-vertex lookup and snapping")
	flags.BoolVar(&measureSnap, "snap", false, "snap points to the model (requires --model)")
	flags.StringVar(&measureNormal, "normal", "0,0,1", "surface normal for area points as x,y,z")

	_ = measureCmd.MarkFlagRequired("point")
}

// parseVector parses "x,y,z"
func parseVector(s string) (geometry.Vector3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return geometry.Vector3{}, fmt.Errorf("invalid vector %q: expected x,y,z", s)
	}
	var v [3]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return geometry.Vector3{}, fmt.Errorf("invalid vector %q: %w", s, err)
		}
		v[i] = f
	}
	return geometry.NewVector3(v[0], v[1], v[2]), nil
}

func runMeasure(cmd *cobra.Command, args []string) error {
	if measureSnap && measureModel == "" {
		return fmt.Errorf("--snap requires --model")
	}

	normal, err := parseVector(measureNormal)
	if err != nil {
		return err
	}
	points := make([]geometry.Vector3, 0, len(measurePoints))
	for _, s := range measurePoints {
		p, err := parseVector(s)
		if err != nil {
			return err
		}
		points = append(points, p)
	}

	var model *stl.Model
	if measureModel != "" {
		if model, err = stl.Parse(measureModel); err != nil {
			return fmt.Errorf("error parsing STL file: %w", err)
		}
	}

	c := cfg
	if cmd.Flags().Changed("mode") {
		c.Measurement.DefaultMode = measureMode.String()
	}
	opts, err := c.SessionOptions()
	if err != nil {
		return err
	}
	session := measurement.NewSession(nil, opts...)

	var snapper measurement.Snapper
	var mesh *geometry.Mesh
	if measureSnap {
		snapper = measurement.NewSnapper(c.Measurement.SnapThreshold)
		mesh = model.Mesh()
	}

	return runSession(cmd.OutOrStdout(), session, points, normal, model, snapper, mesh)
}

// runSession submits points in order and prints each outcome and the final
// reading
func runSession(out io.Writer, session *measurement.Session, points []geometry.Vector3, normal geometry.Vector3,
	model *stl.Model, snapper measurement.Snapper, mesh *geometry.Mesh) error {
	mode := session.Mode()
	fmt.Fprintf(out, "%s Measurement\n", mode.Title())
	fmt.Fprintln(out, strings.Repeat("=", len(mode.Title())+12))

	surface := measurement.SurfaceID(measureModel)
	for i, raw := range points {
		c := measurement.Candidate{Point: raw, Raw: raw, Normal: normal, Surface: surface}
		if mesh != nil {
			c.Point, c.Snap = snapper.Resolve(raw, mesh, geometry.Identity())
		}

		fmt.Fprintf(out, "\nPoint %d: %s\n", i+1, analysis.FormatVector(raw))
		if model != nil {
			if v, d, ok := analysis.FindNearestVertex(model, raw); ok && d > 0 {
				fmt.Fprintf(out, "  Nearest vertex: %s (distance: %.6f)\n", analysis.FormatVector(v), d)
			}
		}
		if c.Snap != measurement.SnapNone {
			fmt.Fprintf(out, "  Snapped to %s: %s\n", c.Snap, analysis.FormatVector(c.Point))
		}

		r := session.Submit(c)
		switch {
		case r.Accepted():
			fmt.Fprintln(out, "  accepted")
		case r.Reason == measurement.ReasonOffPlane:
			fmt.Fprintf(out, "  rejected: %s (%.6f from plane)\n", r.Reason, r.Offset)
		default:
			fmt.Fprintf(out, "  rejected: %s\n", r.Reason)
		}
	}

	fmt.Fprintf(out, "\n%s: %s\n", mode.Title(), session.Reading())
	return nil
}
