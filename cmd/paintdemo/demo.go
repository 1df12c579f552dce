package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gogpu/paint"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Paint demo strokes and write the composite to a PNG",
	RunE:  runDemo,
}

func init() {
	demoCmd.Flags().Int("width", 800, "canvas width in pixels")
	demoCmd.Flags().Int("height", 600, "canvas height in pixels")
	demoCmd.Flags().StringP("output", "o", "demo.png", "output PNG path")
	demoCmd.Flags().Int64("seed", 1, "random seed for stamp jitter")
	demoCmd.Flags().Bool("textured", false, "use a procedural paper texture on the brush")

	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, _ []string) error {
	width, _ := cmd.Flags().GetInt("width")
	height, _ := cmd.Flags().GetInt("height")
	output, _ := cmd.Flags().GetString("output")
	seed, _ := cmd.Flags().GetInt64("seed")
	textured, _ := cmd.Flags().GetBool("textured")

	comp := paint.NewCompositor(width, height)
	base := comp.AddLayer()
	base.Surface().Fill(paint.White)
	comp.AddLayer()

	painter := paint.NewStrokePainter(comp)
	painter.Seed(seed)

	brush := brushFromConfig()
	if textured {
		brush.Texture = paint.PaperTexture(256, viper.GetFloat64("brush.roughness"), seed)
	}
	painter.SetBrush(brush)

	// A few sine-wave strokes across the canvas, one per hue step.
	colors := []paint.RGBA{
		{R: 0.8, G: 0.1, B: 0.1, A: 1},
		{R: 0.1, G: 0.5, B: 0.8, A: 1},
		{R: 0.1, G: 0.6, B: 0.2, A: 1},
	}
	for i, c := range colors {
		brush.Color = c
		baseY := float64(height) * float64(i+1) / float64(len(colors)+1)

		painter.MoveBegin(20, baseY)
		for x := 30.0; x < float64(width)-20; x += 10 {
			y := baseY + 40*math.Sin(x/60+float64(i))
			painter.Move(x, y)
		}
		painter.MoveEnd(float64(width)-20, baseY)
	}

	if err := comp.ConvertToBitmap().SavePNG(output); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%dx%d, %d strokes)\n", output, width, height, len(colors))
	return nil
}
