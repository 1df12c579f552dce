package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/paint"
)

var textureCmd = &cobra.Command{
	Use:   "texture",
	Short: "Generate a procedural paper-grain texture PNG",
	RunE:  runTexture,
}

func init() {
	textureCmd.Flags().Int("size", 256, "texture side length in pixels")
	textureCmd.Flags().Float64("roughness", 0.7, "grain contrast in [0, 1]")
	textureCmd.Flags().Int64("seed", 1, "noise seed")
	textureCmd.Flags().StringP("output", "o", "paper.png", "output PNG path")

	rootCmd.AddCommand(textureCmd)
}

func runTexture(cmd *cobra.Command, _ []string) error {
	size, _ := cmd.Flags().GetInt("size")
	roughness, _ := cmd.Flags().GetFloat64("roughness")
	seed, _ := cmd.Flags().GetInt64("seed")
	output, _ := cmd.Flags().GetString("output")

	pm := paint.PaperTexture(size, roughness, seed)
	if err := pm.SavePNG(output); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%dx%d)\n", output, size, size)
	return nil
}
