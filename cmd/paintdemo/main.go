// Command paintdemo exercises the paint package from the command line:
// it renders brush strokes onto a layered canvas and writes the flattened
// result to a PNG, and can generate paper-grain brush textures.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gogpu/paint"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "paintdemo",
	Short: "Render demo strokes with the paint engine",
	Long: `paintdemo drives the paint package without a UI.

It builds a layered canvas, paints strokes with a configurable brush, and
writes the flattened composite to a PNG file. Brush presets can be loaded
from a config file (see the "brush" section of the example config).`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./paintdemo.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")

	if err := viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose")); err != nil {
		panic(fmt.Sprintf("failed to bind flag: %v", err))
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("paintdemo")
	}

	viper.SetEnvPrefix("PAINTDEMO")
	viper.AutomaticEnv()
	presetDefaults()

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}

	if viper.GetBool("verbose") {
		paint.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}
}
