package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "mudra",
	Short: "Train and recognize static hand gestures from a webcam",
	Long: `Mudra reads webcam frames, asks a MediaPipe helper for hand landmarks,
reduces the first hand to a discrete pose signature and matches it exactly
against gestures trained in the same session (or loaded from a database).`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")
}
