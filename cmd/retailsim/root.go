package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/metalagman/retailsim/internal/logging"
)

var (
	cfgFile string
	debug   bool
	rootCmd = &cobra.Command{
		Use:   "retailsim",
		Short: "retailsim scores agent trajectories against a retail world simulation",
	}
)

// Execute runs the root command.
func Execute() error {
	_ = godotenv.Load()
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", filepath.Join(".retailsim", "config.json"), "config file path")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	if err := viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config")); err != nil {
		return fmt.Errorf("bind config flag: %w", err)
	}
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		logging.Init(debug)
	}
	rootCmd.AddCommand(scoreCmd())
	rootCmd.AddCommand(replayCmd())
	rootCmd.AddCommand(validateCmd())
	return rootCmd.Execute()
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
}
