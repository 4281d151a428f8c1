package main

import (
	stdLog "log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/tmurzenkov/circulation-service/config"
	"github.com/tmurzenkov/circulation-service/internal/app"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		stdLog.Fatal("load envs from .env ", err)
	}

	var debug bool
	root := &cobra.Command{
		Use:   "circulation",
		Short: "Library circulation manager",
		Run: func(cmd *cobra.Command, args []string) {
			app.Run(newConfig(debug))
		},
	}
	root.PersistentFlags().BoolVar(&debug, "debug", false, "debug logging")

	var adminPassword string
	seed := &cobra.Command{
		Use:   "seed",
		Short: "Create the default admin account and sample books",
		Run: func(cmd *cobra.Command, args []string) {
			app.Seed(newConfig(debug), adminPassword)
		},
	}
	seed.Flags().StringVar(&adminPassword, "admin-password", "admin123", "password for the seeded admin account")
	root.AddCommand(seed)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newConfig(debug bool) *config.Config {
	if debug {
		return config.NewConfig(config.WithLogLevel(zapcore.DebugLevel))
	}
	return config.NewConfig()
}
