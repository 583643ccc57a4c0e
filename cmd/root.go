// Package cmd is for command line interactions with the cloneplan
// application
package cmd

import (
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"cloneplan/internal/enzyme"
)

// stderr is for logging to Stderr (without an annoying timestamp)
var stderr = log.New(os.Stderr, "", 0)

var settingsFile string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "cloneplan",
	Short: `Simulate restriction digests and plan multi-step cloning strategies.
Digest sequences in-silico, check end compatibility, and search for a
digest/ligate/Golden-Gate route from a vector and inserts to a target construct`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		stderr.Fatalf("%v", err)
	}
}

func init() {
	cobra.OnInitialize(initSettings)

	rootCmd.PersistentFlags().StringVar(&settingsFile, "settings", "", "path to a settings YAML overriding scoring weights and search bounds")
	rootCmd.PersistentFlags().String("enzyme-db", "", "path to a TSV of extra enzymes (name<TAB>marked site)")
	viper.BindPFlag("enzyme-db", rootCmd.PersistentFlags().Lookup("enzyme-db"))
}

// initSettings reads the optional settings file into viper before any
// command runs.
func initSettings() {
	if settingsFile == "" {
		return
	}

	viper.SetConfigFile(settingsFile)
	if err := viper.ReadInConfig(); err != nil {
		stderr.Fatalf("failed to read settings from %s: %v", settingsFile, err)
	}
}

// enzymeDB loads the builtin enzymes plus any user TSV from --enzyme-db.
func enzymeDB() *enzyme.DB {
	db := enzyme.NewDB()
	if path := viper.GetString("enzyme-db"); path != "" {
		if err := db.LoadTSV(path); err != nil {
			stderr.Fatalf("failed to load enzyme db %s: %v", path, err)
		}
	}
	return db
}
