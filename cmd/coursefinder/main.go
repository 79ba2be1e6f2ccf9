// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the coursefinder CLI: a natural-language
// course search form backed by an external query service, available as a
// one-shot command, a terminal UI, and a web page.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/coursefinder/internal/config"
	"github.com/pdiddy/coursefinder/internal/form"
	"github.com/pdiddy/coursefinder/internal/queryservice"
	"github.com/pdiddy/coursefinder/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the coursefinder CLI.
var rootCmd = &cobra.Command{
	Use:   "coursefinder",
	Short: "Search the course catalog in plain English",
	Long: `coursefinder sends a free-text question such as "Show me all graduate CSE
courses with 3 credits" to the course query service and shows the matching
courses, or the service's error.

Use ask for a single question, tui for an interactive terminal form, serve for
the web form, and batch to run a file of saved questions.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.LoadDotEnv()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./coursefinder.yaml or ~/.config/coursefinder/config.yaml)")
	rootCmd.PersistentFlags().String("endpoint", "", "query service URL (default "+types.DefaultEndpoint+")")
	_ = viper.BindPFlag("query_service.endpoint", rootCmd.PersistentFlags().Lookup("endpoint"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("coursefinder")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "coursefinder"))
		}
	}

	config.SetDefaults(viper.GetViper())
	config.BindEnv(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig validates the merged flag, env, and file settings.
func loadConfig() (types.Config, error) {
	return config.Load(viper.GetViper())
}

// formOptions maps configuration onto the form.
func formOptions(cfg types.Config) form.Options {
	return form.Options{DiscardStale: cfg.QueryService.DiscardStale}
}

func newQuerier(cfg types.Config) *queryservice.Client {
	return queryservice.New(cfg.QueryService)
}

// reportError prints err to w unless the command already showed it, and
// returns the process exit status.
func reportError(w io.Writer, err error) int {
	if err == nil {
		return 0
	}
	if !errors.Is(err, errShown) {
		fmt.Fprintln(w, "Error:", err)
	}
	return 1
}

func main() {
	if code := reportError(os.Stderr, rootCmd.Execute()); code != 0 {
		os.Exit(code)
	}
}
