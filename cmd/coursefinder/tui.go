// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/coursefinder/internal/logging"
	"github.com/pdiddy/coursefinder/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive search form in the terminal",
	Long: `Tui opens a full-screen form. Type a question and press enter to search;
the search is unavailable while the question is empty. Results scroll with
page up and page down. Press esc or ctrl+c to quit.`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := logging.ForTerminal(cfg.Log)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	log.Info("tui starting", zap.String("endpoint", cfg.QueryService.Endpoint))
	m := tui.New(cmd.Context(), newQuerier(cfg), formOptions(cfg))
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run(); err != nil {
		return fmt.Errorf("running terminal ui: %w", err)
	}
	return nil
}
