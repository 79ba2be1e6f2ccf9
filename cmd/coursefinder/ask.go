// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/coursefinder/internal/form"
	"github.com/pdiddy/coursefinder/internal/render"
	"github.com/pdiddy/coursefinder/pkg/types"
)

// errShown signals that the answer was an error already written to stdout.
// main exits non-zero without printing it again.
var errShown = errors.New("query failed")

var askCmd = &cobra.Command{
	Use:   "ask <question...>",
	Short: "Ask one question and print the matching courses",
	Long: `Ask submits the question once and prints what the form shows: each course
with its schedule and per-term availability, or the error message. The exit
status is non-zero when an error is shown.`,
	Example: `  coursefinder ask "Show me all graduate CSE courses with 3 credits"
  coursefinder ask --format yaml Friday classes with open seats`,
	PreRunE: validateAskFlags,
	RunE:    runAsk,
}

func init() {
	askCmd.Flags().String("format", string(types.OutputText), "output format: text, json, or yaml")

	rootCmd.AddCommand(askCmd)
}

// validateAskFlags rejects a bad --format before any request is sent.
func validateAskFlags(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("format")
	_, err := render.ParseFormat(name)
	return err
}

func runAsk(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	if text == "" {
		return fmt.Errorf("provide a question to ask")
	}
	name, _ := cmd.Flags().GetString("format")
	format, err := render.ParseFormat(name)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	state := form.Submit(cmd.Context(), newQuerier(cfg), form.New(formOptions(cfg)), text)
	if err := render.Write(os.Stdout, state, format); err != nil {
		return err
	}

	switch state.Phase() {
	case form.ErrorShown:
		return errShown
	case form.Idle:
		fmt.Fprintln(os.Stderr, "No courses found.")
	default:
		fmt.Fprintf(os.Stderr, "\n%d course(s)\n", len(state.Results()))
	}
	return nil
}
