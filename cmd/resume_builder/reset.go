package main

import (
	"context"
	"fmt"

	"github.com/jonathan/resume-builder/internal/ats"
	"github.com/jonathan/resume-builder/internal/form"
	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/spf13/cobra"
)

var resetAll bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the resume form",
	Long:  "Replaces the form with the blank default. --all also clears the cached ATS analysis.",
	Args:  cobra.NoArgs,
	RunE:  runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&resetAll, "all", false, "Also clear the cached ATS analysis")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, _ []string) error {
	return withStore(cmd, func(ctx context.Context, store storage.Store) error {
		c, err := form.Open(ctx, store)
		if err != nil {
			return err
		}
		if err := c.Reset(ctx); err != nil {
			return err
		}
		if resetAll {
			if err := ats.ClearCached(ctx, store); err != nil {
				return err
			}
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Form cleared")
		return nil
	})
}
