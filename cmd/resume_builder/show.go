package main

import (
	"context"
	"encoding/json"

	"github.com/jonathan/resume-builder/internal/ats"
	"github.com/jonathan/resume-builder/internal/form"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/spf13/cobra"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current resume and the last ATS analysis",
	Args:  cobra.NoArgs,
	RunE:  runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Print the form state as JSON")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, _ []string) error {
	return withStore(cmd, func(ctx context.Context, store storage.Store) error {
		c, err := form.Open(ctx, store)
		if err != nil {
			return err
		}
		data := c.Data()
		if showJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(data)
		}

		printer := observability.NewPrinter(cmd.OutOrStdout())
		printer.PrintResume(&data)

		result, ok, err := ats.LoadCached(ctx, store)
		if err != nil {
			return err
		}
		if ok {
			printer.PrintAnalysis(result, ats.Rating(result.Score))
		}
		return nil
	})
}
