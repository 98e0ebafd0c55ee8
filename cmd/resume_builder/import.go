package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/resume-builder/internal/form"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Replace the form with a resume JSON document",
	Long:  "Validates a resume JSON document against the resume schema and replaces the whole form with it.",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read resume file: %w", err)
	}
	if err := schemas.ValidateResumeData(raw); err != nil {
		return err
	}
	var data types.ResumeData
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("failed to unmarshal resume JSON: %w", err)
	}

	return withForm(cmd, func(ctx context.Context, c *form.Controller) error {
		if err := c.Replace(ctx, data); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported %s\n", args[0])
		return nil
	})
}
