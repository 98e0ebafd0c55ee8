package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/resume-builder/internal/form"
	"github.com/spf13/cobra"
)

var setCmd = &cobra.Command{
	Use:   "set <field> <value>",
	Short: "Set a contact or summary field",
	Long:  "Replaces one top-level field of the resume. Fields: " + strings.Join(form.ScalarFields(), ", ") + ".",
	Args:  cobra.ExactArgs(2),
	RunE:  runSet,
}

func init() {
	rootCmd.AddCommand(setCmd)
}

func runSet(cmd *cobra.Command, args []string) error {
	field, err := form.ParseScalarField(args[0])
	if err != nil {
		return err
	}
	return withForm(cmd, func(ctx context.Context, c *form.Controller) error {
		if err := c.SetField(ctx, field, args[1]); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", field)
		return nil
	})
}
