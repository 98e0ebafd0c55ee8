package main

import (
	"context"
	"fmt"

	"github.com/jonathan/resume-builder/internal/form"
	"github.com/spf13/cobra"
)

var skillsCmd = &cobra.Command{
	Use:   "skills <technical|softSkills> <comma separated list>",
	Short: "Replace a skill list",
	Long:  "Replaces one skill list with the comma separated pieces of the given text. Blank text clears the list.",
	Args:  cobra.ExactArgs(2),
	RunE:  runSkills,
}

var techStackCmd = &cobra.Command{
	Use:   "tech-stack <project index> <comma separated list>",
	Short: "Replace the tech stack of a project",
	Args:  cobra.ExactArgs(2),
	RunE:  runTechStack,
}

func init() {
	rootCmd.AddCommand(skillsCmd)
	rootCmd.AddCommand(techStackCmd)
}

func runSkills(cmd *cobra.Command, args []string) error {
	kind, err := form.ParseSkillType(args[0])
	if err != nil {
		return err
	}
	return withForm(cmd, func(ctx context.Context, c *form.Controller) error {
		if err := c.SetSkills(ctx, kind, args[1]); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated %s skills (%d)\n", kind, len(form.SplitList(args[1])))
		return nil
	})
}

func runTechStack(cmd *cobra.Command, args []string) error {
	index, err := parseIndex(args[0])
	if err != nil {
		return err
	}
	return withForm(cmd, func(ctx context.Context, c *form.Controller) error {
		if err := c.SetTechStack(ctx, index, args[1]); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated tech stack of project %d\n", index)
		return nil
	})
}
