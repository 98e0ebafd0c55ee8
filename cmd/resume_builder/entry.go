package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/resume-builder/internal/form"
	"github.com/spf13/cobra"
)

var entryForce bool

var entryCmd = &cobra.Command{
	Use:   "entry",
	Short: "Add, edit and remove entries of a resume section",
	Long:  "Manages the ordered entries of a section. Sections: " + collectionList() + ".",
}

var entryAddCmd = &cobra.Command{
	Use:   "add <section>",
	Short: "Append a blank entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runEntryAdd,
}

var entrySetCmd = &cobra.Command{
	Use:   "set <section> <index> <field> <value>",
	Short: "Set one field of one entry",
	Long:  "Replaces one field of the entry at index. Run 'entry fields <section>' to list the field names.",
	Args:  cobra.ExactArgs(4),
	RunE:  runEntrySet,
}

var entryRemoveCmd = &cobra.Command{
	Use:   "remove <section> <index>",
	Short: "Remove one entry",
	Long:  "Removes the entry at index. The last remaining entry of a section is kept unless --force is given.",
	Args:  cobra.ExactArgs(2),
	RunE:  runEntryRemove,
}

var entryFieldsCmd = &cobra.Command{
	Use:   "fields <section>",
	Short: "List the field names of a section's entries",
	Args:  cobra.ExactArgs(1),
	RunE:  runEntryFields,
}

func init() {
	entryRemoveCmd.Flags().BoolVar(&entryForce, "force", false, "Allow removing the last entry of a section")

	entryCmd.AddCommand(entryAddCmd, entrySetCmd, entryRemoveCmd, entryFieldsCmd)
	rootCmd.AddCommand(entryCmd)
}

func collectionList() string {
	names := make([]string, 0, len(form.AllCollections()))
	for _, c := range form.AllCollections() {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}

func runEntryAdd(cmd *cobra.Command, args []string) error {
	coll, err := form.ParseCollection(args[0])
	if err != nil {
		return err
	}
	return withForm(cmd, func(ctx context.Context, c *form.Controller) error {
		if err := c.AddEntry(ctx, coll); err != nil {
			return err
		}
		n, err := c.Len(coll)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added %s entry %d\n", coll, n-1)
		return nil
	})
}

func runEntrySet(cmd *cobra.Command, args []string) error {
	coll, err := form.ParseCollection(args[0])
	if err != nil {
		return err
	}
	index, err := parseIndex(args[1])
	if err != nil {
		return err
	}
	return withForm(cmd, func(ctx context.Context, c *form.Controller) error {
		if err := c.SetEntryField(ctx, coll, index, args[2], args[3]); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated %s[%d].%s\n", coll, index, args[2])
		return nil
	})
}

func runEntryRemove(cmd *cobra.Command, args []string) error {
	coll, err := form.ParseCollection(args[0])
	if err != nil {
		return err
	}
	index, err := parseIndex(args[1])
	if err != nil {
		return err
	}
	return withForm(cmd, func(ctx context.Context, c *form.Controller) error {
		if err := removeGuarded(ctx, c, coll, index, entryForce); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed %s entry %d\n", coll, index)
		return nil
	})
}

func runEntryFields(cmd *cobra.Command, args []string) error {
	coll, err := form.ParseCollection(args[0])
	if err != nil {
		return err
	}
	names, err := form.FieldNames(coll)
	if err != nil {
		return err
	}
	for _, name := range names {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	return nil
}
