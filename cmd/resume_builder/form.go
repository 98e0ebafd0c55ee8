package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jonathan/resume-builder/internal/form"
	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/spf13/cobra"
)

// errLastEntry is returned by entry remove when the collection has a single entry left.
var errLastEntry = errors.New("refusing to remove the last entry; pass --force to empty the collection")

// withForm restores the form from the local store, runs fn against it and closes the store.
// Every change fn makes is already durable when it returns.
func withForm(cmd *cobra.Command, fn func(ctx context.Context, c *form.Controller) error) error {
	return withStore(cmd, func(ctx context.Context, store storage.Store) error {
		c, err := form.Open(ctx, store)
		if err != nil {
			return err
		}
		return fn(ctx, c)
	})
}

// withStore opens the local store named by the resolved config for the duration of fn.
func withStore(cmd *cobra.Command, fn func(ctx context.Context, store storage.Store) error) error {
	store, err := storage.OpenSQLite(appConfig.StorePath)
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close()
	}()
	return fn(commandContext(cmd), store)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func parseIndex(arg string) (int, error) {
	index, err := strconv.Atoi(arg)
	if err != nil || index < 0 {
		return 0, fmt.Errorf("invalid index %q: must be a non-negative integer", arg)
	}
	return index, nil
}

// removeGuarded removes one entry, keeping at least one unless force is set.
func removeGuarded(ctx context.Context, c *form.Controller, coll form.Collection, index int, force bool) error {
	n, err := c.Len(coll)
	if err != nil {
		return err
	}
	if n <= 1 && !force {
		return errLastEntry
	}
	return c.RemoveEntry(ctx, coll, index)
}
