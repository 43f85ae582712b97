package main

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"snapvault/internal/catalog"
	"snapvault/internal/config"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and reset the destination cache",
	}

	cacheCmd.AddCommand(newCacheShowCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))

	return cacheCmd
}

func newCacheShowCommand(ctx *commandContext) *cobra.Command {
	var destFlag string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show cached destination contents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			if cfg == nil {
				return errors.New("configuration unavailable")
			}

			store, err := catalog.Open(cfg.CacheFilePath(), ctx.newLogger())
			if err != nil {
				return err
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			if destFlag == "" {
				roots := store.Roots()
				if len(roots) == 0 {
					fmt.Fprintln(out, "Cache is empty")
					return nil
				}
				rows := make([][]string, 0, len(roots))
				for _, root := range roots {
					rows = append(rows, []string{root, strconv.Itoa(len(store.Entries(root)))})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Destination", "Files"},
					rows,
					[]columnAlignment{alignLeft, alignRight},
				))
				return nil
			}

			root, err := config.ExpandPath(destFlag)
			if err != nil {
				return fmt.Errorf("resolve destination path: %w", err)
			}
			entries := store.Entries(root)
			if len(entries) == 0 {
				fmt.Fprintf(out, "No cached entries for %s\n", root)
				return nil
			}
			paths := make([]string, 0, len(entries))
			for rel := range entries {
				paths = append(paths, rel)
			}
			sort.Strings(paths)
			rows := make([][]string, 0, len(paths))
			for _, rel := range paths {
				fp := entries[rel]
				rows = append(rows, []string{rel, strconv.FormatInt(fp.Size, 10), fp.Taken})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Path", "Size", "Taken"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&destFlag, "dest", "", "Show entries for one destination root")
	return cmd
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	var destFlag string
	var allFlag bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Drop cached destination contents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			if cfg == nil {
				return errors.New("configuration unavailable")
			}
			if destFlag == "" && !allFlag {
				return errors.New("specify --dest DIR or --all")
			}

			store, err := catalog.Open(cfg.CacheFilePath(), ctx.newLogger())
			if err != nil {
				return err
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			if allFlag {
				store.RemoveAll()
				if err := store.Save(); err != nil {
					return err
				}
				fmt.Fprintln(out, "Cleared all cached destinations")
				return nil
			}

			root, err := config.ExpandPath(destFlag)
			if err != nil {
				return fmt.Errorf("resolve destination path: %w", err)
			}
			if !store.Remove(root) {
				fmt.Fprintf(out, "No cached entries for %s\n", root)
				return nil
			}
			if err := store.Save(); err != nil {
				return err
			}
			fmt.Fprintf(out, "Cleared cache for %s\n", root)
			return nil
		},
	}

	cmd.Flags().StringVar(&destFlag, "dest", "", "Clear one destination root")
	cmd.Flags().BoolVar(&allFlag, "all", false, "Clear every cached destination")
	return cmd
}
