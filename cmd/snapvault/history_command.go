package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"snapvault/internal/journal"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limitFlag int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent import batches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			if cfg == nil {
				return errors.New("configuration unavailable")
			}
			if !cfg.Journal.Enabled {
				return errors.New("journal is disabled in config")
			}

			store, err := journal.Open(cfg.Journal.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			batches, err := store.RecentBatches(cmd.Context(), limitFlag)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(batches) == 0 {
				fmt.Fprintln(out, "No imports recorded")
				return nil
			}

			rows := make([][]string, 0, len(batches))
			for _, b := range batches {
				rows = append(rows, []string{
					b.ID,
					b.StartedAt.Local().Format("2006-01-02 15:04"),
					b.Mode,
					b.SourceRoot,
					b.DestRoot,
					fmt.Sprintf("%d/%d", b.ExecutedCount, b.TaskCount),
					b.FinishedAt.Sub(b.StartedAt).Round(time.Second).String(),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "Started", "Mode", "Source", "Destination", "Done", "Duration"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limitFlag, "limit", "n", 20, "Maximum number of batches to list")
	cmd.AddCommand(newHistoryShowCommand(ctx))
	return cmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show the file operations of one batch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			if cfg == nil {
				return errors.New("configuration unavailable")
			}
			if !cfg.Journal.Enabled {
				return errors.New("journal is disabled in config")
			}

			store, err := journal.Open(cfg.Journal.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			ops, err := store.BatchOperations(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(ops) == 0 {
				fmt.Fprintf(out, "No operations recorded for batch %s\n", args[0])
				return nil
			}

			rows := make([][]string, 0, len(ops))
			for _, op := range ops {
				rows = append(rows, []string{strconv.Itoa(op.Seq), op.Source, op.Dest})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Source", "Destination"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}
}
