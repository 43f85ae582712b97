package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"snapvault/internal/watch"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var timeoutFlag time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Wait for a memory card to be inserted",
		Long: `Watch blocks until a block partition appears (a memory card or card
reader being plugged in) and prints its device node, so a shell loop can
mount it and start an import.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if timeoutFlag > 0 {
				var cancel context.CancelFunc
				runCtx, cancel = context.WithTimeout(runCtx, timeoutFlag)
				defer cancel()
			}

			device, err := watch.WaitForCard(runCtx, ctx.newLogger())
			if err != nil {
				if errors.Is(err, context.DeadlineExceeded) {
					return errors.New("no card detected before timeout")
				}
				return err
			}

			out := cmd.OutOrStdout()
			if device.Label != "" {
				fmt.Fprintf(out, "%s\t%s\n", device.Node, device.Label)
			} else {
				fmt.Fprintln(out, device.Node)
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeoutFlag, "timeout", 0, "Give up after this long (0 waits forever)")
	return cmd
}
