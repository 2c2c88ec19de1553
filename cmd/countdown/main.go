// Command countdown prints the time left until the weekly market deadline.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campus-market-service/internal/config"
	"campus-market-service/internal/domain"
	"campus-market-service/internal/services"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(services.SystemClock{}).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(clock services.Clock) *cobra.Command {
	var (
		zone     string
		once     bool
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "countdown",
		Short: "Show the countdown to the weekly market deadline",
		Long: `Prints the next Friday 17:00 deadline in the configured zone and the
time remaining, refreshing once per interval until interrupted.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			schedule, err := domain.LoadFridayClose(zone)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if once {
				snap, err := services.SnapshotAt(clock.Now(), schedule)
				if err != nil {
					return err
				}
				return printSnapshot(out, snap)
			}

			err = services.RunCountdown(cmd.Context(), clock, schedule, interval, func(s services.DeadlineSnapshot) error {
				return printSnapshot(out, s)
			})
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&zone, "zone", config.Get("DEADLINE_ZONE", domain.DefaultZone), "IANA time zone of the deadline")
	cmd.Flags().BoolVar(&once, "once", false, "print a single line and exit")
	cmd.Flags().DurationVar(&interval, "interval", services.DefaultCountdownInterval, "refresh interval")

	return cmd
}

func printSnapshot(w io.Writer, s services.DeadlineSnapshot) error {
	_, err := fmt.Fprintf(w, "%s  %s\n", s.Label, s.Countdown)
	return err
}
