package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bborn/duedate/internal/clock"
	"github.com/bborn/duedate/internal/hooks"
	"github.com/bborn/duedate/internal/monitor"
	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	var (
		interval time.Duration
		hooksDir string
	)
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch due dates and run hooks",
		Long: `Re-evaluate every item's due date periodically and whenever the database
changes. When an item becomes due soon or overdue, the matching hook script
(item.due_soon or item.overdue) in the hooks directory is executed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			logger := newLogger("due")
			if hooksDir == "" {
				hooksDir, err = hooks.EnsureHooksDir()
				if err != nil {
					logger.Warn("Hooks disabled", "error", err)
				}
			}
			runner := hooks.NewWithLogger(hooksDir, newLogger("hooks"))
			defer runner.Wait()

			m := monitor.New(s.db, runner, monitor.Options{
				Interval:  interval,
				WatchPath: s.db.Path(),
				Clock:     clock.Real{},
				Logger:    newLogger("monitor"),
			})

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger.Info("Watching due dates", "db", s.db.Path(), "hooks", hooksDir, "interval", interval)
			if err := m.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			logger.Info("Stopped")
			return nil
		},
	}
	cmd.Flags().DurationVar(&interval, "interval", monitor.DefaultInterval, "Rescan interval")
	cmd.Flags().StringVar(&hooksDir, "hooks-dir", "", "Hooks directory (default: ~/.config/due/hooks)")
	return cmd
}
