package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"dayflow/internal/config"
	"dayflow/internal/gcal"
	"dayflow/internal/task"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Mirror scheduled tasks to the configured Google calendar",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cfg.CalendarName == "" {
			return fmt.Errorf("no calendar configured, set DAYFLOW_CALENDAR or the calendar key in .dayflow.yaml")
		}
		store, err := task.OpenDiskStore(cfg.DataPath)
		if err != nil {
			return err
		}

		client := gcal.New(cfg.CalendarName)
		if err := client.SignIn(cmd.Context()); err != nil {
			return err
		}

		tasks, err := store.List()
		if err != nil {
			return err
		}

		pushed := 0
		for _, t := range tasks {
			if t.ScheduledStart == "" {
				continue
			}
			if t.Completed {
				if err := client.RemoveTask(t.ID); err != nil {
					return fmt.Errorf("failed to remove event for %q: %w", t.Text, err)
				}
				continue
			}
			if _, err := client.PushTask(t); err != nil {
				return fmt.Errorf("failed to push %q: %w", t.Text, err)
			}
			pushed++
		}
		fmt.Fprintf(cmd.OutOrStdout(), "synced %d scheduled task(s) to %q\n", pushed, cfg.CalendarName)
		return nil
	},
}
