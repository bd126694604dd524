package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"dayflow/internal/config"
	"dayflow/internal/schedule"
	"dayflow/internal/task"
)

var addDay string

var addCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Add a task to a day's bucket",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		store, err := task.OpenDiskStore(cfg.DataPath)
		if err != nil {
			return err
		}

		day := schedule.DayKey(addDay)
		if addDay == "" {
			day = schedule.NewDayKey(time.Now())
		} else if !day.Valid() {
			return fmt.Errorf("invalid day %q, want YYYY-MM-DD", addDay)
		}

		t, err := schedule.NewBoard(store).InsertNew(day, strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "added %q to %s\n", t.Text, day)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addDay, "day", "d", "", "target day as YYYY-MM-DD (default today)")
}
