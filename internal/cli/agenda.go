package cli

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"dayflow/internal/config"
	"dayflow/internal/schedule"
	"dayflow/internal/task"
	"dayflow/internal/util"
)

var agendaDays int

var agendaCmd = &cobra.Command{
	Use:   "agenda",
	Short: "Print the next days' task buckets",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		store, err := task.OpenDiskStore(cfg.DataPath)
		if err != nil {
			return err
		}

		days := agendaDays
		if days <= 0 {
			days = cfg.DaysShown
		}
		return printAgenda(cmd, schedule.NewBoard(store), time.Now(), days)
	},
}

func init() {
	agendaCmd.Flags().IntVarP(&agendaDays, "days", "d", 0, "how many days to print (default from config)")
}

// printAgenda writes one table per day that has tasks, in bucket order.
func printAgenda(cmd *cobra.Command, board *schedule.Board, ref time.Time, days int) error {
	heading := color.New(color.Bold, color.FgCyan)
	subtle := color.New(color.FgHiBlack)
	printed := false

	for _, day := range schedule.EnumerateDays(ref, days) {
		bucket, err := board.BucketFor(day)
		if err != nil {
			return err
		}
		if len(bucket) == 0 {
			continue
		}
		printed = true

		date, err := day.Date()
		if err != nil {
			return err
		}
		heading.Fprintf(cmd.OutOrStdout(), "%s · %s\n", util.DayLabel(date, ref), date.Format("Mon Jan 2"))

		tbl := uitable.New()
		tbl.Separator = "  "
		for _, t := range bucket {
			tbl.AddRow(agendaBullet(t), t.Text, agendaSlot(t), agendaSpent(t))
		}
		fmt.Fprintln(cmd.OutOrStdout(), tbl)
		fmt.Fprintln(cmd.OutOrStdout())
	}

	if !printed {
		subtle.Fprintln(cmd.OutOrStdout(), "nothing scheduled")
	}
	return nil
}

// agendaBullet colors the row marker by priority.
func agendaBullet(t *task.Task) string {
	switch t.Priority {
	case task.PriorityHigh:
		return color.RedString("•")
	case task.PriorityMedium:
		return color.YellowString("•")
	default:
		return "•"
	}
}

func agendaSlot(t *task.Task) string {
	if t.ScheduledStart == "" {
		return ""
	}
	start, err := schedule.ParseScheduledStart(t.ScheduledStart)
	if err != nil {
		return ""
	}
	return util.FormatHour(start.Hour())
}

func agendaSpent(t *task.Task) string {
	if t.TimeSpent == 0 {
		return ""
	}
	return util.FormatClock(t.TimeSpent)
}
