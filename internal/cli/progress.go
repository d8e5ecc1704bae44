package cli

import (
	"fmt"
	"time"

	"github.com/TimHopkin/wellsched/internal/constants"
	"github.com/TimHopkin/wellsched/internal/history"
)

type LogCmd struct {
	Activity string `help:"Activity type, e.g. running." required:""`
	Status   string `help:"Outcome: completed, skipped, or partial." required:""`
	Date     string `help:"Day of the activity (YYYY-MM-DD). Defaults to today."`
	Minutes  int    `help:"Minutes actually spent."`
	Notes    string `help:"Optional notes."`
}

func (c *LogCmd) Run(ctx *Context) error {
	status, err := history.ParseStatus(c.Status)
	if err != nil {
		return err
	}

	day, err := ParseDate(c.Date)
	if err != nil {
		return fmt.Errorf("invalid date: %w", err)
	}

	entry, err := ctx.History.Log(history.Entry{
		Day:          day.Format(constants.DateFormat),
		ActivityType: c.Activity,
		Status:       status,
		Minutes:      c.Minutes,
		Notes:        c.Notes,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Logged %s %s for %s\n", entry.ActivityType, entry.Status, entry.Day)
	return nil
}

type ReportCmd struct {
	Days int `help:"Window size in days, ending today." default:"7"`
}

func (c *ReportCmd) Run(ctx *Context) error {
	endDay := time.Now()
	startDay := endDay.AddDate(0, 0, -(c.Days - 1))

	report, err := ctx.History.BuildReport(
		startDay.Format(constants.DateFormat),
		endDay.Format(constants.DateFormat),
	)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("Progress %s to %s", report.StartDay, report.EndDay)))
	fmt.Printf("%s %d\n", successStyle.Render("Completed:"), report.Completed)
	fmt.Printf("Partial:   %d\n", report.Partial)
	fmt.Printf("%s   %d\n", warningStyle.Render("Skipped:"), report.Skipped)
	fmt.Printf("Active minutes: %d\n", report.TotalMinutes)
	fmt.Printf("Adherence: %.0f%%\n", report.AdherencePct)
	return nil
}
