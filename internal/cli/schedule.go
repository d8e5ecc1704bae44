package cli

import (
	"context"
	"fmt"

	"github.com/TimHopkin/wellsched/internal/constants"
	"github.com/TimHopkin/wellsched/internal/models"
	"github.com/TimHopkin/wellsched/internal/plan"
	"github.com/TimHopkin/wellsched/internal/schedule"
)

type ScheduleCmd struct {
	Plan    string `arg:"" help:"Path to the plan JSON file." type:"existingfile"`
	Start   string `help:"Start date (YYYY-MM-DD). Defaults to today."`
	Windows string `help:"Preferred windows, e.g. 6-9,18-21." default:"${default_windows}"`
}

func (c *ScheduleCmd) Run(ctx *Context) error {
	p, err := plan.LoadFile(c.Plan)
	if err != nil {
		return err
	}

	windows, err := plan.ParseWindows(c.Windows)
	if err != nil {
		return err
	}

	startDate, err := ParseDate(c.Start)
	if err != nil {
		return fmt.Errorf("invalid start date: %w", err)
	}

	scheduler := schedule.New(ctx.Transport, ctx.CalendarID, ctx.Store)
	result := scheduler.Schedule(context.Background(), p, startDate, windows)

	printScheduleSummary(result)
	return nil
}

func printScheduleSummary(result models.ScheduleResult) {
	fmt.Println(titleStyle.Render("Scheduling Summary"))
	fmt.Printf("%s %d activities\n", successStyle.Render("Scheduled:"), result.ScheduledCount)
	fmt.Printf("%s %d activities\n", dangerStyle.Render("Failed:"), result.FailedCount)
	fmt.Printf("Plan start date: %s\n\n", result.StartDate.Format(constants.DateFormat))

	if len(result.ScheduledActivities) > 0 {
		fmt.Println("Scheduled activities:")
		for _, item := range result.ScheduledActivities {
			fmt.Printf("  Day %d: %s\n", item.Day, item.Activity.DisplayName())
			fmt.Printf("    %s\n", subtleStyle.Render(fmt.Sprintf("%s, %d minutes",
				item.ScheduledTime.Format("Mon Jan 02, 15:04"), item.Activity.DurationMin)))
		}
		fmt.Println()
	}

	if len(result.FailedActivities) > 0 {
		fmt.Println("Failed to schedule:")
		for _, item := range result.FailedActivities {
			fmt.Printf("  Day %d: %s\n", item.Day, item.Activity.DisplayName())
			fmt.Printf("    %s\n", warningStyle.Render("Reason: "+item.Reason))
		}
	}
}
