package cli

import (
	"context"
	"fmt"

	"github.com/TimHopkin/wellsched/internal/calendar"
)

type UpcomingCmd struct {
	Days int `help:"How many days ahead to list." default:"7"`
}

func (c *UpcomingCmd) Run(ctx *Context) error {
	events := calendar.UpcomingActivities(context.Background(), ctx.Transport, ctx.CalendarID, c.Days)

	if len(events) == 0 {
		fmt.Println("No upcoming wellness activities.")
		return nil
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("Upcoming activities (next %d days)", c.Days)))
	for _, e := range events {
		fmt.Printf("  %s  %s\n", e.Start.Format("Mon Jan 02, 15:04"), e.Summary)
		if e.Description != "" {
			fmt.Printf("    %s\n", subtleStyle.Render(e.Description))
		}
	}
	return nil
}
