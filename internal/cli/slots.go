package cli

import (
	"context"
	"fmt"

	"github.com/TimHopkin/wellsched/internal/plan"
	"github.com/TimHopkin/wellsched/internal/schedule"
)

type SlotsCmd struct {
	Date     string `help:"Date to inspect (YYYY-MM-DD). Defaults to today."`
	Duration int    `help:"Slot duration in minutes." default:"30"`
	Windows  string `help:"Preferred windows, e.g. 6-9,18-21." default:"${default_windows}"`
}

func (c *SlotsCmd) Run(ctx *Context) error {
	windows, err := plan.ParseWindows(c.Windows)
	if err != nil {
		return err
	}

	day, err := ParseDate(c.Date)
	if err != nil {
		return fmt.Errorf("invalid date: %w", err)
	}

	finder := schedule.NewFinder(ctx.Transport, ctx.CalendarID)
	slots := finder.FreeSlots(context.Background(), day, day.AddDate(0, 0, 1), c.Duration, windows)

	if len(slots) == 0 {
		fmt.Println(warningStyle.Render("No free slots found."))
		return nil
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("Free %d-minute slots on %s", c.Duration, slots[0].Date)))
	for _, slot := range slots {
		fmt.Printf("  %s - %s\n", slot.Start.Format("15:04"), slot.End.Format("15:04"))
	}
	fmt.Printf("\n%s\n", subtleStyle.Render(fmt.Sprintf("%d candidates (overlapping every 15 minutes)", len(slots))))
	return nil
}
