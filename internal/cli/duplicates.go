package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/TimHopkin/wellsched/internal/duplicates"
	"github.com/TimHopkin/wellsched/internal/models"
)

type DuplicatesCmd struct {
	Detect  DuplicatesDetectCmd  `cmd:"" help:"List duplicate event pairs."`
	Groups  DuplicatesGroupsCmd  `cmd:"" help:"List duplicate groups with recommended actions."`
	Resolve DuplicatesResolveCmd `cmd:"" help:"Resolve duplicate groups by deleting unwanted events."`
	Purge   DuplicatesPurgeCmd   `cmd:"" help:"Delete specific events by id (batch, capped)."`
}

type detectionRange struct {
	DaysBack  int `help:"How many days back to scan." default:"30"`
	DaysAhead int `help:"How many days ahead to scan." default:"30"`
}

func (r detectionRange) bounds() (time.Time, time.Time) {
	now := time.Now()
	return now.AddDate(0, 0, -r.DaysBack), now.AddDate(0, 0, r.DaysAhead)
}

type DuplicatesDetectCmd struct {
	detectionRange
	Tolerance float64 `help:"Start/duration tolerance in minutes." default:"5"`
}

func (c *DuplicatesDetectCmd) Run(ctx *Context) error {
	start, end := c.bounds()
	detector := duplicates.NewDetector(ctx.Transport, ctx.CalendarID, c.Tolerance)
	pairs := detector.DetectPairs(context.Background(), start, end)

	if len(pairs) == 0 {
		fmt.Println(successStyle.Render("No duplicate events detected."))
		return nil
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("%d duplicate pairs", len(pairs))))
	for _, pair := range pairs {
		fmt.Printf("  %.0f%%  %q (%s)  ~  %q (%s)\n",
			pair.SimilarityScore,
			pair.Event1.Summary, pair.Event1.Start.Format("Jan 02 15:04"),
			pair.Event2.Summary, pair.Event2.Start.Format("Jan 02 15:04"))
	}
	return nil
}

type DuplicatesGroupsCmd struct {
	detectionRange
	Tolerance float64 `help:"Start/duration tolerance in minutes." default:"5"`
	MinScore  float64 `help:"Minimum similarity score for grouping." default:"80"`
}

func (c *DuplicatesGroupsCmd) Run(ctx *Context) error {
	groups := detectGroups(ctx, c.detectionRange, c.Tolerance, c.MinScore)
	if len(groups) == 0 {
		fmt.Println(successStyle.Render("No duplicate groups found."))
		return nil
	}

	for _, group := range groups {
		printGroup(group)
	}
	return nil
}

type DuplicatesResolveCmd struct {
	detectionRange
	Tolerance float64 `help:"Start/duration tolerance in minutes." default:"5"`
	MinScore  float64 `help:"Minimum similarity score for grouping." default:"80"`
	Strategy  string  `help:"Resolution strategy: recommended, keep_first, or keep_last." default:"recommended"`
	DryRun    bool    `help:"Report intended deletions without performing them."`
	Yes       bool    `help:"Skip the confirmation prompt."`
}

func (c *DuplicatesResolveCmd) Run(ctx *Context) error {
	strategy, err := duplicates.ParseStrategy(c.Strategy)
	if err != nil {
		return err
	}

	groups := detectGroups(ctx, c.detectionRange, c.Tolerance, c.MinScore)
	if len(groups) == 0 {
		fmt.Println(successStyle.Render("No duplicate groups to resolve."))
		return nil
	}

	deletions := 0
	for _, g := range groups {
		deletions += len(g.Events) - 1
	}

	if !c.DryRun && !c.Yes {
		ok, err := confirmDeletion(fmt.Sprintf("Delete %d duplicate events across %d groups?", deletions, len(groups)))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Aborted.")
			return nil
		}
	}

	resolver := duplicates.NewResolver(ctx.Transport, ctx.CalendarID, ctx.Store)
	result := resolver.Resolve(context.Background(), groups, strategy, c.DryRun)
	printResolution(result)
	return nil
}

type DuplicatesPurgeCmd struct {
	IDs    []string `help:"Event ids to delete." required:"" name:"ids" sep:","`
	DryRun bool     `help:"Report intended deletions without performing them."`
	Yes    bool     `help:"Skip the confirmation prompt."`
}

func (c *DuplicatesPurgeCmd) Run(ctx *Context) error {
	if !c.DryRun && !c.Yes {
		ok, err := confirmDeletion(fmt.Sprintf("Delete %d events?", len(c.IDs)))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Aborted.")
			return nil
		}
	}

	resolver := duplicates.NewResolver(ctx.Transport, ctx.CalendarID, ctx.Store)
	result := resolver.BatchDelete(context.Background(), c.IDs, c.DryRun)

	if result.DryRun {
		fmt.Println(warningStyle.Render("Dry run - no events deleted."))
	}
	fmt.Printf("Requested: %d, deleted: %d, failed: %d\n",
		result.RequestedDeletions, result.SuccessfulDeletions, len(result.FailedDeletions))
	for _, f := range result.FailedDeletions {
		if f.EventID != "" {
			fmt.Printf("  %s\n", dangerStyle.Render(fmt.Sprintf("%s: %s", f.EventID, f.Reason)))
		} else {
			fmt.Printf("  %s\n", dangerStyle.Render(f.Reason))
		}
	}
	return nil
}

func detectGroups(ctx *Context, r detectionRange, tolerance, minScore float64) []models.DuplicateGroup {
	start, end := r.bounds()
	detector := duplicates.NewDetector(ctx.Transport, ctx.CalendarID, tolerance)
	pairs := detector.DetectPairs(context.Background(), start, end)
	return duplicates.GroupPairs(pairs, minScore)
}

func printGroup(group models.DuplicateGroup) {
	fmt.Println(titleStyle.Render(fmt.Sprintf("%s (score %.0f)", group.GroupID, group.SimilarityScore)))
	for _, e := range group.Events {
		marker := "delete"
		if e.EventID == group.RecommendedAction.KeepEventID {
			marker = "keep"
		}
		fmt.Printf("  [%s] %q  %s  (id %s)\n", marker, e.Summary, e.Start.Format("Jan 02 15:04"), e.EventID)
	}
	fmt.Printf("  %s\n", subtleStyle.Render(fmt.Sprintf("%s (%s confidence)",
		group.RecommendedAction.Reason, group.RecommendedAction.Confidence)))
}

func printResolution(result models.ResolutionResult) {
	if result.DryRun {
		fmt.Println(warningStyle.Render("Dry run - no events deleted."))
	}
	fmt.Printf("Processed %d of %d groups\n", result.ProcessedGroups, result.TotalGroups)
	for _, d := range result.DeletedEvents {
		fmt.Printf("  %s %s\n", d.Status, d.EventID)
	}
	if len(result.FailedDeletions) > 0 {
		fmt.Println(dangerStyle.Render(fmt.Sprintf("%d deletions failed:", len(result.FailedDeletions))))
		for _, f := range result.FailedDeletions {
			fmt.Printf("  %s: %s\n", f.EventID, f.Reason)
		}
	}
	fmt.Printf("%s\n", subtleStyle.Render("Kept: "+strings.Join(result.KeptEvents, ", ")))
}

func confirmDeletion(prompt string) (bool, error) {
	var confirmed bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(prompt).
			Affirmative("Delete").
			Negative("Cancel").
			Value(&confirmed),
	))
	if err := form.Run(); err != nil {
		return false, err
	}
	return confirmed, nil
}
