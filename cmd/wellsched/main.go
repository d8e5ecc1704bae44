package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/TimHopkin/wellsched/internal/calendar"
	"github.com/TimHopkin/wellsched/internal/cli"
	"github.com/TimHopkin/wellsched/internal/constants"
	"github.com/TimHopkin/wellsched/internal/errors"
	"github.com/TimHopkin/wellsched/internal/history"
	"github.com/TimHopkin/wellsched/internal/logger"
	"github.com/TimHopkin/wellsched/internal/storage"
)

var CLI struct {
	Version     kong.VersionFlag
	Debug       bool   `help:"Enable debug logging."`
	DataDir     string `help:"Data directory." default:"~/.config/wellsched"`
	Credentials string `help:"Google OAuth client credentials JSON. Defaults to <data-dir>/credentials.json."`
	Token       string `help:"Saved OAuth token JSON. Defaults to <data-dir>/token.json."`
	Calendar    string `help:"Calendar id." default:"primary"`

	Schedule   cli.ScheduleCmd   `cmd:"" help:"Schedule a wellness plan into free calendar slots."`
	Slots      cli.SlotsCmd      `cmd:"" help:"Preview free slots for a day."`
	Duplicates cli.DuplicatesCmd `cmd:"" help:"Detect and resolve duplicate wellness events."`
	Upcoming   cli.UpcomingCmd   `cmd:"" help:"List upcoming wellness activities."`
	Log        cli.LogCmd        `cmd:"" help:"Record an activity outcome."`
	Report     cli.ReportCmd     `cmd:"" help:"Summarize recent activity outcomes."`
	Doctor     cli.DoctorCmd     `cmd:"" help:"Run health checks and diagnostics."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Wellness plan scheduler with conflict avoidance and duplicate cleanup"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":         constants.Version,
			"default_windows": constants.DefaultWindows,
		},
	)

	dataDir := expandHome(CLI.DataDir)
	if err := logger.Init(logger.Config{Debug: CLI.Debug, DataDir: dataDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logging: %v\n", err)
		os.Exit(1)
	}

	store := storage.NewJSONStore(dataDir)
	if err := store.Load(); err != nil {
		errors.Fatal(err)
	}

	hist, err := history.Open(filepath.Join(dataDir, "history.db"))
	if err != nil {
		errors.Fatal(err)
	}
	defer hist.Close()

	credentials := CLI.Credentials
	if credentials == "" {
		credentials = filepath.Join(dataDir, constants.CredentialsFile)
	}
	token := CLI.Token
	if token == "" {
		token = filepath.Join(dataDir, constants.TokenFile)
	}

	appCtx := &cli.Context{
		Transport:  calendar.Open(context.Background(), credentials, token),
		Store:      store,
		History:    hist,
		CalendarID: CLI.Calendar,
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.Format(err))
		os.Exit(1)
	}
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
