package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/TimHopkin/wellsched/internal/calendar"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false

	// Check 1: calendar session capability
	if ctx.Transport.Capability() == calendar.CapabilityLive {
		fmt.Printf("✓ Calendar session: live\n")
	} else {
		fmt.Printf("⚠ Calendar session: demo mode (no credentials/token)\n")
		fmt.Printf("   Scheduling will use mock busy times and synthesized event ids.\n")
	}

	// Check 2: data directory writable
	if err := checkDataDir(ctx); err != nil {
		fmt.Printf("❌ Data directory: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Data directory: OK (%s)\n", ctx.Store.DataDir())
	}

	// Check 3: result store loads
	if err := ctx.Store.Load(); err != nil {
		fmt.Printf("❌ Result store: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Result store: OK\n")
	}

	// Check 4: history database reachable
	if err := checkHistory(ctx); err != nil {
		fmt.Printf("❌ History database: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ History database: OK\n")
	}

	// Check 5: clock/timezone sanity
	if err := checkClockTimezone(); err != nil {
		fmt.Printf("❌ Clock/timezone: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock/timezone: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDataDir(ctx *Context) error {
	dir := ctx.Store.DataDir()
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("failed to stat data directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	probe, err := os.CreateTemp(dir, ".doctor-*")
	if err != nil {
		return fmt.Errorf("data directory is not writable: %w", err)
	}
	probe.Close()
	os.Remove(probe.Name())
	return nil
}

func checkHistory(ctx *Context) error {
	today := time.Now().Format("2006-01-02")
	if _, err := ctx.History.Entries(today, today); err != nil {
		return fmt.Errorf("failed to query history: %w", err)
	}
	return nil
}

func checkClockTimezone() error {
	now := time.Now()

	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	_, offset := now.Zone()
	if offset == 0 && now.Location() == time.UTC {
		fmt.Printf("   Note: timezone is UTC\n")
	}

	return nil
}
