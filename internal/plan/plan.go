// Package plan loads wellness plans produced by the (external) plan
// generator and validates their structure before scheduling.
package plan

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/TimHopkin/wellsched/internal/models"
)

// LoadFile reads and validates a plan JSON file.
func LoadFile(path string) (models.Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Plan{}, fmt.Errorf("failed to read plan file: %w", err)
	}

	var p models.Plan
	if err := json.Unmarshal(data, &p); err != nil {
		return models.Plan{}, fmt.Errorf("failed to parse plan file: %w", err)
	}

	if err := Validate(p); err != nil {
		return models.Plan{}, err
	}

	return p, nil
}

// Validate checks plan structure. A malformed plan is a contract violation
// and the only error the scheduling path raises; capacity and transport
// problems surface as per-activity failures instead.
func Validate(p models.Plan) error {
	if len(p.Days) == 0 {
		return fmt.Errorf("plan has no days")
	}

	for i, day := range p.Days {
		if day.Day < 1 {
			return fmt.Errorf("day %d: day number must be 1-based, got %d", i+1, day.Day)
		}
		for j, activity := range day.Activities {
			if activity.Type == "" {
				return fmt.Errorf("day %d, activity %d: missing type", day.Day, j+1)
			}
			if activity.DurationMin < 0 {
				return fmt.Errorf("day %d, activity %q: negative duration", day.Day, activity.Type)
			}
		}
	}

	return nil
}

// ParseWindows parses a preferred-windows flag of the form "6-9,18-21".
func ParseWindows(s string) ([]models.Window, error) {
	var windows []models.Window
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		var start, end int
		if _, err := fmt.Sscanf(part, "%d-%d", &start, &end); err != nil {
			return nil, fmt.Errorf("invalid window %q (want start-end, e.g. 6-9)", part)
		}
		if start < 0 || end > 24 || start >= end {
			return nil, fmt.Errorf("invalid window %q: hours must satisfy 0 <= start < end <= 24", part)
		}
		windows = append(windows, models.Window{StartHour: start, EndHour: end})
	}
	if len(windows) == 0 {
		return nil, fmt.Errorf("at least one preferred window is required")
	}
	return windows, nil
}
