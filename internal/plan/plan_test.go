package plan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/TimHopkin/wellsched/internal/models"
)

func writePlan(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.json")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writePlan(t, `{
		"days": [
			{
				"day": 1,
				"activities": [
					{"type": "running", "category": "cardio", "duration_minutes": 30, "best_time": "morning"},
					{"type": "meditation", "duration_minutes": 15}
				]
			},
			{"day": 2, "activities": [{"type": "yoga", "duration_minutes": 45}]}
		]
	}`)

	p, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Days) != 2 {
		t.Fatalf("got %d days, want 2", len(p.Days))
	}
	first := p.Days[0].Activities[0]
	if first.Type != "running" || first.DurationMin != 30 || first.BestTime != "morning" {
		t.Errorf("first activity = %+v", first)
	}
}

func TestLoadFile_MissingFile(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestLoadFile_MalformedJSON(t *testing.T) {
	path := writePlan(t, `{"days": [`)
	if _, err := LoadFile(path); err == nil {
		t.Error("expected an error for malformed json")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		plan    models.Plan
		wantErr bool
	}{
		{
			"valid plan",
			models.Plan{Days: []models.PlanDay{{Day: 1, Activities: []models.Activity{{Type: "yoga", DurationMin: 30}}}}},
			false,
		},
		{"no days", models.Plan{}, true},
		{
			"zero day number",
			models.Plan{Days: []models.PlanDay{{Day: 0}}},
			true,
		},
		{
			"missing activity type",
			models.Plan{Days: []models.PlanDay{{Day: 1, Activities: []models.Activity{{DurationMin: 30}}}}},
			true,
		},
		{
			"negative duration",
			models.Plan{Days: []models.PlanDay{{Day: 1, Activities: []models.Activity{{Type: "yoga", DurationMin: -5}}}}},
			true,
		},
		{
			"day without activities",
			models.Plan{Days: []models.PlanDay{{Day: 1}}},
			false,
		},
	}
	for _, tc := range cases {
		if err := Validate(tc.plan); (err != nil) != tc.wantErr {
			t.Errorf("%s: Validate() error = %v, wantErr %v", tc.name, err, tc.wantErr)
		}
	}
}

func TestParseWindows(t *testing.T) {
	windows, err := ParseWindows("6-9,18-21")
	if err != nil {
		t.Fatal(err)
	}
	want := []models.Window{{StartHour: 6, EndHour: 9}, {StartHour: 18, EndHour: 21}}
	if len(windows) != 2 || windows[0] != want[0] || windows[1] != want[1] {
		t.Errorf("windows = %v, want %v", windows, want)
	}
}

func TestParseWindows_Invalid(t *testing.T) {
	for _, in := range []string{"", "9-6", "banana", "0-25", "6-6"} {
		if _, err := ParseWindows(in); err == nil {
			t.Errorf("ParseWindows(%q) should fail", in)
		}
	}
}

func TestParseWindows_SkipsEmptyParts(t *testing.T) {
	windows, err := ParseWindows(" 6-9 , ,18-21")
	if err != nil {
		t.Fatal(err)
	}
	if len(windows) != 2 {
		t.Errorf("got %d windows, want 2", len(windows))
	}
}
