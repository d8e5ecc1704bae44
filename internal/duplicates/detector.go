// Package duplicates detects and resolves duplicate wellness events left
// behind by repeated scheduling runs. Detection is similarity-based: two
// events are duplicates when their start times and durations fall within a
// tolerance and their cleaned titles match or contain each other.
package duplicates

import (
	"context"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/TimHopkin/wellsched/internal/calendar"
	"github.com/TimHopkin/wellsched/internal/constants"
	"github.com/TimHopkin/wellsched/internal/logger"
	"github.com/TimHopkin/wellsched/internal/models"
)

// nonWordPattern strips emoji and punctuation; word characters, spaces,
// and hyphens survive.
var nonWordPattern = regexp.MustCompile(`[^\w\s-]`)

// fillerWords are standalone words dropped from titles before comparison,
// so "Morning Run" and "Run" compare equal.
var fillerWords = map[string]bool{
	"morning":   true,
	"evening":   true,
	"afternoon": true,
	"daily":     true,
	"weekly":    true,
}

// Detector finds duplicate pairs among this tool's events on the remote
// calendar.
type Detector struct {
	transport    calendar.Transport
	calendarID   string
	toleranceMin float64
}

func NewDetector(transport calendar.Transport, calendarID string, toleranceMin float64) *Detector {
	if toleranceMin <= 0 {
		toleranceMin = constants.DefaultTimeToleranceMin
	}
	return &Detector{
		transport:    transport,
		calendarID:   calendarID,
		toleranceMin: toleranceMin,
	}
}

// DetectPairs compares every unordered pair of wellness events in range
// and returns the pairs judged duplicates, each carrying its independently
// computed similarity score. A transport failure degrades to an empty
// result with a logged warning.
func (d *Detector) DetectPairs(ctx context.Context, start, end time.Time) []models.DuplicatePair {
	events, err := d.transport.ListEvents(ctx, d.calendarID, start, end, constants.EventSignature)
	if err != nil {
		logger.Warn("Could not fetch events for duplicate detection", "error", err)
		return nil
	}

	var pairs []models.DuplicatePair
	now := time.Now()
	for i := range events {
		for j := i + 1; j < len(events); j++ {
			if !AreDuplicates(events[i], events[j], d.toleranceMin) {
				continue
			}
			pairs = append(pairs, models.DuplicatePair{
				Event1:          events[i],
				Event2:          events[j],
				SimilarityScore: SimilarityScore(events[i], events[j]),
				DetectedAt:      now,
			})
		}
	}

	return pairs
}

// AreDuplicates reports whether two events represent the same logical
// activity: starts within tolerance, durations within tolerance, and
// cleaned titles equal or one containing the other.
func AreDuplicates(e1, e2 models.RemoteEvent, toleranceMin float64) bool {
	timeDiff := math.Abs(e1.Start.Sub(e2.Start).Minutes())
	if timeDiff > toleranceMin {
		return false
	}

	durationDiff := math.Abs(e1.DurationMinutes() - e2.DurationMinutes())
	if durationDiff > toleranceMin {
		return false
	}

	title1 := CleanTitle(e1.Summary)
	title2 := CleanTitle(e2.Summary)

	if title1 == title2 {
		return true
	}
	return strings.Contains(title1, title2) || strings.Contains(title2, title1)
}

// SimilarityScore rates two events on a 0-100 scale: up to 40 points for
// start-time proximity (minus 2 per minute of difference), up to 20 for
// duration proximity (minus 1 per minute), and 40/30/0 for title
// equality/containment/mismatch. Computed independently of AreDuplicates.
func SimilarityScore(e1, e2 models.RemoteEvent) float64 {
	timeDiff := math.Abs(e1.Start.Sub(e2.Start).Minutes())
	score := math.Max(0, 40-timeDiff*2)

	durationDiff := math.Abs(e1.DurationMinutes() - e2.DurationMinutes())
	score += math.Max(0, 20-durationDiff)

	title1 := CleanTitle(e1.Summary)
	title2 := CleanTitle(e2.Summary)
	switch {
	case title1 == title2:
		score += 40
	case strings.Contains(title1, title2) || strings.Contains(title2, title1):
		score += 30
	}

	return math.Min(100, score)
}

// CleanTitle normalizes an event title for comparison: lowercase, emoji
// and punctuation stripped, filler words removed.
func CleanTitle(title string) string {
	title = nonWordPattern.ReplaceAllString(strings.ToLower(title), "")

	var kept []string
	for _, word := range strings.Fields(title) {
		if !fillerWords[word] {
			kept = append(kept, word)
		}
	}
	return strings.Join(kept, " ")
}
