package duplicates

import (
	"fmt"
	"strings"
	"time"

	"github.com/TimHopkin/wellsched/internal/models"
)

// GroupPairs clusters duplicate pairs into groups. Pairs below minScore are
// ignored. Clustering is connected-components over the similarity graph,
// so mutually similar events group transitively regardless of pair order;
// for a fixed input order the output is fully deterministic. Events appear
// in first-seen order, and a group's score is the strongest edge inside it.
func GroupPairs(pairs []models.DuplicatePair, minScore float64) []models.DuplicateGroup {
	parent := map[string]string{}
	events := map[string]models.RemoteEvent{}
	var order []string

	var find func(string) string
	find = func(id string) string {
		if parent[id] != id {
			parent[id] = find(parent[id])
		}
		return parent[id]
	}

	register := func(e models.RemoteEvent) {
		if _, ok := events[e.EventID]; ok {
			return
		}
		events[e.EventID] = e
		parent[e.EventID] = e.EventID
		order = append(order, e.EventID)
	}

	for _, p := range pairs {
		if p.SimilarityScore < minScore {
			continue
		}
		register(p.Event1)
		register(p.Event2)
		r1, r2 := find(p.Event1.EventID), find(p.Event2.EventID)
		if r1 != r2 {
			parent[r2] = r1
		}
	}

	memberIDs := map[string][]string{}
	var rootOrder []string
	for _, id := range order {
		root := find(id)
		if _, ok := memberIDs[root]; !ok {
			rootOrder = append(rootOrder, root)
		}
		memberIDs[root] = append(memberIDs[root], id)
	}

	bestEdge := map[string]float64{}
	for _, p := range pairs {
		if p.SimilarityScore < minScore {
			continue
		}
		root := find(p.Event1.EventID)
		if p.SimilarityScore > bestEdge[root] {
			bestEdge[root] = p.SimilarityScore
		}
	}

	now := time.Now()
	groups := make([]models.DuplicateGroup, 0, len(rootOrder))
	for i, root := range rootOrder {
		members := make([]models.RemoteEvent, 0, len(memberIDs[root]))
		for _, id := range memberIDs[root] {
			members = append(members, events[id])
		}
		groups = append(groups, models.DuplicateGroup{
			GroupID:           fmt.Sprintf("dup_group_%d", i+1),
			Events:            members,
			SimilarityScore:   bestEdge[root],
			RecommendedAction: recommendAction(members),
			CreatedAt:         now,
		})
	}

	return groups
}

// Completeness measures how much useful information an event carries, 0-100:
// a summary, a description (with a bonus for detail), full time info, and a
// title that is more specific than the generic "activity"/"exercise".
func Completeness(e models.RemoteEvent) int {
	score := 0

	if e.Summary != "" {
		score += 20
	}

	if e.Description != "" {
		score += 30
		if len(e.Description) > 50 {
			score += 10
		}
	}

	if !e.Start.IsZero() && !e.End.IsZero() {
		score += 20
	}

	summary := strings.ToLower(e.Summary)
	if summary != "" && !strings.Contains(summary, "activity") && !strings.Contains(summary, "exercise") {
		score += 20
	}

	if score > 100 {
		score = 100
	}
	return score
}

// recommendAction picks the most complete member to keep; ties keep the
// first occurrence.
func recommendAction(members []models.RemoteEvent) models.RecommendedAction {
	bestIdx := 0
	bestScore := Completeness(members[0])
	for i := 1; i < len(members); i++ {
		if score := Completeness(members[i]); score > bestScore {
			bestIdx = i
			bestScore = score
		}
	}

	// Second-highest completeness decides confidence.
	secondBest := -1
	allEqual := true
	for i, m := range members {
		score := Completeness(m)
		if i != bestIdx && score > secondBest {
			secondBest = score
		}
		if score != bestScore {
			allEqual = false
		}
	}

	var deleteIDs []string
	for i, m := range members {
		if i != bestIdx {
			deleteIDs = append(deleteIDs, m.EventID)
		}
	}

	reason := fmt.Sprintf("event %d has more complete information", bestIdx+1)
	if allEqual {
		reason = "events have equal information - keeping first occurrence"
	}

	confidence := "medium"
	if bestScore-secondBest > 20 {
		confidence = "high"
	}

	return models.RecommendedAction{
		Action:         "delete_duplicate",
		KeepEventID:    members[bestIdx].EventID,
		DeleteEventIDs: deleteIDs,
		Reason:         reason,
		Confidence:     confidence,
	}
}
