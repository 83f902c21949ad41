package classify

import (
	"fmt"
	"time"

	"github.com/intapp/jiratime/pkg/models"
)

// Aggregator drives the day classifier across a date range and collects
// the results into a single flat list.
type Aggregator struct {
	// Searcher executes the per-day tracker queries.
	Searcher Searcher

	// User is the tracker username whose comments qualify for the
	// review/investigation phase.
	User string

	// OnDay, when set, is called after each weekday has been classified.
	// Used by the CLI for progress reporting.
	OnDay func(day time.Time)
}

// Aggregate classifies every weekday from start to end inclusive.
// Saturdays and Sundays are skipped outright. Classifications for
// different days are independent; no deduplication happens across days.
func (a *Aggregator) Aggregate(start, end time.Time) ([]models.Classification, error) {
	start = startOfDay(start)
	end = startOfDay(end)
	if start.After(end) {
		return nil, fmt.Errorf("start day %s is after end day %s",
			start.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	var all []models.Classification
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if isWeekend(day) {
			continue
		}

		items, err := a.ClassifyDay(day)
		if err != nil {
			return nil, fmt.Errorf("classifying %s: %w", day.Format("2006-01-02"), err)
		}
		all = append(all, items...)

		if a.OnDay != nil {
			a.OnDay(day)
		}
	}

	return all, nil
}

// CountWeekdays returns the number of days Aggregate will classify for
// the given range.
func CountWeekdays(start, end time.Time) int {
	start = startOfDay(start)
	end = startOfDay(end)

	count := 0
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if !isWeekend(day) {
			count++
		}
	}
	return count
}

func isWeekend(day time.Time) bool {
	wd := day.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
