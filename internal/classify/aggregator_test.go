package classify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intapp/jiratime/pkg/models"
)

func TestAggregateSkipsWeekends(t *testing.T) {
	// Friday through Monday.
	friday := time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC)
	monday := time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)

	searcher := &fakeSearcher{results: map[string][]models.Issue{
		resolvedJQL(friday): {{Key: "FRI-1", Summary: "Friday fix"}},
		resolvedJQL(monday): {{Key: "MON-1", Summary: "Monday fix"}},
	}}

	var visited []time.Time
	agg := &Aggregator{
		Searcher: searcher,
		User:     "alice",
		OnDay: func(day time.Time) {
			visited = append(visited, day)
		},
	}

	items, err := agg.Aggregate(friday, monday)
	require.NoError(t, err)

	// Saturday and Sunday are never queried.
	require.Len(t, items, 2)
	assert.Equal(t, "FRI-1", items[0].Key)
	assert.Equal(t, friday, items[0].Date)
	assert.Equal(t, "MON-1", items[1].Key)
	assert.Equal(t, monday, items[1].Date)

	assert.Equal(t, []time.Time{friday, monday}, visited)
	// Three queries per classified day, none for the weekend.
	assert.Len(t, searcher.calls, 6)
}

func TestAggregateSameKeyAcrossDays(t *testing.T) {
	monday := time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)
	tuesday := time.Date(2024, 5, 7, 0, 0, 0, 0, time.UTC)

	searcher := &fakeSearcher{results: map[string][]models.Issue{
		workedJQL(monday):    {{Key: "ABC-1", Summary: "Long running task"}},
		resolvedJQL(tuesday): {{Key: "ABC-1", Summary: "Long running task"}},
	}}
	agg := &Aggregator{Searcher: searcher, User: "alice"}

	items, err := agg.Aggregate(monday, tuesday)
	require.NoError(t, err)

	// Deduplication is per day only; the key recurs across days.
	require.Len(t, items, 2)
	assert.Equal(t, models.StatusWorked, items[0].Status)
	assert.Equal(t, models.StatusCompleted, items[1].Status)
}

func TestAggregateNormalizesTimes(t *testing.T) {
	// Mid-day timestamps still classify the whole calendar day.
	start := time.Date(2024, 5, 6, 14, 30, 0, 0, time.UTC)
	end := time.Date(2024, 5, 6, 9, 15, 0, 0, time.UTC)

	searcher := &fakeSearcher{results: map[string][]models.Issue{}}
	agg := &Aggregator{Searcher: searcher, User: "alice"}

	_, err := agg.Aggregate(start, end)
	require.NoError(t, err)
	require.Len(t, searcher.calls, 3)
	assert.Contains(t, searcher.calls[0].jql, `"2024/05/06"`)
}

func TestAggregateRejectsInvertedRange(t *testing.T) {
	monday := time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)
	tuesday := time.Date(2024, 5, 7, 0, 0, 0, 0, time.UTC)

	agg := &Aggregator{Searcher: &fakeSearcher{}, User: "alice"}

	_, err := agg.Aggregate(tuesday, monday)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after end day")
}

func TestCountWeekdays(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{
			name:  "Single weekday",
			start: time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC),
			want:  1,
		},
		{
			name:  "Full week",
			start: time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2024, 5, 12, 0, 0, 0, 0, time.UTC),
			want:  5,
		},
		{
			name:  "Weekend only",
			start: time.Date(2024, 5, 4, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC),
			want:  0,
		},
		{
			name:  "Inverted range",
			start: time.Date(2024, 5, 7, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC),
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountWeekdays(tt.start, tt.end))
		})
	}
}
