package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"techroadmap/tech"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func dayPtr(year int, month time.Month, d int) *time.Time {
	t := day(year, month, d)
	return &t
}

func TestSummarizeEmpty(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestSummarizeCounts(t *testing.T) {
	techs := []tech.Technology{
		{Status: tech.StatusCompleted},
		{Status: tech.StatusInProgress},
		{Status: tech.StatusNotStarted},
	}

	summary := Summarize(techs)

	assert.Equal(t, Summary{
		Total:              3,
		Completed:          1,
		InProgress:         1,
		NotStarted:         1,
		ProgressPercentage: 33,
	}, summary)
}

func TestSummarizeRoundsToNearestPercent(t *testing.T) {
	techs := []tech.Technology{
		{Status: tech.StatusCompleted},
		{Status: tech.StatusCompleted},
		{Status: tech.StatusNotStarted},
	}

	assert.Equal(t, 67, Summarize(techs).ProgressPercentage)
}

func TestSummarizeIsIdempotent(t *testing.T) {
	techs := []tech.Technology{{Status: tech.StatusCompleted}}
	assert.Equal(t, Summarize(techs), Summarize(techs))
}

func TestByTag(t *testing.T) {
	techs := []tech.Technology{
		{Status: tech.StatusCompleted, Tags: []string{"backend", "infra"}},
		{Status: tech.StatusNotStarted, Tags: []string{"backend"}},
		{Status: tech.StatusInProgress, Tags: []string{"frontend"}},
		{Status: tech.StatusInProgress},
	}

	stats := ByTag(techs)

	require.Len(t, stats, 3)
	assert.Equal(t, TagStat{
		Tag:            "backend",
		Total:          2,
		Completed:      1,
		NotStarted:     1,
		CompletionRate: 50,
	}, stats[0])
	// Equal totals fall back to name order.
	assert.Equal(t, "frontend", stats[1].Tag)
	assert.Equal(t, 1, stats[1].InProgress)
	assert.Equal(t, "infra", stats[2].Tag)
	assert.Equal(t, 100, stats[2].CompletionRate)
}

func TestByTagEmpty(t *testing.T) {
	assert.Empty(t, ByTag(nil))
}

func TestByMonth(t *testing.T) {
	techs := []tech.Technology{
		{Status: tech.StatusNotStarted, Deadline: dayPtr(2025, time.March, 20)},
		{Status: tech.StatusCompleted, Deadline: dayPtr(2025, time.January, 5)},
		{Status: tech.StatusInProgress, Deadline: dayPtr(2025, time.January, 25)},
		{Status: tech.StatusInProgress}, // no deadline, no bucket
	}

	buckets := ByMonth(techs)

	require.Len(t, buckets, 2)
	assert.Equal(t, "Jan 2025", buckets[0].Label)
	assert.Equal(t, 2, buckets[0].Total)
	assert.Equal(t, 1, buckets[0].Completed)
	assert.Equal(t, 1, buckets[0].InProgress)
	assert.Zero(t, buckets[0].NotStarted)
	assert.Equal(t, "Mar 2025", buckets[1].Label)
	assert.Equal(t, 1, buckets[1].Total)
	assert.Equal(t, 1, buckets[1].NotStarted)
}

func TestByMonthUsesDeadlineNotCreation(t *testing.T) {
	techs := []tech.Technology{
		{
			Status:    tech.StatusNotStarted,
			CreatedAt: day(2024, time.January, 10),
			Deadline:  dayPtr(2024, time.June, 10),
		},
	}

	buckets := ByMonth(techs)

	require.Len(t, buckets, 1)
	assert.Equal(t, "Jun 2024", buckets[0].Label)
}

func TestByMonthSortsByDateNotLabel(t *testing.T) {
	techs := []tech.Technology{
		{Deadline: dayPtr(2025, time.January, 1)},
		{Deadline: dayPtr(2024, time.December, 1)},
	}

	buckets := ByMonth(techs)

	require.Len(t, buckets, 2)
	assert.Equal(t, "Dec 2024", buckets[0].Label)
	assert.Equal(t, "Jan 2025", buckets[1].Label)
}

func TestTimeline(t *testing.T) {
	techs := []tech.Technology{
		{Title: "B", Status: tech.StatusCompleted, Deadline: dayPtr(2025, time.June, 1)},
		{Title: "A", Status: tech.StatusCompleted, Deadline: dayPtr(2025, time.March, 1)},
		{Status: tech.StatusCompleted}, // no deadline, still counts toward percentages
		{Title: "C", Status: tech.StatusNotStarted, Deadline: dayPtr(2025, time.September, 1)},
	}

	points := Timeline(techs)

	require.Len(t, points, 3)
	assert.Equal(t, day(2025, time.March, 1), points[0].Date)
	assert.Equal(t, "A", points[0].Technology)
	assert.Equal(t, 1, points[0].Cumulative)
	assert.Equal(t, 25, points[0].Percentage)
	assert.Equal(t, "B", points[1].Technology)
	assert.Equal(t, 2, points[1].Cumulative)
	// The not-started step carries the count forward without growing it.
	assert.Equal(t, "C", points[2].Technology)
	assert.Equal(t, 2, points[2].Cumulative)
	assert.Equal(t, 50, points[2].Percentage)

	for i := 1; i < len(points); i++ {
		assert.True(t, points[i].Cumulative >= points[i-1].Cumulative)
		assert.False(t, points[i].Date.Before(points[i-1].Date))
	}
}

func TestTimelineCountsCompletedOnly(t *testing.T) {
	techs := []tech.Technology{
		{Title: "done", Status: tech.StatusCompleted, Deadline: dayPtr(2025, time.March, 1)},
		{Title: "todo", Status: tech.StatusNotStarted, Deadline: dayPtr(2025, time.April, 1)},
	}

	points := Timeline(techs)

	require.Len(t, points, 2)
	assert.Equal(t, 1, points[0].Cumulative)
	assert.Equal(t, 1, points[1].Cumulative)
	assert.Equal(t, 50, points[1].Percentage)
}

func TestTimelineEmpty(t *testing.T) {
	assert.Empty(t, Timeline(nil))
}

func TestAverageDurationNoCompletions(t *testing.T) {
	techs := []tech.Technology{{Status: tech.StatusInProgress}}
	assert.Zero(t, AverageDuration(techs))
}

func TestAverageDuration(t *testing.T) {
	techs := []tech.Technology{
		{
			Status:    tech.StatusCompleted,
			CreatedAt: day(2024, time.March, 1),
			Deadline:  dayPtr(2024, time.March, 11),
		},
		{
			Status:    tech.StatusCompleted,
			CreatedAt: day(2024, time.April, 1),
			Deadline:  dayPtr(2024, time.April, 21),
		},
	}

	// Mean of 10 and 20 days.
	assert.Equal(t, 15, AverageDuration(techs))
}

func TestAverageDurationSpansCreationToDeadline(t *testing.T) {
	techs := []tech.Technology{
		{
			Status:    tech.StatusCompleted,
			CreatedAt: day(2024, time.January, 15),
			Deadline:  dayPtr(2024, time.March, 15),
		},
	}

	assert.Equal(t, 60, AverageDuration(techs))
}

func TestAverageDurationRoundsUpPartialDays(t *testing.T) {
	deadline := day(2024, time.March, 1).Add(12 * time.Hour)
	techs := []tech.Technology{
		{
			Status:    tech.StatusCompleted,
			CreatedAt: day(2024, time.March, 1),
			Deadline:  &deadline,
		},
	}

	assert.Equal(t, 1, AverageDuration(techs))
}

func TestAverageDurationFallbackCreatedAt(t *testing.T) {
	techs := []tech.Technology{
		{
			Status:   tech.StatusCompleted,
			Deadline: dayPtr(2024, time.January, 31),
		},
	}

	// Counts from Jan 1 2024 when the creation timestamp is missing.
	assert.Equal(t, 30, AverageDuration(techs))
}

func TestAverageDurationIgnoresUndeadlinedRecords(t *testing.T) {
	techs := []tech.Technology{
		{Status: tech.StatusCompleted}, // no deadline
		{Status: tech.StatusNotStarted, Deadline: dayPtr(2024, time.March, 3)},
		{
			Status:    tech.StatusCompleted,
			CreatedAt: day(2024, time.March, 1),
			Deadline:  dayPtr(2024, time.March, 3),
		},
	}

	assert.Equal(t, 2, AverageDuration(techs))
}
