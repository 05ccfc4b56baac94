// Package stats derives aggregate views from a technology collection.
// Every function is pure: it takes a snapshot slice and returns fresh
// values, so callers can recompute after any mutation.
package stats

import (
	"math"
	"sort"
	"time"

	"techroadmap/tech"
)

// fallbackCreatedAt substitutes for records that predate creation
// timestamps in the persisted data.
var fallbackCreatedAt = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// Summary holds the headline status counts.
type Summary struct {
	Total              int `json:"total"`
	Completed          int `json:"completed"`
	InProgress         int `json:"inProgress"`
	NotStarted         int `json:"notStarted"`
	ProgressPercentage int `json:"progressPercentage"`
}

// Summarize counts records per status. ProgressPercentage is the share of
// completed records rounded to the nearest whole percent, 0 for an empty
// collection.
func Summarize(techs []tech.Technology) Summary {
	s := Summary{Total: len(techs)}
	for _, t := range techs {
		switch t.Status {
		case tech.StatusCompleted:
			s.Completed++
		case tech.StatusInProgress:
			s.InProgress++
		default:
			s.NotStarted++
		}
	}
	if s.Total > 0 {
		s.ProgressPercentage = roundPercent(s.Completed, s.Total)
	}
	return s
}

// TagStat aggregates records sharing one tag.
type TagStat struct {
	Tag            string `json:"tag"`
	Total          int    `json:"total"`
	Completed      int    `json:"completed"`
	InProgress     int    `json:"inProgress"`
	NotStarted     int    `json:"notStarted"`
	CompletionRate int    `json:"completionRate"`
}

// ByTag rolls the collection up per tag. A record carrying n tags
// contributes to n rollups. Results are sorted by total descending, tag
// name ascending for equal totals.
func ByTag(techs []tech.Technology) []TagStat {
	byTag := make(map[string]*TagStat)
	for _, t := range techs {
		for _, tag := range t.Tags {
			stat, ok := byTag[tag]
			if !ok {
				stat = &TagStat{Tag: tag}
				byTag[tag] = stat
			}
			stat.Total++
			switch t.Status {
			case tech.StatusCompleted:
				stat.Completed++
			case tech.StatusInProgress:
				stat.InProgress++
			default:
				stat.NotStarted++
			}
		}
	}

	stats := make([]TagStat, 0, len(byTag))
	for _, stat := range byTag {
		stat.CompletionRate = roundPercent(stat.Completed, stat.Total)
		stats = append(stats, *stat)
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Total != stats[j].Total {
			return stats[i].Total > stats[j].Total
		}
		return stats[i].Tag < stats[j].Tag
	})
	return stats
}

// MonthBucket aggregates records whose deadline falls in one calendar
// month.
type MonthBucket struct {
	Label      string `json:"label"`
	Total      int    `json:"total"`
	Completed  int    `json:"completed"`
	InProgress int    `json:"inProgress"`
	NotStarted int    `json:"notStarted"`

	month time.Time
}

// ByMonth buckets the deadlined records by deadline month, oldest first.
// Labels render as "Jan 2006"; ordering follows the underlying date, not
// the label text. Records without a deadline are skipped.
func ByMonth(techs []tech.Technology) []MonthBucket {
	byMonth := make(map[time.Time]*MonthBucket)
	for _, t := range techs {
		if !t.HasDeadline() {
			continue
		}
		month := time.Date(t.Deadline.Year(), t.Deadline.Month(), 1, 0, 0, 0, 0, time.UTC)
		bucket, ok := byMonth[month]
		if !ok {
			bucket = &MonthBucket{Label: month.Format("Jan 2006"), month: month}
			byMonth[month] = bucket
		}
		bucket.Total++
		switch t.Status {
		case tech.StatusCompleted:
			bucket.Completed++
		case tech.StatusInProgress:
			bucket.InProgress++
		default:
			bucket.NotStarted++
		}
	}

	buckets := make([]MonthBucket, 0, len(byMonth))
	for _, bucket := range byMonth {
		buckets = append(buckets, *bucket)
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].month.Before(buckets[j].month)
	})
	return buckets
}

// TimelinePoint is one step of the cumulative deadline timeline.
type TimelinePoint struct {
	Date       time.Time `json:"date"`
	Technology string    `json:"technology"`
	Cumulative int       `json:"cumulative"`
	Percentage int       `json:"percentage"`
}

// Timeline orders the deadlined records by deadline ascending and emits a
// point per record carrying the running completed count at that step and
// the record's title. Percentages are taken against the whole collection,
// deadlined or not, so the curve tops out below 100 when some records
// have no deadline. The completed count is monotonically non-decreasing.
func Timeline(techs []tech.Technology) []TimelinePoint {
	deadlined := make([]tech.Technology, 0, len(techs))
	for _, t := range techs {
		if t.HasDeadline() {
			deadlined = append(deadlined, t)
		}
	}
	sort.SliceStable(deadlined, func(i, j int) bool {
		return deadlined[i].Deadline.Before(*deadlined[j].Deadline)
	})

	points := make([]TimelinePoint, 0, len(deadlined))
	completed := 0
	for _, t := range deadlined {
		if t.Status == tech.StatusCompleted {
			completed++
		}
		points = append(points, TimelinePoint{
			Date:       *t.Deadline,
			Technology: t.Title,
			Cumulative: completed,
			Percentage: roundPercent(completed, len(techs)),
		})
	}
	return points
}

// AverageDuration reports the mean days from creation to deadline across
// completed records that have a deadline, each span rounded up to whole
// days and the mean rounded to the nearest day. Records missing a creation
// timestamp count from Jan 1 2024. Returns 0 when no completed record has
// a deadline.
func AverageDuration(techs []tech.Technology) int {
	totalDays := 0
	completed := 0
	for _, t := range techs {
		if t.Status != tech.StatusCompleted || !t.HasDeadline() {
			continue
		}
		createdAt := t.CreatedAt
		if createdAt.IsZero() {
			createdAt = fallbackCreatedAt
		}
		days := int(math.Ceil(t.Deadline.Sub(createdAt).Hours() / 24))
		totalDays += days
		completed++
	}
	if completed == 0 {
		return 0
	}
	return int(math.Round(float64(totalDays) / float64(completed)))
}

func roundPercent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
