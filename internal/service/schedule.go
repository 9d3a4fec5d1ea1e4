package service

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"skillmatrix/training-app/internal/domain"
)

// ScheduleRow is one course in a trainee's plan as seen by the schedule
// composer: the master-matrix attributes that fix its display position, the
// course duration in days, and the computed [Start, End] pair.
type ScheduleRow struct {
	ExperienceRange string
	Genus           string
	Category        string
	Skill           string
	Importance      domain.Importance
	DurationDays    int
	Start           time.Time
	End             time.Time
}

// ParseCourseDuration converts the stored duration string to days.
// Missing or malformed durations count as zero-day courses.
func ParseCourseDuration(s string) int {
	d, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// experienceRangeStart extracts the numeric start of a "start-end" band;
// malformed bands sort first.
func experienceRangeStart(r string) int {
	start, _, _ := strings.Cut(r, "-")
	n, err := strconv.Atoi(strings.TrimSpace(start))
	if err != nil {
		return 0
	}
	return n
}

func importanceRank(i domain.Importance) int {
	if i == domain.ImportanceMustHave {
		return 1
	}
	return 2
}

// SortScheduleRows puts rows into display order: experience-range start,
// then genus, then category, then importance (Must Have first), then
// duration ascending. The composed date chain follows this order, so it must
// be applied before ComposeFrom.
func SortScheduleRows(rows []ScheduleRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if as, bs := experienceRangeStart(a.ExperienceRange), experienceRangeStart(b.ExperienceRange); as != bs {
			return as < bs
		}
		if a.Genus != b.Genus {
			return a.Genus < b.Genus
		}
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		if ar, br := importanceRank(a.Importance), importanceRank(b.Importance); ar != br {
			return ar < br
		}
		return a.DurationDays < b.DurationDays
	})
}

// ComposeFrom recomputes the contiguous date chain from anchorIndex onward.
// The row at anchorIndex starts on anchorStart; every row at or after the
// anchor gets end = start + duration calendar days, and the following row
// starts one day after that end. Rows before the anchor keep their dates.
// A zero duration yields end == start. Re-running with the same inputs
// produces the same chain.
func ComposeFrom(rows []ScheduleRow, anchorIndex int, anchorStart time.Time) {
	if anchorIndex < 0 || anchorIndex >= len(rows) {
		return
	}

	start := anchorStart
	for i := anchorIndex; i < len(rows); i++ {
		rows[i].Start = start
		rows[i].End = start.AddDate(0, 0, rows[i].DurationDays)
		start = rows[i].End.AddDate(0, 0, 1)
	}
}
