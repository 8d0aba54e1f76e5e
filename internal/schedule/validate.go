package schedule

import (
	"fmt"
	"sort"

	"clinic-admin/internal/domain/entity"
	"clinic-admin/pkg/apperror"
)

const (
	MinDuration = 5
	MaxDuration = 240
)

var ErrInvalidSchedule = apperror.Validation("invalid schedule")

// Validate checks a schedule definition and reports every problem found,
// keyed by field path.
func Validate(s *entity.DoctorSchedule) error {
	fields := map[string]string{}

	if s.AppointmentDuration < MinDuration || s.AppointmentDuration > MaxDuration {
		fields["appointment_duration"] = fmt.Sprintf("must be between %d and %d minutes", MinDuration, MaxDuration)
	}

	seen := map[int]bool{}
	for i, wd := range s.WorkDays {
		key := fmt.Sprintf("work_days[%d]", i)
		if wd.DayOfWeek < 0 || wd.DayOfWeek > 6 {
			fields[key+".day_of_week"] = "must be between 0 (Sunday) and 6 (Saturday)"
		} else if seen[wd.DayOfWeek] {
			fields[key+".day_of_week"] = "day is listed more than once"
		}
		seen[wd.DayOfWeek] = true

		if wd.IsActive && len(wd.TimeRanges) == 0 {
			fields[key+".time_ranges"] = "an active day needs at least one time range"
		}
		validateRanges(key, wd.TimeRanges, fields)
	}

	if len(fields) > 0 {
		return ErrInvalidSchedule.WithFields(fields)
	}
	return nil
}

type span struct {
	start, end int
	index      int
}

func validateRanges(prefix string, ranges []entity.DoctorTimeRange, fields map[string]string) {
	spans := make([]span, 0, len(ranges))
	for j, tr := range ranges {
		key := fmt.Sprintf("%s.time_ranges[%d]", prefix, j)
		start, err := ParseClock(tr.StartTime)
		if err != nil {
			fields[key+".start_time"] = "must be HH:MM"
			continue
		}
		end, err := ParseClock(tr.EndTime)
		if err != nil {
			fields[key+".end_time"] = "must be HH:MM"
			continue
		}
		if start >= end {
			fields[key] = "start_time must be before end_time"
			continue
		}
		spans = append(spans, span{start: start, end: end, index: j})
	}

	sort.Slice(spans, func(a, b int) bool { return spans[a].start < spans[b].start })
	for k := 1; k < len(spans); k++ {
		if spans[k].start < spans[k-1].end {
			fields[fmt.Sprintf("%s.time_ranges[%d]", prefix, spans[k].index)] = "overlaps another range"
		}
	}
}
