// Package schedule enumerates appointment slots from a doctor's weekly
// schedule and validates schedule definitions.
package schedule

import (
	"fmt"
	"sort"
	"time"

	"clinic-admin/internal/domain/entity"
	"clinic-admin/pkg/apperror"
)

const DateLayout = "2006-01-02"

var (
	ErrInvalidRange = apperror.Validation("invalid date range: to is before from")
	ErrRangeTooLong = apperror.Validation("date range is too long")
)

// ParseClock parses an "HH:MM" clock into minutes since midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil || len(s) != 5 {
		return 0, fmt.Errorf("invalid clock %q", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// DateOf truncates t to midnight in its own location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// CheckRange validates an inclusive [from, to] day range.
func CheckRange(from, to time.Time, maxDays int) error {
	from, to = DateOf(from), DateOf(to)
	if to.Before(from) {
		return ErrInvalidRange
	}
	days := calendarDays(from, to) + 1
	if maxDays > 0 && days > maxDays {
		return ErrRangeTooLong.WithFields(map[string]string{
			"to": fmt.Sprintf("range may span at most %d days", maxDays),
		})
	}
	return nil
}

// calendarDays counts the dates between from and to, ignoring any DST shift
// of their location.
func calendarDays(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	span := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC).Sub(time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC))
	return int(span / (24 * time.Hour))
}

// GenerateSlots lists the slots of every day in [from, to] that the schedule
// works. Days without an active work day are omitted. A slot is Booked when
// its start instant is in booked and Past when it starts before now.
func GenerateSlots(s *entity.DoctorSchedule, from, to time.Time, booked []time.Time, now time.Time) []entity.DaySlots {
	days := []entity.DaySlots{}
	if s == nil || !s.IsActive || s.AppointmentDuration <= 0 {
		return days
	}

	taken := make(map[int64]struct{}, len(booked))
	for _, b := range booked {
		taken[b.Unix()] = struct{}{}
	}

	byWeekday := make(map[time.Weekday]*entity.DoctorWorkDay, len(s.WorkDays))
	for i := range s.WorkDays {
		wd := &s.WorkDays[i]
		if wd.IsActive {
			byWeekday[time.Weekday(wd.DayOfWeek)] = wd
		}
	}

	duration := s.SlotDuration()
	last := DateOf(to)
	for day := DateOf(from); !day.After(last); day = day.AddDate(0, 0, 1) {
		wd, ok := byWeekday[day.Weekday()]
		if !ok {
			continue
		}
		slots := daySlots(day, wd.TimeRanges, duration, taken, now)
		days = append(days, entity.DaySlots{
			Date:      day.Format(DateLayout),
			DayOfWeek: int(day.Weekday()),
			Slots:     slots,
		})
	}
	return days
}

// daySlots walks each range on the wall clock of day's location. Starts that
// fall into a DST gap do not exist that day and are skipped.
func daySlots(day time.Time, ranges []entity.DoctorTimeRange, duration time.Duration, taken map[int64]struct{}, now time.Time) []entity.TimeSlot {
	slots := []entity.TimeSlot{}
	step := int(duration / time.Minute)
	if step <= 0 {
		return slots
	}
	y, m, d := day.Date()
	loc := day.Location()

	for _, tr := range ranges {
		startMin, err := ParseClock(tr.StartTime)
		if err != nil {
			continue
		}
		endMin, err := ParseClock(tr.EndTime)
		if err != nil {
			continue
		}
		for minute := startMin; minute+step <= endMin; minute += step {
			t := time.Date(y, m, d, 0, minute, 0, 0, loc)
			if t.Hour()*60+t.Minute() != minute {
				continue
			}
			_, isBooked := taken[t.Unix()]
			slots = append(slots, entity.TimeSlot{
				Start:  t,
				End:    t.Add(duration),
				Booked: isBooked,
				Past:   t.Before(now),
			})
		}
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].Start.Before(slots[j].Start) })
	return slots
}

// IsFreeSlot reports whether at is the start of a generated slot that is
// neither booked nor already begun at now.
func IsFreeSlot(s *entity.DoctorSchedule, at time.Time, booked []time.Time, now time.Time) bool {
	for _, day := range GenerateSlots(s, at, at, booked, now) {
		for _, slot := range day.Slots {
			if slot.Start.Equal(at) {
				return !slot.Booked && !slot.Past
			}
		}
	}
	return false
}
