package derive

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Interval is a work period. A nil End means the job is ongoing and is
// treated as running up to "today".
type Interval struct {
	Start time.Time
	End   *time.Time
}

// CalculateAge returns whole calendar years between birth and today,
// decremented by one if the anniversary has not yet occurred this year.
// Returns nil for zero/future birth dates or ages outside [0,150].
func CalculateAge(birth, today time.Time) *int {
	if birth.IsZero() || birth.After(today) {
		return nil
	}

	years := today.Year() - birth.Year()
	if today.Month() < birth.Month() ||
		(today.Month() == birth.Month() && today.Day() < birth.Day()) {
		years--
	}

	if years < 0 || years > 150 {
		return nil
	}
	return &years
}

// AggregateTenure sums whole months over all intervals and finds the earliest
// start date.
//
// Per interval: (end.year-start.year)*12 + (end.month-start.month), minus one
// when the end day-of-month precedes the start day-of-month, clamped to >= 0.
// Contributions are summed as-is: overlapping intervals double-count. That
// matches how the figure has always been presented to recruiters; deduplicating
// into a time union would silently change every profile with concurrent jobs.
func AggregateTenure(intervals []Interval, today time.Time) (totalMonths int, earliestStart *time.Time) {
	for _, iv := range intervals {
		start := iv.Start
		if start.IsZero() {
			continue
		}

		end := today
		if iv.End != nil {
			end = *iv.End
		}

		months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
		if end.Day() < start.Day() {
			months--
		}
		if months < 0 {
			months = 0
		}
		totalMonths += months

		if earliestStart == nil || start.Before(*earliestStart) {
			s := start
			earliestStart = &s
		}
	}
	return totalMonths, earliestStart
}

// TenureLabel maps a total-month figure to the display bucket.
// Zero months reads as a fresh graduate; under a year produces no label.
func TenureLabel(totalMonths int) string {
	if totalMonths == 0 {
		return "New graduate"
	}
	years := totalMonths / 12
	switch {
	case years < 1:
		return ""
	case years == 1:
		return "1 year"
	case years < 10:
		return fmt.Sprintf("%d years", years)
	default:
		return "10+ years"
	}
}

// BirthDateFromIDNumber extracts the YYYYMMDD birth date embedded at offset 6
// of an 18-character resident identity number. Returns nil when the number is
// malformed or the embedded date does not parse.
func BirthDateFromIDNumber(idNumber string) *time.Time {
	if len(idNumber) != 18 {
		return nil
	}
	t, err := time.Parse("20060102", idNumber[6:14])
	if err != nil {
		return nil
	}
	return &t
}

// ParseDate parses a YYYY-MM-DD payload date. Empty and malformed values both
// yield nil; callers treat the date as absent rather than failing the call.
func ParseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}
