package domain

import "time"

// Interval полуоткрытый интервал [Start, End), занимаемый одной услугой
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps returns true if the intervals intersect.
// Touching intervals (one ends exactly when the other starts) do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && i.End.After(other.Start)
}

// Duration returns the interval length
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// IsValid returns true if End is strictly after Start
func (i Interval) IsValid() bool {
	return i.End.After(i.Start)
}

// TimeRange optional window for listing busy slots; nil bounds are open
type TimeRange struct {
	From *time.Time
	To   *time.Time
}

// DayRange returns the window covering the calendar day of date in loc
func DayRange(date time.Time, loc *time.Location) TimeRange {
	from := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	to := from.AddDate(0, 0, 1)
	return TimeRange{From: &from, To: &to}
}
