package statistics

import "time"

// DayLabelLayout formats daily buckets as month.day.
const DayLabelLayout = "01.02"

// WeekOfYear returns the Monday-start week number of t, matching strftime %W:
// days before the first Monday of the year are in week 0.
func WeekOfYear(t time.Time) int {
	t = t.UTC()
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	return (t.YearDay() - 1 + 7 - daysSinceMonday) / 7
}

// DayLabel returns the daily bucket label of t.
func DayLabel(t time.Time) string {
	return t.UTC().Format(DayLabelLayout)
}

// MonthScope returns the half-open UTC range covering the calendar month.
func MonthScope(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}
