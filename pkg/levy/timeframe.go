package levy

import (
	"fmt"
	"time"
)

// TimeFrame names a preset reporting window.
type TimeFrame string

const (
	TimeFrameToday         TimeFrame = "Today"
	TimeFrameYesterday     TimeFrame = "Yesterday"
	TimeFrameLast7Days     TimeFrame = "Last7Days"
	TimeFrameThisWeek      TimeFrame = "ThisWeek"
	TimeFrameThisMonth     TimeFrame = "ThisMonth"
	TimeFrameLastMonth     TimeFrame = "LastMonth"
	TimeFrameLastSixMonths TimeFrame = "LastSixMonths"
	TimeFrameThisYear      TimeFrame = "ThisYear"
	TimeFrameCustom        TimeFrame = "Custom"
)

// Granularity of a resolved range, used to pick chart bucket sizes.
const (
	GranularityDay   = "day"
	GranularityMonth = "month"
)

// DateRange is a concrete reporting window.
type DateRange struct {
	Start       time.Time `json:"startDate"`
	End         time.Time `json:"endDate"`
	IsPreset    bool      `json:"isPreset"`
	Label       string    `json:"presetLabel"`
	Granularity string    `json:"rangeGranularity"`
}

// ResolveRange maps a TimeFrame to a concrete window relative to now.
// Ranges are calendar-aligned: the week starts on Sunday, months and years
// on day one. Custom frames keep the supplied start/end.
func ResolveRange(tf TimeFrame, now time.Time, customStart, customEnd time.Time) DateRange {
	loc := now.Location()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	switch tf {
	case TimeFrameToday:
		return DateRange{Start: dayStart, End: now, IsPreset: true, Label: "Today", Granularity: GranularityDay}
	case TimeFrameYesterday:
		y := dayStart.AddDate(0, 0, -1)
		return DateRange{Start: y, End: dayStart.Add(-time.Nanosecond), IsPreset: true, Label: "Yesterday", Granularity: GranularityDay}
	case TimeFrameLast7Days:
		return DateRange{Start: dayStart.AddDate(0, 0, -6), End: now, IsPreset: true, Label: "Last 7 Days", Granularity: GranularityDay}
	case TimeFrameThisWeek:
		weekStart := dayStart.AddDate(0, 0, -int(now.Weekday())) // Sunday
		return DateRange{Start: weekStart, End: now, IsPreset: true, Label: "This Week", Granularity: GranularityDay}
	case TimeFrameThisMonth:
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		return DateRange{Start: monthStart, End: now, IsPreset: true, Label: "This Month", Granularity: GranularityDay}
	case TimeFrameLastMonth:
		thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		return DateRange{Start: thisMonth.AddDate(0, -1, 0), End: thisMonth.Add(-time.Nanosecond), IsPreset: true, Label: "Last Month", Granularity: GranularityDay}
	case TimeFrameLastSixMonths:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc).AddDate(0, -5, 0)
		return DateRange{Start: start, End: now, IsPreset: true, Label: "Last 6 Months", Granularity: GranularityMonth}
	case TimeFrameThisYear:
		return DateRange{Start: time.Date(now.Year(), 1, 1, 0, 0, 0, 0, loc), End: now, IsPreset: true, Label: "This Year", Granularity: GranularityMonth}
	case TimeFrameCustom:
		return DateRange{Start: customStart, End: customEnd, Label: "Custom", Granularity: GranularityMonth}
	default:
		// Unknown frame degrades to this year rather than failing the report.
		return DateRange{Start: time.Date(now.Year(), 1, 1, 0, 0, 0, 0, loc), End: now, IsPreset: true, Label: "This Year", Granularity: GranularityMonth}
	}
}

// YearRange is the full calendar year window used when an explicit year is
// requested instead of a named frame.
func YearRange(year int, loc *time.Location) DateRange {
	start := time.Date(year, 1, 1, 0, 0, 0, 0, loc)
	return DateRange{
		Start:       start,
		End:         start.AddDate(1, 0, 0).Add(-time.Nanosecond),
		IsPreset:    true,
		Label:       fmt.Sprintf("%d", year),
		Granularity: GranularityMonth,
	}
}
