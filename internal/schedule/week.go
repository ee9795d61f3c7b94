package schedule

import "time"

// Day is one bookable calendar date in the rolling window, tagged with the
// display metadata the front end renders.
type Day struct {
	Date      string `json:"date"`
	DayName   string `json:"dayName"`
	DayShort  string `json:"dayShort"`
	DayNumber string `json:"dayNumber"`
	Month     string `json:"month"`
	IsToday   bool   `json:"isToday"`
}

// Week is the current set of six bookable dates. StartDate and EndDate
// bound the inclusive range that booking and change requests are validated
// against.
type Week struct {
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	WeekNumber int    `json:"weekNumber"`
	Year       int    `json:"year"`
	Days       []Day  `json:"days"`
}

// CurrentWeek returns the next six bookable dates starting today, skipping
// the weekly closed day. Today itself is skipped once the current time has
// reached the start of the day's last slot, shifting the window forward by
// one day. The scan proceeds day by day and always terminates: at most one
// day per week is closed, so six eligible dates are found within eight days.
func CurrentWeek(h Hours, now time.Time) Week {
	cutoff := LastSlotStart(h)
	nowMin := now.Hour()*60 + now.Minute()

	days := make([]Day, 0, 6)
	d := now
	for len(days) < 6 {
		if d.Weekday() == ClosedWeekday {
			d = d.AddDate(0, 0, 1)
			continue
		}
		isToday := sameDay(d, now)
		if isToday && cutoff >= 0 && nowMin >= cutoff {
			d = d.AddDate(0, 0, 1)
			continue
		}
		days = append(days, Day{
			Date:      d.Format(DateLayout),
			DayName:   d.Weekday().String(),
			DayShort:  d.Format("Mon"),
			DayNumber: d.Format("02"),
			Month:     d.Month().String(),
			IsToday:   isToday,
		})
		d = d.AddDate(0, 0, 1)
	}

	first, _ := time.ParseInLocation(DateLayout, days[0].Date, now.Location())
	year, weekNum := first.ISOWeek()
	return Week{
		StartDate:  days[0].Date,
		EndDate:    days[len(days)-1].Date,
		WeekNumber: weekNum,
		Year:       year,
		Days:       days,
	}
}

// Contains reports whether the ISO date lies within the window's inclusive
// start/end range. ISO dates compare correctly as strings.
func (w Week) Contains(date string) bool {
	return date >= w.StartDate && date <= w.EndDate
}
