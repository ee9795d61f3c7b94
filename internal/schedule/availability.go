package schedule

import (
	"math"
	"time"

	"berberi/internal/model"
)

// DayView pairs a window day with its reconciled slot list. Rest days keep
// an empty slot list so nothing on them can be presented as bookable.
type DayView struct {
	Day
	IsRestDay bool   `json:"isRestDay"`
	Slots     []Slot `json:"slots"`
}

// Meta carries the aggregate counts shown alongside the week view.
type Meta struct {
	TotalSlots     int    `json:"totalSlots"`
	AvailableSlots int    `json:"availableSlots"`
	ReservedSlots  int    `json:"reservedSlots"`
	GeneratedAt    string `json:"generatedAt"`
}

// Stats summarizes the admin view of the window. OccupancyRate is active
// reservations over total generable slots (rest days excluded), as a
// rounded integer percentage.
type Stats struct {
	TotalReservations     int `json:"totalReservations"`
	ActiveReservations    int `json:"activeReservations"`
	CancelledReservations int `json:"cancelledReservations"`
	TotalSlots            int `json:"totalSlots"`
	OccupancyRate         int `json:"occupancyRate"`
}

type slotKey struct {
	date  string
	start string
}

// BuildWeekView joins the generated slots of every window day against the
// active reservations and rest days of that range. A slot is unavailable
// when an active reservation matches its (date, startTime); the uniqueness
// constraint guarantees at most one match, so no tie-break is needed. The
// view is a best-effort snapshot: a concurrent purge may remove a row
// between the read and the render.
func BuildWeekView(h Hours, w Week, reservations []model.Reservation, restDays []string, now time.Time) ([]DayView, Meta) {
	byDate := make(map[string]bool, len(restDays))
	for _, rd := range restDays {
		byDate[rd] = true
	}
	bySlot := make(map[slotKey]*model.Reservation, len(reservations))
	for i := range reservations {
		r := &reservations[i]
		if r.Status != model.StatusActive {
			continue
		}
		bySlot[slotKey{r.Date, r.StartTime}] = r
	}

	views := make([]DayView, 0, len(w.Days))
	meta := Meta{GeneratedAt: now.UTC().Format(time.RFC3339)}
	for _, day := range w.Days {
		view := DayView{Day: day, Slots: []Slot{}}
		if byDate[day.Date] {
			view.IsRestDay = true
			views = append(views, view)
			continue
		}
		date, err := time.ParseInLocation(DateLayout, day.Date, now.Location())
		if err != nil {
			views = append(views, view)
			continue
		}
		slots := DaySlots(h, date, now)
		for i := range slots {
			if r, ok := bySlot[slotKey{slots[i].Date, slots[i].StartTime}]; ok {
				slots[i].IsAvailable = false
				slots[i].Reserved = &ReservedInfo{ID: r.ID, Name: r.FullName, Code: r.Code}
				meta.ReservedSlots++
			} else {
				meta.AvailableSlots++
			}
			meta.TotalSlots++
		}
		view.Slots = slots
		views = append(views, view)
	}
	return views, meta
}

// WeekStats computes the admin statistics over the window. TotalSlots
// counts generable slots on non-rest days only, using the same time-aware
// generator as the public view so both sides agree on the denominator.
func WeekStats(h Hours, w Week, reservations []model.Reservation, restDays []string, now time.Time) Stats {
	byDate := make(map[string]bool, len(restDays))
	for _, rd := range restDays {
		byDate[rd] = true
	}

	var s Stats
	s.TotalReservations = len(reservations)
	for _, r := range reservations {
		switch r.Status {
		case model.StatusActive:
			s.ActiveReservations++
		case model.StatusCancelled:
			s.CancelledReservations++
		}
	}
	for _, day := range w.Days {
		if byDate[day.Date] {
			continue
		}
		date, err := time.ParseInLocation(DateLayout, day.Date, now.Location())
		if err != nil {
			continue
		}
		s.TotalSlots += len(DaySlots(h, date, now))
	}
	if s.TotalSlots > 0 {
		s.OccupancyRate = int(math.Round(float64(s.ActiveReservations) / float64(s.TotalSlots) * 100))
	}
	return s
}
