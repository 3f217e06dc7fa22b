// internal/models/schedule.go
package models

// TimeRange is a wall-clock interval in 24-hour "HH:MM" notation.
// Start must be strictly before End; the matching engine rejects
// anything else.
type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DayEntry maps one weekday to the hours available on that day.
type DayEntry struct {
	Day   string    `json:"day"`
	Hours TimeRange `json:"hours"`
}

// WeeklySchedule is a recurring weekly availability structure. At most one
// entry per day is assumed; the engine does not enforce it.
type WeeklySchedule []DayEntry
