// Package model defines shared data structures.
package model

import "time"

// DateLayout is the calendar-day format used for entry dates everywhere.
const DateLayout = "2006-01-02"

// Config defines the resolved runtime settings.
type Config struct {
	DBPath   string
	LogFile  string
	LogLevel string
}

// Component is a tracked metric with an optional normal range.
type Component struct {
	ID        int64
	Name      string
	Unit      string
	NormalMin *float64
	NormalMax *float64
}

// Entry is one dated measurement of a component.
type Entry struct {
	ID          int64
	ComponentID int64
	Value       float64
	Date        time.Time
	Notes       string
}

// DateString formats the entry date as YYYY-MM-DD.
func (e Entry) DateString() string {
	return e.Date.Format(DateLayout)
}

// OutOfRange reports whether value falls outside the component's normal range.
// Missing bounds never flag a value.
func (c Component) OutOfRange(value float64) bool {
	if c.NormalMin != nil && value < *c.NormalMin {
		return true
	}
	if c.NormalMax != nil && value > *c.NormalMax {
		return true
	}
	return false
}
