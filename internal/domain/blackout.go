package domain

import "time"

// BlackoutPeriod represents full-day unavailability across an inclusive
// date range: employee vacation/sick leave, or a branch-wide closure
// when EmployeeID is nil.
type BlackoutPeriod struct {
	ID         int64
	BranchID   int64
	EmployeeID *int64 // nil = закрытие всего филиала
	DateStart  time.Time
	DateEnd    time.Time
	Reason     string

	CreatedAt time.Time
}

// Contains returns true if the given date falls inside the blackout range
// (boundaries inclusive). Compares dates only, time of day is ignored.
func (b *BlackoutPeriod) Contains(date time.Time) bool {
	d := truncateToDay(date)
	return !d.Before(truncateToDay(b.DateStart)) && !d.After(truncateToDay(b.DateEnd))
}

// AppliesTo returns true if the blackout affects the given employee:
// either it is branch-wide or it targets exactly that employee.
func (b *BlackoutPeriod) AppliesTo(employeeID int64) bool {
	return b.EmployeeID == nil || *b.EmployeeID == employeeID
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
