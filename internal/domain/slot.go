package domain

import "github.com/agendafacil/AF-SchedulingService/pkg/types"

// AtomicSlot represents the smallest schedulable time unit of a resource's
// day, tagged free or occupied. Derived, never persisted.
type AtomicSlot struct {
	Start types.TimeString
	End   types.TimeString
	Free  bool
}

// BookableStart represents a start time from which a full service duration
// fits into consecutive free atomic slots, paired with the computed end.
type BookableStart struct {
	Start types.TimeString
	End   types.TimeString
}

// SlotsNeeded returns how many atomic slots a service of the given duration
// covers: ceil(durationMinutes / granularityMinutes). The last partially
// covered slot must still be fully free, so the division rounds up.
func SlotsNeeded(durationMinutes, granularityMinutes int) int {
	return (durationMinutes + granularityMinutes - 1) / granularityMinutes
}
