package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendafacil/AF-SchedulingService/pkg/types"
)

func tsPtr(s string) *types.TimeString {
	ts := types.MustTimeString(s)
	return &ts
}

func TestDayRule_Validate(t *testing.T) {
	t.Run("valid without break", func(t *testing.T) {
		rule := &DayRule{Opens: "09:00", Closes: "18:00"}
		assert.NoError(t, rule.Validate())
	})

	t.Run("valid with break", func(t *testing.T) {
		rule := &DayRule{
			Opens:      "09:00",
			Closes:     "18:00",
			HasBreak:   true,
			BreakStart: tsPtr("13:00"),
			BreakEnd:   tsPtr("14:00"),
		}
		assert.NoError(t, rule.Validate())
	})

	t.Run("opens equal closes", func(t *testing.T) {
		rule := &DayRule{Opens: "09:00", Closes: "09:00"}
		assert.ErrorIs(t, rule.Validate(), ErrInvalidDayRule)
	})

	t.Run("opens after closes", func(t *testing.T) {
		rule := &DayRule{Opens: "18:00", Closes: "09:00"}
		assert.ErrorIs(t, rule.Validate(), ErrInvalidDayRule)
	})

	t.Run("break outside working hours", func(t *testing.T) {
		rule := &DayRule{
			Opens:      "09:00",
			Closes:     "18:00",
			HasBreak:   true,
			BreakStart: tsPtr("08:00"),
			BreakEnd:   tsPtr("10:00"),
		}
		assert.ErrorIs(t, rule.Validate(), ErrInvalidDayRule)
	})

	t.Run("break end after closes", func(t *testing.T) {
		rule := &DayRule{
			Opens:      "09:00",
			Closes:     "18:00",
			HasBreak:   true,
			BreakStart: tsPtr("17:30"),
			BreakEnd:   tsPtr("18:30"),
		}
		assert.ErrorIs(t, rule.Validate(), ErrInvalidDayRule)
	})

	t.Run("inverted break", func(t *testing.T) {
		rule := &DayRule{
			Opens:      "09:00",
			Closes:     "18:00",
			HasBreak:   true,
			BreakStart: tsPtr("14:00"),
			BreakEnd:   tsPtr("13:00"),
		}
		assert.ErrorIs(t, rule.Validate(), ErrInvalidDayRule)
	})

	t.Run("hasBreak without interval", func(t *testing.T) {
		rule := &DayRule{Opens: "09:00", Closes: "18:00", HasBreak: true}
		assert.ErrorIs(t, rule.Validate(), ErrInvalidDayRule)
	})

	t.Run("interval without hasBreak", func(t *testing.T) {
		rule := &DayRule{
			Opens:      "09:00",
			Closes:     "18:00",
			BreakStart: tsPtr("13:00"),
			BreakEnd:   tsPtr("14:00"),
		}
		assert.ErrorIs(t, rule.Validate(), ErrInvalidDayRule)
	})

	t.Run("invalid time format", func(t *testing.T) {
		rule := &DayRule{Opens: "9:00", Closes: "18:00"}
		assert.ErrorIs(t, rule.Validate(), ErrInvalidDayRule)
	})
}

func TestWeeklySchedule_RuleFor(t *testing.T) {
	schedule := NewWeeklySchedule()
	schedule.Rules[time.Monday] = &DayRule{Opens: "09:00", Closes: "18:00"}

	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	require.Equal(t, time.Monday, monday.Weekday())
	assert.NotNil(t, schedule.RuleFor(monday))

	tuesday := monday.AddDate(0, 0, 1)
	assert.Nil(t, schedule.RuleFor(tuesday))

	var nilSchedule *WeeklySchedule
	assert.Nil(t, nilSchedule.RuleFor(monday))
}

func TestIntersectDayRules(t *testing.T) {
	t.Run("employee narrows branch hours", func(t *testing.T) {
		branch := &DayRule{Opens: "09:00", Closes: "18:00"}
		employee := &DayRule{Opens: "10:00", Closes: "16:00"}

		got := IntersectDayRules(branch, employee)
		require.NotNil(t, got)
		assert.Equal(t, types.TimeString("10:00"), got.Opens)
		assert.Equal(t, types.TimeString("16:00"), got.Closes)
		assert.False(t, got.HasBreak)
	})

	t.Run("nil rule means closed", func(t *testing.T) {
		branch := &DayRule{Opens: "09:00", Closes: "18:00"}
		assert.Nil(t, IntersectDayRules(branch, nil))
		assert.Nil(t, IntersectDayRules(nil, branch))
	})

	t.Run("empty intersection", func(t *testing.T) {
		branch := &DayRule{Opens: "09:00", Closes: "12:00"}
		employee := &DayRule{Opens: "14:00", Closes: "18:00"}
		assert.Nil(t, IntersectDayRules(branch, employee))
	})

	t.Run("employee break wins over branch break", func(t *testing.T) {
		branch := &DayRule{
			Opens:      "09:00",
			Closes:     "18:00",
			HasBreak:   true,
			BreakStart: tsPtr("12:00"),
			BreakEnd:   tsPtr("13:00"),
		}
		employee := &DayRule{
			Opens:      "09:00",
			Closes:     "18:00",
			HasBreak:   true,
			BreakStart: tsPtr("14:00"),
			BreakEnd:   tsPtr("15:00"),
		}

		got := IntersectDayRules(branch, employee)
		require.NotNil(t, got)
		require.True(t, got.HasBreak)
		assert.Equal(t, types.TimeString("14:00"), *got.BreakStart)
		assert.Equal(t, types.TimeString("15:00"), *got.BreakEnd)
	})

	t.Run("branch break applies when employee has none", func(t *testing.T) {
		branch := &DayRule{
			Opens:      "09:00",
			Closes:     "18:00",
			HasBreak:   true,
			BreakStart: tsPtr("13:00"),
			BreakEnd:   tsPtr("14:00"),
		}
		employee := &DayRule{Opens: "09:00", Closes: "18:00"}

		got := IntersectDayRules(branch, employee)
		require.NotNil(t, got)
		require.True(t, got.HasBreak)
		assert.Equal(t, types.TimeString("13:00"), *got.BreakStart)
	})

	t.Run("break clipped to effective interval", func(t *testing.T) {
		branch := &DayRule{Opens: "09:00", Closes: "13:30"}
		employee := &DayRule{
			Opens:      "09:00",
			Closes:     "18:00",
			HasBreak:   true,
			BreakStart: tsPtr("13:00"),
			BreakEnd:   tsPtr("14:00"),
		}

		got := IntersectDayRules(branch, employee)
		require.NotNil(t, got)
		require.True(t, got.HasBreak)
		assert.Equal(t, types.TimeString("13:00"), *got.BreakStart)
		assert.Equal(t, types.TimeString("13:30"), *got.BreakEnd)
	})

	t.Run("break outside effective interval dropped", func(t *testing.T) {
		branch := &DayRule{Opens: "09:00", Closes: "12:00"}
		employee := &DayRule{
			Opens:      "09:00",
			Closes:     "18:00",
			HasBreak:   true,
			BreakStart: tsPtr("13:00"),
			BreakEnd:   tsPtr("14:00"),
		}

		got := IntersectDayRules(branch, employee)
		require.NotNil(t, got)
		assert.False(t, got.HasBreak)
	})
}

func TestSlotsNeeded(t *testing.T) {
	assert.Equal(t, 1, SlotsNeeded(30, 30))
	assert.Equal(t, 2, SlotsNeeded(45, 30))
	assert.Equal(t, 2, SlotsNeeded(60, 30))
	assert.Equal(t, 3, SlotsNeeded(61, 30))
	assert.Equal(t, 1, SlotsNeeded(15, 30))
}

func TestAppointment_Occupies(t *testing.T) {
	cases := map[AppointmentStatus]bool{
		StatusPending:           true,
		StatusConfirmed:         true,
		StatusCompleted:         false,
		StatusNoShow:            false,
		StatusCancelledByClient: false,
		StatusCancelledByBranch: false,
	}
	for status, want := range cases {
		appt := &Appointment{Status: status}
		assert.Equal(t, want, appt.Occupies(), "status %s", status)
	}
}

func TestAppointment_EndTime(t *testing.T) {
	appt := &Appointment{StartTime: "10:00", DurationMinutes: 45}
	end, err := appt.EndTime()
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("10:45"), end)
}
