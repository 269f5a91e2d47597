package create_appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendafacil/AF-SchedulingService/internal/domain"
	"github.com/agendafacil/AF-SchedulingService/internal/integrations/catalogservice"
	"github.com/agendafacil/AF-SchedulingService/pkg/types"
)

func tsPtr(s string) *types.TimeString {
	ts := types.MustTimeString(s)
	return &ts
}

func openRule(opens, closes string) *domain.DayRule {
	return &domain.DayRule{
		Opens:  types.MustTimeString(opens),
		Closes: types.MustTimeString(closes),
	}
}

func confirmedBooking(start string, durationMinutes int) *domain.Appointment {
	return &domain.Appointment{
		StartTime:       types.MustTimeString(start),
		DurationMinutes: durationMinutes,
		Status:          domain.StatusConfirmed,
	}
}

func TestValidateRequest(t *testing.T) {
	valid := func() *Request {
		return &Request{
			ClientID:  1,
			BranchID:  2,
			ServiceID: 3,
			Date:      time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
			StartTime: "10:00",
		}
	}

	t.Run("valid request", func(t *testing.T) {
		assert.NoError(t, validateRequest(valid()))
	})

	t.Run("missing identifiers", func(t *testing.T) {
		req := valid()
		req.ClientID = 0
		assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)

		req = valid()
		req.BranchID = -1
		assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)

		req = valid()
		req.ServiceID = 0
		assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)
	})

	t.Run("non-positive employee id", func(t *testing.T) {
		req := valid()
		zero := int64(0)
		req.EmployeeID = &zero
		assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)
	})

	t.Run("zero date", func(t *testing.T) {
		req := valid()
		req.Date = time.Time{}
		assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)
	})

	t.Run("bad start time format", func(t *testing.T) {
		req := valid()
		req.StartTime = "10-00"
		assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)
	})
}

func TestValidateDate(t *testing.T) {
	now := time.Date(2026, 9, 7, 15, 0, 0, 0, time.UTC)

	t.Run("past date rejected", func(t *testing.T) {
		yesterday := now.AddDate(0, 0, -1)
		assert.ErrorIs(t, validateDate(yesterday, now), ErrInvalidDate)
	})

	t.Run("today allowed regardless of wall clock", func(t *testing.T) {
		morning := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
		assert.NoError(t, validateDate(morning, now))
	})

	t.Run("future date allowed", func(t *testing.T) {
		assert.NoError(t, validateDate(now.AddDate(0, 0, 14), now))
	})
}

func TestValidateNotice(t *testing.T) {
	now := time.Date(2026, 9, 7, 12, 0, 0, 0, time.UTC)
	today := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	t.Run("other day skips check", func(t *testing.T) {
		tomorrow := today.AddDate(0, 0, 1)
		assert.NoError(t, validateNotice(tomorrow, "12:15", now, 60))
	})

	t.Run("same day too close", func(t *testing.T) {
		err := validateNotice(today, "12:30", now, 60)
		assert.ErrorIs(t, err, ErrTooLateToBook)
	})

	t.Run("same day exactly at min notice", func(t *testing.T) {
		assert.NoError(t, validateNotice(today, "13:00", now, 60))
	})

	t.Run("same day with enough notice", func(t *testing.T) {
		assert.NoError(t, validateNotice(today, "15:00", now, 60))
	})

	t.Run("notice window past midnight rejects instead of failing", func(t *testing.T) {
		lateNow := time.Date(2026, 9, 7, 23, 30, 0, 0, time.UTC)
		err := validateNotice(today, "23:50", lateNow, 60)
		assert.ErrorIs(t, err, ErrTooLateToBook)
		assert.NotErrorIs(t, err, ErrInternal)
	})
}

func TestValidateServiceAtBranch(t *testing.T) {
	service := &catalogservice.Service{BranchIDs: []int64{1, 2, 3}}

	assert.NoError(t, validateServiceAtBranch(service, 2))
	assert.ErrorIs(t, validateServiceAtBranch(service, 7), ErrServiceNotAtBranch)
}

func TestValidateInterval(t *testing.T) {
	rule := &domain.DayRule{
		Opens:      types.MustTimeString("09:00"),
		Closes:     types.MustTimeString("18:00"),
		HasBreak:   true,
		BreakStart: tsPtr("13:00"),
		BreakEnd:   tsPtr("14:00"),
	}

	t.Run("valid interval", func(t *testing.T) {
		assert.NoError(t, validateInterval(rule, false, nil, "10:00", "10:45"))
	})

	t.Run("closed day", func(t *testing.T) {
		err := validateInterval(nil, false, nil, "10:00", "10:45")
		assert.ErrorIs(t, err, ErrClosedDay)
	})

	t.Run("invalid schedule configuration", func(t *testing.T) {
		broken := openRule("18:00", "09:00")
		err := validateInterval(broken, false, nil, "10:00", "10:45")
		assert.ErrorIs(t, err, ErrInvalidSchedule)
	})

	t.Run("before opening", func(t *testing.T) {
		err := validateInterval(rule, false, nil, "08:30", "09:15")
		assert.ErrorIs(t, err, ErrOutsideBusinessHours)
	})

	t.Run("past closing", func(t *testing.T) {
		err := validateInterval(rule, false, nil, "17:30", "18:15")
		assert.ErrorIs(t, err, ErrOutsideBusinessHours)
	})

	t.Run("ending exactly at closing allowed", func(t *testing.T) {
		assert.NoError(t, validateInterval(rule, false, nil, "17:15", "18:00"))
	})

	t.Run("overlapping break", func(t *testing.T) {
		err := validateInterval(rule, false, nil, "12:45", "13:30")
		assert.ErrorIs(t, err, ErrDuringBreak)
	})

	t.Run("ending exactly at break start allowed", func(t *testing.T) {
		assert.NoError(t, validateInterval(rule, false, nil, "12:15", "13:00"))
	})

	t.Run("starting exactly at break start rejected", func(t *testing.T) {
		err := validateInterval(rule, false, nil, "13:00", "13:30")
		assert.ErrorIs(t, err, ErrDuringBreak)
	})

	t.Run("starting exactly at break end allowed", func(t *testing.T) {
		assert.NoError(t, validateInterval(rule, false, nil, "14:00", "14:30"))
	})

	t.Run("blackout", func(t *testing.T) {
		err := validateInterval(rule, true, nil, "10:00", "10:45")
		assert.ErrorIs(t, err, ErrResourceBlackedOut)
	})

	t.Run("conflict with occupying booking", func(t *testing.T) {
		booked := []*domain.Appointment{confirmedBooking("10:00", 30)}
		err := validateInterval(rule, false, booked, "09:45", "10:30")
		assert.ErrorIs(t, err, ErrSlotConflict)
	})

	t.Run("abutting booking is not a conflict", func(t *testing.T) {
		booked := []*domain.Appointment{confirmedBooking("10:00", 30)}
		assert.NoError(t, validateInterval(rule, false, booked, "10:30", "11:15"))
	})

	t.Run("cancelled booking is not a conflict", func(t *testing.T) {
		cancelled := confirmedBooking("10:00", 30)
		cancelled.Status = domain.StatusCancelledByBranch
		booked := []*domain.Appointment{cancelled}
		assert.NoError(t, validateInterval(rule, false, booked, "10:00", "10:45"))
	})

	t.Run("rejection order: break before blackout", func(t *testing.T) {
		err := validateInterval(rule, true, nil, "13:15", "13:45")
		assert.ErrorIs(t, err, ErrDuringBreak)
	})
}

func TestGetServicePrice(t *testing.T) {
	price := 1500.0
	assert.Equal(t, 1500.0, getServicePrice(&catalogservice.Service{Price: &price}))
	assert.Equal(t, 0.0, getServicePrice(&catalogservice.Service{}))
}

func TestIsDateInPast(t *testing.T) {
	now := time.Date(2026, 9, 7, 23, 30, 0, 0, time.UTC)

	require.True(t, isDateInPast(now.AddDate(0, 0, -1), now))
	require.False(t, isDateInPast(now, now))
	require.False(t, isDateInPast(now.AddDate(0, 0, 1), now))
}
