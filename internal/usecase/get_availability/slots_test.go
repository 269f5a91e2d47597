package get_availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendafacil/AF-SchedulingService/internal/domain"
	"github.com/agendafacil/AF-SchedulingService/pkg/types"
)

func tsPtr(s string) *types.TimeString {
	ts := types.MustTimeString(s)
	return &ts
}

func workday(opens, closes string) *domain.DayRule {
	return &domain.DayRule{
		Opens:  types.MustTimeString(opens),
		Closes: types.MustTimeString(closes),
	}
}

func workdayWithBreak(opens, closes, breakStart, breakEnd string) *domain.DayRule {
	return &domain.DayRule{
		Opens:      types.MustTimeString(opens),
		Closes:     types.MustTimeString(closes),
		HasBreak:   true,
		BreakStart: tsPtr(breakStart),
		BreakEnd:   tsPtr(breakEnd),
	}
}

func booking(start string, durationMinutes int) *domain.Appointment {
	return &domain.Appointment{
		StartTime:       types.MustTimeString(start),
		DurationMinutes: durationMinutes,
		Status:          domain.StatusConfirmed,
	}
}

func startTimes(starts []domain.BookableStart) []types.TimeString {
	result := make([]types.TimeString, 0, len(starts))
	for _, s := range starts {
		result = append(result, s.Start)
	}
	return result
}

func TestComputeAtomicSlots(t *testing.T) {
	t.Run("slot count without break", func(t *testing.T) {
		// 09:00-18:00 с шагом 30 минут = 18 слотов
		slots, err := computeAtomicSlots(workday("09:00", "18:00"), false, nil, 30)
		require.NoError(t, err)
		assert.Len(t, slots, 18)

		for _, s := range slots {
			assert.True(t, s.Free)
		}
		assert.Equal(t, types.MustTimeString("09:00"), slots[0].Start)
		assert.Equal(t, types.MustTimeString("17:30"), slots[17].Start)
		assert.Equal(t, types.MustTimeString("18:00"), slots[17].End)
	})

	t.Run("trailing partial slot dropped", func(t *testing.T) {
		// 09:00-18:15: слот 18:00-18:30 не помещается до закрытия
		slots, err := computeAtomicSlots(workday("09:00", "18:15"), false, nil, 30)
		require.NoError(t, err)
		assert.Len(t, slots, 18)
		assert.Equal(t, types.MustTimeString("18:00"), slots[17].End)
	})

	t.Run("closed day yields empty sequence", func(t *testing.T) {
		slots, err := computeAtomicSlots(nil, false, nil, 30)
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("blackout yields empty sequence", func(t *testing.T) {
		slots, err := computeAtomicSlots(workday("09:00", "18:00"), true, nil, 30)
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("invalid rule is an error, not empty", func(t *testing.T) {
		_, err := computeAtomicSlots(workday("18:00", "09:00"), false, nil, 30)
		assert.ErrorIs(t, err, domain.ErrInvalidDayRule)
	})

	t.Run("break slots occupied, abutting slots free", func(t *testing.T) {
		rule := workdayWithBreak("09:00", "18:00", "13:00", "14:00")
		slots, err := computeAtomicSlots(rule, false, nil, 30)
		require.NoError(t, err)

		free := map[types.TimeString]bool{}
		for _, s := range slots {
			free[s.Start] = s.Free
		}

		assert.False(t, free["13:00"])
		assert.False(t, free["13:30"])
		// Слоты, граничащие с перерывом, свободны
		assert.True(t, free["12:30"])
		assert.True(t, free["14:00"])
	})

	t.Run("booked interval occupies overlapping slots only", func(t *testing.T) {
		booked := []*domain.Appointment{booking("10:00", 45)}
		slots, err := computeAtomicSlots(workday("09:00", "18:00"), false, booked, 30)
		require.NoError(t, err)

		free := map[types.TimeString]bool{}
		for _, s := range slots {
			free[s.Start] = s.Free
		}

		assert.False(t, free["10:00"])
		assert.False(t, free["10:30"]) // запись 10:00-10:45 задевает слот 10:30-11:00
		assert.True(t, free["09:30"])  // касание границы в 10:00 - не пересечение
		assert.True(t, free["11:00"])
	})

	t.Run("cancelled and completed bookings do not occupy", func(t *testing.T) {
		cancelled := booking("10:00", 30)
		cancelled.Status = domain.StatusCancelledByClient
		completed := booking("11:00", 30)
		completed.Status = domain.StatusCompleted

		slots, err := computeAtomicSlots(workday("09:00", "18:00"),
			false, []*domain.Appointment{cancelled, completed}, 30)
		require.NoError(t, err)

		for _, s := range slots {
			assert.True(t, s.Free, "slot %s", s.Start)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		rule := workdayWithBreak("09:00", "18:00", "13:00", "14:00")
		booked := []*domain.Appointment{booking("10:00", 30)}

		first, err := computeAtomicSlots(rule, false, booked, 30)
		require.NoError(t, err)
		second, err := computeAtomicSlots(rule, false, booked, 30)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})
}

func TestComputeBookableStarts(t *testing.T) {
	t.Run("booked interval blocks all spanning starts", func(t *testing.T) {
		// 09:00-18:00, шаг 30, услуга 45 минут, занято 10:00-10:30:
		// 09:30 и 10:00 выпадают (их интервалы пересекают запись), 10:30 остаётся
		booked := []*domain.Appointment{booking("10:00", 30)}
		slots, err := computeAtomicSlots(workday("09:00", "18:00"), false, booked, 30)
		require.NoError(t, err)

		starts := startTimes(computeBookableStarts(slots, 45, 30))
		assert.Contains(t, starts, types.MustTimeString("09:00"))
		assert.Contains(t, starts, types.MustTimeString("10:30"))
		assert.NotContains(t, starts, types.MustTimeString("09:30"))
		assert.NotContains(t, starts, types.MustTimeString("10:00"))
	})

	t.Run("end time is arithmetic, not grid-aligned", func(t *testing.T) {
		slots, err := computeAtomicSlots(workday("09:00", "18:00"), false, nil, 30)
		require.NoError(t, err)

		starts := computeBookableStarts(slots, 45, 30)
		require.NotEmpty(t, starts)
		assert.Equal(t, types.MustTimeString("09:00"), starts[0].Start)
		assert.Equal(t, types.MustTimeString("09:45"), starts[0].End)
	})

	t.Run("no start spans into break, first slot after break valid", func(t *testing.T) {
		rule := workdayWithBreak("09:00", "18:00", "13:00", "14:00")
		slots, err := computeAtomicSlots(rule, false, nil, 30)
		require.NoError(t, err)

		starts := startTimes(computeBookableStarts(slots, 60, 30))
		assert.NotContains(t, starts, types.MustTimeString("12:30"))
		assert.NotContains(t, starts, types.MustTimeString("13:00"))
		assert.NotContains(t, starts, types.MustTimeString("13:30"))
		assert.Contains(t, starts, types.MustTimeString("14:00"))
		assert.Contains(t, starts, types.MustTimeString("12:00"))
	})

	t.Run("booking may end exactly at break start", func(t *testing.T) {
		rule := workdayWithBreak("09:00", "18:00", "13:00", "14:00")
		slots, err := computeAtomicSlots(rule, false, nil, 30)
		require.NoError(t, err)

		starts := startTimes(computeBookableStarts(slots, 30, 30))
		assert.Contains(t, starts, types.MustTimeString("12:30"))
	})

	t.Run("booking may not start exactly at break start", func(t *testing.T) {
		rule := workdayWithBreak("09:00", "18:00", "13:00", "14:00")
		slots, err := computeAtomicSlots(rule, false, nil, 30)
		require.NoError(t, err)

		starts := startTimes(computeBookableStarts(slots, 30, 30))
		assert.NotContains(t, starts, types.MustTimeString("13:00"))
		assert.NotContains(t, starts, types.MustTimeString("13:30"))
		assert.Contains(t, starts, types.MustTimeString("14:00"))
	})

	t.Run("booking may end exactly at closing", func(t *testing.T) {
		slots, err := computeAtomicSlots(workday("09:00", "18:00"), false, nil, 30)
		require.NoError(t, err)

		starts := startTimes(computeBookableStarts(slots, 60, 30))
		assert.Contains(t, starts, types.MustTimeString("17:00"))
		assert.NotContains(t, starts, types.MustTimeString("17:30"))
	})

	t.Run("flipping one needed slot removes the start", func(t *testing.T) {
		slots, err := computeAtomicSlots(workday("09:00", "12:00"), false, nil, 30)
		require.NoError(t, err)

		before := startTimes(computeBookableStarts(slots, 60, 30))
		require.Contains(t, before, types.MustTimeString("09:30"))

		// Занимаем слот 10:00-10:30 - второй из пары для старта 09:30
		for i := range slots {
			if slots[i].Start == types.MustTimeString("10:00") {
				slots[i].Free = false
			}
		}

		after := startTimes(computeBookableStarts(slots, 60, 30))
		assert.NotContains(t, after, types.MustTimeString("09:30"))
		assert.NotContains(t, after, types.MustTimeString("10:00"))
		assert.Contains(t, after, types.MustTimeString("09:00"))
	})

	t.Run("duration longer than remaining day yields no tail starts", func(t *testing.T) {
		slots, err := computeAtomicSlots(workday("09:00", "10:00"), false, nil, 30)
		require.NoError(t, err)

		starts := computeBookableStarts(slots, 90, 30)
		assert.Empty(t, starts)
	})

	t.Run("empty slot sequence yields no starts", func(t *testing.T) {
		starts := computeBookableStarts([]domain.AtomicSlot{}, 30, 30)
		assert.Empty(t, starts)
	})
}

func TestApplyMinNotice(t *testing.T) {
	newStarts := func(times ...string) map[types.TimeString]bool {
		starts := make(map[types.TimeString]bool)
		for _, s := range times {
			starts[types.MustTimeString(s)] = true
		}
		return starts
	}

	t.Run("removes starts inside the notice window", func(t *testing.T) {
		starts := newStarts("12:00", "12:30", "13:00", "13:15", "13:30")
		now := time.Date(2026, 9, 7, 12, 15, 0, 0, time.UTC)

		applyMinNotice(starts, now, 60)

		assert.NotContains(t, starts, types.MustTimeString("12:00"))
		assert.NotContains(t, starts, types.MustTimeString("12:30"))
		assert.NotContains(t, starts, types.MustTimeString("13:00"))
		// Начало ровно на границе окна допустимо
		assert.Contains(t, starts, types.MustTimeString("13:15"))
		assert.Contains(t, starts, types.MustTimeString("13:30"))
	})

	t.Run("notice window past midnight clears all starts", func(t *testing.T) {
		starts := newStarts("23:30", "23:50")
		now := time.Date(2026, 9, 7, 23, 30, 0, 0, time.UTC)

		applyMinNotice(starts, now, 60)

		assert.Empty(t, starts)
	})
}

func TestBuildDayGrid(t *testing.T) {
	uc := &UseCase{}

	t.Run("marks available starts on the branch grid", func(t *testing.T) {
		rule := workday("09:00", "11:00")
		available := map[types.TimeString]bool{
			types.MustTimeString("09:30"): true,
		}

		grid := uc.buildDayGrid(rule, available, 45, 30)
		require.Len(t, grid, 4)
		assert.False(t, grid[0].Available)
		assert.True(t, grid[1].Available)
		assert.Equal(t, types.MustTimeString("09:30"), grid[1].Start)
		assert.Equal(t, types.MustTimeString("10:15"), grid[1].End)
	})

	t.Run("entries whose interval crosses midnight are dropped", func(t *testing.T) {
		rule := workday("22:00", "24:00")

		grid := uc.buildDayGrid(rule, map[types.TimeString]bool{}, 90, 30)

		// 23:00 + 90 минут и 23:30 + 90 минут уходят за полночь
		require.Len(t, grid, 2)
		assert.Equal(t, types.MustTimeString("22:00"), grid[0].Start)
		assert.Equal(t, types.MustTimeString("23:30"), grid[0].End)
		assert.Equal(t, types.MustTimeString("22:30"), grid[1].Start)
		assert.Equal(t, types.MustTimeString("24:00"), grid[1].End)
	})
}
