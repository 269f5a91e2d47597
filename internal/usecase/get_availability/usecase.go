package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/agendafacil/AF-SchedulingService/internal/domain"
	scheduleRepo "github.com/agendafacil/AF-SchedulingService/internal/infra/storage/schedule"
	catalogClient "github.com/agendafacil/AF-SchedulingService/internal/integrations/catalogservice"
	"github.com/agendafacil/AF-SchedulingService/pkg/types"
)

// UseCase use case расчёта доступности слотов для бронирования
type UseCase struct {
	appointmentRepo AppointmentRepository
	scheduleRepo    ScheduleRepository
	blackoutRepo    BlackoutRepository
	catalogClient   CatalogServiceClient
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	scheduleRepo ScheduleRepository,
	blackoutRepo BlackoutRepository,
	catalogClient CatalogServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		scheduleRepo:    scheduleRepo,
		blackoutRepo:    blackoutRepo,
		catalogClient:   catalogClient,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case расчёта доступности
//
// Чтение доступности - чистое вычисление без разделяемого состояния:
// все данные (расписания, недоступности, записи) загружаются заранее,
// дальше работает только арифметика интервалов. Повторный вызов с теми же
// данными даёт тот же результат.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: branch=%d, service=%d, employee=%v, date=%s",
		req.BranchID, req.ServiceID, req.EmployeeID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Получаем филиал
	if _, err := uc.catalogClient.GetBranch(ctx, req.BranchID); err != nil {
		if errors.Is(err, catalogClient.ErrBranchNotFound) {
			uc.logger.Warn("GetAvailability: branch id=%d not found", req.BranchID)
			return nil, ErrBranchNotFound
		}
		uc.logger.Error("GetAvailability: failed to get branch id=%d: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: failed to get branch: %v", ErrInternal, err)
	}

	// 3. Получаем услугу и проверяем, что она оказывается в филиале
	service, err := uc.catalogClient.GetService(ctx, req.BranchID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailability: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailability: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if err := validateServiceAtBranch(service, req.BranchID); err != nil {
		uc.logger.Warn("GetAvailability: service id=%d not available at branch id=%d",
			req.ServiceID, req.BranchID)
		return nil, err
	}

	granularity := domain.DefaultGranularityMinutes

	// 4. Дата в прошлом - не ошибка, просто нет доступности
	if isDateInPast(req.Date, now) {
		uc.logger.Info("GetAvailability: date %s is in the past", req.Date.Format(domain.DateFormat))
		return uc.emptyResponse(req, service.DurationMinutes, granularity), nil
	}

	// 5. Выбираем сотрудников: конкретного или всех, кто оказывает услугу
	eligible, err := uc.catalogClient.GetEligibleEmployees(ctx, req.BranchID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrNoEligibleEmployees) {
			uc.logger.Warn("GetAvailability: no eligible employees for service id=%d", req.ServiceID)
			return nil, ErrNoEligibleEmployees
		}
		uc.logger.Error("GetAvailability: failed to get eligible employees: %v", err)
		return nil, fmt.Errorf("%w: failed to get eligible employees: %v", ErrInternal, err)
	}

	employees, err := selectEmployees(eligible, req.EmployeeID)
	if err != nil {
		uc.logger.Warn("GetAvailability: employee id=%v does not provide service id=%d",
			req.EmployeeID, req.ServiceID)
		return nil, err
	}

	// 6. Расписание филиала определяет рабочий день и сетку слотов
	branchSchedule, err := uc.scheduleRepo.GetWeeklySchedule(ctx, req.BranchID, nil)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			uc.logger.Info("GetAvailability: branch id=%d has no schedule", req.BranchID)
			return uc.emptyResponse(req, service.DurationMinutes, granularity), nil
		}
		uc.logger.Error("GetAvailability: failed to get branch schedule: %v", err)
		return nil, fmt.Errorf("%w: failed to get branch schedule: %v", ErrInternal, err)
	}

	branchRule := branchSchedule.RuleFor(req.Date)
	if branchRule == nil {
		uc.logger.Info("GetAvailability: branch id=%d is closed on %s",
			req.BranchID, req.Date.Format(domain.DateFormat))
		return uc.emptyResponse(req, service.DurationMinutes, granularity), nil
	}
	if err := branchRule.Validate(); err != nil {
		uc.logger.Error("GetAvailability: branch id=%d schedule misconfigured: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}

	// 7. Периоды недоступности: закрытие филиала обнуляет весь день
	blackouts, err := uc.blackoutRepo.GetForDate(ctx, req.BranchID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get blackouts: %v", err)
		return nil, fmt.Errorf("%w: failed to get blackouts: %v", ErrInternal, err)
	}

	for _, b := range blackouts {
		if b.EmployeeID == nil && b.Contains(req.Date) {
			uc.logger.Info("GetAvailability: branch id=%d is blacked out on %s",
				req.BranchID, req.Date.Format(domain.DateFormat))
			return uc.emptyResponse(req, service.DurationMinutes, granularity), nil
		}
	}

	// 8. Все записи филиала на дату, одним запросом; дальше группируем по сотрудникам
	filter := domain.BranchAppointmentsFilter{
		BranchID:  req.BranchID,
		StartDate: &req.Date,
		EndDate:   &req.Date,
	}
	appointments, err := uc.appointmentRepo.GetByBranchWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	bookedByEmployee := make(map[int64][]*domain.Appointment)
	for _, appt := range appointments {
		bookedByEmployee[appt.EmployeeID] = append(bookedByEmployee[appt.EmployeeID], appt)
	}

	// 9. Объединяем допустимые начала бронирования по всем выбранным сотрудникам
	availableStarts := make(map[types.TimeString]bool)

	for _, emp := range employees {
		starts, err := uc.computeEmployeeStarts(ctx, req, branchRule, blackouts,
			bookedByEmployee[emp.ID], emp.ID, service.DurationMinutes, granularity)
		if err != nil {
			return nil, err
		}
		for _, s := range starts {
			availableStarts[s.Start] = true
		}
	}

	// 10. Запись на сегодня возможна не раньше, чем через минимальный интервал от текущего момента
	if isSameDay(req.Date, now) {
		applyMinNotice(availableStarts, now, domain.DefaultMinNoticeMinutes)
	}

	// 11. Строим сетку всего рабочего дня филиала и помечаем доступные начала
	slots := uc.buildDayGrid(branchRule, availableStarts, service.DurationMinutes, granularity)

	uc.logger.Info("GetAvailability: %d slots (%d available) for branch=%d, service=%d, date=%s",
		len(slots), len(availableStarts), req.BranchID, req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:               req.Date,
		BranchID:           req.BranchID,
		ServiceID:          req.ServiceID,
		EmployeeID:         req.EmployeeID,
		DurationMinutes:    service.DurationMinutes,
		GranularityMinutes: granularity,
		Slots:              slots,
	}, nil
}

// computeEmployeeStarts вычисляет допустимые начала бронирования у одного сотрудника
func (uc *UseCase) computeEmployeeStarts(
	ctx context.Context,
	req *Request,
	branchRule *domain.DayRule,
	blackouts []*domain.BlackoutPeriod,
	booked []*domain.Appointment,
	employeeID int64,
	durationMinutes int,
	granularity int,
) ([]domain.BookableStart, error) {
	empSchedule, err := uc.scheduleRepo.GetScheduleWithFallback(ctx, req.BranchID, employeeID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			// Сотрудник без расписания недоступен для записи
			uc.logger.Info("GetAvailability: employee id=%d has no schedule", employeeID)
			return nil, nil
		}
		uc.logger.Error("GetAvailability: failed to get schedule for employee id=%d: %v", employeeID, err)
		return nil, fmt.Errorf("%w: failed to get employee schedule: %v", ErrInternal, err)
	}

	// Эффективное правило ресурса - пересечение часов филиала и сотрудника
	effective := domain.IntersectDayRules(branchRule, empSchedule.RuleFor(req.Date))

	blackedOut := false
	for _, b := range blackouts {
		if b.AppliesTo(employeeID) && b.Contains(req.Date) {
			blackedOut = true
			break
		}
	}

	atomicSlots, err := computeAtomicSlots(effective, blackedOut, booked, granularity)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDayRule) {
			uc.logger.Error("GetAvailability: employee id=%d schedule misconfigured: %v", employeeID, err)
			return nil, fmt.Errorf("%w: employee id=%d: %v", ErrInvalidSchedule, employeeID, err)
		}
		return nil, fmt.Errorf("%w: failed to compute atomic slots: %v", ErrInternal, err)
	}

	return computeBookableStarts(atomicSlots, durationMinutes, granularity), nil
}

// buildDayGrid строит сетку кандидатов на начало бронирования на весь рабочий
// день филиала. Каждый кандидат несёт интервал длительностью услуги;
// available выставляется по объединённой доступности сотрудников.
// Группировка по утру/дню/вечеру - задача представления, сюда не входит.
func (uc *UseCase) buildDayGrid(
	branchRule *domain.DayRule,
	availableStarts map[types.TimeString]bool,
	durationMinutes int,
	granularity int,
) []Slot {
	slots := make([]Slot, 0)
	current := branchRule.Opens

	for current.IsBefore(branchRule.Closes) {
		stepEnd, err := current.AddMinutes(granularity)
		if err != nil || stepEnd.IsAfter(branchRule.Closes) {
			break
		}

		end, err := current.AddMinutes(durationMinutes)
		if err != nil {
			// Интервал уходит за полночь - бронирование отсюда невозможно,
			// кандидат в сетку не попадает
			current = stepEnd
			continue
		}

		slots = append(slots, Slot{
			Start:     current,
			End:       end,
			Available: availableStarts[current],
		})

		current = stepEnd
	}

	return slots
}

// emptyResponse ответ без слотов: закрытый день, прошедшая дата или blackout
func (uc *UseCase) emptyResponse(req *Request, durationMinutes, granularity int) *Response {
	return &Response{
		Date:               req.Date,
		BranchID:           req.BranchID,
		ServiceID:          req.ServiceID,
		EmployeeID:         req.EmployeeID,
		DurationMinutes:    durationMinutes,
		GranularityMinutes: granularity,
		Slots:              []Slot{},
	}
}
