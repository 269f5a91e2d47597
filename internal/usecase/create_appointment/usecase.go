package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agendafacil/AF-SchedulingService/internal/domain"
	scheduleRepo "github.com/agendafacil/AF-SchedulingService/internal/infra/storage/schedule"
	catalogClient "github.com/agendafacil/AF-SchedulingService/internal/integrations/catalogservice"
	"github.com/agendafacil/AF-SchedulingService/internal/lock"
	"github.com/agendafacil/AF-SchedulingService/pkg/types"
)

// lockTTL время жизни advisory-блокировки ресурса на дату.
// Покрывает сериализуемую транзакцию с запасом; при падении процесса
// блокировка снимается Redis'ом сама.
const lockTTL = 10 * time.Second

// UseCase use case для создания записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	scheduleRepo    ScheduleRepository
	blackoutRepo    BlackoutRepository
	catalogClient   CatalogServiceClient
	txManager       TransactionManager
	locker          Locker
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	scheduleRepo ScheduleRepository,
	blackoutRepo BlackoutRepository,
	catalogClient CatalogServiceClient,
	txManager TransactionManager,
	locker Locker,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		scheduleRepo:    scheduleRepo,
		blackoutRepo:    blackoutRepo,
		catalogClient:   catalogClient,
		txManager:       txManager,
		locker:          locker,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи
//
// Повторяет на пути записи все проверки пути чтения внутри advisory-блокировки
// ресурса на дату и сериализуемой транзакции: доступность, показанная клиенту,
// могла устареть между чтением и записью.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: client=%d, branch=%d, service=%d, employee=%v, date=%s, time=%s",
		req.ClientID, req.BranchID, req.ServiceID, req.EmployeeID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем филиал
	if _, err := uc.catalogClient.GetBranch(ctx, req.BranchID); err != nil {
		if errors.Is(err, catalogClient.ErrBranchNotFound) {
			uc.logger.Warn("CreateAppointment: branch id=%d not found", req.BranchID)
			return nil, ErrBranchNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get branch id=%d: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: failed to get branch: %v", ErrInternal, err)
	}

	// 4. Получаем услугу и проверяем, что она оказывается в филиале
	service, err := uc.catalogClient.GetService(ctx, req.BranchID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if err := validateServiceAtBranch(service, req.BranchID); err != nil {
		uc.logger.Warn("CreateAppointment: service id=%d not available at branch id=%d",
			req.ServiceID, req.BranchID)
		return nil, err
	}

	// 5. Проверяем дату и минимальный интервал до начала
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateAppointment: date validation failed: %v", err)
		return nil, err
	}

	if err := validateNotice(req.Date, req.StartTime, now, domain.DefaultMinNoticeMinutes); err != nil {
		uc.logger.Warn("CreateAppointment: notice validation failed: %v", err)
		return nil, err
	}

	// 6. Вычисляем конец интервала по длительности услуги
	endTime, err := req.StartTime.AddMinutes(service.DurationMinutes)
	if err != nil {
		uc.logger.Warn("CreateAppointment: interval %s+%dmin goes past midnight",
			req.StartTime, service.DurationMinutes)
		return nil, ErrOutsideBusinessHours
	}

	// 7. Выбираем кандидатов: конкретного сотрудника или всех подходящих
	eligible, err := uc.catalogClient.GetEligibleEmployees(ctx, req.BranchID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrNoEligibleEmployees) {
			uc.logger.Warn("CreateAppointment: no eligible employees for service id=%d", req.ServiceID)
			return nil, ErrNoEligibleEmployees
		}
		uc.logger.Error("CreateAppointment: failed to get eligible employees: %v", err)
		return nil, fmt.Errorf("%w: failed to get eligible employees: %v", ErrInternal, err)
	}

	candidates, err := selectCandidates(eligible, req.EmployeeID)
	if err != nil {
		uc.logger.Warn("CreateAppointment: employee id=%v does not provide service id=%d",
			req.EmployeeID, req.ServiceID)
		return nil, err
	}

	// 8. Расписание филиала определяет рабочий день
	branchSchedule, err := uc.scheduleRepo.GetWeeklySchedule(ctx, req.BranchID, nil)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			uc.logger.Warn("CreateAppointment: branch id=%d has no schedule", req.BranchID)
			return nil, ErrClosedDay
		}
		uc.logger.Error("CreateAppointment: failed to get branch schedule: %v", err)
		return nil, fmt.Errorf("%w: failed to get branch schedule: %v", ErrInternal, err)
	}

	branchRule := branchSchedule.RuleFor(req.Date)
	if branchRule == nil {
		uc.logger.Warn("CreateAppointment: branch id=%d is closed on %s",
			req.BranchID, req.Date.Format(domain.DateFormat))
		return nil, ErrClosedDay
	}

	// 9. Пробуем кандидатов по очереди; первый прошедший валидацию получает запись
	var lastErr error
	for _, emp := range candidates {
		result, err := uc.tryCreateForEmployee(ctx, req, branchRule, emp.ID, service, endTime)
		if err == nil {
			uc.logger.Info("CreateAppointment: successfully created appointment id=%d, employee id=%d",
				result.ID, result.EmployeeID)
			return toResponse(result, endTime), nil
		}

		// Внутренние ошибки и ошибки конфигурации не лечатся сменой сотрудника
		if errors.Is(err, ErrInternal) || errors.Is(err, ErrInvalidSchedule) {
			return nil, err
		}

		uc.logger.Info("CreateAppointment: employee id=%d rejected: %v", emp.ID, err)
		lastErr = err
	}

	if lastErr == nil {
		return nil, ErrNoEligibleEmployees
	}

	return nil, lastErr
}

// tryCreateForEmployee валидирует интервал у конкретного сотрудника и создает
// запись. Advisory-блокировка на (филиал, сотрудник, дата) плюс FOR UPDATE
// внутри сериализуемой транзакции исключают двойное бронирование.
func (uc *UseCase) tryCreateForEmployee(
	ctx context.Context,
	req *Request,
	branchRule *domain.DayRule,
	employeeID int64,
	service *catalogClient.Service,
	endTime types.TimeString,
) (*domain.Appointment, error) {
	lockKey := lock.ResourceDateKey(req.BranchID, employeeID, req.Date)

	acquired, err := uc.locker.Lock(ctx, lockKey, lockTTL)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to acquire lock %s: %v", lockKey, err)
		return nil, fmt.Errorf("%w: failed to acquire lock: %v", ErrInternal, err)
	}
	if !acquired {
		return nil, ErrResourceBusy
	}
	defer func() {
		if err := uc.locker.Unlock(ctx, lockKey); err != nil {
			uc.logger.Warn("CreateAppointment: failed to release lock %s: %v", lockKey, err)
		}
	}()

	var result *domain.Appointment

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Эффективное правило - пересечение часов филиала и сотрудника
		empSchedule, err := uc.scheduleRepo.GetScheduleWithFallback(txCtx, req.BranchID, employeeID)
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
				return ErrClosedDay
			}
			uc.logger.Error("CreateAppointment: failed to get schedule for employee id=%d: %v", employeeID, err)
			return fmt.Errorf("%w: failed to get employee schedule: %v", ErrInternal, err)
		}

		effective := domain.IntersectDayRules(branchRule, empSchedule.RuleFor(req.Date))

		// 2. Периоды недоступности филиала и сотрудника
		blackouts, err := uc.blackoutRepo.GetForDate(txCtx, req.BranchID, req.Date)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get blackouts: %v", err)
			return fmt.Errorf("%w: failed to get blackouts: %v", ErrInternal, err)
		}

		blackedOut := false
		for _, b := range blackouts {
			if b.AppliesTo(employeeID) && b.Contains(req.Date) {
				blackedOut = true
				break
			}
		}

		// 3. Активные записи сотрудника на дату с блокировкой (FOR UPDATE)
		filter := domain.BranchAppointmentsFilter{
			BranchID:   req.BranchID,
			EmployeeID: &employeeID,
			StartDate:  &req.Date,
			EndDate:    &req.Date,
		}

		booked, err := uc.appointmentRepo.GetByBranchWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 4. Повторная валидация интервала на актуальных данных
		if err := validateInterval(effective, blackedOut, booked, req.StartTime, endTime); err != nil {
			return err
		}

		// 5. Создаем запись с денормализацией данных услуги
		appointment := &domain.Appointment{
			ClientID:        req.ClientID,
			BranchID:        req.BranchID,
			EmployeeID:      employeeID,
			ServiceID:       req.ServiceID,
			Date:            req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: service.DurationMinutes,
			Status:          domain.StatusConfirmed,
			ServiceName:     service.Name,
			ServicePrice:    getServicePrice(service),
			Notes:           req.Notes,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	return result, nil
}

// selectCandidates выбирает сотрудников-кандидатов: конкретного (с проверкой,
// что он оказывает услугу) либо всех подходящих
func selectCandidates(eligible []catalogClient.Employee, employeeID *int64) ([]catalogClient.Employee, error) {
	if employeeID == nil {
		return eligible, nil
	}

	for _, emp := range eligible {
		if emp.ID == *employeeID {
			return []catalogClient.Employee{emp}, nil
		}
	}

	return nil, ErrEmployeeNotEligible
}

// toResponse конвертирует созданную запись в response
func toResponse(appt *domain.Appointment, endTime types.TimeString) *Response {
	return &Response{
		ID:              appt.ID,
		ClientID:        appt.ClientID,
		BranchID:        appt.BranchID,
		EmployeeID:      appt.EmployeeID,
		ServiceID:       appt.ServiceID,
		Date:            appt.Date,
		StartTime:       appt.StartTime,
		EndTime:         endTime,
		DurationMinutes: appt.DurationMinutes,
		Status:          string(appt.Status),
		ServiceName:     appt.ServiceName,
		ServicePrice:    appt.ServicePrice,
		Notes:           appt.Notes,
		CreatedAt:       appt.CreatedAt,
		UpdatedAt:       appt.UpdatedAt,
	}
}
