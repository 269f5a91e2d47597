package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	blackoutRepo "github.com/agendafacil/AF-SchedulingService/internal/infra/storage/blackout"
	scheduleRepo "github.com/agendafacil/AF-SchedulingService/internal/infra/storage/schedule"
	catalogClient "github.com/agendafacil/AF-SchedulingService/internal/integrations/catalogservice"
	"github.com/agendafacil/AF-SchedulingService/internal/service/schedule/models"
)

// Service сервис управления расписаниями и периодами недоступности
type Service struct {
	scheduleRepo  ScheduleRepository
	blackoutRepo  BlackoutRepository
	catalogClient CatalogServiceClient
	logger        Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	scheduleRepo ScheduleRepository,
	blackoutRepo BlackoutRepository,
	catalogClient CatalogServiceClient,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo:  scheduleRepo,
		blackoutRepo:  blackoutRepo,
		catalogClient: catalogClient,
		logger:        logger,
	}
}

// GetSchedule получает недельное расписание филиала или сотрудника
// Публичный метод - доступен всем
func (s *Service) GetSchedule(ctx context.Context, branchID int64, employeeID *int64) (*models.ScheduleResponse, error) {
	s.logger.Info("GetSchedule: fetching schedule for branch=%d, employee=%v", branchID, employeeID)

	schedule, err := s.scheduleRepo.GetWeeklySchedule(ctx, branchID, employeeID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Warn("GetSchedule: schedule not found for branch=%d, employee=%v", branchID, employeeID)
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("GetSchedule: repository error for branch=%d: %v", branchID, err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetSchedule: successfully fetched schedule for branch=%d, employee=%v", branchID, employeeID)
	return models.FromDomainSchedule(branchID, employeeID, schedule), nil
}

// UpsertDayRule создает или обновляет правило на день недели
// Доступно только менеджерам филиала
func (s *Service) UpsertDayRule(ctx context.Context, req *models.UpsertDayRuleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("UpsertDayRule: branch=%d, employee=%v, weekday=%d by client=%d",
		req.BranchID, req.EmployeeID, req.Weekday, req.ClientID)

	// 1. Валидируем день недели
	if req.Weekday < 0 || req.Weekday > 6 {
		s.logger.Warn("UpsertDayRule: invalid weekday=%d", req.Weekday)
		return nil, fmt.Errorf("%w: weekday must be between 0 and 6", ErrInvalidInput)
	}

	// 2. Конвертируем и валидируем правило (opens < closes, перерыв внутри рабочих часов)
	rule, err := req.ToDayRule()
	if err != nil {
		s.logger.Warn("UpsertDayRule: invalid rule: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 3. Проверяем права доступа (только менеджер филиала)
	if err := s.checkManagerAccess(ctx, req.BranchID, req.ClientID); err != nil {
		return nil, err
	}

	// 4. Сохраняем правило
	if err := s.scheduleRepo.UpsertDayRule(ctx, req.BranchID, req.EmployeeID, time.Weekday(req.Weekday), rule); err != nil {
		s.logger.Error("UpsertDayRule: repository error for branch=%d: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: UpsertDayRule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpsertDayRule: successfully upserted rule for branch=%d, employee=%v, weekday=%d",
		req.BranchID, req.EmployeeID, req.Weekday)

	// 5. Возвращаем актуальное расписание
	return s.GetSchedule(ctx, req.BranchID, req.EmployeeID)
}

// DeleteDayRule удаляет правило на день недели (день становится закрытым)
// Доступно только менеджерам филиала
func (s *Service) DeleteDayRule(ctx context.Context, req *models.DeleteDayRuleRequest) error {
	s.logger.Info("DeleteDayRule: branch=%d, employee=%v, weekday=%d by client=%d",
		req.BranchID, req.EmployeeID, req.Weekday, req.ClientID)

	if req.Weekday < 0 || req.Weekday > 6 {
		s.logger.Warn("DeleteDayRule: invalid weekday=%d", req.Weekday)
		return fmt.Errorf("%w: weekday must be between 0 and 6", ErrInvalidInput)
	}

	// Проверяем права доступа (только менеджер филиала)
	if err := s.checkManagerAccess(ctx, req.BranchID, req.ClientID); err != nil {
		return err
	}

	if err := s.scheduleRepo.DeleteDayRule(ctx, req.BranchID, req.EmployeeID, time.Weekday(req.Weekday)); err != nil {
		if errors.Is(err, scheduleRepo.ErrDayRuleNotFound) {
			s.logger.Warn("DeleteDayRule: rule not found for branch=%d, employee=%v, weekday=%d",
				req.BranchID, req.EmployeeID, req.Weekday)
			return ErrDayRuleNotFound
		}
		s.logger.Error("DeleteDayRule: repository error for branch=%d: %v", req.BranchID, err)
		return fmt.Errorf("%w: DeleteDayRule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteDayRule: successfully deleted rule for branch=%d, employee=%v, weekday=%d",
		req.BranchID, req.EmployeeID, req.Weekday)
	return nil
}

// CreateBlackout создает период недоступности
// Доступно только менеджерам филиала
func (s *Service) CreateBlackout(ctx context.Context, req *models.CreateBlackoutRequest) (*models.BlackoutResponse, error) {
	s.logger.Info("CreateBlackout: branch=%d, employee=%v, period=%s to %s by client=%d",
		req.BranchID, req.EmployeeID, req.DateStart.Format("2006-01-02"), req.DateEnd.Format("2006-01-02"), req.ClientID)

	// 1. Валидируем период
	if req.DateStart.IsZero() || req.DateEnd.IsZero() {
		return nil, fmt.Errorf("%w: dateStart and dateEnd are required", ErrInvalidInput)
	}
	if req.DateEnd.Before(req.DateStart) {
		s.logger.Warn("CreateBlackout: dateEnd is before dateStart")
		return nil, fmt.Errorf("%w: dateEnd must not be before dateStart", ErrInvalidInput)
	}

	// 2. Проверяем права доступа (только менеджер филиала)
	if err := s.checkManagerAccess(ctx, req.BranchID, req.ClientID); err != nil {
		return nil, err
	}

	// 3. Создаем период
	period, err := s.blackoutRepo.Create(ctx, req.ToDomainBlackout())
	if err != nil {
		s.logger.Error("CreateBlackout: repository error for branch=%d: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: CreateBlackout - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateBlackout: successfully created blackout id=%d", period.ID)
	return models.FromDomainBlackout(period), nil
}

// GetEmployeeBlackouts получает периоды недоступности сотрудника
// Доступно только менеджерам филиала
func (s *Service) GetEmployeeBlackouts(ctx context.Context, branchID, employeeID, clientID int64) (*models.BlackoutListResponse, error) {
	s.logger.Info("GetEmployeeBlackouts: branch=%d, employee=%d by client=%d", branchID, employeeID, clientID)

	if err := s.checkManagerAccess(ctx, branchID, clientID); err != nil {
		return nil, err
	}

	periods, err := s.blackoutRepo.GetByEmployee(ctx, branchID, employeeID)
	if err != nil {
		s.logger.Error("GetEmployeeBlackouts: repository error for branch=%d: %v", branchID, err)
		return nil, fmt.Errorf("%w: GetEmployeeBlackouts - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetEmployeeBlackouts: successfully fetched %d blackouts for employee=%d", len(periods), employeeID)
	return models.FromDomainBlackoutList(periods), nil
}

// DeleteBlackout удаляет период недоступности
// Доступно только менеджерам филиала, которому принадлежит период
func (s *Service) DeleteBlackout(ctx context.Context, blackoutID, clientID int64) error {
	s.logger.Info("DeleteBlackout: deleting blackout id=%d by client=%d", blackoutID, clientID)

	// 1. Получаем период для проверки прав доступа
	period, err := s.blackoutRepo.GetByID(ctx, blackoutID)
	if err != nil {
		if errors.Is(err, blackoutRepo.ErrBlackoutNotFound) {
			s.logger.Warn("DeleteBlackout: blackout id=%d not found", blackoutID)
			return ErrBlackoutNotFound
		}
		s.logger.Error("DeleteBlackout: repository error for blackout id=%d: %v", blackoutID, err)
		return fmt.Errorf("%w: DeleteBlackout - repository error: %v", ErrInternal, err)
	}

	// 2. Проверяем права доступа (только менеджер филиала)
	if err := s.checkManagerAccess(ctx, period.BranchID, clientID); err != nil {
		return err
	}

	// 3. Удаляем период
	if err := s.blackoutRepo.Delete(ctx, blackoutID); err != nil {
		if errors.Is(err, blackoutRepo.ErrBlackoutNotFound) {
			s.logger.Warn("DeleteBlackout: blackout id=%d not found during deletion", blackoutID)
			return ErrBlackoutNotFound
		}
		s.logger.Error("DeleteBlackout: repository error for blackout id=%d: %v", blackoutID, err)
		return fmt.Errorf("%w: DeleteBlackout - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteBlackout: successfully deleted blackout id=%d", blackoutID)
	return nil
}

// Вспомогательные методы

// checkManagerAccess проверяет, что пользователь является менеджером филиала
func (s *Service) checkManagerAccess(ctx context.Context, branchID int64, clientID int64) error {
	branch, err := s.catalogClient.GetBranch(ctx, branchID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrBranchNotFound) {
			s.logger.Warn("checkManagerAccess: branch id=%d not found", branchID)
			return ErrBranchNotFound
		}
		s.logger.Error("checkManagerAccess: failed to get branch id=%d: %v", branchID, err)
		return fmt.Errorf("%w: checkManagerAccess - failed to get branch: %v", ErrInternal, err)
	}

	for _, managerID := range branch.ManagerIDs {
		if managerID == clientID {
			return nil
		}
	}

	s.logger.Warn("checkManagerAccess: client=%d is not a manager of branch=%d", clientID, branchID)
	return ErrAccessDenied
}
