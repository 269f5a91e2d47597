package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/agendafacil/AF-SchedulingService/internal/domain"
	appointmentRepo "github.com/agendafacil/AF-SchedulingService/internal/infra/storage/appointment"
	catalogClient "github.com/agendafacil/AF-SchedulingService/internal/integrations/catalogservice"
	"github.com/agendafacil/AF-SchedulingService/internal/service/appointments/models"
)

// Service сервис для работы с записями
type Service struct {
	appointmentRepo AppointmentRepository
	catalogClient   CatalogServiceClient
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	catalogClient CatalogServiceClient,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		catalogClient:   catalogClient,
		logger:          logger,
	}
}

// GetByID получает запись по ID
// Проверяет права доступа - клиент может видеть только свою запись
// или если он является менеджером филиала
func (s *Service) GetByID(ctx context.Context, id int64, clientID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for client=%d", id, clientID)

	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if err := s.checkClientAccess(ctx, appointment, clientID); err != nil {
		s.logger.Warn("GetByID: access denied for client=%d to appointment id=%d", clientID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%d", id)
	return models.FromDomainAppointment(appointment), nil
}

// GetClientAppointments получает историю записей клиента
// Опционально фильтрует по статусу
func (s *Service) GetClientAppointments(ctx context.Context, req *models.GetClientAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetClientAppointments: fetching appointments for client=%d, status=%v", req.ClientID, req.Status)

	// Конвертируем статус из строки в domain.AppointmentStatus
	var domainStatus *domain.AppointmentStatus
	if req.Status != nil {
		status, err := models.ToDomainAppointmentStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetClientAppointments: invalid status=%s for client=%d", *req.Status, req.ClientID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	appointments, err := s.appointmentRepo.GetByClientID(ctx, req.ClientID, domainStatus)
	if err != nil {
		s.logger.Error("GetClientAppointments: repository error for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: GetClientAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientAppointments: successfully fetched %d appointments for client=%d", len(appointments), req.ClientID)
	return models.FromDomainAppointmentList(appointments), nil
}

// GetBranchAppointments получает записи филиала с гибкой фильтрацией
// Поддерживает фильтрацию по сотруднику, периоду, статусу и включению неактивных записей
// Доступно только менеджерам филиала
func (s *Service) GetBranchAppointments(ctx context.Context, req *models.GetBranchAppointmentsRequest) (*models.AppointmentListResponse, error) {
	logMsg := fmt.Sprintf("GetBranchAppointments: fetching appointments for branch=%d, client=%d", req.BranchID, req.ClientID)
	if req.EmployeeID != nil {
		logMsg += fmt.Sprintf(", employee=%d", *req.EmployeeID)
	}
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	// Проверяем права доступа менеджера
	if err := s.checkManagerAccess(ctx, req.BranchID, req.ClientID); err != nil {
		return nil, err
	}

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetBranchAppointments: invalid filter for branch=%d: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	// Получаем записи с фильтрацией
	appointments, err := s.appointmentRepo.GetByBranchWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetBranchAppointments: repository error for branch=%d: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: GetBranchAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetBranchAppointments: successfully fetched %d appointments for branch=%d", len(appointments), req.BranchID)
	return models.FromDomainAppointmentList(appointments), nil
}

// Cancel отменяет запись
// Клиент может отменить только свою запись (cancelled_by_client)
// Менеджер может отменить любую запись филиала (cancelled_by_branch)
func (s *Service) Cancel(ctx context.Context, appointmentID int64, req *models.CancelAppointmentRequest) error {
	s.logger.Info("Cancel: cancelling appointment id=%d by client=%d", appointmentID, req.ClientID)

	// Получаем запись
	appointment, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%d not found", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Проверяем, можно ли отменить запись
	if !appointment.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%d cannot be cancelled, status=%s", appointmentID, appointment.Status)
		return ErrCannotCancel
	}

	// Определяем статус отмены в зависимости от прав доступа
	var cancelStatus domain.AppointmentStatus

	// Проверяем, является ли клиент владельцем записи
	if appointment.ClientID == req.ClientID {
		cancelStatus = domain.StatusCancelledByClient
	} else {
		// Проверяем, является ли пользователь менеджером филиала
		if err := s.checkManagerAccess(ctx, appointment.BranchID, req.ClientID); err != nil {
			s.logger.Warn("Cancel: access denied for client=%d to cancel appointment id=%d", req.ClientID, appointmentID)
			return ErrAccessDenied
		}
		cancelStatus = domain.StatusCancelledByBranch
	}

	// Отменяем запись; слот немедленно освобождается для новых бронирований
	if err := s.appointmentRepo.Cancel(ctx, appointmentID, cancelStatus, req.CancellationReason); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%d not found during cancellation", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%d with status=%s", appointmentID, cancelStatus)
	return nil
}

// UpdateStatus обновляет статус записи
// Доступно только менеджерам филиала
func (s *Service) UpdateStatus(ctx context.Context, appointmentID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating appointment id=%d to status=%s by client=%d",
		appointmentID, req.Status, req.ClientID)

	// Получаем запись
	appointment, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateStatus: appointment id=%d not found", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа (только менеджер филиала)
	if err := s.checkManagerAccess(ctx, appointment.BranchID, req.ClientID); err != nil {
		return err
	}

	// Валидируем и конвертируем статус
	newStatus, err := models.ToDomainAppointmentStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment id=%d", req.Status, appointmentID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	// Обновляем статус
	if err := s.appointmentRepo.UpdateStatus(ctx, appointmentID, newStatus); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateStatus: appointment id=%d not found during update", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated appointment id=%d to status=%s", appointmentID, newStatus)
	return nil
}

// Вспомогательные методы

// checkClientAccess проверяет, что клиент имеет доступ к записи
// Клиент может видеть свою запись или если он менеджер филиала
func (s *Service) checkClientAccess(ctx context.Context, appointment *domain.Appointment, clientID int64) error {
	// Если клиент владелец записи - доступ разрешён
	if appointment.ClientID == clientID {
		return nil
	}

	// Проверяем, является ли пользователь менеджером филиала
	if err := s.checkManagerAccess(ctx, appointment.BranchID, clientID); err != nil {
		// Ошибка уже залогирована в checkManagerAccess
		return ErrAccessDenied
	}

	return nil
}

// checkManagerAccess проверяет, что пользователь является менеджером филиала
func (s *Service) checkManagerAccess(ctx context.Context, branchID int64, clientID int64) error {
	// Получаем филиал через CatalogService
	branch, err := s.catalogClient.GetBranch(ctx, branchID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrBranchNotFound) {
			s.logger.Warn("checkManagerAccess: branch id=%d not found", branchID)
			return ErrBranchNotFound
		}
		s.logger.Error("checkManagerAccess: failed to get branch id=%d: %v", branchID, err)
		return fmt.Errorf("%w: checkManagerAccess - failed to get branch: %v", ErrInternal, err)
	}

	// Проверяем, что clientID в списке менеджеров
	for _, managerID := range branch.ManagerIDs {
		if managerID == clientID {
			s.logger.Info("checkManagerAccess: client=%d is manager of branch=%d", clientID, branchID)
			return nil
		}
	}

	s.logger.Warn("checkManagerAccess: client=%d is not a manager of branch=%d", clientID, branchID)
	return ErrAccessDenied
}
