package get_availability

import (
	"time"

	"github.com/agendafacil/AF-SchedulingService/pkg/types"
)

// Request модель запроса на получение доступности
type Request struct {
	BranchID   int64     // ID филиала
	ServiceID  int64     // ID услуги (определяет длительность)
	EmployeeID *int64    // ID сотрудника; nil - объединение по всем подходящим сотрудникам
	Date       time.Time // Дата, на которую запрашивается доступность (без времени)
}

// Response модель ответа со слотами на весь рабочий день
type Response struct {
	Date               time.Time // Дата запроса
	BranchID           int64     // ID филиала
	ServiceID          int64     // ID услуги
	EmployeeID         *int64    // ID сотрудника (если был указан)
	DurationMinutes    int       // Длительность услуги
	GranularityMinutes int       // Шаг сетки слотов
	Slots              []Slot    // Сетка слотов рабочего дня, по возрастанию времени начала
}

// Slot кандидат на начало бронирования
// Start и End описывают интервал бронирования длительностью услуги;
// Available = true, когда все покрываемые атомарные слоты свободны
// хотя бы у одного подходящего сотрудника
type Slot struct {
	Start     types.TimeString
	End       types.TimeString
	Available bool
}
