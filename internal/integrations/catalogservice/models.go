package catalogservice

// Branch модель филиала из CatalogService
type Branch struct {
	ID         int64   `json:"id"`
	BusinessID int64   `json:"business_id"`
	Name       string  `json:"name"`
	Address    string  `json:"address"`
	ManagerIDs []int64 `json:"manager_ids"`
}

// Service модель услуги из CatalogService
// DurationMinutes определяет длительность бронируемого интервала
type Service struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	DurationMinutes int      `json:"duration_minutes"`
	Price           *float64 `json:"price,omitempty"`
	BranchIDs       []int64  `json:"branch_ids"`
}

// Employee модель сотрудника из CatalogService
type Employee struct {
	ID       int64  `json:"id"`
	BranchID int64  `json:"branch_id"`
	Name     string `json:"name"`
}

// ErrorResponse модель ошибки от CatalogService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
