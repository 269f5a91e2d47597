package catalogservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент для работы с CatalogService
// CatalogService владеет справочниками бизнеса: филиалами, услугами,
// сотрудниками и их назначением на услуги
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента CatalogService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetBranch получает филиал по ID
func (c *Client) GetBranch(ctx context.Context, branchID int64) (*Branch, error) {
	url := fmt.Sprintf("%s/internal/branches/%d", c.baseURL, branchID)

	var branch Branch
	if err := c.getJSON(ctx, url, &branch, ErrBranchNotFound); err != nil {
		return nil, err
	}

	return &branch, nil
}

// GetService получает услугу филиала по ID
// Длительность услуги определяет размер бронируемого интервала
func (c *Client) GetService(ctx context.Context, branchID, serviceID int64) (*Service, error) {
	url := fmt.Sprintf("%s/internal/branches/%d/services/%d", c.baseURL, branchID, serviceID)

	var service Service
	if err := c.getJSON(ctx, url, &service, ErrServiceNotFound); err != nil {
		return nil, err
	}

	return &service, nil
}

// GetEligibleEmployees получает сотрудников филиала, оказывающих услугу
// Правила назначения сотрудников на услуги целиком на стороне CatalogService
func (c *Client) GetEligibleEmployees(ctx context.Context, branchID, serviceID int64) ([]Employee, error) {
	url := fmt.Sprintf("%s/internal/branches/%d/services/%d/employees", c.baseURL, branchID, serviceID)

	var employees []Employee
	if err := c.getJSON(ctx, url, &employees, ErrServiceNotFound); err != nil {
		return nil, err
	}

	if len(employees) == 0 {
		return nil, ErrNoEligibleEmployees
	}

	return employees, nil
}

// getJSON выполняет GET запрос и декодирует JSON ответ
// notFoundErr возвращается при статусе 404
func (c *Client) getJSON(ctx context.Context, url string, dest interface{}, notFoundErr error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return notFoundErr
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
