package masterdirectory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с каталогом мастеров (MasterDirectory)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента MasterDirectory
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetMaster получает мастера по ID
func (c *Client) GetMaster(ctx context.Context, masterID int64) (*Master, error) {
	url := fmt.Sprintf("%s/internal/masters/%d", c.baseURL, masterID)

	var master Master
	if err := c.getJSON(ctx, url, &master, ErrMasterNotFound); err != nil {
		return nil, err
	}

	return &master, nil
}

// ListEligibleMasters получает мастеров, предоставляющих услугу
// Если в каталоге нет явных настроек услуги, возвращаются мастера,
// работающие с категорией услуги
func (c *Client) ListEligibleMasters(ctx context.Context, serviceID int64) ([]Master, error) {
	url := fmt.Sprintf("%s/internal/services/%d/masters", c.baseURL, serviceID)

	var result struct {
		Masters []Master `json:"masters"`
	}
	if err := c.getJSON(ctx, url, &result, ErrMasterNotFound); err != nil {
		return nil, err
	}

	return result.Masters, nil
}

// GetWeeklySchedule получает недельное расписание мастера
// Возвращает ErrScheduleNotFound, если расписание не задано -
// в этом случае действует рабочее окно студии
func (c *Client) GetWeeklySchedule(ctx context.Context, masterID int64) (*WeeklySchedule, error) {
	url := fmt.Sprintf("%s/internal/masters/%d/schedule", c.baseURL, masterID)

	var schedule WeeklySchedule
	if err := c.getJSON(ctx, url, &schedule, ErrScheduleNotFound); err != nil {
		return nil, err
	}

	return &schedule, nil
}

// getJSON выполняет GET запрос и декодирует JSON ответ
// notFoundErr возвращается для статуса 404
func (c *Client) getJSON(ctx context.Context, url string, dst interface{}, notFoundErr error) error {
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

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
