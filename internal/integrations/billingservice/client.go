package billingservice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент для работы с BillingService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента BillingService
// Пустой baseURL отключает интеграцию: все вызовы становятся no-op
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Enabled true, если адрес BillingService настроен
func (c *Client) Enabled() bool {
	return c.baseURL != ""
}

// UpdateBillStatus меняет статус счёта, выставленного на запись
func (c *Client) UpdateBillStatus(ctx context.Context, appointmentID int64, status BillStatus) error {
	url := fmt.Sprintf("%s/internal/bills/by-appointment/%d/status", c.baseURL, appointmentID)

	body, err := json.Marshal(UpdateBillStatusRequest{Status: status})
	if err != nil {
		return fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusNotFound:
		return ErrBillNotFound
	default:
		var errResp ErrorResponse
		raw, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(raw, &errResp) == nil && errResp.Message != "" {
			return fmt.Errorf("%w: status %d: %s", ErrInvalidResponse, resp.StatusCode, errResp.Message)
		}
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(raw))
	}
}

// MarkPaid помечает счёт записи оплаченным
func (c *Client) MarkPaid(ctx context.Context, appointmentID int64) error {
	return c.updateWithGracefulDegradation(ctx, appointmentID, BillStatusPaid)
}

// MarkCancelled отменяет счёт записи
func (c *Client) MarkCancelled(ctx context.Context, appointmentID int64) error {
	return c.updateWithGracefulDegradation(ctx, appointmentID, BillStatusCancelled)
}

// updateWithGracefulDegradation обновляет счёт с graceful degradation
// Отсутствие счёта не ошибка, недоступность сервиса превращается в ErrServiceDegraded
func (c *Client) updateWithGracefulDegradation(ctx context.Context, appointmentID int64, status BillStatus) error {
	if !c.Enabled() {
		return nil
	}

	c.log.Info("Updating bill for appointment_id=%d to status=%s", appointmentID, status)

	err := c.UpdateBillStatus(ctx, appointmentID, status)
	if err != nil {
		if errors.Is(err, ErrBillNotFound) {
			c.log.Info("No bill found for appointment_id=%d", appointmentID)
			return nil
		}

		c.log.Error("BillingService unavailable, applying graceful degradation for appointment_id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: appointment_id=%d, error=%v", ErrServiceDegraded, appointmentID, err)
	}

	c.log.Info("Successfully updated bill for appointment_id=%d to status=%s", appointmentID, status)
	return nil
}
