// Package audit предоставляет клиент для отправки событий сервиса
// во внешнюю систему сбора логов.
package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// Event описывает одно событие аудита.
type Event struct {
	Type string         `json:"event"`
	Time time.Time      `json:"_time"`
	Data map[string]any `json:"data,omitempty"`
}

// Client инкапсулирует HTTP-взаимодействие с API приёма событий.
type Client struct {
	baseURL    string
	dataset    string
	token      string
	httpClient *retryablehttp.Client
}

// NewClient создаёт клиент отправки событий в указанный набор данных.
// Временные ошибки сети и ответы 5xx повторяются с экспоненциальной задержкой.
func NewClient(baseURL, dataset, token string) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.RetryWaitMin = 500 * time.Millisecond
	rc.RetryWaitMax = 5 * time.Second
	rc.HTTPClient.Timeout = 5 * time.Second
	rc.Logger = nil

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		dataset:    dataset,
		token:      token,
		httpClient: rc,
	}
}

// Ingest отправляет пакет событий. Пустой пакет не отправляется.
func (c *Client) Ingest(ctx context.Context, events []Event) error {
	if c == nil || c.baseURL == "" {
		return fmt.Errorf("audit client not configured")
	}
	if len(events) == 0 {
		return nil
	}

	body, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("marshal events: %w", err)
	}

	url := fmt.Sprintf("%s/v1/datasets/%s/ingest", c.baseURL, c.dataset)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	return nil
}
