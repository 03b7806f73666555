// Package backend is the portal's client for the clinic REST API, the
// external source of truth for users, schedules and appointments.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/clinic-portal/internal/config"
	"github.com/spec-kit/clinic-portal/internal/observability"
	"github.com/spec-kit/clinic-portal/pkg/util"
)

// Client issues authenticated JSON calls against the clinic backend.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewClient builds a Client from configuration.
func NewClient(cfg config.BackendConfig, logger *zap.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout()},
		logger:  logger,
		metrics: metrics,
	}
}

// doJSON performs a JSON request. token may be empty for public endpoints;
// out may be nil when the response body is irrelevant.
func (c *Client) doJSON(ctx context.Context, op, method, path, token string, body, out any) error {
	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return util.NewInternalError(fmt.Errorf("encode %s payload: %w", op, err))
		}
		payload = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return util.NewInternalError(err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, op, token, out)
}

// doForm performs a form-encoded request, the shape the backend's OAuth2
// token endpoints expect.
func (c *Client) doForm(ctx context.Context, op, path string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return util.NewInternalError(err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.send(req, op, "", out)
}

func (c *Client) send(req *http.Request, op, token string, out any) error {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.RecordBackendCall(op, 0)
		c.logger.Warn("backend unreachable", zap.String("op", op), zap.Error(err))
		return util.NewBackendError("el servicio no está disponible en este momento", 0, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	c.metrics.RecordBackendCall(op, resp.StatusCode)

	if resp.StatusCode >= 400 {
		detail := DecodeDetail(resp.Body)
		if resp.StatusCode == http.StatusUnauthorized {
			if detail == "" {
				detail = "sesión expirada"
			}
			return util.NewUnauthorized(detail)
		}
		if detail == "" {
			detail = fmt.Sprintf("backend returned status %d", resp.StatusCode)
		}
		c.logger.Warn("backend error",
			zap.String("op", op),
			zap.Int("status", resp.StatusCode),
			zap.String("detail", detail),
		)
		return util.NewBackendError(detail, resp.StatusCode, nil)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return util.NewInternalError(fmt.Errorf("decode %s response: %w", op, err))
	}
	return nil
}

// validationItem is one entry of a structured validation error list.
type validationItem struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

// DecodeDetail flattens the backend's `detail` field — a plain string or a
// structured validation-error list — into one human-readable message.
func DecodeDetail(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 64<<10))
	if err != nil || len(raw) == 0 {
		return ""
	}

	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil || len(envelope.Detail) == 0 {
		return ""
	}

	var asString string
	if err := json.Unmarshal(envelope.Detail, &asString); err == nil {
		return asString
	}

	var items []validationItem
	if err := json.Unmarshal(envelope.Detail, &items); err != nil || len(items) == 0 {
		return strings.TrimSpace(string(envelope.Detail))
	}

	parts := make([]string, 0, len(items))
	for _, item := range items {
		field := ""
		if len(item.Loc) > 0 {
			if s, ok := item.Loc[len(item.Loc)-1].(string); ok {
				field = s
			}
		}
		if field != "" {
			parts = append(parts, field+": "+item.Msg)
		} else {
			parts = append(parts, item.Msg)
		}
	}
	return strings.Join(parts, "; ")
}
