// Package backend implements the marketplace API client. All portal traffic
// to the remote API funnels through Client.do, which normalises failures into
// plain error messages: the detail field of the rejection body when present,
// the raw serialised body otherwise, and a generic message as a last resort.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/agriconnect/portal/internal/api/metrics"
	"github.com/agriconnect/portal/internal/core/domain"
	"github.com/agriconnect/portal/internal/core/ports"
)

const genericFailure = "Request failed"

// Client talks to the marketplace backend over HTTP. The zero http.Client is
// used deliberately: the portal implements no timeouts, retries, or backoff,
// so a hung upstream surfaces exactly once, through the caught-error path.
type Client struct {
	baseURL string
	httpc   *http.Client
	log     zerolog.Logger
}

// New returns a Client for the given base URL. Pass a nil httpc to use a
// plain http.Client; tests inject their own to intercept traffic.
func New(baseURL string, httpc *http.Client, log zerolog.Logger) *Client {
	if httpc == nil {
		httpc = &http.Client{}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   httpc,
		log:     log,
	}
}

var _ ports.Backend = (*Client)(nil)

func (c *Client) Register(ctx context.Context, in ports.RegisterInput) error {
	payload := map[string]string{
		"name":     in.Name,
		"email":    in.Email,
		"password": in.Password,
		"role":     in.Role,
	}
	return c.do(ctx, "register", http.MethodPost, "/auth/register", nil, payload, nil)
}

func (c *Client) Login(ctx context.Context, email, password string) (*domain.Account, error) {
	payload := map[string]string{"email": email, "password": password}

	var resp struct {
		Account *domain.Account `json:"account"`
	}
	if err := c.do(ctx, "login", http.MethodPost, "/auth/login", nil, payload, &resp); err != nil {
		return nil, err
	}
	if resp.Account == nil {
		return nil, errors.New("login response missing account")
	}
	return resp.Account, nil
}

func (c *Client) Accounts(ctx context.Context) ([]domain.Account, error) {
	var resp struct {
		Accounts []domain.Account `json:"accounts"`
	}
	if err := c.do(ctx, "list_accounts", http.MethodGet, "/admin/accounts", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Accounts, nil
}

func (c *Client) SetAccountActive(ctx context.Context, accountID string, active bool) error {
	payload := map[string]any{"account_id": accountID, "active": active}
	return c.do(ctx, "toggle_active", http.MethodPost, "/admin/toggle-active", nil, payload, nil)
}

func (c *Client) SendMessage(ctx context.Context, senderID, receiverID, content string) error {
	payload := map[string]string{
		"sender_id":   senderID,
		"receiver_id": receiverID,
		"content":     content,
	}
	return c.do(ctx, "send_message", http.MethodPost, "/messages", nil, payload, nil)
}

// Messages fetches the conversation list. The peer_id parameter is omitted
// entirely when no peer filter is given.
func (c *Client) Messages(ctx context.Context, userID, peerID string) ([]domain.Message, error) {
	query := url.Values{}
	query.Set("user_id", userID)
	if peerID != "" {
		query.Set("peer_id", peerID)
	}

	var resp struct {
		Messages []domain.Message `json:"messages"`
	}
	if err := c.do(ctx, "list_messages", http.MethodGet, "/messages", query, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Messages, nil
}

// Ping hits the backend's connection-test endpoint.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, "ping", http.MethodGet, "/test", nil, nil, nil)
}

// do performs one backend request: base URL prefix, JSON content type, JSON
// body parse regardless of status. Non-2xx responses become errors carrying
// only a human-readable message; a 2xx with an empty or unparseable body
// resolves to an absent result rather than failing.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, payload, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	res, err := c.httpc.Do(req)
	metrics.UpstreamRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(op, "transport_error").Inc()
		c.log.Warn().Err(err).Str("operation", op).Msg("backend unreachable")
		return err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(op, "transport_error").Inc()
		return err
	}

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		metrics.UpstreamRequestsTotal.WithLabelValues(op, "rejected").Inc()
		c.log.Debug().
			Str("operation", op).
			Int("status", res.StatusCode).
			Msg("backend rejected request")
		return failureError(raw)
	}

	metrics.UpstreamRequestsTotal.WithLabelValues(op, "ok").Inc()
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		// An unparseable success body resolves to an absent result.
		return nil
	}
	return nil
}

// failureError extracts the displayable message from a rejection body:
// the detail field, else the re-serialised JSON body, else genericFailure.
func failureError(raw []byte) error {
	var parsed any
	if len(raw) > 0 && json.Unmarshal(raw, &parsed) == nil {
		if obj, ok := parsed.(map[string]any); ok {
			if detail, ok := obj["detail"].(string); ok && detail != "" {
				return errors.New(detail)
			}
		}
		if serialised, err := json.Marshal(parsed); err == nil {
			return errors.New(string(serialised))
		}
	}
	return errors.New(genericFailure)
}
