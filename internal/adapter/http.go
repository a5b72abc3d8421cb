package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/federico588/biblioteca-tui/internal/config"
	"github.com/federico588/biblioteca-tui/internal/logger"
)

// loginPath is the one endpoint whose failures are handled inline by the
// login view: no toast, no forced logout.
const loginPath = "/auth/login"

type httpGateway struct {
	client *resty.Client
	logger *logger.Logger

	mu                sync.RWMutex
	token             string
	onError           func(string)
	onUnauthenticated func()
}

// NewHTTPGateway constructs the resty-backed [Gateway]. It normalises and
// validates the base URL from adapterCfg.HTTPAddress and configures the
// request timeout. Returns an error if the address is empty or unparsable.
func NewHTTPGateway(adapterCfg config.ClientAdapter, log *logger.Logger) (Gateway, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout).
		SetHeader("Content-Type", "application/json")

	return &httpGateway{client: client, logger: log}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [Gateway].
func (h *httpGateway) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [Gateway].
func (h *httpGateway) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// SetHooks implements [Gateway].
func (h *httpGateway) SetHooks(onError func(string), onUnauthenticated func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onError = onError
	h.onUnauthenticated = onUnauthenticated
}

// Get implements [Gateway]. Empty query values are omitted, mirroring how
// the backend treats absent filters.
func (h *httpGateway) Get(ctx context.Context, path string, query map[string]string, out any) error {
	req := h.request(ctx)
	for key, value := range query {
		if value == "" {
			continue
		}
		req.SetQueryParam(key, value)
	}

	resp, err := req.Get(path)
	if err := h.check(path, resp, err); err != nil {
		return err
	}

	return decodeBody(resp, out)
}

// Post implements [Gateway].
func (h *httpGateway) Post(ctx context.Context, path string, body, out any) error {
	req := h.request(ctx)
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Post(path)
	if err := h.check(path, resp, err); err != nil {
		return err
	}

	return decodeBody(resp, out)
}

// Put implements [Gateway].
func (h *httpGateway) Put(ctx context.Context, path string, body, out any) error {
	req := h.request(ctx)
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Put(path)
	if err := h.check(path, resp, err); err != nil {
		return err
	}

	return decodeBody(resp, out)
}

// Delete implements [Gateway].
func (h *httpGateway) Delete(ctx context.Context, path string) error {
	resp, err := h.request(ctx).Delete(path)
	return h.check(path, resp, err)
}

func (h *httpGateway) request(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

// check normalizes any failure and runs the side effects: clear the token
// and fire the logout hook on a non-login 401, then broadcast the message
// through the error hook. Login-call failures skip both and are returned to
// the caller untouched.
func (h *httpGateway) check(path string, resp *resty.Response, err error) error {
	login := path == loginPath

	var apiErr *APIError
	switch {
	case err != nil:
		apiErr = normalizeError(0, nil, err, login)
	case resp.IsSuccess():
		return nil
	default:
		apiErr = normalizeError(resp.StatusCode(), resp.Body(), nil, login)
	}

	h.logger.Warn().
		Str("path", path).
		Int("status", apiErr.Status).
		Msg(apiErr.Message)

	if login {
		return apiErr
	}

	h.mu.RLock()
	onError, onUnauthenticated := h.onError, h.onUnauthenticated
	h.mu.RUnlock()

	if apiErr.Unauthenticated() {
		h.SetToken("")
		if onUnauthenticated != nil {
			onUnauthenticated()
		}
	}
	if onError != nil {
		onError(apiErr.Message)
	}

	return apiErr
}

func decodeBody(resp *resty.Response, out any) error {
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
