package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/babycare/internal/client/models"
	"github.com/dmitrijs2005/babycare/internal/common"
	"github.com/google/uuid"
)

const maxResponseBytes = 1 << 20

// HTTPClient implements Client over the backend's JSON REST API.
type HTTPClient struct {
	baseURL   *url.URL
	http      *http.Client
	requestID func() string
}

// NewHTTPClient returns a gateway rooted at baseURL. Every request is bounded
// by timeout; zero disables the limit.
func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("base url %q: host is empty", baseURL)
	}

	return &HTTPClient{
		baseURL:   u,
		http:      &http.Client{Timeout: timeout},
		requestID: uuid.NewString,
	}, nil
}

func (c *HTTPClient) endpoint(segments ...string) string {
	escaped := make([]string, 0, len(segments))
	for _, s := range segments {
		escaped = append(escaped, url.PathEscape(s))
	}
	u := *c.baseURL
	u.Path = c.baseURL.Path + "/" + strings.Join(segments, "/")
	u.RawPath = c.baseURL.EscapedPath() + "/" + strings.Join(escaped, "/")
	return u.String()
}

// do performs one request. in is JSON-encoded when non-nil; out is decoded
// from a 2xx body when non-nil. An empty token sends no Authorization header.
func (c *HTTPClient) do(ctx context.Context, method, endpoint, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(common.RequestIDHeaderName, c.requestID())
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return c.mapTransportError(ctx, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return c.mapTransportError(ctx, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.mapStatus(resp.StatusCode, data)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}

// mapTransportError folds network failures and timeouts into ErrUnavailable.
// Cancellation by the caller is returned as is.
func (c *HTTPClient) mapTransportError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return ctx.Err()
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

func (c *HTTPClient) mapStatus(code int, body []byte) error {
	var kind error
	switch {
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		kind = ErrUnauthorized
	case code == http.StatusBadGateway, code == http.StatusServiceUnavailable, code == http.StatusGatewayTimeout:
		kind = ErrUnavailable
	default:
		kind = ErrRequestFailed
	}
	return &APIError{StatusCode: code, Message: extractMessage(body), kind: kind}
}

// extractMessage returns the "message" or "error" field of a JSON error body,
// or "" when the body carries neither.
func extractMessage(body []byte) string {
	var eb models.ErrorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return ""
	}
	if eb.Message != "" {
		return eb.Message
	}
	return eb.Error
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, c.endpoint("health"), "", nil, nil)
}

func (c *HTTPClient) Login(ctx context.Context, creds models.Credentials) (*models.AuthResult, error) {
	var res models.AuthResult
	if err := c.do(ctx, http.MethodPost, c.endpoint("auth", "login"), "", creds, &res); err != nil {
		return nil, err
	}
	if res.Token == "" {
		return nil, fmt.Errorf("%w: empty token", ErrMalformedResponse)
	}
	return &res, nil
}

func (c *HTTPClient) Register(ctx context.Context, reg models.Registration) (*models.AuthResult, error) {
	var res models.AuthResult
	if err := c.do(ctx, http.MethodPost, c.endpoint("auth", "register"), "", reg, &res); err != nil {
		return nil, err
	}
	if res.Token == "" {
		return nil, fmt.Errorf("%w: empty token", ErrMalformedResponse)
	}
	return &res, nil
}

// VerifyToken asks the backend whether token is still accepted. A 401/403
// reply is reported as (false, nil); a 2xx body without "valid" is malformed.
func (c *HTTPClient) VerifyToken(ctx context.Context, token string) (bool, error) {
	var res models.TokenCheck
	err := c.do(ctx, http.MethodGet, c.endpoint("verify-token"), token, nil, &res)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && errors.Is(err, ErrUnauthorized) {
			return false, nil
		}
		return false, err
	}
	if res.Valid == nil {
		return false, fmt.Errorf("%w: missing valid field", ErrMalformedResponse)
	}
	return *res.Valid, nil
}

func (c *HTTPClient) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodGet, c.endpoint("auth", "user"), token, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) ListGrowthRecords(ctx context.Context, token, babyID string) ([]models.GrowthRecord, error) {
	records := make([]models.GrowthRecord, 0)
	if err := c.do(ctx, http.MethodGet, c.endpoint("babies", babyID, "growth"), token, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *HTTPClient) CreateGrowthRecord(ctx context.Context, token, babyID string, rec models.NewGrowthRecord) (*models.GrowthRecord, error) {
	var created models.GrowthRecord
	if err := c.do(ctx, http.MethodPost, c.endpoint("babies", babyID, "growth"), token, rec, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *HTTPClient) UpdateImmunization(ctx context.Context, token, babyID, recordID string, upd models.RecordUpdate) error {
	return c.do(ctx, http.MethodPut, c.endpoint("babies", babyID, "immunizations", recordID), token, upd, nil)
}

func (c *HTTPClient) UpdateMilestone(ctx context.Context, token, babyID, recordID string, upd models.RecordUpdate) error {
	return c.do(ctx, http.MethodPut, c.endpoint("babies", babyID, "milestones", recordID), token, upd, nil)
}
