package device

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"heating_panel/internal/metrics"
	"heating_panel/internal/models"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

var (
	ErrStatus    = errors.New("device returned an error status")
	ErrMalformed = errors.New("malformed device response")
)

const (
	defaultRequestTimeout = 5 * time.Second
	maxBodyBytes          = 1 << 16 // 64 KB
	requestIDHeader       = "X-Request-ID"
)

// Client talks to the device backend over HTTP.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	limiter    *rate.Limiter
	metrics    *metrics.Metrics
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRateLimit paces outbound requests. Requests wait for a token; none are dropped.
// A non-positive limit disables pacing.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// NewClient builds a client for the device rooted at baseURL (e.g. http://192.168.1.20/).
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parse device base url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return nil, fmt.Errorf("device base url %q: scheme must be http or https and host must be set", baseURL)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
		limiter:    rate.NewLimiter(rate.Inf, 0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// wire shapes
type statusResponse struct {
	State   *bool    `json:"state"`
	OffTime *float64 `json:"offtime,omitempty"`
}

type tankResponse struct {
	Top *float64 `json:"top"`
	Mid *float64 `json:"mid"`
	Btm *float64 `json:"btm"`
}

// GetStatus fetches GET status/<part> for the endpoint.
func (c *Client) GetStatus(ctx context.Context, ep models.Endpoint) (models.StatusReport, error) {
	var body statusResponse
	if err := c.getJSON(ctx, metrics.KindStatus, ep.StatusPath, &body); err != nil {
		return models.StatusReport{}, err
	}
	if body.State == nil {
		return models.StatusReport{}, fmt.Errorf("%w: %s: missing state", ErrMalformed, ep.StatusPath)
	}
	rep := models.StatusReport{State: *body.State}
	if body.OffTime != nil {
		off, err := epochToTime(*body.OffTime)
		if err != nil {
			return models.StatusReport{}, fmt.Errorf("%w: %s: %v", ErrMalformed, ep.StatusPath, err)
		}
		rep.OffTime = &off
	}
	return rep, nil
}

// GetTank fetches GET tank-temperature.
func (c *Client) GetTank(ctx context.Context) (models.TankReading, error) {
	var body tankResponse
	if err := c.getJSON(ctx, metrics.KindTank, models.TankTemperaturePath, &body); err != nil {
		return models.TankReading{}, err
	}
	if body.Top == nil || body.Mid == nil || body.Btm == nil {
		return models.TankReading{}, fmt.Errorf("%w: %s: top, mid and btm are required", ErrMalformed, models.TankTemperaturePath)
	}
	return models.TankReading{Top: *body.Top, Mid: *body.Mid, Btm: *body.Btm}, nil
}

// SendCommand posts the command and returns the request id it was tagged with.
// Any 2xx counts as success; the body is ignored.
func (c *Client) SendCommand(ctx context.Context, cmd models.Command) (string, error) {
	reqID := uuid.NewString()
	resp, err := c.do(ctx, metrics.KindCommand, http.MethodPost, cmd.Path(), reqID)
	if err != nil {
		return reqID, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
	return reqID, nil
}

func (c *Client) getJSON(ctx context.Context, kind, path string, dst any) error {
	resp, err := c.do(ctx, kind, http.MethodGet, path, "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(dst); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, kind, method, path, reqID string) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%s %s: wait for rate limiter: %w", method, path, err)
	}

	target := c.baseURL.ResolveReference(&url.URL{Path: path})
	req, err := http.NewRequestWithContext(ctx, method, target.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if reqID != "" {
		req.Header.Set(requestIDHeader, reqID)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.ObserveRequest(kind, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%w: %s %s: got %d", ErrStatus, method, path, resp.StatusCode)
	}
	return resp, nil
}

// epochToTime converts device epoch seconds (possibly fractional) to a time.
func epochToTime(sec float64) (time.Time, error) {
	if math.IsNaN(sec) || math.IsInf(sec, 0) || sec < 0 {
		return time.Time{}, fmt.Errorf("offtime %v out of range", sec)
	}
	whole, frac := math.Modf(sec)
	return time.Unix(int64(whole), int64(frac*1e9)).UTC(), nil
}
