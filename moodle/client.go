package moodle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jrsteele09/lms-mobile-gateway/internal/config"
	"github.com/jrsteele09/lms-mobile-gateway/internal/errors"
)

const (
	restPath       = "/webservice/rest/server.php"
	restFormat     = "json"
	maxBodyBytes   = 16 << 20
	contentTypeURL = "application/x-www-form-urlencoded"
)

// Client calls the LMS REST web-service with a single service token. It
// keeps no per-request state and is safe for concurrent use.
type Client struct {
	endpoint   string
	token      string
	timeout    time.Duration
	httpClient *http.Client
	metrics    *Metrics
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithMetrics(metrics *Metrics) Option {
	return func(c *Client) {
		c.metrics = metrics
	}
}

func New(cfg config.UpstreamConfig, options ...Option) *Client {
	c := &Client{
		endpoint: strings.TrimRight(cfg.GetMoodleURL(), "/") + restPath,
		token:    cfg.GetMoodleToken(),
		timeout:  cfg.GetUpstreamTimeout(),
	}

	for _, opt := range options {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
	}
	return c
}

// Endpoint is the REST URL calls are posted to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Call invokes a web-service function and returns its raw JSON result.
//
// Transport failures and non-2xx answers wrap errors.ErrUpstreamUnavailable.
// A JSON object carrying an "exception" key is returned as *Error, which
// wraps errors.ErrUpstreamApplication.
func (c *Client) Call(ctx context.Context, function string, params Params) (json.RawMessage, error) {
	start := time.Now()
	body, outcome, err := c.call(ctx, function, params)
	c.metrics.observe(function, outcome, time.Since(start))
	return body, err
}

func (c *Client) call(ctx context.Context, function string, params Params) (json.RawMessage, string, error) {
	form := url.Values{}
	form.Set("wstoken", c.token)
	form.Set("wsfunction", function)
	form.Set("moodlewsrestformat", restFormat)
	if err := encodeParams(form, params); err != nil {
		return nil, outcomeInvalidParams, fmt.Errorf("moodle %s: %w: %w", function, errors.ErrInvalidRequest, err)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, outcomeTransportError, fmt.Errorf("moodle %s: %w: %w", function, errors.ErrUpstreamUnavailable, err)
	}
	req.Header.Set("Content-Type", contentTypeURL)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, outcomeTransportError, fmt.Errorf("moodle %s: %w: %w", function, errors.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, outcomeHTTPError, &StatusError{Function: function, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, outcomeTransportError, fmt.Errorf("moodle %s: %w: %w", function, errors.ErrUpstreamUnavailable, err)
	}

	body = bytes.TrimSpace(body)
	if !json.Valid(body) {
		return nil, outcomeDecodeError, fmt.Errorf("moodle %s: %w: response is not JSON", function, errors.ErrUpstreamApplication)
	}

	if upstreamErr := exceptionFrom(function, body); upstreamErr != nil {
		return nil, outcomeApplicationError, upstreamErr
	}
	return json.RawMessage(body), outcomeOK, nil
}

// exceptionFrom returns the error described by body when it is an object
// with an "exception" key.
func exceptionFrom(function string, body []byte) *Error {
	if len(body) == 0 || body[0] != '{' {
		return nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil
	}
	if _, ok := fields["exception"]; !ok {
		return nil
	}

	e := &Error{Function: function}
	for key, dst := range map[string]*string{
		"exception": &e.Exception,
		"errorcode": &e.ErrorCode,
		"message":   &e.Message,
		"debuginfo": &e.DebugInfo,
	} {
		if raw, ok := fields[key]; ok {
			_ = json.Unmarshal(raw, dst)
		}
	}
	return e
}

// callInto calls function and decodes its result into out.
func (c *Client) callInto(ctx context.Context, function string, params Params, out any) error {
	body, err := c.Call(ctx, function, params)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("moodle %s: %w: %w", function, errors.ErrUpstreamApplication, err)
	}
	return nil
}
