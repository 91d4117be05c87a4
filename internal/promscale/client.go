// SPDX-License-Identifier: MPL-2.0

package promscale

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	// maxJSONResponseBytes is the upper bound on JSON API response size (10 MB).
	maxJSONResponseBytes = 10 << 20

	// maxErrorBodyBytes caps how much of a failing response body is kept
	// for the error message.
	maxErrorBodyBytes = 8 << 10

	// shortLookback and longLookback bound the PromQL range queries used to
	// find the newest stored sample. The short range keeps the common case
	// cheap; the long range covers gaps after an outage.
	shortLookback = "1d"
	longLookback  = "30d"
)

type (
	// WriteError is returned when the write endpoint answers outside 2xx.
	WriteError struct {
		StatusCode int
		Body       string
	}

	// QueryError is returned when the query endpoint answers outside 2xx.
	QueryError struct {
		StatusCode int
		Body       string
	}

	// queryResponse is the JSON wire format of a Prometheus instant query.
	queryResponse struct {
		Status string    `json:"status"`
		Data   queryData `json:"data"`
	}

	queryData struct {
		ResultType string        `json:"resultType"`
		Result     []queryResult `json:"result"`
	}

	// queryResult is one vector sample. "value" holds the evaluation
	// timestamp and the sample value rendered as a string.
	queryResult struct {
		Metric map[string]string  `json:"metric"`
		Value  [2]json.RawMessage `json:"value"`
	}

	// Client talks to one Promscale instance through its JSON write endpoint
	// and its Prometheus-compatible query endpoint.
	Client struct {
		httpClient *http.Client
		writeURL   string // Full write endpoint URL, e.g. "https://host/write"
		queryURL   string // Full instant query URL, e.g. "https://host/api/v1/query"
		userAgent  string // User-Agent header value
		caPath     string // Optional PEM bundle pinning the server CA
		insecure   bool   // Skip TLS verification, matching a self-signed ingress
		now        func() time.Time
	}

	// ClientOption configures a Client during construction.
	ClientOption func(*Client)
)

// Error formats the write failure with as much of the response as was kept.
func (e *WriteError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("promscale write failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("promscale write failed with status %d: %s", e.StatusCode, e.Body)
}

// Error formats the query failure with as much of the response as was kept.
func (e *QueryError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("promscale query failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("promscale query failed with status %d: %s", e.StatusCode, e.Body)
}

// WithHTTPClient sets a custom HTTP client and takes precedence over the
// TLS options, useful for tests.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithCACert pins the server CA to the PEM bundle at path. Deployments
// behind an ingress with a private CA use this instead of the system pool.
func WithCACert(path string) ClientOption {
	return func(cl *Client) {
		cl.caPath = path
	}
}

// WithInsecureSkipVerify disables TLS certificate verification. Callers are
// expected to warn loudly when they choose this.
func WithInsecureSkipVerify() ClientOption {
	return func(cl *Client) {
		cl.insecure = true
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) ClientOption {
	return func(cl *Client) {
		cl.userAgent = ua
	}
}

// WithNowFunc overrides the time source used for the start-of-month
// fallback, primarily for tests.
func WithNowFunc(now func() time.Time) ClientOption {
	return func(cl *Client) {
		cl.now = now
	}
}

// NewClient creates a Client for the given write and query endpoints.
// Without TLS options the system certificate pool verifies the server.
// Construction fails when a pinned CA bundle cannot be loaded.
func NewClient(writeURL, queryURL string, opts ...ClientOption) (*Client, error) {
	c := &Client{
		writeURL:  writeURL,
		queryURL:  queryURL,
		userAgent: "frost/dev",
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		httpClient, err := newHTTPClient(c.caPath, c.insecure)
		if err != nil {
			return nil, err
		}
		c.httpClient = httpClient
	}

	return c, nil
}

// Write pushes one labeled timeseries to the write endpoint. Any response
// outside the 2xx range is a WriteError.
func (c *Client) Write(ctx context.Context, ts Timeseries) error {
	payload, err := json.Marshal(ts)
	if err != nil {
		return fmt.Errorf("encoding timeseries: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.writeURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }() // read-only response body

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &WriteError{StatusCode: resp.StatusCode, Body: readErrorBody(resp.Body)}
	}
	return nil
}

// LastTimestamp returns the time of the newest stored sample for metric.
// It queries the last day first, widens to thirty days when that comes back
// empty, and falls back to the start of the current month (UTC) when even
// the wide window holds nothing.
func (c *Client) LastTimestamp(ctx context.Context, metric string) (time.Time, error) {
	for _, lookback := range []string{shortLookback, longLookback} {
		ts, ok, err := c.queryLastTimestamp(ctx, metric, lookback)
		if err != nil {
			return time.Time{}, err
		}
		if ok {
			return ts, nil
		}
	}

	fallback := startOfMonth(c.now().UTC())
	slog.Warn("query for last stored timestamp returned nothing, using start of month",
		"metric", metric, "start", fallback)
	return fallback, nil
}

// queryLastTimestamp runs one instant query for the newest sample timestamp
// within the lookback range. ok is false when the result set is empty.
func (c *Client) queryLastTimestamp(ctx context.Context, metric, lookback string) (time.Time, bool, error) {
	promql := fmt.Sprintf("max_over_time(timestamp(%s)[%s:])", metric, lookback)

	q := url.Values{}
	q.Set("query", promql)
	reqURL := c.queryURL + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("executing request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }() // read-only response body

	if resp.StatusCode != http.StatusOK {
		return time.Time{}, false, &QueryError{StatusCode: resp.StatusCode, Body: readErrorBody(resp.Body)}
	}

	var qr queryResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxJSONResponseBytes)).Decode(&qr); err != nil {
		return time.Time{}, false, fmt.Errorf("decoding query response: %w", err)
	}

	if len(qr.Data.Result) == 0 {
		return time.Time{}, false, nil
	}

	ts, err := qr.Data.Result[0].timestamp()
	if err != nil {
		return time.Time{}, false, err
	}
	return ts, true, nil
}

// timestamp extracts the sample value, which for a timestamp() query is the
// newest sample's time in float seconds rendered as a string.
func (r queryResult) timestamp() (time.Time, error) {
	var s string
	if err := json.Unmarshal(r.Value[1], &s); err != nil {
		return time.Time{}, fmt.Errorf("decoding sample value: %w", err)
	}
	seconds, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing sample value %q: %w", s, err)
	}
	return time.UnixMilli(int64(seconds * 1000)).UTC(), nil
}

// startOfMonth truncates t to midnight on the first of its month, in UTC.
func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// readErrorBody drains a bounded chunk of a failing response for diagnostics.
func readErrorBody(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodyBytes))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(body))
}

// newHTTPClient builds the HTTP client backing the default transport
// configuration: a pinned CA bundle, disabled verification, or the system
// certificate pool.
func newHTTPClient(caPath string, insecure bool) (*http.Client, error) {
	switch {
	case caPath != "":
		pem, err := os.ReadFile(caPath)
		if err != nil {
			return nil, fmt.Errorf("reading CA certificate: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("no certificates found in %s", caPath)
		}
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.TLSClientConfig = &tls.Config{RootCAs: pool, MinVersion: tls.VersionTLS12}
		return &http.Client{Transport: transport}, nil

	case insecure:
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // Chosen explicitly via WithInsecureSkipVerify.
		return &http.Client{Transport: transport}, nil

	default:
		return http.DefaultClient, nil
	}
}
