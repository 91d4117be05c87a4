// SPDX-License-Identifier: MPL-2.0

package metno

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the production Frost API endpoint operated by MET Norway.
	DefaultBaseURL = "https://frost.met.no"

	// observationsPath serves observed values for a source/element pair.
	observationsPath = "/observations/v0.jsonld"

	// availableTimeSeriesPath lists the series a source reports.
	availableTimeSeriesPath = "/observations/availableTimeSeries/v0.jsonld"

	// maxJSONResponseBytes is the upper bound on JSON API response size (10 MB).
	// Prevents unbounded memory consumption from malicious or malformed responses.
	maxJSONResponseBytes = 10 << 20
)

type (
	// APIError is the Frost API's structured error envelope. The API wraps
	// every failure, including "no data found" responses, in the same
	// {"error": {"message": ..., "reason": ...}} shape.
	APIError struct {
		StatusCode int    // HTTP status of the response carrying the envelope
		Message    string // Short summary, e.g. "No data found"
		Reason     string // Longer explanation aimed at the caller
	}

	// Window is a half-open observation time range. The zero value asks the
	// API for its most recent observations instead of a fixed range.
	Window struct {
		Start time.Time
		End   time.Time
	}

	// ObservationsRequest identifies one observation query: which sensor,
	// which element, and the time range to cover.
	ObservationsRequest struct {
		Source  string // Sensor ID, e.g. "SN19780"
		Element string // Element ID, e.g. "air_temperature"
		Window  Window // Zero value requests the latest observations
	}

	// Observation is a single observed value at a point in time.
	Observation struct {
		Time  time.Time // Reference time of the measurement
		Value float64   // Observed value in the element's unit
	}

	// TimeSeries describes one series of observations a source reports.
	TimeSeries struct {
		SourceID            string // Source with sensor suffix, e.g. "SN19780:0"
		ElementID           string // Element ID, e.g. "air_temperature"
		Unit                string // Unit of measure, e.g. "degC"
		ValidFrom           string // ISO 8601 timestamp
		TimeOffset          string // ISO 8601 duration, e.g. "PT0H"
		TimeResolution      string // ISO 8601 duration, e.g. "PT1H"
		PerformanceCategory string
		ExposureCategory    string
		Status              string
	}

	// frostObservation is the JSON wire format for one timestamped record
	// in an observations response. Each record nests the measured values.
	frostObservation struct {
		SourceID      string             `json:"sourceId"`
		ReferenceTime string             `json:"referenceTime"`
		Observations  []frostMeasurement `json:"observations"`
	}

	// frostMeasurement is the JSON wire format for a single measured value.
	frostMeasurement struct {
		ElementID string  `json:"elementId"`
		Value     float64 `json:"value"`
		Unit      string  `json:"unit"`
	}

	// frostTimeSeries is the JSON wire format for one available time series.
	frostTimeSeries struct {
		SourceID            string `json:"sourceId"`
		ElementID           string `json:"elementId"`
		Unit                string `json:"unit"`
		ValidFrom           string `json:"validFrom"`
		TimeOffset          string `json:"timeOffset"`
		TimeResolution      string `json:"timeResolution"`
		PerformanceCategory string `json:"performanceCategory"`
		ExposureCategory    string `json:"exposureCategory"`
		Status              string `json:"status"`
	}

	// frostEnvelope is the JSON-LD wire envelope shared by all Frost API
	// responses. Successful responses carry "data", failures carry "error".
	frostEnvelope struct {
		Error *frostErrorBody `json:"error"`
		Data  json.RawMessage `json:"data"`
	}

	// frostErrorBody is the JSON wire format for the Frost API error object.
	frostErrorBody struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Reason  string `json:"reason"`
	}

	// Client queries the MET Norway Frost API for observation data.
	Client struct {
		httpClient   *http.Client
		baseURL      string // API base URL (default: "https://frost.met.no", overridable for tests)
		clientID     string // Frost client ID, sent as the basic auth username
		clientSecret string // Frost client secret, sent as the basic auth password
		userAgent    string // User-Agent header value

		// cache holds response bodies when caching is enabled, nil otherwise.
		cache *responseCache
	}

	// ClientOption configures a Client during construction.
	ClientOption func(*Client)
)

// Error formats the envelope the way the API presents it to humans.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s - %s", e.Message, e.Reason)
}

// IsNoData reports whether err is a Frost API "no data found" response.
// The API answers HTTP 412 when a query matches no observations; the sync
// loop treats that as a benign empty window rather than a failure.
func IsNoData(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusPreconditionFailed ||
		strings.Contains(apiErr.Message, "No data found")
}

// IsZero reports whether the window is unset and the query should ask for
// the latest observations.
func (w Window) IsZero() bool {
	return w.Start.IsZero() && w.End.IsZero()
}

// referenceTime renders the window as the API's referencetime parameter:
// "<start>/<end>" in RFC 3339 UTC, or "latest" for the zero window.
func (w Window) referenceTime() string {
	if w.IsZero() {
		return "latest"
	}
	return w.Start.UTC().Format(time.RFC3339) + "/" + w.End.UTC().Format(time.RFC3339)
}

// WithHTTPClient sets a custom HTTP client, useful for tests or proxy configurations.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithBaseURL overrides the Frost API base URL, primarily for test servers.
func WithBaseURL(base string) ClientOption {
	return func(cl *Client) {
		cl.baseURL = strings.TrimRight(base, "/")
	}
}

// WithCredentials sets the Frost API client ID and secret. The API accepts
// unauthenticated requests but throttles them heavily, so production use
// should always supply credentials.
func WithCredentials(clientID, clientSecret string) ClientOption {
	return func(cl *Client) {
		cl.clientID = clientID
		cl.clientSecret = clientSecret
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) ClientOption {
	return func(cl *Client) {
		cl.userAgent = ua
	}
}

// WithCacheTTL enables in-memory read-through caching of API responses for
// the given TTL. A zero or negative TTL disables caching. Cache entries are
// keyed by full request URL, so distinct windows never share an entry.
func WithCacheTTL(ttl time.Duration) ClientOption {
	return func(cl *Client) {
		if ttl <= 0 {
			cl.cache = nil
			return
		}
		cl.cache = newResponseCache(ttl)
	}
}

// NewClient creates a Client with sensible defaults.
// Defaults: baseURL="https://frost.met.no", userAgent="frost/dev",
// httpClient=http.DefaultClient, caching disabled.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: http.DefaultClient,
		baseURL:    DefaultBaseURL,
		userAgent:  "frost/dev",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AvailableTimeSeries lists the time series the given source reports.
func (c *Client) AvailableTimeSeries(ctx context.Context, source string) ([]TimeSeries, error) {
	q := url.Values{}
	q.Set("sources", source)
	reqURL := c.baseURL + availableTimeSeriesPath + "?" + q.Encode()

	var raw []frostTimeSeries
	if err := c.getJSON(ctx, reqURL, &raw); err != nil {
		return nil, fmt.Errorf("listing time series for %s: %w", source, err)
	}

	series := make([]TimeSeries, 0, len(raw))
	for _, fs := range raw {
		series = append(series, TimeSeries(fs))
	}
	return series, nil
}

// Observations fetches observed values for one source/element pair over the
// requested window. A zero window asks for the latest observations. When the
// window contains no data the API answers with an error satisfying IsNoData.
func (c *Client) Observations(ctx context.Context, req ObservationsRequest) ([]Observation, error) {
	q := url.Values{}
	q.Set("sources", req.Source)
	q.Set("elements", req.Element)
	q.Set("referencetime", req.Window.referenceTime())
	reqURL := c.baseURL + observationsPath + "?" + q.Encode()

	var raw []frostObservation
	if err := c.getJSON(ctx, reqURL, &raw); err != nil {
		return nil, fmt.Errorf("fetching observations for %s/%s: %w", req.Source, req.Element, err)
	}

	return toObservations(raw)
}

// getJSON fetches reqURL, unwraps the Frost envelope, and decodes the "data"
// member into out. Successful bodies are cached when caching is enabled.
func (c *Client) getJSON(ctx context.Context, reqURL string, out any) error {
	if body, ok := c.cache.get(reqURL); ok {
		if err := json.Unmarshal(body, out); err == nil {
			return nil
		}
		// A cached body that no longer decodes falls through to a fresh request.
	}

	resp, err := c.doRequest(ctx, http.MethodGet, reqURL)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }() // read-only response body

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxJSONResponseBytes))
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	var envelope frostEnvelope
	decodeErr := json.Unmarshal(body, &envelope)
	if decodeErr == nil && envelope.Error != nil {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    envelope.Error.Message,
			Reason:     envelope.Error.Reason,
		}
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if decodeErr != nil {
		return fmt.Errorf("decoding response: %w", decodeErr)
	}

	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	c.cache.put(reqURL, []byte(envelope.Data))
	return nil
}

// doRequest creates and executes an HTTP request with common Frost API headers.
func (c *Client) doRequest(ctx context.Context, method, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	// The Frost API authenticates with HTTP basic auth: the client ID is
	// the username and the client secret is the password.
	if c.clientID != "" {
		req.SetBasicAuth(c.clientID, c.clientSecret)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}

	return resp, nil
}

// toObservations converts the wire records to exported observations. Every
// record must carry at least one measured value; the pipeline queries a
// single element, so the first value is the one that matters.
func toObservations(raw []frostObservation) ([]Observation, error) {
	obs := make([]Observation, 0, len(raw))
	for _, fo := range raw {
		if len(fo.Observations) == 0 {
			return nil, fmt.Errorf("record at %s has no observed values", fo.ReferenceTime)
		}
		ts, err := time.Parse(time.RFC3339, fo.ReferenceTime)
		if err != nil {
			return nil, fmt.Errorf("parsing reference time %q: %w", fo.ReferenceTime, err)
		}
		obs = append(obs, Observation{Time: ts, Value: fo.Observations[0].Value})
	}
	return obs, nil
}
