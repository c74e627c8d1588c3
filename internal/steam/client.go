package steam

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// ErrAppNotFound is returned when the storefront reports success=false or
// omits the requested id.
var ErrAppNotFound = errors.New("steam app not found")

const (
	// EndpointAppList labels app list requests for latency observers.
	EndpointAppList = "app_list"
	// EndpointAppDetails labels appdetails requests for latency observers.
	EndpointAppDetails = "app_details"
)

// maxResponseBytes bounds how much of a response body is read. The full app
// list is tens of megabytes.
const maxResponseBytes = 256 << 20

// LatencyObserver receives the duration of every completed HTTP exchange.
type LatencyObserver interface {
	ObserveRemoteRequest(endpoint string, latency time.Duration)
}

// Client provides access to the Steam directory and storefront.
type Client struct {
	appListURL    string
	appDetailsURL string
	apiKey        string
	language      string
	countryCode   string
	httpClient    *http.Client
	observer      LatencyObserver
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithAPIKey adds the key query parameter to every request.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = strings.TrimSpace(key)
	}
}

// WithLocale sets the storefront language (l) and country (cc) parameters.
func WithLocale(language, countryCode string) Option {
	return func(c *Client) {
		c.language = strings.TrimSpace(language)
		c.countryCode = strings.TrimSpace(countryCode)
	}
}

// WithLatencyObserver reports request latency to observer.
func WithLatencyObserver(observer LatencyObserver) Option {
	return func(c *Client) {
		c.observer = observer
	}
}

// New creates a Steam client for the two endpoint URLs.
func New(appListURL, appDetailsURL string, opts ...Option) (*Client, error) {
	appListURL = strings.TrimSpace(appListURL)
	if appListURL == "" {
		return nil, errors.New("steam app list url required")
	}
	appDetailsURL = strings.TrimSpace(appDetailsURL)
	if appDetailsURL == "" {
		return nil, errors.New("steam app details url required")
	}
	client := &Client{
		appListURL:    appListURL,
		appDetailsURL: appDetailsURL,
		httpClient:    &http.Client{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// AppList fetches the full application directory.
func (c *Client) AppList(ctx context.Context) ([]App, error) {
	params := url.Values{}
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}
	body, err := c.get(ctx, EndpointAppList, c.appListURL, params)
	if err != nil {
		return nil, err
	}

	var payload appListResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode steam app list: %w", err)
	}
	return payload.AppList.Apps, nil
}

// AppDetails fetches storefront metadata for one application.
func (c *Client) AppDetails(ctx context.Context, id int64) (*AppDetails, error) {
	key := strconv.FormatInt(id, 10)
	params := url.Values{}
	params.Set("appids", key)
	if c.language != "" {
		params.Set("l", c.language)
	}
	if c.countryCode != "" {
		params.Set("cc", c.countryCode)
	}
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}
	body, err := c.get(ctx, EndpointAppDetails, c.appDetailsURL, params)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("decode steam app details %d: invalid json", id)
	}

	envelope := gjson.GetBytes(body, key)
	if !envelope.Exists() || !envelope.Get("success").Bool() {
		return nil, fmt.Errorf("app %d: %w", id, ErrAppNotFound)
	}
	data := envelope.Get("data")
	// Treated as a transport fault: an empty payload would classify as a
	// non-game and the entry would be deleted.
	if !data.IsObject() {
		return nil, fmt.Errorf("decode steam app details %d: data is not an object", id)
	}
	return parseAppDetails(id, data), nil
}

func (c *Client) get(ctx context.Context, endpointName, rawURL string, params url.Values) ([]byte, error) {
	endpoint, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse steam url: %w", err)
	}
	if len(params) > 0 {
		query := endpoint.Query()
		for k, values := range params {
			for _, v := range values {
				query.Set(k, v)
			}
		}
		endpoint.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if c.observer != nil {
		c.observer.ObserveRemoteRequest(endpointName, latency)
	}
	if err != nil {
		return nil, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("steam %s returned %d (latency=%v)", endpointName, resp.StatusCode, latency)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read steam %s response: %w", endpointName, err)
	}
	return body, nil
}
