// Package yahoo provides a client for the Yahoo Finance chart API
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/harmonk/papertrade/internal/common"
	"github.com/harmonk/papertrade/internal/interfaces"
	"github.com/harmonk/papertrade/internal/models"
)

const (
	DefaultBaseURL   = "https://query1.finance.yahoo.com"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 5 // requests per second

	// Yahoo rejects requests without a browser-ish user agent.
	userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36"
)

// Client implements the MarketDataClient interface against the Yahoo
// Finance v8 chart endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new Yahoo Finance client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents an API error
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("yahoo API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// chartResponse mirrors the subset of the v8 chart payload we consume.
type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Meta struct {
		Symbol             string  `json:"symbol"`
		Currency           string  `json:"currency"`
		RegularMarketPrice float64 `json:"regularMarketPrice"`
		ChartPreviousClose float64 `json:"chartPreviousClose"`
		ShortName          string  `json:"shortName"`
		LongName           string  `json:"longName"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Open   []*float64 `json:"open"`
			High   []*float64 `json:"high"`
			Low    []*float64 `json:"low"`
			Close  []*float64 `json:"close"`
			Volume []*int64   `json:"volume"`
		} `json:"quote"`
	} `json:"indicators"`
}

// getChart performs a rate-limited GET against /v8/finance/chart/{symbol}.
func (c *Client) getChart(ctx context.Context, symbol, period, interval string) (*chartResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	params := url.Values{}
	params.Set("range", period)
	params.Set("interval", interval)

	path := fmt.Sprintf("/v8/finance/chart/%s", url.PathEscape(symbol))
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().Str("symbol", symbol).Str("range", period).Str("interval", interval).Msg("Yahoo chart request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	// Yahoo answers 404 for unknown symbols.
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s: %w", symbol, models.ErrSymbolUnavailable)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   path,
		}
	}

	var parsed chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if parsed.Chart.Error != nil {
		c.logger.Debug().
			Str("symbol", symbol).
			Str("code", parsed.Chart.Error.Code).
			Msg("Yahoo chart error payload")
		return nil, fmt.Errorf("%s: %w", symbol, models.ErrSymbolUnavailable)
	}
	if len(parsed.Chart.Result) == 0 {
		return nil, fmt.Errorf("%s: %w", symbol, models.ErrSymbolUnavailable)
	}

	return &parsed.Chart.Result[0], nil
}

// GetQuote retrieves the latest price, previous close, and display name for
// a symbol. A 5d range keeps the request inside Yahoo's documented range set;
// only the last two daily closes are used.
func (c *Client) GetQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	result, err := c.getChart(ctx, symbol, "5d", "1d")
	if err != nil {
		return nil, err
	}

	closes := collectCloses(result)

	price := result.Meta.RegularMarketPrice
	if price == 0 && len(closes) > 0 {
		price = closes[len(closes)-1]
	}
	if price == 0 {
		return nil, fmt.Errorf("%s: %w", symbol, models.ErrSymbolUnavailable)
	}

	prev := result.Meta.ChartPreviousClose
	if len(closes) > 1 {
		prev = closes[len(closes)-2]
	}
	if prev == 0 {
		prev = price
	}

	name := result.Meta.LongName
	if name == "" {
		name = result.Meta.ShortName
	}

	change := round2(price - prev)
	pct := 0.0
	if prev != 0 {
		pct = round2(change / prev * 100)
	}

	return &models.Quote{
		Symbol:        models.NormalizeSymbol(symbol),
		Name:          name,
		Price:         round2(price),
		PreviousClose: round2(prev),
		Change:        change,
		ChangePct:     pct,
		Currency:      result.Meta.Currency,
		FetchedAt:     time.Now(),
	}, nil
}

// GetHistory retrieves OHLCV history for a symbol, oldest candle first.
// Bars with a null close (pre/post market padding) are skipped.
func (c *Client) GetHistory(ctx context.Context, symbol string, opts ...interfaces.HistoryOption) (*models.History, error) {
	params := &interfaces.HistoryParams{
		Period:   "1y",
		Interval: "1d",
	}
	for _, opt := range opts {
		opt(params)
	}

	result, err := c.getChart(ctx, symbol, params.Period, params.Interval)
	if err != nil {
		return nil, err
	}

	if len(result.Indicators.Quote) == 0 || len(result.Timestamp) == 0 {
		return nil, fmt.Errorf("%s: %w", symbol, models.ErrSymbolUnavailable)
	}

	bars := result.Indicators.Quote[0]
	candles := make([]models.Candle, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(bars.Close) || bars.Close[i] == nil {
			continue
		}
		candle := models.Candle{
			Timestamp: time.Unix(ts, 0).UTC(),
			Close:     *bars.Close[i],
		}
		if i < len(bars.Open) && bars.Open[i] != nil {
			candle.Open = *bars.Open[i]
		}
		if i < len(bars.High) && bars.High[i] != nil {
			candle.High = *bars.High[i]
		}
		if i < len(bars.Low) && bars.Low[i] != nil {
			candle.Low = *bars.Low[i]
		}
		if i < len(bars.Volume) && bars.Volume[i] != nil {
			candle.Volume = *bars.Volume[i]
		}
		candles = append(candles, candle)
	}

	if len(candles) == 0 {
		return nil, fmt.Errorf("%s: %w", symbol, models.ErrSymbolUnavailable)
	}

	return &models.History{
		Symbol:   models.NormalizeSymbol(symbol),
		Period:   params.Period,
		Interval: params.Interval,
		Candles:  candles,
	}, nil
}

// collectCloses returns the non-null closes from the first quote block.
func collectCloses(result *chartResult) []float64 {
	if len(result.Indicators.Quote) == 0 {
		return nil
	}
	closes := make([]float64, 0, len(result.Indicators.Quote[0].Close))
	for _, c := range result.Indicators.Quote[0].Close {
		if c != nil {
			closes = append(closes, *c)
		}
	}
	return closes
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Ensure Client implements MarketDataClient
var _ interfaces.MarketDataClient = (*Client)(nil)
