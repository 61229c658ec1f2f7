// Package google implements provider.Provider against the public Google
// Translate web endpoint.
package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"translatebot/internal/domain"
	"translatebot/internal/provider"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL  = "https://translate.googleapis.com"
	DefaultMaxInput = 5000
	translatePath   = "/translate_a/single"
)

// Config holds client settings
type Config struct {
	BaseURL  string
	Timeout  time.Duration
	MaxInput int
	Rate     float64
	Burst    int
}

// Client is a rate limited Google Translate client
type Client struct {
	http     *resty.Client
	limiter  *rate.Limiter
	baseURL  string
	timeout  time.Duration
	maxInput int
	logger   *zap.Logger
}

var _ provider.Provider = (*Client)(nil)

// New creates a new client
func New(cfg Config, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxInput <= 0 {
		cfg.MaxInput = DefaultMaxInput
	}

	limit := rate.Inf
	if cfg.Rate > 0 {
		limit = rate.Limit(cfg.Rate)
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}

	return &Client{
		http:     resty.New().SetTimeout(cfg.Timeout),
		limiter:  rate.NewLimiter(limit, cfg.Burst),
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		timeout:  cfg.Timeout,
		maxInput: cfg.MaxInput,
		logger:   logger,
	}
}

// Translate renders text in targetLang
func (c *Client) Translate(ctx context.Context, text, targetLang, sourceLang string) (string, error) {
	if sourceLang == "" {
		sourceLang = provider.AutoDetect
	}
	res, err := c.call(ctx, "translate", text, targetLang, sourceLang)
	if err != nil {
		return "", err
	}
	return res.text, nil
}

// Detect returns the base language code Google reports for text
func (c *Client) Detect(ctx context.Context, text string) (string, error) {
	res, err := c.call(ctx, "detect", text, domain.DefaultLanguage, provider.AutoDetect)
	if err != nil {
		return "", err
	}
	if res.detected == "" {
		return "", &provider.Error{Kind: provider.KindResponse, Op: "detect", Err: errors.New("no detected language")}
	}
	return res.detected, nil
}

type result struct {
	text     string
	detected string
}

func (c *Client) call(ctx context.Context, op, text, targetLang, sourceLang string) (result, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return result{}, &provider.Error{Kind: provider.KindQuota, Op: op, Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"client": "gtx",
			"sl":     domain.NormalizeLanguage(sourceLang),
			"tl":     domain.NormalizeLanguage(targetLang),
			"dt":     "t",
			"q":      provider.Truncate(text, c.maxInput),
		}).
		Get(c.baseURL + translatePath)
	if err != nil {
		return result{}, provider.Wrap(op, err)
	}

	switch {
	case resp.StatusCode() == http.StatusTooManyRequests:
		return result{}, &provider.Error{Kind: provider.KindQuota, Op: op, Err: fmt.Errorf("status %s", resp.Status())}
	case resp.IsError():
		return result{}, &provider.Error{Kind: provider.KindResponse, Op: op, Err: fmt.Errorf("status %s", resp.Status())}
	}

	res, err := parseResponse(resp.Body())
	if err != nil {
		c.logger.Debug("Unexpected provider payload",
			zap.String("op", op),
			zap.Int("bytes", len(resp.Body())),
		)
		return result{}, &provider.Error{Kind: provider.KindResponse, Op: op, Err: err}
	}
	return res, nil
}

// parseResponse reads the nested array payload:
// [[["translated","original",...],...], null, "detected", ...]
func parseResponse(body []byte) (result, error) {
	var payload []any
	if err := json.Unmarshal(body, &payload); err != nil {
		return result{}, fmt.Errorf("decode payload: %w", err)
	}
	if len(payload) == 0 {
		return result{}, errors.New("empty payload")
	}

	segments, ok := payload[0].([]any)
	if !ok {
		return result{}, errors.New("missing segments")
	}

	var sb strings.Builder
	for _, seg := range segments {
		parts, ok := seg.([]any)
		if !ok || len(parts) == 0 {
			continue
		}
		if s, ok := parts[0].(string); ok {
			sb.WriteString(s)
		}
	}

	var res result
	res.text = sb.String()
	if len(payload) > 2 {
		if s, ok := payload[2].(string); ok {
			res.detected = domain.NormalizeLanguage(s)
		}
	}
	if res.text == "" {
		return result{}, errors.New("empty translation")
	}
	return res, nil
}
