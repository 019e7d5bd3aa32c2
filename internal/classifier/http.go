// Moodswipe - Photo-Driven Music Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodswipe

package classifier

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/h2non/filetype"
	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"github.com/tomtom215/moodswipe/internal/config"
	"github.com/tomtom215/moodswipe/internal/metrics"
)

const (
	breakerName      = "classifier"
	maxResponseBytes = 1 << 20
	defaultLabelPath = "mood"
)

// HTTPClassifier posts the raw image to an external service and reads the
// label from its JSON response at a gjson path.
type HTTPClassifier struct {
	url       string
	apiKey    string
	labelPath string
	client    *http.Client
	limiter   *rate.Limiter
	breaker   *gobreaker.CircuitBreaker[string]
}

// NewHTTPClassifier creates a classifier for cfg.URL. A non-positive rate
// disables the limiter.
func NewHTTPClassifier(cfg *config.ClassifierConfig) *HTTPClassifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	labelPath := cfg.LabelPath
	if labelPath == "" {
		labelPath = defaultLabelPath
	}

	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	return &HTTPClassifier{
		url:       cfg.URL,
		apiKey:    cfg.APIKey,
		labelPath: labelPath,
		client:    &http.Client{Timeout: timeout},
		limiter:   rate.NewLimiter(limit, burst),
		breaker:   newBreaker(breakerName, 30*time.Second),
	}
}

// Classify sends image to the service. Open-circuit rejections, limiter
// waits cut short by ctx, transport failures, non-2xx responses and missing
// labels all return a *ClassificationError.
func (c *HTTPClassifier) Classify(ctx context.Context, image []byte) (string, error) {
	if len(image) == 0 {
		return "", classificationError("read", errors.New("empty image"))
	}

	if err := c.limiter.Wait(ctx); err != nil {
		metrics.RecordClassification("rejected", 0)
		return "", classificationError("rate_limit", err)
	}

	start := time.Now()
	label, err := c.breaker.Execute(func() (string, error) {
		return c.do(ctx, image)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.RecordClassification("rejected", 0)
			return "", classificationError("circuit_open", err)
		}
		metrics.RecordClassification("error", time.Since(start))
		var ce *ClassificationError
		if errors.As(err, &ce) {
			return "", err
		}
		return "", classificationError("request", err)
	}

	metrics.RecordClassification("success", time.Since(start))
	return label, nil
}

func (c *HTTPClassifier) do(ctx context.Context, image []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(image))
	if err != nil {
		return "", classificationError("request", err)
	}
	req.Header.Set("Content-Type", contentType(image))
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", classificationError("transport", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", classificationError("read_response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", classificationError("status", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
	if !gjson.ValidBytes(body) {
		return "", classificationError("decode", errors.New("response is not valid JSON"))
	}

	label := strings.TrimSpace(gjson.GetBytes(body, c.labelPath).String())
	if label == "" {
		return "", classificationError("decode", fmt.Errorf("no label at %q", c.labelPath))
	}
	return label, nil
}

// contentType sniffs the image format, falling back to a generic type.
func contentType(image []byte) string {
	kind, err := filetype.Match(image)
	if err != nil || kind == filetype.Unknown {
		return "application/octet-stream"
	}
	return kind.MIME.Value
}
