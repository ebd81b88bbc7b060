package dataset

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/yourusername/diamond-edge/internal/config"
	"github.com/yourusername/diamond-edge/internal/models"
)

// HTTPSource fetches a batch CSV from a remote collaborator with retries
// and client-side rate limiting
type HTTPSource struct {
	url     string
	apiKey  string
	client  *retryablehttp.Client
	limiter *rate.Limiter
	logger  *logrus.Logger
}

// NewHTTPSource creates an HTTP batch source from configuration
func NewHTTPSource(cfg *config.DataConfig, logger *logrus.Logger) *HTTPSource {
	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	retryClient.RetryMax = cfg.MaxRetries
	retryClient.RetryWaitMin = 100 * time.Millisecond
	retryClient.RetryWaitMax = 10 * time.Second
	retryClient.CheckRetry = batchRetryPolicy()
	retryClient.Logger = nil

	rateLimit := cfg.RateLimit
	if rateLimit <= 0 {
		rateLimit = 10.0
	}

	return &HTTPSource{
		url:     cfg.URL,
		apiKey:  cfg.APIKey,
		client:  retryClient,
		limiter: rate.NewLimiter(rate.Limit(rateLimit), 1),
		logger:  logger,
	}
}

// Name returns the source name
func (s *HTTPSource) Name() string {
	return "http"
}

// Load fetches and parses the remote batch
func (s *HTTPSource) Load(ctx context.Context) (*models.Batch, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build batch request: %w", err)
	}
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch batch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("batch endpoint returned status %d", resp.StatusCode)
	}

	batch, err := ParseBatchCSV(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse remote batch: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"url":          s.url,
		"observations": batch.Size(),
	}).Info("Remote batch fetched")

	return batch, nil
}

// batchRetryPolicy retries network errors, rate limits and server errors;
// other client errors fail immediately
func batchRetryPolicy() retryablehttp.CheckRetry {
	return func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if err != nil {
			return true, err
		}
		switch resp.StatusCode {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true, nil
		}
		return false, nil
	}
}
