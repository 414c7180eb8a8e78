package httpx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/retrypolicy"
)

const maxErrorBody = 4 << 10

// StatusError reports a response whose status the executor treats as a failure.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

type Config struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

func DefaultConfig() Config {
	return Config{
		MaxRetries: 3,
		BaseDelay:  200 * time.Millisecond,
		MaxDelay:   5 * time.Second,
	}
}

func normalizeConfig(cfg Config) Config {
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = 200 * time.Millisecond
	}
	if cfg.MaxDelay < cfg.BaseDelay {
		cfg.MaxDelay = cfg.BaseDelay
	}
	return cfg
}

// RequestFunc builds a fresh request for each attempt so bodies can be replayed.
type RequestFunc func(ctx context.Context) (*http.Request, error)

type Executor struct {
	client   *http.Client
	executor failsafe.Executor[*http.Response]
}

func NewExecutor(client *http.Client, cfg Config) *Executor {
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}

	return &Executor{client: client, executor: failsafe.With(NewRetryPolicy(cfg))}
}

//nolint:bodyclose // the type parameter is not a live response
func NewRetryPolicy(cfg Config) retrypolicy.RetryPolicy[*http.Response] {
	cfg = normalizeConfig(cfg)

	return retrypolicy.NewBuilder[*http.Response]().
		WithBackoff(cfg.BaseDelay, cfg.MaxDelay).
		WithMaxRetries(cfg.MaxRetries).
		WithJitterFactor(0.1).
		HandleIf(func(_ *http.Response, err error) bool {
			return Retryable(err)
		}).
		Build()
}

// Retryable reports transport failures, rate limits and server errors.
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return retryableStatus(statusErr.StatusCode)
	}

	return true
}

func retryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

// Do sends the request with retries. Retryable statuses are consumed and
// surface as *StatusError; every other response is returned to the caller.
func (e *Executor) Do(ctx context.Context, build RequestFunc) (*http.Response, error) {
	resp, err := e.executor.WithContext(ctx).Get(func() (*http.Response, error) {
		return e.attempt(ctx, build)
	})
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			return nil, statusErr
		}
		return nil, err
	}

	return resp, nil
}

// DoOnce sends the request a single time, for calls that must not be replayed.
func (e *Executor) DoOnce(ctx context.Context, build RequestFunc) (*http.Response, error) {
	return e.attempt(ctx, build)
}

func (e *Executor) attempt(ctx context.Context, build RequestFunc) (*http.Response, error) {
	req, err := build(ctx)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, err
	}

	if retryableStatus(resp.StatusCode) {
		return nil, ConsumeError(resp)
	}

	return resp, nil
}

// ConsumeError drains and closes resp and describes it as a *StatusError.
func ConsumeError(resp *http.Response) error {
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
}
