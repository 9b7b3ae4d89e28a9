package throttle

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

var (
	ErrMustNotBeZero = errors.New("must be greater than zero")
	ErrWaitingFailed = errors.New("limiter waiting failed")
	ErrContextEnded  = errors.New("throttle context ended")
)

// Config defines the limiter's requests per second and burst capacity.
type Config struct {
	RPS   int `json:"rps" validate:"gt=0"`
	Burst int `json:"burst" validate:"gt=0"`
}

// RoundTripper delays outbound requests with a token bucket so that a
// single client never exceeds Config.RPS.
type RoundTripper struct {
	limiter *rate.Limiter
	cfg     Config
	next    http.RoundTripper
	logFn   func() *slog.Logger
}

// NewRoundTripper wraps next with a limiter built from cfg. logFn is resolved
// on every request, so the logger may be configured after the transport. A
// nil logFn, or one returning nil, disables the exhaustion logs.
func NewRoundTripper(cfg Config, logFn func() *slog.Logger, next http.RoundTripper) (*RoundTripper, error) {
	if cfg.RPS <= 0 || cfg.Burst <= 0 {
		return nil, fmt.Errorf("rps[%d] and burst[%d] %w", cfg.RPS, cfg.Burst, ErrMustNotBeZero)
	}
	if next == nil {
		next = http.DefaultTransport
	}
	if logFn == nil {
		logFn = func() *slog.Logger { return nil }
	}

	rt := &RoundTripper{
		limiter: rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst),
		cfg:     cfg,
		next:    next,
		logFn:   logFn,
	}

	return rt, nil
}

// Config returns the limits rt was built with.
func (rt *RoundTripper) Config() Config { return rt.cfg }

func (rt *RoundTripper) RoundTrip(r *http.Request) (*http.Response, error) {
	ctx := r.Context()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w early: %w", ErrContextEnded, err)
	}

	if logger := rt.logFn(); logger != nil && rt.limiter.Tokens() < 1 {
		logger.Info("throttle tokens exhausted", "rps", rt.cfg.RPS, "burst", rt.cfg.Burst, "method", r.Method, "host", r.URL.Host)

		start := time.Now()
		defer func() {
			logger.Info("throttle wait complete", "waited", time.Since(start).String(), "host", r.URL.Host)
		}()
	}

	if err := rt.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWaitingFailed, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w post-wait: %w", ErrContextEnded, err)
	}

	return rt.next.RoundTrip(r)
}
