package client

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/adamwoolhether/hermes/client/progress"
	"github.com/adamwoolhether/hermes/client/throttle"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"
)

// Option is a functional option for configuring a [Client] via [New].
type Option func(*options) error

type options struct {
	client            *http.Client
	rt                http.RoundTripper
	timeout           *time.Duration
	noFollowRedirects bool
	logger            *slog.Logger
	headers           *DefaultHeaders
	userAgent         string
	apiKey            string
	token             string
	requestID         bool
	throttle          *throttle.Config
	tracerProvider    trace.TracerProvider
	registerer        prometheus.Registerer
}

// WithClient replaces the [http.Client] the [Client] sends requests with.
// The provided client is copied and never mutated.
func WithClient(hc *http.Client) Option {
	return func(o *options) error {
		if hc == nil {
			return errors.New("client must not be nil")
		}
		o.client = hc
		return nil
	}
}

// WithTransport sets a custom [http.RoundTripper] as the base transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) error {
		if rt == nil {
			return errors.New("transport must not be nil")
		}
		o.rt = rt
		return nil
	}
}

// WithTimeout sets the overall request timeout of the underlying [http.Client].
// Requests exceeding it fail with [ErrTimedOut].
func WithTimeout(d time.Duration) Option {
	return func(o *options) error {
		if d < 0 {
			return errors.New("timeout must not be negative")
		}
		o.timeout = &d
		return nil
	}
}

// WithNoFollowRedirects prevents the [Client] from following HTTP redirects.
// The 3xx response then fails with [ErrServerError].
func WithNoFollowRedirects() Option {
	return func(o *options) error {
		o.noFollowRedirects = true
		return nil
	}
}

// WithLogger injects a custom [slog.Logger] into the [Client].
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) error {
		if logger == nil {
			return errors.New("logger must not be nil")
		}
		o.logger = logger
		return nil
	}
}

// WithDefaultHeaders replaces every default header value.
func WithDefaultHeaders(h DefaultHeaders) Option {
	return func(o *options) error {
		if err := validateOption("default headers", h); err != nil {
			return err
		}
		o.headers = &h
		return nil
	}
}

// WithUserAgent overrides the default User-Agent header.
func WithUserAgent(header string) Option {
	return func(o *options) error {
		if header == "" {
			return errors.New("user agent must not be empty")
		}
		o.userAgent = header
		return nil
	}
}

// WithAPIKey sends key in the api-key header of every request.
func WithAPIKey(key string) Option {
	return func(o *options) error {
		o.apiKey = key
		return nil
	}
}

// WithToken sends token verbatim in the Authorization header of every request.
func WithToken(token string) Option {
	return func(o *options) error {
		o.token = token
		return nil
	}
}

// WithRequestID sets a random X-Request-ID header on every request.
func WithRequestID() Option {
	return func(o *options) error {
		o.requestID = true
		return nil
	}
}

// WithThrottle enables token-bucket rate limiting with the given requests per second and burst capacity.
func WithThrottle(rps, burst int) Option {
	return func(o *options) error {
		cfg := throttle.Config{RPS: rps, Burst: burst}
		if err := validateOption("throttle", cfg); err != nil {
			return fmt.Errorf("%w: %w", throttle.ErrMustNotBeZero, err)
		}
		o.throttle = &cfg
		return nil
	}
}

// WithTracerProvider sets the provider of the tracer that records a span
// per request. The global provider is used otherwise.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) error {
		if tp == nil {
			return errors.New("tracer provider must not be nil")
		}
		o.tracerProvider = tp
		return nil
	}
}

// WithMetrics registers the client's request metrics with reg.
// Clients sharing a registerer share the collectors.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *options) error {
		if reg == nil {
			return errors.New("registerer must not be nil")
		}
		o.registerer = reg
		return nil
	}
}

// UploadOption is a functional option for [Client.Upload].
type UploadOption func(*uploadOpts)

type uploadOpts struct {
	listeners []progress.Listener
}

// WithProgress registers fn to receive the progress of this upload only.
// fn runs on the transport's goroutine and must not block.
func WithProgress(fn progress.Listener) UploadOption {
	return func(o *uploadOpts) {
		if fn != nil {
			o.listeners = append(o.listeners, fn)
		}
	}
}
