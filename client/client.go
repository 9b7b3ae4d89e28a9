package client

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/adamwoolhether/hermes/client/progress"
	"github.com/adamwoolhether/hermes/client/throttle"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Client sends requests to a single scheme and host.
// It is safe for concurrent use, except for the upload progress
// snapshot described on [Client.UploadProgress].
type Client struct {
	scheme    Scheme
	host      string
	c         *http.Client
	logger    *slog.Logger
	headers   DefaultHeaders
	apiKey    string
	token     string
	requestID bool
	tracer    trace.Tracer
	metrics   *metrics

	uploading atomic.Bool
	progress  atomic.Uint64 // math.Float64bits of the last fraction
}

// New builds a Client targeting scheme and host. host may carry a port
// ("localhost:8080"); it is validated when a request is made, not here.
// If not specified, a fresh http.Client over http.DefaultTransport is used.
func New(scheme Scheme, host string, optFns ...Option) (*Client, error) {
	var opts options
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, fmt.Errorf("applying client option: %w", err)
		}
	}

	client := &Client{
		scheme:    scheme,
		host:      host,
		c:         &http.Client{},
		logger:    slog.Default(),
		headers:   defaultHeaders(),
		apiKey:    opts.apiKey,
		token:     opts.token,
		requestID: opts.requestID,
	}

	if opts.client != nil {
		hc := *opts.client
		client.c = &hc
	}

	if opts.logger != nil {
		client.logger = opts.logger
	}

	if opts.headers != nil {
		client.headers = *opts.headers
	}
	if opts.userAgent != "" {
		client.headers.UserAgent = opts.userAgent
	}

	if opts.timeout != nil {
		client.c.Timeout = *opts.timeout
	}

	if opts.noFollowRedirects {
		client.c.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	var transport http.RoundTripper
	switch {
	case opts.rt != nil:
		transport = opts.rt
	case opts.client != nil && opts.client.Transport != nil:
		transport = opts.client.Transport
	default:
		transport = http.DefaultTransport
	}
	if opts.throttle != nil {
		rt, err := throttle.NewRoundTripper(*opts.throttle, func() *slog.Logger { return client.logger }, transport)
		if err != nil {
			return nil, fmt.Errorf("configuring throttle: %w", err)
		}
		transport = rt
	}
	client.c.Transport = transport

	tp := opts.tracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	client.tracer = tp.Tracer(instrumentationName)

	if opts.registerer != nil {
		m, err := newMetrics(opts.registerer)
		if err != nil {
			return nil, fmt.Errorf("configuring metrics: %w", err)
		}
		client.metrics = m
	}

	return client, nil
}

// Request sends method to endpoint. body is attached only for POST and
// PUT. headers are applied last and override defaults with the same
// (case insensitive) key.
//
// Any status above 299 fails with [ErrServerError]. Every returned error
// is a *[NetworkError]; on error no body or metadata is returned.
func (c *Client) Request(ctx context.Context, method Method, endpoint Endpoint, body []byte, headers map[string]string) ([]byte, *Response, error) {
	req, err := c.buildRequest(ctx, method, endpoint, body, headers)
	if err != nil {
		return nil, nil, err
	}

	return c.exec(req)
}

// Upload POSTs data as the raw request body to endpoint, without its query.
// The Content-Type header is derived from fileType and the X-Filename
// header carries fileName with the fileType extension.
//
// Progress is published to listeners registered with [WithProgress] and
// to the client wide snapshot of [Client.UploadProgress].
func (c *Client) Upload(ctx context.Context, endpoint Endpoint, fileName string, fileType FileType, data []byte, headers map[string]string, opts ...UploadOption) ([]byte, *Response, error) {
	var settings uploadOpts
	for _, opt := range opts {
		opt(&settings)
	}

	req, err := c.buildUpload(ctx, endpoint, fileName, fileType, data, headers)
	if err != nil {
		return nil, nil, err
	}

	var body *progress.Reader
	if req.Body != nil && req.Body != http.NoBody {
		listeners := append([]progress.Listener{c.trackProgress}, settings.listeners...)
		body = progress.NewReader(req.Body, req.ContentLength, c.logger, listeners...)
		req.Body = body
	}

	c.uploading.Store(true)
	c.setProgress(0)
	defer func() {
		// The transport may still be writing the body after the response.
		if body != nil {
			body.Stop()
		}
		c.uploading.Store(false)
		c.setProgress(1)
	}()

	b, resp, err := c.exec(req)
	if err == nil {
		c.metrics.uploaded(len(data))
	}

	return b, resp, err
}

// UploadProgress returns the fraction, in [0, 1], of the most recent
// upload body sent by this client. It is 1 once an upload completes,
// successfully or not.
//
// The snapshot is shared by every upload of the client, so concurrent
// uploads overwrite each other. Use [WithProgress] for a per upload view.
func (c *Client) UploadProgress() float64 {
	return math.Float64frombits(c.progress.Load())
}

// IsUploading reports whether an upload of this client is in flight.
func (c *Client) IsUploading() bool {
	return c.uploading.Load()
}

func (c *Client) trackProgress(ev progress.Event) {
	c.setProgress(ev.Fraction())
}

func (c *Client) setProgress(f float64) {
	c.progress.Store(math.Float64bits(f))
}

// exec sends req, checks the status code and reads the whole body.
func (c *Client) exec(req *http.Request) ([]byte, *Response, error) {
	req, span := c.startSpan(req)
	start := time.Now()

	b, resp, err := c.do(req)

	c.metrics.observe(req.Method, err, time.Since(start))
	endSpan(span, resp, err)

	return b, resp, err
}

func (c *Client) do(req *http.Request) ([]byte, *Response, error) {
	resp, err := c.c.Do(req)
	if err != nil {
		return nil, nil, MapError(err)
	}

	defer func() {
		if _, err := io.Copy(io.Discard, resp.Body); err != nil {
			c.logger.Error("failed to discard unused body", "error", err)
		}
		if err := resp.Body.Close(); err != nil {
			c.logger.Error("failed to close response body", "error", err)
		}
	}()

	if resp.StatusCode > 299 {
		return nil, nil, serverError(resp.StatusCode)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, MapError(fmt.Errorf("reading body: %w", err))
	}

	return b, newResponse(resp), nil
}
