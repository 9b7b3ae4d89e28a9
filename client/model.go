package client

import (
	"net/http"
	"slices"
	"strconv"
)

// Scheme is the URL scheme a [Client] targets.
type Scheme int

const (
	HTTP Scheme = iota
	HTTPS
)

func (s Scheme) String() string {
	switch s {
	case HTTP:
		return "http"
	default:
		return "https"
	}
}

// Method is an HTTP request method.
type Method int

const (
	GET Method = iota
	HEAD
	POST
	PUT
	DELETE
	CONNECT
	OPTIONS
	TRACE
	PATCH
)

var methods = [...]string{
	GET:     http.MethodGet,
	HEAD:    http.MethodHead,
	POST:    http.MethodPost,
	PUT:     http.MethodPut,
	DELETE:  http.MethodDelete,
	CONNECT: http.MethodConnect,
	OPTIONS: http.MethodOptions,
	TRACE:   http.MethodTrace,
	PATCH:   http.MethodPatch,
}

// String renders the HTTP verb. Values outside the declared set render as
// "Method(n)", which http.NewRequest rejects as an invalid method.
func (m Method) String() string {
	if m < 0 || int(m) >= len(methods) {
		return "Method(" + strconv.Itoa(int(m)) + ")"
	}
	return methods[m]
}

// AttachesBody reports whether a request body is sent for m.
// Only POST and PUT carry one; every other method drops it.
func (m Method) AttachesBody() bool {
	return m == POST || m == PUT
}

// QueryParam is a single name=value pair of an [Endpoint] query.
type QueryParam struct {
	Name  string
	Value string
}

// Endpoint describes the path and query of a request target.
// Scheme, host and port always come from the [Client].
// The zero value targets the root path with no query.
type Endpoint struct {
	path  string
	query []QueryParam
}

// NewEndpoint returns an Endpoint for path with the given query parameters.
// Parameter order is preserved when the URL is assembled.
func NewEndpoint(path string, params ...QueryParam) Endpoint {
	return Endpoint{
		path:  path,
		query: slices.Clone(params),
	}
}

// Path returns the endpoint path.
func (e Endpoint) Path() string { return e.path }

// Query returns a copy of the endpoint query parameters.
func (e Endpoint) Query() []QueryParam { return slices.Clone(e.query) }

// WithQuery returns a new Endpoint with params appended to e's query.
func (e Endpoint) WithQuery(params ...QueryParam) Endpoint {
	return Endpoint{
		path:  e.path,
		query: slices.Concat(e.query, params),
	}
}

// Response holds the metadata of a completed request.
type Response struct {
	StatusCode    int
	Status        string
	ContentLength int64
	// Header keys are canonical; the first value wins for repeated keys.
	Header map[string]string
}

// Get returns the value of the response header key.
func (r *Response) Get(key string) string {
	if r == nil {
		return ""
	}
	return r.Header[http.CanonicalHeaderKey(key)]
}

func newResponse(resp *http.Response) *Response {
	header := make(map[string]string, len(resp.Header))
	for k, v := range resp.Header {
		if len(v) > 0 {
			header[http.CanonicalHeaderKey(k)] = v[0]
		}
	}

	return &Response{
		StatusCode:    resp.StatusCode,
		Status:        resp.Status,
		ContentLength: resp.ContentLength,
		Header:        header,
	}
}

// DefaultHeaders are set on every outgoing request before
// authentication and caller supplied headers.
type DefaultHeaders struct {
	UserAgent   string `json:"userAgent" validate:"required"`
	ContentType string `json:"contentType" validate:"required"`
	Accept      string `json:"accept" validate:"required"`
	Connection  string `json:"connection" validate:"required,oneof=close keep-alive"`
}

func defaultHeaders() DefaultHeaders {
	return DefaultHeaders{
		UserAgent:   "hermes-go",
		ContentType: "application/json",
		Accept:      "application/json",
		Connection:  "close",
	}
}
