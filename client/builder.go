package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

const (
	// HeaderFilename carries the name of an uploaded file.
	HeaderFilename = "X-Filename"
	// HeaderRequestID carries the per request id set by [WithRequestID].
	HeaderRequestID = "X-Request-ID"
	// HeaderAPIKey carries the key set by [WithAPIKey].
	HeaderAPIKey = "api-key"
)

// buildURL assembles the target URL from the client's scheme and host and
// the endpoint. The query is attached only when withQuery is set.
func buildURL(scheme Scheme, host string, ep Endpoint, withQuery bool) (*url.URL, error) {
	parts := SplitHostName(host)

	hostname := parts[0]
	if hostname == "" {
		return nil, invalidURL()
	}

	if len(parts) == 2 {
		port, err := strconv.Atoi(parts[1])
		if err != nil || port < 0 || port > 65535 {
			return nil, invalidURL()
		}
		hostname = fmt.Sprintf("%s:%d", hostname, port)
	}

	if ep.path != "" && !strings.HasPrefix(ep.path, "/") {
		return nil, invalidURL()
	}

	u := url.URL{
		Scheme: scheme.String(),
		Host:   hostname,
		Path:   ep.path,
	}
	if withQuery {
		u.RawQuery = encodeQuery(ep.query)
	}

	// Re-parsing rejects host characters url.URL happily escapes.
	parsed, err := url.Parse(u.String())
	if err != nil || parsed.Hostname() == "" {
		return nil, invalidURL()
	}

	return parsed, nil
}

// encodeQuery renders params as name=value pairs in the given order.
// url.Values is avoided since its Encode sorts by key.
func encodeQuery(params []QueryParam) string {
	var b strings.Builder
	for i, p := range params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(escapeQuery(p.Name))
		b.WriteByte('=')
		b.WriteString(escapeQuery(p.Value))
	}
	return b.String()
}

// escapeQuery percent-encodes s. Spaces become %20, not the form
// encoding's "+"; a literal "+" is already escaped to %2B.
func escapeQuery(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// buildRequest creates the outbound request of a [Client.Request] call.
func (c *Client) buildRequest(ctx context.Context, method Method, ep Endpoint, body []byte, headers map[string]string) (*http.Request, error) {
	u, err := buildURL(c.scheme, c.host, ep, true)
	if err != nil {
		return nil, err
	}

	var payload io.Reader
	if method.AttachesBody() && len(body) > 0 {
		payload = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method.String(), u.String(), payload)
	if err != nil {
		return nil, MapError(fmt.Errorf("instantiating request: %w", err))
	}

	c.setDefaults(req.Header, true)
	setHeaders(req.Header, headers)

	c.logRequest(req)

	return req, nil
}

// buildUpload creates the outbound POST request of a [Client.Upload] call.
// The endpoint query is not attached.
func (c *Client) buildUpload(ctx context.Context, ep Endpoint, fileName string, fileType FileType, data []byte, headers map[string]string) (*http.Request, error) {
	u, err := buildURL(c.scheme, c.host, ep, false)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(data))
	if err != nil {
		return nil, MapError(fmt.Errorf("instantiating upload: %w", err))
	}

	c.setDefaults(req.Header, false)
	req.Header.Set(HeaderFilename, uploadName(fileName, fileType))
	req.Header.Set("Content-Type", fileType.ContentType())
	setHeaders(req.Header, headers)

	c.logRequest(req)

	return req, nil
}

// setDefaults applies the default, auth and request id headers.
func (c *Client) setDefaults(h http.Header, withContentType bool) {
	h.Set("User-Agent", c.headers.UserAgent)
	if withContentType {
		h.Set("Content-Type", c.headers.ContentType)
	}
	h.Set("Accept", c.headers.Accept)
	h.Set("Connection", c.headers.Connection)

	if c.apiKey != "" {
		h.Set(HeaderAPIKey, c.apiKey)
	}
	if c.token != "" {
		h.Set("Authorization", c.token)
	}
	if c.requestID {
		h.Set(HeaderRequestID, uuid.NewString())
	}
}

// setHeaders applies caller headers last, so they win over every default.
// Keys are canonicalized, making the override case insensitive.
func setHeaders(h http.Header, headers map[string]string) {
	for k, v := range headers {
		h.Set(k, v)
	}
}

// uploadName appends the extension of fileType to fileName
// unless fileName already carries it.
func uploadName(fileName string, fileType FileType) string {
	ext := fileType.Extension()
	if ext == "" || strings.HasSuffix(strings.ToLower(fileName), ext) {
		return fileName
	}
	return fileName + ext
}

func (c *Client) logRequest(req *http.Request) {
	c.logger.Info(fmt.Sprintf("Making a %s request to %s", req.Method, req.URL))
}
