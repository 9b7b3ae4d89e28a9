// Package hermes exposes the client constructor.
package hermes

import (
	"github.com/adamwoolhether/hermes/client"
)

// NewClient instantiates a new *client.Client targeting scheme and host
// with the provided options.
// If not specified, a fresh http.Client over http.DefaultTransport is used.
func NewClient(scheme client.Scheme, host string, opts ...client.Option) (*client.Client, error) {
	return client.New(scheme, host, opts...)
}
