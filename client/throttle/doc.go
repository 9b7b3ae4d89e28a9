// Package throttle provides an [http.RoundTripper] that rate-limits
// the requests of a hermes client using a token bucket from
// [golang.org/x/time/rate].
//
// Most callers enable it through client.WithThrottle. To wrap a
// transport directly:
//
//	rt, err := throttle.NewRoundTripper(
//		throttle.Config{RPS: 10, Burst: 5},
//		func() *slog.Logger { return slog.Default() },
//		http.DefaultTransport,
//	)
//	httpClient := &http.Client{Transport: rt}
//
// When the bucket is empty a request blocks until a token is available
// or its context ends.
package throttle
