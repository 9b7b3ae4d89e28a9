package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
)

// ErrorKind identifies the variant of a [NetworkError].
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindServerError
	KindInvalidURL
	KindTimedOut
	KindCannotConnectToHost
	KindNotConnectedToInternet
)

var (
	ErrServerError            = errors.New("server error")
	ErrInvalidURL             = errors.New("invalid url")
	ErrTimedOut               = errors.New("request timed out")
	ErrCannotConnectToHost    = errors.New("cannot connect to host")
	ErrNotConnectedToInternet = errors.New("not connected to the internet")
	ErrUnknown                = errors.New("unexpected error")
)

var kindSentinels = map[ErrorKind]error{
	KindUnknown:                ErrUnknown,
	KindServerError:            ErrServerError,
	KindInvalidURL:             ErrInvalidURL,
	KindTimedOut:               ErrTimedOut,
	KindCannotConnectToHost:    ErrCannotConnectToHost,
	KindNotConnectedToInternet: ErrNotConnectedToInternet,
}

func (k ErrorKind) String() string {
	switch k {
	case KindServerError:
		return "server_error"
	case KindInvalidURL:
		return "invalid_url"
	case KindTimedOut:
		return "timed_out"
	case KindCannotConnectToHost:
		return "cannot_connect_to_host"
	case KindNotConnectedToInternet:
		return "not_connected_to_internet"
	default:
		return "unknown"
	}
}

// NetworkError is the only error type returned by [Client.Request] and
// [Client.Upload]. Use errors.Is against the Err* sentinels to branch on
// the kind, or inspect Kind directly.
//
// StatusCode is set only for KindServerError. Err is set only for
// KindCannotConnectToHost and KindUnknown.
type NetworkError struct {
	Kind       ErrorKind
	StatusCode int
	Err        error
}

func serverError(statusCode int) *NetworkError {
	return &NetworkError{Kind: KindServerError, StatusCode: statusCode}
}

func invalidURL() *NetworkError {
	return &NetworkError{Kind: KindInvalidURL}
}

func (e *NetworkError) Error() string {
	switch e.Kind {
	case KindServerError:
		return fmt.Sprintf("%v - %d", ErrServerError, e.StatusCode)
	case KindCannotConnectToHost, KindUnknown:
		if e.Err == nil {
			return kindSentinels[e.Kind].Error()
		}
		return fmt.Sprintf("%v - %v", kindSentinels[e.Kind], e.Err)
	default:
		return kindSentinels[e.Kind].Error()
	}
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of e's kind.
func (e *NetworkError) Is(target error) bool {
	return kindSentinels[e.Kind] == target
}

// MapError classifies err into a NetworkError. A NetworkError anywhere in
// err's chain is returned unchanged. It returns nil for a nil err.
func MapError(err error) *NetworkError {
	if err == nil {
		return nil
	}

	var nerr *NetworkError
	if errors.As(err, &nerr) {
		return nerr
	}

	switch {
	case errors.Is(err, syscall.ENETUNREACH), errors.Is(err, syscall.ENETDOWN):
		return &NetworkError{Kind: KindNotConnectedToInternet}

	case isTimeout(err):
		return &NetworkError{Kind: KindTimedOut}

	case cannotConnect(err):
		return &NetworkError{Kind: KindCannotConnectToHost, Err: err}
	}

	return &NetworkError{Kind: KindUnknown, Err: err}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func cannotConnect(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.EHOSTUNREACH) {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	var opErr *net.OpError
	return errors.As(err, &opErr) && opErr.Op == "dial"
}
