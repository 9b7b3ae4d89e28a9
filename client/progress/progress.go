// Package progress reports how much of an upload body has been sent.
package progress

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"code.cloudfoundry.org/bytefmt"
)

// Event is a snapshot of an upload's progress.
// Total is negative when the body length is unknown.
type Event struct {
	Sent  int64
	Total int64
}

// Fraction returns Sent/Total in [0, 1], or 0 when Total is unknown.
func (e Event) Fraction() float64 {
	if e.Total <= 0 {
		return 0
	}
	f := float64(e.Sent) / float64(e.Total)
	return min(f, 1)
}

// Listener receives an Event after every read of the body. Listeners run
// on the goroutine the transport uses to write the body.
type Listener func(Event)

// Reader is an io.ReadCloser that counts the bytes read from an upload
// body, publishes them to its listeners and logs progress at most once
// per second.
//
// The transport may keep reading the body after the response has been
// returned. Stop ends publishing so no listener runs past that point.
type Reader struct {
	mu        sync.Mutex
	stopped   bool
	rc        io.ReadCloser
	logger    *slog.Logger
	listeners []Listener
	sent      int64
	total     int64
	startTime time.Time
	lastLog   time.Time
}

// NewReader wraps rc, an upload body of total bytes. A nil logger disables
// the progress logs.
func NewReader(rc io.ReadCloser, total int64, logger *slog.Logger, listeners ...Listener) *Reader {
	return &Reader{
		rc:        rc,
		logger:    logger,
		listeners: listeners,
		total:     total,
		startTime: time.Now(),
	}
}

func (pr *Reader) Read(p []byte) (int, error) {
	n, err := pr.rc.Read(p)
	if n <= 0 {
		return n, err
	}

	pr.mu.Lock()
	defer pr.mu.Unlock()

	pr.sent += int64(n)
	if pr.stopped {
		return n, err
	}

	ev := Event{Sent: pr.sent, Total: pr.total}
	for _, fn := range pr.listeners {
		fn(ev)
	}

	if time.Since(pr.lastLog) >= time.Second {
		pr.lastLog = time.Now()
		pr.log("uploading")
	}

	if pr.total >= 0 && pr.sent == pr.total {
		pr.log("upload complete")
	}

	return n, err
}

func (pr *Reader) Close() error {
	return pr.rc.Close()
}

// Stop ends publishing. Once it returns no listener is called and nothing
// is logged, even if the body is still being read. Stop is idempotent.
func (pr *Reader) Stop() {
	pr.mu.Lock()
	pr.stopped = true
	pr.mu.Unlock()
}

// Sent returns the number of bytes read so far.
func (pr *Reader) Sent() int64 {
	pr.mu.Lock()
	defer pr.mu.Unlock()
	return pr.sent
}

func (pr *Reader) log(msg string) {
	if pr.logger == nil {
		return
	}

	elapsed := time.Since(pr.startTime)

	var rate uint64
	if secs := elapsed.Seconds(); secs > 0 {
		rate = uint64(float64(pr.sent) / secs)
	}

	attrs := []any{
		"progress", fmt.Sprintf("%.1f%%", Event{Sent: pr.sent, Total: pr.total}.Fraction()*100),
		"elapsed", elapsed.Round(time.Millisecond),
		"sent", bytefmt.ByteSize(uint64(pr.sent)),
		"rate", bytefmt.ByteSize(rate) + "/s",
	}
	if pr.total >= 0 {
		attrs = append(attrs, "total", bytefmt.ByteSize(uint64(pr.total)))
	}

	pr.logger.Info(msg, attrs...)
}
