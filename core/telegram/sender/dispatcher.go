// Package sender runs outbound Bot API calls on a worker queue with retries
// for transient network failures.
package sender

import (
	"context"
	"crypto/tls"
	"errors"
	"log/slog"
	"net"
	"regexp"
	"sync"
	"sync/atomic"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/photobot/core/logger"
	"github.com/m3rciful/photobot/core/telegram/netutil"
)

const component = "tg.sender"

var (
	// ErrQueueClosed is returned after Close.
	ErrQueueClosed = errors.New("telegram sender: queue closed")
	// ErrQueueFull is returned when the job was not accepted.
	ErrQueueFull = errors.New("telegram sender: queue full")

	tokenRe = regexp.MustCompile(`bot[0-9]+:[A-Za-z0-9_-]+`)
)

// Options controls the dispatcher. Zero values pick defaults; a single
// worker keeps replies in submission order.
type Options struct {
	QueueSize    int
	Workers      int
	MaxRetries   int
	RetryBackoff time.Duration
	// MaxDuration bounds the time spent on one job including retries.
	MaxDuration time.Duration
}

func (o Options) withDefaults() Options {
	if o.QueueSize <= 0 {
		o.QueueSize = 64
	}
	if o.Workers <= 0 {
		o.Workers = 1
	}
	if o.MaxRetries < 0 {
		o.MaxRetries = 0
	}
	if o.RetryBackoff <= 0 {
		o.RetryBackoff = 2 * time.Second
	}
	if o.MaxDuration <= 0 {
		o.MaxDuration = 12 * time.Second
	}
	return o
}

type job struct {
	ctx      context.Context
	action   string
	endpoint string
	run      func() error
	done     chan error
}

// Dispatcher executes outbound calls on its workers.
type Dispatcher struct {
	opts Options
	jobs chan job

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
	errs   atomic.Uint64
}

// NewDispatcher starts the workers.
func NewDispatcher(opts Options) *Dispatcher {
	opts = opts.withDefaults()
	d := &Dispatcher{opts: opts, jobs: make(chan job, opts.QueueSize)}
	d.wg.Add(opts.Workers)
	for range opts.Workers {
		go d.worker()
	}
	return d
}

// Enqueue schedules run without waiting for it. run must be safe to repeat
// when retries are enabled.
func (d *Dispatcher) Enqueue(ctx context.Context, action, endpoint string, run func() error) error {
	return d.submit(job{ctx: ctx, action: action, endpoint: endpoint, run: run})
}

// Do schedules run and waits for its final result.
func (d *Dispatcher) Do(ctx context.Context, action, endpoint string, run func() error) error {
	done := make(chan error, 1)
	if err := d.submit(job{ctx: ctx, action: action, endpoint: endpoint, run: run, done: done}); err != nil {
		return err
	}
	return <-done
}

func (d *Dispatcher) submit(j job) error {
	if j.run == nil {
		return errors.New("telegram sender: nil run function")
	}
	if j.ctx == nil {
		j.ctx = context.Background()
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrQueueClosed
	}
	select {
	case d.jobs <- j:
		return nil
	default:
		return ErrQueueFull
	}
}

// ErrorCount returns the number of jobs that failed for good.
func (d *Dispatcher) ErrorCount() uint64 {
	if d == nil {
		return 0
	}
	return d.errs.Load()
}

// Close rejects new jobs and waits for queued ones to finish.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.jobs)
	d.mu.Unlock()
	d.wg.Wait()
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for j := range d.jobs {
		err := d.execute(j)
		if j.done != nil {
			j.done <- err
		}
	}
}

func (d *Dispatcher) execute(j job) error {
	ctx, cancel := context.WithTimeout(j.ctx, d.opts.MaxDuration)
	defer cancel()

	start := time.Now()
	attempts := d.opts.MaxRetries + 1
	var err error
retry:
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = j.run(); err == nil {
			logger.Debug(j.ctx, component, "send.success",
				append(jobAttrs(j), slog.Int("attempts", attempt), slog.Duration("duration", logger.Took(start)))...)
			return nil
		}
		if !netutil.ShouldRetry(err) || attempt == attempts {
			break
		}
		delay := d.opts.RetryBackoff * time.Duration(attempt)
		logger.Debug(j.ctx, component, "send.retry",
			append(jobAttrs(j),
				slog.String("status", "retry"),
				slog.Int("attempts", attempt),
				slog.Duration("backoff", delay),
			)...)
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			err = errors.Join(err, ctx.Err())
			break retry
		case <-timer.C:
		}
	}

	d.errs.Add(1)
	logger.Error(j.ctx, component, "send.fail",
		append(jobAttrs(j),
			slog.String("status", "fail"),
			slog.String("err", RedactToken(err.Error())),
			slog.String("err_code", classifyError(err)),
			slog.Duration("duration", logger.Took(start)),
		)...)
	return err
}

func jobAttrs(j job) []slog.Attr {
	attrs := []slog.Attr{slog.String("op", j.action)}
	if j.endpoint != "" {
		attrs = append(attrs, slog.String("endpoint", j.endpoint))
	}
	return attrs
}

// RedactToken masks bot tokens that net/http embeds in request URLs.
func RedactToken(msg string) string {
	return tokenRe.ReplaceAllString(msg, "bot<redacted>")
}

func classifyError(err error) string {
	var (
		apiErr   *tele.Error
		floodErr tele.FloodError
		dnsErr   *net.DNSError
		opErr    *net.OpError
		netErr   net.Error
		alertErr tls.AlertError
	)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.As(err, &floodErr):
		return "http_429"
	case errors.As(err, &apiErr):
		if apiErr.Code >= 500 {
			return "http_5xx"
		}
		return "http_4xx"
	case errors.As(err, &dnsErr):
		if dnsErr.IsTimeout {
			return "timeout"
		}
		return "dns"
	case errors.As(err, &netErr) && netErr.Timeout():
		return "timeout"
	case errors.As(err, &opErr) && opErr.Op == "dial":
		return "dial"
	case errors.As(err, &alertErr):
		return "tls"
	}
	return "unknown"
}
