package probe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"escaperoom/pkg/metrics"
	"escaperoom/pkg/serrors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultTimeout bounds a probe when Options.Timeout is zero.
const DefaultTimeout = 2 * time.Second

// maxDrain caps how much of a response body is read before closing it.
const maxDrain = 64 << 10

// Options configures a Client.
type Options struct {
	// Timeout bounds each probe, including redirects.
	Timeout time.Duration
	// Transport overrides the HTTP transport; nil uses a fresh default transport.
	Transport http.RoundTripper
	// Recorder receives probe durations; nil disables metrics.
	Recorder *metrics.Recorder
}

// Client probes services over HTTP. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	timeout    time.Duration
	recorder   *metrics.Recorder
	tracer     trace.Tracer
}

// Ensure Client conforms to the Prober interface at compile time.
var _ Prober = (*Client)(nil)

// New constructs a Client from opts.
func New(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	transport := opts.Transport
	if transport == nil {
		transport = http.DefaultTransport.(*http.Transport).Clone() //nolint: forcetypeassert
	}

	return &Client{
		httpClient: &http.Client{Transport: transport},
		timeout:    timeout,
		recorder:   opts.Recorder,
		tracer:     otel.Tracer("escaperoom/pkg/probe"),
	}
}

// Probe sends a GET to URL and classifies the answer. It never returns an
// error value: failures are described by the returned Result.
func (c *Client) Probe(ctx context.Context, URL string) Result {
	host := URL
	if u, err := url.Parse(URL); err == nil && u.Host != "" {
		host = u.Host
	}

	ctx, span := c.tracer.Start(ctx, "probe "+host,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("url.full", URL)))
	defer span.End()

	start := time.Now()
	res := c.do(ctx, URL)
	res.Duration = time.Since(start)

	span.SetAttributes(attribute.String("probe.outcome", string(res.Outcome)))
	if res.StatusCode != 0 {
		span.SetAttributes(attribute.Int("http.response.status_code", res.StatusCode))
	}
	if res.Err != nil {
		span.RecordError(res.Err)
		span.SetStatus(codes.Error, string(res.Outcome))
	}

	c.recorder.ProbeFinished(ctx, host, string(res.Outcome), res.Duration)

	return res
}

func (c *Client) do(ctx context.Context, URL string) Result {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, URL, nil)
	if err != nil {
		return Result{
			URL:     URL,
			Outcome: OutcomeInvalid,
			Err:     serrors.Wrap(serrors.ErrInvalid, err, "could not create request"),
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Classify(URL, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrain))
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		return Result{
			URL:        URL,
			Outcome:    OutcomeBadStatus,
			StatusCode: resp.StatusCode,
			Err:        serrors.With(serrors.ErrBadStatus, "GET %s: status %d", URL, resp.StatusCode),
		}
	}

	return Result{URL: URL, Outcome: OutcomeSuccess, StatusCode: resp.StatusCode}
}

// Classify turns a transport error into a failed Result.
func Classify(URL string, err error) Result {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		return Result{
			URL:     URL,
			Outcome: OutcomeTimeout,
			Err:     serrors.Wrap(serrors.ErrTimeout, err, "GET %s", URL),
		}
	case errors.Is(err, context.Canceled):
		return Result{
			URL:     URL,
			Outcome: OutcomeConnection,
			Err:     serrors.Wrap(serrors.ErrUnavailable, err, "GET %s: canceled", URL),
		}
	default:
		return Result{
			URL:     URL,
			Outcome: OutcomeConnection,
			Err:     serrors.Wrap(serrors.ErrUnavailable, err, "GET %s", URL),
		}
	}
}

// String renders r for logs and CLI output.
func (r Result) String() string {
	if r.StatusCode != 0 {
		return fmt.Sprintf("%s (%d) in %s", r.Outcome, r.StatusCode, r.Duration.Round(time.Millisecond))
	}

	return fmt.Sprintf("%s in %s", r.Outcome, r.Duration.Round(time.Millisecond))
}
