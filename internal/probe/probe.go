package probe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"
)

// maxDrain bounds how much of a response body is read before the connection
// is handed back to the pool.
const maxDrain = 1 << 20

// Outcome is the result of one probe.
type Outcome struct {
	Failed      bool
	Description string
	StatusCode  int
	StartedAt   time.Time
	Elapsed     time.Duration
}

// Prober sends GET requests to a single target through a reused client.
type Prober struct {
	client *http.Client
	target *url.URL
}

// New builds a prober whose requests, including reading the response body,
// abort once timeout elapses.
func New(target *url.URL, timeout time.Duration) (*Prober, error) {
	if target == nil {
		return nil, errors.New("probe: target url required")
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("probe: timeout must be > 0, got %s", timeout)
	}

	base, ok := http.DefaultTransport.(*http.Transport)
	if !ok {
		return nil, errors.New("probe: default transport is not an *http.Transport")
	}

	return &Prober{
		client: &http.Client{
			Transport: base.Clone(),
			Timeout:   timeout,
		},
		target: target,
	}, nil
}

// Target returns the URL being probed.
func (p *Prober) Target() *url.URL {
	return p.target
}

// Probe performs exactly one attempt. It never returns an error; every
// failure is reported through the Outcome.
func (p *Prober) Probe(ctx context.Context) (out Outcome) {
	out.StartedAt = time.Now()
	defer func() {
		out.Elapsed = time.Since(out.StartedAt)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.target.String(), nil)
	if err != nil {
		out.Failed = true
		out.Description = err.Error()
		return out
	}

	res, err := p.client.Do(req)
	if err != nil {
		out.Failed = true
		out.Description = err.Error()
		return out
	}
	defer res.Body.Close()

	// The timeout covers the full response, so a body that stalls past it
	// fails the probe even though a status line already arrived. Other read
	// errors leave the status classification alone.
	if _, err := io.Copy(io.Discard, io.LimitReader(res.Body, maxDrain)); err != nil && isTimeout(err) {
		out.Failed = true
		out.Description = err.Error()
		return out
	}

	out.StatusCode = res.StatusCode
	out.Description = StatusDescription(res.StatusCode)
	out.Failed = res.StatusCode >= http.StatusBadRequest
	return out
}

func isTimeout(err error) bool {
	return os.IsTimeout(err) || errors.Is(err, context.DeadlineExceeded)
}

// StatusDescription renders a status code as "<code> <reason>", e.g.
// "503 Service Unavailable".
func StatusDescription(code int) string {
	text := http.StatusText(code)
	if text == "" {
		return fmt.Sprintf("%d", code)
	}
	return fmt.Sprintf("%d %s", code, text)
}
