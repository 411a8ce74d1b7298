package probe

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/hamed0406/archivemon/internal/domain"
)

// userAgent identifies the monitor to the archives it probes.
const userAgent = "Archive-Monitor/1.0 (Research Tool)"

// Prober performs a single check of one endpoint. Implementations must
// never fail: every network condition becomes a populated Observation.
type Prober interface {
	Probe(ctx context.Context, ep domain.Endpoint) domain.Observation
}

// HTTPProber probes endpoints with a plain GET request.
type HTTPProber struct {
	Client *http.Client
}

func NewHTTPProber(timeout time.Duration) *HTTPProber {
	return &HTTPProber{
		Client: &http.Client{Timeout: timeout},
	}
}

// Probe issues one GET against ep.URL. The timer stops when response
// headers arrive (or on failure); reading the body is not part of the
// measured latency. Probe never returns an error: transport failures are
// classified into the observation's ErrorKind, and responses outside the
// endpoint's expected status range are recorded as failures that still
// carry their latency.
func (p *HTTPProber) Probe(ctx context.Context, ep domain.Endpoint) domain.Observation {
	obs := domain.Observation{
		EndpointName: ep.Name,
		CheckedAt:    time.Now().UTC(),
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ep.URL, nil)
	if err != nil {
		obs.ErrorKind = domain.ErrUnknown
		return obs
	}
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := p.Client.Do(req)
	latency := time.Since(start).Seconds() * 1000 // ms
	if err != nil {
		obs.ErrorKind = classify(err)
		return obs
	}
	defer resp.Body.Close()

	body, _ := io.Copy(io.Discard, resp.Body)

	status := resp.StatusCode
	obs.HTTPStatus = &status
	obs.LatencyMS = &latency
	obs.BodyBytes = &body
	if ep.Expects(status) {
		obs.Success = true
	} else {
		obs.ErrorKind = domain.ErrUnexpectedStatus
	}
	return obs
}

// classify maps a transport error to an ErrorKind. Timeouts are checked
// first: the client's own deadline surfaces as a *url.Error that also
// satisfies net.Error.
func classify(err error) domain.ErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.ErrTimeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return domain.ErrTimeout
	}
	var ue *url.Error
	if errors.As(err, &ue) {
		var de *net.DNSError
		if errors.As(ue.Err, &de) {
			return domain.ErrConnectionFailed
		}
		var oe *net.OpError
		if errors.As(ue.Err, &oe) {
			return domain.ErrConnectionFailed
		}
	}
	return domain.ErrUnknown
}
