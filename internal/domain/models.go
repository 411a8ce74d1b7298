package domain

import "time"

// Status is the last-known state of an endpoint, derived from its most
// recent observation.
type Status string

const (
	StatusUp      Status = "up"
	StatusDown    Status = "down"
	StatusUnknown Status = "unknown"
)

// ErrorKind classifies why a probe did not count as a success.
type ErrorKind string

const (
	ErrTimeout          ErrorKind = "timeout"
	ErrConnectionFailed ErrorKind = "connection_failed"
	ErrUnexpectedStatus ErrorKind = "unexpected_status"
	ErrUnknown          ErrorKind = "unknown"
)

// Endpoint is one monitored archive collection. Name is the identity and
// must be unique within a registry. The expected range is inclusive.
type Endpoint struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	ExpectedMin int    `json:"expected_min"`
	ExpectedMax int    `json:"expected_max"`
}

// Expects reports whether an HTTP status code falls in the accepted range.
func (e Endpoint) Expects(code int) bool {
	return code >= e.ExpectedMin && code <= e.ExpectedMax
}

// Observation is the immutable outcome of a single probe.
type Observation struct {
	EndpointName string    `json:"endpoint_name"`
	Success      bool      `json:"success"`
	HTTPStatus   *int      `json:"http_status"` // nil when no response was received
	LatencyMS    *float64  `json:"latency_ms"`  // nil when no response was received
	BodyBytes    *int64    `json:"body_bytes"`  // nil when no response was received
	ErrorKind    ErrorKind `json:"error_kind,omitempty"`
	CheckedAt    time.Time `json:"checked_at"`
}

// History is the append-only, timestamp-ordered observation sequence for
// one endpoint. A nil History means no probe has run yet.
type History []Observation

// Snapshot holds statistics derived from one endpoint's history. It is
// always recomputed, never stored.
type Snapshot struct {
	TotalChecks   int      `json:"total_checks"`
	SuccessCount  int      `json:"success_count"`
	UptimePercent float64  `json:"uptime_percent"`
	AvgLatencyMS  *float64 `json:"avg_latency_ms"` // nil until a successful probe exists
	LastStatus    Status   `json:"last_status"`
}

// ReportEntry pairs an endpoint with its current snapshot.
type ReportEntry struct {
	Endpoint Endpoint `json:"endpoint"`
	Stats    Snapshot `json:"stats"`
}

// Report is a point-in-time summary over every registered endpoint, in
// registry order.
type Report struct {
	GeneratedAt  time.Time     `json:"generated_at"`
	Entries      []ReportEntry `json:"entries"`
	UpCount      int           `json:"up_count"`
	DownCount    int           `json:"down_count"`
	UnknownCount int           `json:"unknown_count"`
}
