package httpapi

import (
	"bufio"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/hamed0406/archivemon/internal/domain"
	"github.com/hamed0406/archivemon/internal/report"
)

// handleMetrics serves a Prometheus-style text exposition of the current
// report: per-endpoint up/uptime/latency gauges plus aggregate tallies.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	rep, err := report.Generate(r.Context(), s.Registry, s.Store)
	if err != nil {
		s.Logger.Warn("metrics_error", zap.Error(err))
		http.Error(w, "metrics error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	bw := bufio.NewWriter(w)
	defer bw.Flush()

	fmt.Fprintf(bw, "archivemon_endpoints_total %d\n", len(rep.Entries))
	fmt.Fprintf(bw, "archivemon_endpoints_up %d\n", rep.UpCount)
	fmt.Fprintf(bw, "archivemon_endpoints_down %d\n", rep.DownCount)
	fmt.Fprintf(bw, "archivemon_endpoints_unknown %d\n", rep.UnknownCount)

	for _, e := range rep.Entries {
		labels := fmt.Sprintf("endpoint=%q,url=%q", escapeLabel(e.Endpoint.Name), escapeLabel(e.Endpoint.URL))
		up := 0
		if e.Stats.LastStatus == domain.StatusUp {
			up = 1
		}
		fmt.Fprintf(bw, "archivemon_endpoint_up{%s} %d\n", labels, up)
		fmt.Fprintf(bw, "archivemon_endpoint_checks_total{%s} %d\n", labels, e.Stats.TotalChecks)
		fmt.Fprintf(bw, "archivemon_endpoint_uptime_percent{%s} %.1f\n", labels, e.Stats.UptimePercent)
		if e.Stats.AvgLatencyMS != nil {
			fmt.Fprintf(bw, "archivemon_endpoint_latency_ms_avg{%s} %.3f\n", labels, *e.Stats.AvgLatencyMS)
		}
	}
}

func escapeLabel(value string) string {
	value = strings.ReplaceAll(value, "\\", "\\\\")
	value = strings.ReplaceAll(value, "\"", "\\\"")
	return value
}
