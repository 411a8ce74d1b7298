package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/archivemon/internal/domain"
	"github.com/hamed0406/archivemon/internal/registry"
	"github.com/hamed0406/archivemon/internal/repo/memory"
	"github.com/hamed0406/archivemon/internal/scheduler"
)

// ---- test helpers ----

type fakeProber struct {
	down map[string]bool
}

func (f *fakeProber) Probe(_ context.Context, ep domain.Endpoint) domain.Observation {
	obs := domain.Observation{EndpointName: ep.Name, CheckedAt: time.Now().UTC()}
	if f.down[ep.Name] {
		obs.ErrorKind = domain.ErrConnectionFailed
		return obs
	}
	status := 200
	lat := 12.5
	obs.Success = true
	obs.HTTPStatus = &status
	obs.LatencyMS = &lat
	return obs
}

func setupServer(t *testing.T, prober *fakeProber, adminKeys []string) *httptest.Server {
	t.Helper()
	reg, err := registry.New([]domain.Endpoint{
		{Name: "LOC", URL: "https://loc.gov", ExpectedMin: 200, ExpectedMax: 299},
		{Name: "Europeana", URL: "https://www.europeana.eu", ExpectedMin: 200, ExpectedMax: 399},
	})
	if err != nil {
		t.Fatalf("registry.New: %v", err)
	}
	store := memory.New()
	runner := scheduler.NewRunner(zap.NewNop(), reg, store, prober, time.Second, 2)
	srv := NewServer(zap.NewNop(), reg, store, runner)

	ts := httptest.NewServer(srv.Router(adminKeys))
	t.Cleanup(ts.Close)
	return ts
}

func getReport(t *testing.T, base string) domain.Report {
	t.Helper()
	resp, err := http.Get(base + "/api/status")
	if err != nil {
		t.Fatalf("GET /api/status: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: want 200, got %d", resp.StatusCode)
	}
	var rep domain.Report
	if err := json.NewDecoder(resp.Body).Decode(&rep); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	return rep
}

// ---- tests ----

func TestStatus_BeforeAnyCheck(t *testing.T) {
	ts := setupServer(t, &fakeProber{}, nil)

	rep := getReport(t, ts.URL)
	if len(rep.Entries) != 2 {
		t.Fatalf("want 2 entries, got %d", len(rep.Entries))
	}
	for _, e := range rep.Entries {
		if e.Stats.TotalChecks != 0 || e.Stats.LastStatus != domain.StatusUnknown {
			t.Fatalf("unexpected entry before any check: %+v", e.Stats)
		}
	}
	if rep.UnknownCount != 2 {
		t.Fatalf("want 2 unknown, got %d", rep.UnknownCount)
	}
}

func TestCheckThenStatus(t *testing.T) {
	ts := setupServer(t, &fakeProber{down: map[string]bool{"Europeana": true}}, nil)

	resp, err := http.Post(ts.URL+"/api/check", "application/json", nil)
	if err != nil {
		t.Fatalf("POST /api/check: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("check: want 200, got %d", resp.StatusCode)
	}
	var sum scheduler.CycleSummary
	if err := json.NewDecoder(resp.Body).Decode(&sum); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if sum.Checked != 2 || sum.Succeeded != 1 {
		t.Fatalf("unexpected summary: %+v", sum)
	}

	rep := getReport(t, ts.URL)
	if rep.Entries[0].Endpoint.Name != "LOC" {
		t.Fatalf("registry order not preserved: %+v", rep.Entries)
	}
	if rep.Entries[0].Stats.LastStatus != domain.StatusUp ||
		rep.Entries[1].Stats.LastStatus != domain.StatusDown {
		t.Fatalf("unexpected statuses: %+v", rep.Entries)
	}
	if rep.Entries[0].Stats.UptimePercent != 100.0 {
		t.Fatalf("want 100.0 uptime, got %v", rep.Entries[0].Stats.UptimePercent)
	}
	if rep.UpCount != 1 || rep.DownCount != 1 {
		t.Fatalf("unexpected tallies: %+v", rep)
	}
}

func TestCheck_RequiresAdminKey(t *testing.T) {
	ts := setupServer(t, &fakeProber{}, []string{"adm_test"})

	resp, err := http.Post(ts.URL+"/api/check", "application/json", nil)
	if err != nil {
		t.Fatalf("POST without key: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("want 403 without key, got %d", resp.StatusCode)
	}

	req, _ := http.NewRequest(http.MethodPost, ts.URL+"/api/check", nil)
	req.Header.Set("X-API-Key", "adm_test")
	resp2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("POST with key: %v", err)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusOK {
		t.Fatalf("want 200 with key, got %d", resp2.StatusCode)
	}

	// status stays public
	resp3, err := http.Get(ts.URL + "/api/status")
	if err != nil {
		t.Fatalf("GET /api/status: %v", err)
	}
	resp3.Body.Close()
	if resp3.StatusCode != http.StatusOK {
		t.Fatalf("status should not require a key, got %d", resp3.StatusCode)
	}
}

func TestMetrics_Exposition(t *testing.T) {
	ts := setupServer(t, &fakeProber{}, nil)

	chk, err := http.Post(ts.URL+"/api/check", "application/json", nil)
	if err != nil {
		t.Fatalf("POST /api/check: %v", err)
	}
	chk.Body.Close()

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Fatalf("want text/plain exposition, got %q", ct)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	text := string(body)
	for _, frag := range []string{
		"archivemon_endpoints_total 2",
		"archivemon_endpoints_up 2",
		`archivemon_endpoint_up{endpoint="LOC"`,
		"archivemon_endpoint_uptime_percent",
	} {
		if !strings.Contains(text, frag) {
			t.Fatalf("metrics output missing %q:\n%s", frag, text)
		}
	}
}
