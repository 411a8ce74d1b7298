package registry

import (
	"strings"
	"testing"

	"go.uber.org/multierr"

	"github.com/hamed0406/archivemon/internal/domain"
)

func TestNew_PreservesOrder(t *testing.T) {
	eps := []domain.Endpoint{
		{Name: "b", URL: "https://b.example.com", ExpectedMin: 200, ExpectedMax: 299},
		{Name: "a", URL: "https://a.example.com", ExpectedMin: 200, ExpectedMax: 299},
		{Name: "c", URL: "https://c.example.com", ExpectedMin: 200, ExpectedMax: 399},
	}
	r, err := New(eps)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got := r.Endpoints()
	if len(got) != 3 {
		t.Fatalf("want 3 endpoints, got %d", len(got))
	}
	for i := range eps {
		if got[i].Name != eps[i].Name {
			t.Fatalf("order not preserved at %d: want %q got %q", i, eps[i].Name, got[i].Name)
		}
	}
}

func TestNew_ReportsAllProblemsAtOnce(t *testing.T) {
	eps := []domain.Endpoint{
		{Name: "ok", URL: "https://ok.example.com", ExpectedMin: 200, ExpectedMax: 299},
		{Name: "bad-url", URL: "ftp://nope", ExpectedMin: 200, ExpectedMax: 299},
		{Name: "ok", URL: "https://dup.example.com", ExpectedMin: 200, ExpectedMax: 299},
		{Name: "bad-range", URL: "https://r.example.com", ExpectedMin: 500, ExpectedMax: 200},
	}
	_, err := New(eps)
	if err == nil {
		t.Fatalf("want validation error")
	}
	if n := len(multierr.Errors(err)); n != 3 {
		t.Fatalf("want 3 aggregated errors, got %d: %v", n, err)
	}
	msg := err.Error()
	for _, frag := range []string{"unusable url", "duplicate name", "bad expected status range"} {
		if !strings.Contains(msg, frag) {
			t.Fatalf("error %q missing %q", msg, frag)
		}
	}
}

func TestEndpoints_ReturnsCopy(t *testing.T) {
	r, err := New([]domain.Endpoint{
		{Name: "a", URL: "https://a.example.com", ExpectedMin: 200, ExpectedMax: 299},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got := r.Endpoints()
	got[0].Name = "mutated"
	if r.Endpoints()[0].Name != "a" {
		t.Fatalf("registry mutated through Endpoints() result")
	}
}

func TestDefault_IsValid(t *testing.T) {
	r := Default()
	if r.Len() == 0 {
		t.Fatalf("default registry is empty")
	}
	// Default() panics on an invalid list; re-validating the entries keeps
	// that guarantee honest.
	if _, err := New(r.Endpoints()); err != nil {
		t.Fatalf("default registry does not validate: %v", err)
	}
}
