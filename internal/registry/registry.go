package registry

import (
	"fmt"
	"net/url"

	"go.uber.org/multierr"

	"github.com/hamed0406/archivemon/internal/domain"
)

// Registry is the immutable, ordered set of monitored endpoints. It is
// built once at startup; construction is the only place configuration
// problems are fatal, so every endpoint is validated and all problems are
// reported together.
type Registry struct {
	endpoints []domain.Endpoint
}

// New validates the given endpoints and builds a registry preserving their
// order. The returned error aggregates every validation failure.
func New(endpoints []domain.Endpoint) (*Registry, error) {
	var errs error
	seen := make(map[string]bool, len(endpoints))
	for i, e := range endpoints {
		switch {
		case e.Name == "":
			errs = multierr.Append(errs, fmt.Errorf("endpoint %d: empty name", i))
		case seen[e.Name]:
			errs = multierr.Append(errs, fmt.Errorf("endpoint %q: duplicate name", e.Name))
		default:
			seen[e.Name] = true
		}
		if u, err := url.Parse(e.URL); err != nil || u.Host == "" ||
			(u.Scheme != "http" && u.Scheme != "https") {
			errs = multierr.Append(errs, fmt.Errorf("endpoint %q: unusable url %q", e.Name, e.URL))
		}
		if e.ExpectedMin < 100 || e.ExpectedMax > 599 || e.ExpectedMin > e.ExpectedMax {
			errs = multierr.Append(errs, fmt.Errorf("endpoint %q: bad expected status range %d-%d",
				e.Name, e.ExpectedMin, e.ExpectedMax))
		}
	}
	if errs != nil {
		return nil, errs
	}
	cp := make([]domain.Endpoint, len(endpoints))
	copy(cp, endpoints)
	return &Registry{endpoints: cp}, nil
}

// Endpoints returns the registered endpoints in registration order. The
// slice is a copy; callers cannot mutate the registry through it.
func (r *Registry) Endpoints() []domain.Endpoint {
	out := make([]domain.Endpoint, len(r.endpoints))
	copy(out, r.endpoints)
	return out
}

// Len returns the number of registered endpoints.
func (r *Registry) Len() int { return len(r.endpoints) }

// accessibleRange is what the original monitor treats as "accessible":
// any 2xx or 3xx response.
const (
	accessibleMin = 200
	accessibleMax = 399
)

// Default returns the built-in registry of public digital archive
// collections.
func Default() *Registry {
	names := []struct{ name, url string }{
		{"Library of Congress Digital Collections", "https://www.loc.gov/collections/"},
		{"Digital Public Library of America", "https://dp.la/"},
		{"Internet Archive", "https://archive.org/"},
		{"HathiTrust Digital Library", "https://www.hathitrust.org/"},
		{"Europeana", "https://www.europeana.eu/"},
		{"World Digital Library", "https://www.wdl.org/"},
		{"National Archives Catalog", "https://catalog.archives.gov/"},
		{"Smithsonian Open Access", "https://www.si.edu/openaccess"},
		{"Getty Research Institute", "https://www.getty.edu/research/"},
		{"DPLA Pro", "https://pro.dp.la/"},
		{"Perseus Digital Library", "http://www.perseus.tufts.edu/"},
		{"Google Arts & Culture", "https://artsandculture.google.com/"},
		{"Metropolitan Museum API", "https://metmuseum.github.io/"},
		{"Biodiversity Heritage Library", "https://www.biodiversitylibrary.org/"},
		{"David Rumsey Map Collection", "https://www.davidrumsey.com/"},
	}
	eps := make([]domain.Endpoint, 0, len(names))
	for _, n := range names {
		eps = append(eps, domain.Endpoint{
			Name:        n.name,
			URL:         n.url,
			ExpectedMin: accessibleMin,
			ExpectedMax: accessibleMax,
		})
	}
	r, err := New(eps)
	if err != nil {
		// the built-in list is validated by tests; this cannot happen at runtime
		panic(err)
	}
	return r
}
