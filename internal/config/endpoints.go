package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/hamed0406/archivemon/internal/domain"
)

// LoadEndpoints reads a JSON endpoint list. Entries without an expected
// status range default to 200-399, the range the monitor treats as
// accessible. Validation of names and URLs is the registry's job.
func LoadEndpoints(path string) ([]domain.Endpoint, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read endpoints file: %w", err)
	}
	var eps []domain.Endpoint
	if err := json.Unmarshal(b, &eps); err != nil {
		return nil, fmt.Errorf("parse endpoints file %s: %w", path, err)
	}
	for i := range eps {
		if eps[i].ExpectedMin == 0 && eps[i].ExpectedMax == 0 {
			eps[i].ExpectedMin = 200
			eps[i].ExpectedMax = 399
		}
	}
	return eps, nil
}
