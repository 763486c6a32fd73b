package impute

import (
	"encoding/json"
	"fmt"
	"os"
)

// MeansTable maps numeric column names to their fit-time means. It is the
// one piece of state handed from a fit run to an apply run, so it has to
// outlive the process that computed it; SaveFile and LoadFile move it
// through a JSON artifact. It is never mutated after Fit returns.
type MeansTable map[string]float64

func (m MeansTable) SaveFile(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding means table: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing means table: %w", err)
	}
	return nil
}

func LoadFile(path string) (MeansTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading means table: %w", err)
	}
	var m MeansTable
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding means table %s: %w", path, err)
	}
	return m, nil
}
