// Package fixtures embeds the initial master records loaded into an empty
// store.
package fixtures

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"fpadmin/internal/core"
)

//go:embed seed.yaml
var seedYAML []byte

// Seed decodes the embedded dataset. Network center counts are left at zero;
// the store derives them from the centers.
func Seed() (core.Dataset, error) {
	var ds core.Dataset
	if err := yaml.Unmarshal(seedYAML, &ds); err != nil {
		return core.Dataset{}, fmt.Errorf("decode seed: %w", err)
	}
	return ds, nil
}
