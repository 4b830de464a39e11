package catalog

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed seeds.yml
var embeddedSeeds []byte

type seedFile struct {
	Seeds []Seed `yaml:"seeds"`
}

// LoadSeeds reads the seed list from path, or from the embedded default
// when path is empty.
func LoadSeeds(path string) ([]Seed, error) {
	data := embeddedSeeds
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read seed file: %w", err)
		}
	}

	var file seedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse seed YAML: %w", err)
	}

	if err := validateSeeds(file.Seeds); err != nil {
		return nil, err
	}

	slog.Debug("Seed list loaded", "count", len(file.Seeds), "embedded", path == "")

	return file.Seeds, nil
}

func validateSeeds(seeds []Seed) error {
	if len(seeds) == 0 {
		return fmt.Errorf("seed list is empty")
	}

	seen := make(map[string]bool, len(seeds))
	for i, seed := range seeds {
		requiredFields := map[string]string{
			"id":          seed.ID,
			"title":       seed.Title,
			"publisher":   seed.Publisher,
			"description": seed.Description,
		}

		for fieldName, fieldValue := range requiredFields {
			if fieldValue == "" {
				return fmt.Errorf("seed at index %d: %s is required", i, fieldName)
			}
		}

		if seen[seed.ID] {
			return fmt.Errorf("duplicate seed id: %s", seed.ID)
		}
		seen[seed.ID] = true

		if !Categories[seed.Category] {
			return fmt.Errorf("seed %s: unknown category: %s", seed.ID, seed.Category)
		}

		if seed.DaysAgo < 0 {
			return fmt.Errorf("seed %s: days_ago must be non-negative", seed.ID)
		}
	}

	return nil
}
