package location

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadAliases reads a YAML map of colloquial location names to dataset keys,
// e.g.
//
//	usa: US
//	south korea: "Korea, South"
//
// Entries are normalized on use via WithAliases, so both sides may be
// written in the dataset's original spelling.
func LoadAliases(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read aliases file: %w", err)
	}

	aliases := make(map[string]string)
	if err := yaml.Unmarshal(data, &aliases); err != nil {
		return nil, fmt.Errorf("parse aliases file %s: %w", path, err)
	}
	return aliases, nil
}
