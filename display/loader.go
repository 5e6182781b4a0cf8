package display

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ParsePhrases decodes a YAML phrase table. Keys left out are taken from
// the built-in table matching its language.
func ParsePhrases(data []byte) (*Phrases, error) {
	var p Phrases
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse phrase table: %w", err)
	}
	p.fillFrom(Lookup(p.Language))
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid phrase table: %w", err)
	}
	return &p, nil
}

// LoadPhrases reads a YAML phrase table from path.
func LoadPhrases(path string) (*Phrases, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p, err := ParsePhrases(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}
