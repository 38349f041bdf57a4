package style

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Write saves a descriptor to a YAML file so a look can be re-applied
// or hand-tuned independently of the prompt that produced it.
func Write(d *Descriptor, path string) error {
	data, err := yaml.Marshal(d)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Read loads a descriptor from a YAML file and validates it.
func Read(path string) (*Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var d Descriptor
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}

	return &d, nil
}
