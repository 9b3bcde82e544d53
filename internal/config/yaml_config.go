package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// YAMLConfig represents the structure of the config.yaml file.
// Catalogue data that is easier to manage in YAML than env vars.
type YAMLConfig struct {
	Products []ProductConfig `yaml:"products"`
	Topics   TopicsConfig    `yaml:"topics"`
}

// ProductConfig overrides or adds a priced product.
type ProductConfig struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	BasePrice string `yaml:"base_price"` // decimal string, e.g. "19.99"
}

// TopicsConfig replaces the topic vocabularies. Empty lists keep the defaults.
type TopicsConfig struct {
	Categories []string `yaml:"categories,omitempty"`
	GiftTypes  []string `yaml:"gift_types,omitempty"`
	Modifiers  []string `yaml:"modifiers,omitempty"`
}

// LoadYAMLConfig loads the YAML configuration file at path.
// Returns nil without error if the config file doesn't exist.
func LoadYAMLConfig(path string) (*YAMLConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Config file is optional
			return nil, nil
		}
		return nil, err
	}

	var cfg YAMLConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
