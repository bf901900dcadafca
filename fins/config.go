package fins

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// yamlConfig mirrors Config with the snake_case field names a deployment
// keeps its PLC fleet topology under.
type yamlConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	TimeoutSeconds float64 `yaml:"timeout_seconds"`
	Destination    struct {
		Network byte `yaml:"network"`
		Node    byte `yaml:"node"`
		Unit    byte `yaml:"unit"`
	} `yaml:"destination"`
	Source struct {
		Network byte `yaml:"network"`
		Node    byte `yaml:"node"`
		Unit    byte `yaml:"unit"`
	} `yaml:"source"`
	Debug bool `yaml:"debug"`
}

// LoadConfig reads a YAML document from path into a Config, applying
// defaults before validation so a minimal document (just "host:")
// produces a usable configuration.
func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var y yamlConfig
	if err := yaml.Unmarshal(raw, &y); err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg := Config{
		Host:           y.Host,
		Port:           y.Port,
		TimeoutSeconds: y.TimeoutSeconds,
		Destination:    NodeAddress{Network: y.Destination.Network, Node: y.Destination.Node, Unit: y.Destination.Unit},
		Source:         NodeAddress{Network: y.Source.Network, Node: y.Source.Node, Unit: y.Source.Unit},
		Debug:          y.Debug,
	}.withDefaults()

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Host == "" {
		return fmt.Errorf("config: host is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: port %d out of range", c.Port)
	}
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("config: timeout_seconds must be positive")
	}
	if c.Destination.Network > 127 {
		return fmt.Errorf("config: destination network %d exceeds 127", c.Destination.Network)
	}
	if c.Source.Network > 127 {
		return fmt.Errorf("config: source network %d exceeds 127", c.Source.Network)
	}
	if c.Destination.Node > 254 || c.Destination.Unit > 254 {
		return fmt.Errorf("config: destination node/unit must not exceed 254")
	}
	if c.Source.Node > 254 || c.Source.Unit > 254 {
		return fmt.Errorf("config: source node/unit must not exceed 254")
	}
	return nil
}
