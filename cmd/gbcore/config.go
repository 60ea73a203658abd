package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the settings of a debugging session. Every field can
// be given in the YAML file named by -config, and flags override it.
type Config struct {
	ROM         string   `yaml:"rom"`
	Enhanced    bool     `yaml:"enhanced"`
	BankSelect  bool     `yaml:"bank_select"`
	Listen      string   `yaml:"listen"`
	LogLevel    string   `yaml:"log_level"`
	MaxSteps    int      `yaml:"max_steps"`
	EntryPoint  string   `yaml:"entry_point"`
	State       string   `yaml:"state"`
	Breakpoints []string `yaml:"breakpoints"`
}

func defaultConfig() Config {
	return Config{
		LogLevel: "info",
		MaxSteps: 1_000_000,
	}
}

// loadConfig reads the YAML file at path over the defaults.
func loadConfig(path string) (Config, error) {
	c := defaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// parseAddress parses a hexadecimal address, with or without a 0x or
// $ prefix.
func parseAddress(s string) (uint16, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "0x"), "$")
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q", s)
	}
	return uint16(v), nil
}

// breakpoints parses every configured breakpoint.
func (c Config) breakpoints() ([]uint16, error) {
	addresses := make([]uint16, 0, len(c.Breakpoints))
	for _, s := range c.Breakpoints {
		for _, field := range strings.Split(s, ",") {
			if strings.TrimSpace(field) == "" {
				continue
			}
			a, err := parseAddress(field)
			if err != nil {
				return nil, err
			}
			addresses = append(addresses, a)
		}
	}
	return addresses, nil
}
