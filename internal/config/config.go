// Package config loads analyzer configuration. The only setting the
// statics honors is the list of disallowed value paths.
package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sunholo/smlcheck/internal/hir"
	"github.com/sunholo/smlcheck/internal/types"
)

// Config is the on-disk configuration.
type Config struct {
	// Disallow lists dotted value paths (e.g. "S.f") whose use should be
	// reported.
	Disallow []string `yaml:"disallow"`
}

// Load parses a YAML configuration document.
func Load(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// ParsePath splits a dotted path into a hir.Path.
func ParsePath(s string) (hir.Path, error) {
	parts := strings.Split(s, ".")
	for _, p := range parts {
		if p == "" {
			return hir.Path{}, fmt.Errorf("config: malformed path %q", s)
		}
	}
	return hir.PathOf(parts...), nil
}

// Apply marks every disallowed path in bs. It returns the first error
// encountered; earlier marks are kept.
func (c *Config) Apply(bs *types.Bs) error {
	for _, raw := range c.Disallow {
		path, err := ParsePath(raw)
		if err != nil {
			return err
		}
		if err := bs.DisallowVal(path); err != nil {
			return fmt.Errorf("config: disallow %s: %w", raw, err)
		}
	}
	return nil
}
