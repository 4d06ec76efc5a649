package mibxref

import (
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml"

	"github.com/golangsnmp/mibxref/mib"
)

// Config is the TOML form of the load options.
//
//	paths = ["./stubs"]
//	system_paths = false
//	fail_on_error = true
//	strictness = "normal"      # strict | normal | permissive | silent
//	fail_at = "error"          # severity name
//	ignore = ["oid-value-mismatch"]
//	standard_definers = true
//	[overrides]
//	"symbol-ambiguous" = "warning"
//
// Unset keys keep the defaults of Load.
type Config struct {
	Paths            []string          `toml:"paths,omitempty"`
	SystemPaths      bool              `toml:"system_paths"`
	FailOnError      bool              `toml:"fail_on_error"`
	Strictness       string            `toml:"strictness,omitempty"`
	FailAt           string            `toml:"fail_at,omitempty"`
	Ignore           []string          `toml:"ignore,omitempty"`
	StandardDefiners *bool             `toml:"standard_definers,omitempty"`
	Overrides        map[string]string `toml:"overrides,omitempty"`
}

// ReadConfig decodes a TOML configuration.
func ReadConfig(r io.Reader) (*Config, error) {
	buff, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := toml.Unmarshal(buff, cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// LoadConfigFile reads a TOML configuration file.
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck // read-only

	cfg, err := ReadConfig(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// DiagnosticConfig returns the diagnostic configuration the file describes,
// starting from mib.DefaultConfig.
func (c *Config) DiagnosticConfig() (mib.DiagnosticConfig, error) {
	dc := mib.DefaultConfig()
	if c.Strictness != "" {
		level, ok := mib.ParseStrictness(c.Strictness)
		if !ok {
			return dc, fmt.Errorf("config: unknown strictness %q", c.Strictness)
		}
		dc.Level = level
	}
	if c.FailAt != "" {
		sev, ok := mib.ParseSeverity(c.FailAt)
		if !ok {
			return dc, fmt.Errorf("config: unknown severity %q for fail_at", c.FailAt)
		}
		dc.FailAt = sev
	}
	dc.Ignore = append(dc.Ignore, c.Ignore...)
	if len(c.Overrides) > 0 {
		dc.Overrides = make(map[string]mib.Severity, len(c.Overrides))
		for code, name := range c.Overrides {
			sev, ok := mib.ParseSeverity(name)
			if !ok {
				return dc, fmt.Errorf("config: unknown severity %q for %s", name, code)
			}
			dc.Overrides[code] = sev
		}
	}
	return dc, nil
}

// Options converts the configuration into load options. Directories in
// Paths are indexed recursively.
func (c *Config) Options() ([]Option, error) {
	dc, err := c.DiagnosticConfig()
	if err != nil {
		return nil, err
	}
	opts := []Option{
		WithDiagnosticConfig(dc),
		WithFailOnError(c.FailOnError),
	}
	for _, p := range c.Paths {
		src, err := DirTree(p)
		if err != nil {
			return nil, fmt.Errorf("config: stub path: %w", err)
		}
		opts = append(opts, WithSource(src))
	}
	if c.SystemPaths {
		opts = append(opts, WithSystemPaths())
	}
	if c.StandardDefiners != nil && !*c.StandardDefiners {
		opts = append(opts, WithoutStandardDefiners())
	}
	return opts, nil
}
