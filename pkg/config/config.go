package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config holds all configuration for the application
type Config struct {
	LockFile   string `koanf:"lockfile"` // Path to the JSON lock file
	Manifest   string `koanf:"manifest"` // Path to the Depsfile declaring direct dependencies
	LibDir     string `koanf:"libdir"`   // Installation directory scanned for installed modules
	Indent     string `koanf:"indent"`   // Indent unit for tree output
	NoColor    bool   `koanf:"nocolor"`  // Disable colorized output
	WebMode    bool   `koanf:"web"`      // Serve the JSON API instead of printing
	Port       int    `koanf:"port"`     // Port for the web API
	Watch      bool   `koanf:"watch"`    // Re-check when lock or manifest change (web mode)
	VerboseCnt int    `koanf:"verbose"`  // Repeated -v count
}

// Load loads configuration from defaults, config file, environment variables, and flags.
// Priority: Flags > Env > Config File > Defaults
func Load(f *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	defaults := map[string]interface{}{
		"lockfile": "modules.lock",
		"manifest": "Depsfile",
		"libdir":   "local/lib",
		"indent":   "  ",
		"nocolor":  false,
		"web":      false,
		"port":     8080,
		"watch":    false,
		"verbose":  0,
	}
	if err := k.Load(makeMapProvider(defaults), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config File (optional) - lockgraph.toml
	// We ignore errors here as the file might not exist
	_ = k.Load(file.Provider("lockgraph.toml"), toml.Parser())

	// 3. Environment Variables
	// Prefix: LOCKGRAPH_ (e.g., LOCKGRAPH_PORT=9090)
	if err := k.Load(env.Provider("LOCKGRAPH_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(
			strings.TrimPrefix(s, "LOCKGRAPH_")), "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags
	if f != nil {
		if err := k.Load(posflag.Provider(f, ".", k), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// Unmarshal into struct
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Helper to use map as a provider
type mapProvider struct {
	m map[string]interface{}
}

func makeMapProvider(m map[string]interface{}) *mapProvider {
	return &mapProvider{m: m}
}

func (p *mapProvider) Read() (map[string]interface{}, error) {
	return p.m, nil
}

func (p *mapProvider) ReadBytes() ([]byte, error) {
	return nil, fmt.Errorf("not implemented")
}
