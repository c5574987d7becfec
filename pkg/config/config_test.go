package config

import (
	"os"
	"testing"

	"github.com/spf13/pflag"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.LockFile != "modules.lock" {
		t.Errorf("LockFile = %q, want modules.lock", cfg.LockFile)
	}
	if cfg.Manifest != "Depsfile" {
		t.Errorf("Manifest = %q, want Depsfile", cfg.Manifest)
	}
	if cfg.LibDir != "local/lib" {
		t.Errorf("LibDir = %q, want local/lib", cfg.LibDir)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.WebMode || cfg.Watch || cfg.NoColor {
		t.Error("boolean options should default to false")
	}
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	t.Setenv("LOCKGRAPH_LOCKFILE", "other.lock")
	t.Setenv("LOCKGRAPH_PORT", "9090")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.LockFile != "other.lock" {
		t.Errorf("LockFile = %q, want other.lock", cfg.LockFile)
	}
	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	t.Setenv("LOCKGRAPH_PORT", "9090")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int("port", 8080, "")
	fs.String("lockfile", "modules.lock", "")
	if err := fs.Parse([]string{"--port", "7777"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(fs)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.Port != 7777 {
		t.Errorf("Port = %d, want flag value 7777", cfg.Port)
	}
	// Unset flags must not mask the env layer
	if cfg.LockFile != "modules.lock" {
		t.Errorf("LockFile = %q, want modules.lock", cfg.LockFile)
	}
}

func TestMain(m *testing.M) {
	// Tests must not pick up a developer's lockgraph.toml
	_ = os.Chdir(os.TempDir())
	os.Exit(m.Run())
}
