package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// LoadFile overlays values from a TOML file onto cfg. Keys missing from the
// file keep their current value. Unknown keys are rejected so typos surface.
func LoadFile(path string, cfg *Config) error {
	path = os.ExpandEnv(path)
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("config file not found: %s", path)
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown config key %q in %s", undecoded[0].String(), path)
	}
	cfg.ConfigFile = path
	return nil
}
