package config

// This file binds Config fields to cobra/pflag flags.
// Flags are grouped into global (display/logging), hashing and behavior.
// Negated flags (e.g. --no-color) are applied after parsing so Config
// defaults hold unless set.

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// NegatedFlags holds boolean flags that are applied after parsing.
type NegatedFlags struct {
	forceColor bool
	noColor    bool
}

// BindGlobalFlags registers --config, --log, --color, --no-color and
// -v/--verbose on fs, writing into cfg.
func BindGlobalFlags(fs *pflag.FlagSet, cfg *Config, n *NegatedFlags) {
	fs.StringVar(&cfg.ConfigFile, "config", "", "TOML file with default settings")
	fs.StringVarP(&cfg.LogFile, "log", "l", cfg.LogFile, "Append logs to file")
	fs.BoolVar(&n.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&n.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")
}

// BindHashFlags registers --block-size and --algorithm.
func BindHashFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.IntVar(&cfg.BlockSize, "block-size", cfg.BlockSize, "Read size in bytes when hashing")
	fs.Var(&algorithmValue{&cfg.Algorithm}, "algorithm", "Digest: sha256 | md5 | blake2b")
}

// BindWorkerFlags registers --workers.
func BindWorkerFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.IntVarP(&cfg.Workers, "workers", "w", cfg.Workers, "Files hashed in parallel")
}

// BindMoveFlags registers --collision and -d/--dry-run.
func BindMoveFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.Var(&collisionValue{&cfg.Collision}, "collision", "When the target exists: fail | skip | overwrite | suffix")
	fs.BoolVarP(&cfg.DryRun, "dry-run", "d", cfg.DryRun, "Preview only; do not move or rename")
}

// BindNoExtFlag registers --noext-dir.
func BindNoExtFlag(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.NoExtDir, "noext-dir", cfg.NoExtDir, `Folder for files without an extension ("" leaves them in place)`)
}

// BindFormatFlag registers -o/--format.
func BindFormatFlag(fs *pflag.FlagSet, cfg *Config) {
	fs.VarP(&formatValue{&cfg.Format}, "format", "o", "Output format: text | json | yaml")
}

// Resolve finishes configuration after flag parsing: it loads the TOML file
// named by --config (if any) underneath the flags the user actually passed,
// then applies negated flags.
func Resolve(fs *pflag.FlagSet, cfg *Config, n *NegatedFlags) error {
	if cfg.ConfigFile != "" {
		// Remember explicit flag values; the file must not override them.
		changed := map[string]string{}
		fs.Visit(func(f *pflag.Flag) {
			if f.Name != "config" {
				changed[f.Name] = f.Value.String()
			}
		})
		if err := LoadFile(cfg.ConfigFile, cfg); err != nil {
			return err
		}
		for name, val := range changed {
			if err := fs.Set(name, val); err != nil {
				return fmt.Errorf("reapply --%s: %w", name, err)
			}
		}
	}
	applyNegatedFlags(cfg, n)
	return nil
}

// applyNegatedFlags copies negated flag values into cfg.
func applyNegatedFlags(cfg *Config, n *NegatedFlags) {
	if n.noColor {
		cfg.ColorMode = ColorNever
	} else if n.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// pflag.Value adapters so we can use enum types with fs.Var.

type algorithmValue struct{ p *Algorithm }

func (a *algorithmValue) String() string { return string(*a.p) }
func (a *algorithmValue) Type() string   { return "algorithm" }
func (a *algorithmValue) Set(s string) error {
	switch v := Algorithm(strings.ToLower(s)); v {
	case AlgorithmSHA256, AlgorithmMD5, AlgorithmBLAKE2b:
		*a.p = v
	default:
		return fmt.Errorf("invalid algorithm %q (use 'sha256', 'md5' or 'blake2b')", s)
	}
	return nil
}

type collisionValue struct{ p *CollisionPolicy }

func (c *collisionValue) String() string { return string(*c.p) }
func (c *collisionValue) Type() string   { return "policy" }
func (c *collisionValue) Set(s string) error {
	switch v := CollisionPolicy(strings.ToLower(s)); v {
	case CollisionFail, CollisionSkip, CollisionOverwrite, CollisionSuffix:
		*c.p = v
	default:
		return fmt.Errorf("invalid collision policy %q (use 'fail', 'skip', 'overwrite' or 'suffix')", s)
	}
	return nil
}

type formatValue struct{ p *OutputFormat }

func (f *formatValue) String() string { return string(*f.p) }
func (f *formatValue) Type() string   { return "format" }
func (f *formatValue) Set(s string) error {
	switch v := OutputFormat(strings.ToLower(s)); v {
	case FormatText, FormatJSON, FormatYAML:
		*f.p = v
	default:
		return fmt.Errorf("invalid format %q (use 'text', 'json' or 'yaml')", s)
	}
	return nil
}
