// Package config holds runtime configuration: defaults, an optional TOML
// defaults file, CLI flag binding, and validation.
package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// --- Enum types for validated string fields ---

// Algorithm names the digest used by hash and dupes.
type Algorithm string

const (
	AlgorithmSHA256  Algorithm = "sha256"  // Default.
	AlgorithmMD5     Algorithm = "md5"     // Compatibility with older fl-tools reports; not collision resistant.
	AlgorithmBLAKE2b Algorithm = "blake2b" // BLAKE2b-256.
)

// CollisionPolicy selects what organize and rename do when the target exists.
type CollisionPolicy string

const (
	CollisionFail      CollisionPolicy = "fail"      // Abort the run (default).
	CollisionSkip      CollisionPolicy = "skip"      // Leave the source in place.
	CollisionOverwrite CollisionPolicy = "overwrite" // Replace the existing target.
	CollisionSuffix    CollisionPolicy = "suffix"    // Append " - dupN" before the extension.
)

// OutputFormat selects how search and dupes results are printed.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// DefaultBlockSize is the hasher read size in bytes.
const DefaultBlockSize = 64 * 1024

// DefaultNoExtDir is the organize folder for files without an extension.
const DefaultNoExtDir = "noext"

// Config holds all runtime settings. It is populated by [DefaultConfig],
// optionally overlaid by [LoadFile], then by flag values the user
// actually passed.
type Config struct {
	// Hashing.
	BlockSize int       `toml:"block_size"` // Default: 65536.
	Algorithm Algorithm `toml:"algorithm"`  // Default: "sha256".
	Workers   int       `toml:"workers"`    // Default: runtime.NumCPU().

	// Organize / rename behavior.
	NoExtDir  string          `toml:"noext_dir"` // Default: "noext". Empty skips extensionless files.
	Collision CollisionPolicy `toml:"collision"` // Default: "fail".
	DryRun    bool            `toml:"dry_run"`

	// Display and logging.
	Format    OutputFormat `toml:"format"` // Default: "text".
	ColorMode ColorMode    `toml:"color"`  // Default: "auto".
	LogFile   string       `toml:"log_file"`
	Verbose   bool         `toml:"verbose"`

	// ConfigFile is the TOML file the values above were read from, if any.
	ConfigFile string `toml:"-"`
}

// DefaultConfig returns a Config with all defaults applied.
func DefaultConfig() Config {
	return Config{
		BlockSize: DefaultBlockSize,
		Algorithm: AlgorithmSHA256,
		Workers:   runtime.NumCPU(),
		NoExtDir:  DefaultNoExtDir,
		Collision: CollisionFail,
		DryRun:    false,
		Format:    FormatText,
		ColorMode: ColorAuto,
		Verbose:   false,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks enum fields and numeric ranges.
func (c *Config) Validate() error {
	switch c.Algorithm {
	case AlgorithmSHA256, AlgorithmMD5, AlgorithmBLAKE2b:
		// valid
	default:
		return fmt.Errorf("invalid algorithm %q (use 'sha256', 'md5' or 'blake2b')", c.Algorithm)
	}

	switch c.Collision {
	case CollisionFail, CollisionSkip, CollisionOverwrite, CollisionSuffix:
		// valid
	default:
		return fmt.Errorf("invalid collision policy %q (use 'fail', 'skip', 'overwrite' or 'suffix')", c.Collision)
	}

	switch c.Format {
	case FormatText, FormatJSON, FormatYAML:
		// valid
	default:
		return fmt.Errorf("invalid format %q (use 'text', 'json' or 'yaml')", c.Format)
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", c.ColorMode)
	}

	if c.BlockSize <= 0 {
		return errors.New("block size must be positive")
	}
	if c.Workers <= 0 {
		return errors.New("workers must be positive")
	}
	if strings.ContainsAny(c.NoExtDir, `/\`) || c.NoExtDir == "." || c.NoExtDir == ".." {
		return fmt.Errorf("invalid noext dir %q (must be a single folder name)", c.NoExtDir)
	}
	return nil
}
