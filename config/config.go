// Package config holds the generator's settings. Values are layered: built-in
// defaults, then an optional YAML file, then DERIVE_ORD_* environment
// variables. Command-line flags are applied last by the caller.
package config

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/amp-labs/amp-derive/envutil"
	"github.com/amp-labs/amp-derive/errors"
	"gopkg.in/yaml.v3"
)

const (
	DefaultSuffix        = "_ord.go"
	DefaultComparePkg    = "github.com/amp-labs/amp-derive/compare"
	EnvSuffix            = "DERIVE_ORD_SUFFIX"
	EnvComparePkg        = "DERIVE_ORD_COMPARE_PKG"
	EnvWorkers           = "DERIVE_ORD_WORKERS"
	EnvUnifyFieldless    = "DERIVE_ORD_UNIFY_FIELDLESS"
)

type Config struct {
	// Suffix is appended to a source file's base name to name its output.
	Suffix string `yaml:"suffix"`
	// ComparePackage is the import path of the package providing Ordering and Cmp.
	ComparePackage string `yaml:"comparePackage"`
	Workers        int    `yaml:"workers"`
	// UnifyFieldless merges all fieldless variants of a sum into one arm.
	UnifyFieldless bool `yaml:"unifyFieldless"`
	DryRun         bool `yaml:"dryRun"`
}

func Default() Config {
	return Config{
		Suffix:         DefaultSuffix,
		ComparePackage: DefaultComparePkg,
		Workers:        runtime.GOMAXPROCS(0),
		UnifyFieldless: true,
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty) and the environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}

		if err := cfg.decode(data); err != nil {
			return Config{}, fmt.Errorf("%s: %w", path, err)
		}
	}

	if err := cfg.fromEnv(); err != nil {
		return Config{}, err
	}

	return cfg, cfg.Validate()
}

func (c *Config) decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(c); err != nil && !stderrors.Is(err, io.EOF) {
		return err
	}

	return nil
}

func (c *Config) fromEnv() error {
	var errs errors.Collection

	setString := func(rdr envutil.Reader[string], dst *string) {
		rdr.DoWithValue(func(s string) { *dst = s })
	}

	setString(envutil.String(EnvSuffix), &c.Suffix)
	setString(envutil.String(EnvComparePkg), &c.ComparePackage)

	workers := envutil.Int(EnvWorkers)
	workers.DoWithValue(func(n int) { c.Workers = n })

	if workers.Error() != nil {
		_, err := workers.Value()
		errs.Add(err)
	}

	unify := envutil.Bool(EnvUnifyFieldless)
	unify.DoWithValue(func(b bool) { c.UnifyFieldless = b })

	if unify.Error() != nil {
		_, err := unify.Value()
		errs.Add(err)
	}

	return errs.GetError()
}

// Validate checks the settings every run depends on.
func (c *Config) Validate() error {
	switch {
	case !strings.HasSuffix(c.Suffix, ".go"):
		return fmt.Errorf("%w: suffix %q must end in .go", errors.ErrInvalidConfig, c.Suffix)
	case strings.HasSuffix(c.Suffix, "_test.go"):
		return fmt.Errorf("%w: suffix %q would produce test files", errors.ErrInvalidConfig, c.Suffix)
	case c.ComparePackage == "":
		return fmt.Errorf("%w: compare package is empty", errors.ErrInvalidConfig)
	case c.Workers < 1:
		return fmt.Errorf("%w: workers must be at least 1, got %d", errors.ErrInvalidConfig, c.Workers)
	default:
		return nil
	}
}
