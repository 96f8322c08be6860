// cmd/config.go
package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// RunConfig is the optional YAML run-config file format: the full
// configuration surface of a run in one document, for reproducible batch
// runs. All top-level and weight-block fields must be listed to
// satisfy KnownFields(true) strict parsing.
type RunConfig struct {
	Upper        string       `yaml:"upper"`
	Lower        string       `yaml:"lower"`
	Rows         int          `yaml:"rows"`
	Cols         int          `yaml:"cols"`
	Weights      WeightConfig `yaml:"weights"`
	EmitEvery    int64        `yaml:"emit_every"`
	CDensityStep int          `yaml:"cdensity_step"`
	Budget       int64        `yaml:"budget"`
	Sticky       bool         `yaml:"sticky"`
	Seed         int64        `yaml:"seed"`
	Log          string       `yaml:"log"`
	Out          string       `yaml:"out"`
}

// WeightConfig is the six-vertex weight block of a RunConfig.
type WeightConfig struct {
	A1 float64 `yaml:"a1"`
	A2 float64 `yaml:"a2"`
	B1 float64 `yaml:"b1"`
	B2 float64 `yaml:"b2"`
	C1 float64 `yaml:"c1"`
	C2 float64 `yaml:"c2"`
}

// loadRunConfig parses a RunConfig file with strict field checking, so a
// typo'd key fails the run instead of silently being ignored.
func loadRunConfig(path string) (RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunConfig{}, fmt.Errorf("cmd: reading config %q: %w", path, err)
	}
	var cfg RunConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return RunConfig{}, fmt.Errorf("cmd: parsing config %q: %w", path, err)
	}
	return cfg, nil
}

// applyConfigFile fills in any flag the caller did not explicitly set from
// path's RunConfig, so flags always take precedence over the file.
func applyConfigFile(path string, flags *pflag.FlagSet) error {
	cfg, err := loadRunConfig(path)
	if err != nil {
		return err
	}

	setIfUnset := func(name string, apply func()) {
		if !flags.Changed(name) {
			apply()
		}
	}

	setIfUnset("upper", func() { upperPath = cfg.Upper })
	setIfUnset("lower", func() { lowerPath = cfg.Lower })
	setIfUnset("rows", func() { rows = cfg.Rows })
	setIfUnset("cols", func() { cols = cfg.Cols })
	setIfUnset("a1", func() { weightA1 = cfg.Weights.A1 })
	setIfUnset("a2", func() { weightA2 = cfg.Weights.A2 })
	setIfUnset("b1", func() { weightB1 = cfg.Weights.B1 })
	setIfUnset("b2", func() { weightB2 = cfg.Weights.B2 })
	setIfUnset("c1", func() { weightC1 = cfg.Weights.C1 })
	setIfUnset("c2", func() { weightC2 = cfg.Weights.C2 })
	setIfUnset("emit-every", func() { emitEvery = cfg.EmitEvery })
	setIfUnset("cdensity-step", func() { cdensityStep = cfg.CDensityStep })
	setIfUnset("budget", func() { flipBudget = cfg.Budget })
	setIfUnset("sticky", func() { sticky = cfg.Sticky })
	setIfUnset("seed", func() { seed = cfg.Seed })
	if cfg.Log != "" {
		setIfUnset("log", func() { logLevel = cfg.Log })
	}
	if cfg.Out != "" {
		setIfUnset("out", func() { outDir = cfg.Out })
	}
	return nil
}
