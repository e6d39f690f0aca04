package grover

import (
	"fmt"
	"os"
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"gopkg.in/yaml.v3"
)

// Config configures a Pool.
type Config struct {
	// Workers is the fixed pool size. Zero means runtime.GOMAXPROCS(0).
	Workers int `yaml:"workers"`

	// Seed is the base seed trials derive their own seeds from. Zero draws
	// a fresh base seed for every Run.
	Seed uint64 `yaml:"seed"`

	// MaxBytes caps the memory concurrent trials may hold. Zero derives the
	// ceiling from the host's physical memory.
	MaxBytes uint64 `yaml:"max_bytes"`

	// Verbose logs each run's sizing and heap usage through errnie.
	Verbose bool `yaml:"verbose"`

	// Registerer receives the pool's Prometheus collectors when set.
	Registerer prometheus.Registerer `yaml:"-"`
}

func NewConfig() *Config {
	return &Config{
		Workers:  runtime.GOMAXPROCS(0),
		MaxBytes: DefaultMaxBytes(),
	}
}

func (c *Config) workers() int {
	if c == nil || c.Workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return c.Workers
}

// SweepConfig describes a range of register sizes to measure.
type SweepConfig struct {
	MinQubits    int    `yaml:"min_qubits"`
	MaxQubits    int    `yaml:"max_qubits"`
	Target       string `yaml:"target"`
	Iterations   int    `yaml:"iterations"`
	Runs         int    `yaml:"runs"`
	MeasureCount int    `yaml:"measure_count"`
	Output       string `yaml:"output"`
}

func NewSweepConfig() *SweepConfig {
	return &SweepConfig{
		MinQubits:    5,
		MaxQubits:    15,
		Iterations:   DefaultIterations,
		Runs:         10000,
		MeasureCount: 100000,
		Output:       "fail_by_qubit_count.json",
	}
}

// Validate rejects ranges and counts the sweep cannot run.
func (c *SweepConfig) Validate() error {
	switch {
	case c.MinQubits < 0:
		return invalidInput("min_qubits %d is negative", c.MinQubits)
	case c.MaxQubits < c.MinQubits:
		return invalidInput("max_qubits %d is below min_qubits %d", c.MaxQubits, c.MinQubits)
	case c.MaxQubits > MaxQubits:
		return invalidInput("max_qubits %d exceeds %d", c.MaxQubits, MaxQubits)
	case c.Runs < 0:
		return invalidInput("runs %d is negative", c.Runs)
	case c.MeasureCount < 0:
		return invalidInput("measure_count %d is negative", c.MeasureCount)
	}

	if c.Target != "" {
		for i := 0; i < len(c.Target); i++ {
			if b := c.Target[i]; b != '0' && b != '1' {
				return invalidInput("target pattern %q has non-binary character %q", c.Target, b)
			}
		}
	}

	return nil
}

// FileConfig is the on-disk layout of a sweep configuration.
type FileConfig struct {
	Pool  Config      `yaml:"pool"`
	Sweep SweepConfig `yaml:"sweep"`
}

/*
LoadConfig reads a YAML file on top of the defaults. Keys left out of the file
keep their default values.
*/
func LoadConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &FileConfig{
		Pool:  *NewConfig(),
		Sweep: *NewSweepConfig(),
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Pool.Workers < 0 {
		return nil, invalidInput("workers %d is negative", cfg.Pool.Workers)
	}

	if err := cfg.Sweep.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
