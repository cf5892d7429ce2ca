// Package config loads machine and trace settings from TOML.
package config

import (
	"fmt"
	"slices"

	"fortio.org/safecast"
	"github.com/BurntSushi/toml"

	"regscan/internal/asm"
	"regscan/internal/trace"
)

// Config is the validated configuration of one compiler run.
type Config struct {
	// Registers available to the allocator, ascending.
	Registers []asm.Reg
	Trace     trace.Config
}

type rawConfig struct {
	Machine struct {
		Registers []int64 `toml:"registers"`
	} `toml:"machine"`
	Trace struct {
		Level  string `toml:"level"`
		Mode   string `toml:"mode"`
		Format string `toml:"format"`
		Output string `toml:"output"`
	} `toml:"trace"`
}

// Default is r0..r5 with tracing off.
func Default() Config {
	return Config{
		Registers: []asm.Reg{0, 1, 2, 3, 4, 5},
		Trace: trace.Config{
			Level:  trace.LevelOff,
			Mode:   trace.ModeStream,
			Format: trace.FormatText,
		},
	}
}

// Parse decodes TOML data. Keys that are absent keep their Default values.
func Parse(data []byte) (Config, error) {
	var raw rawConfig
	meta, err := toml.Decode(string(data), &raw)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return build(raw, meta)
}

// Load reads and decodes the TOML file at path.
func Load(path string) (Config, error) {
	var raw rawConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	cfg, err := build(raw, meta)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func build(raw rawConfig, meta toml.MetaData) (Config, error) {
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config: unknown key %q", undecoded[0].String())
	}
	cfg := Default()

	if meta.IsDefined("machine", "registers") {
		regs, err := registers(raw.Machine.Registers)
		if err != nil {
			return Config{}, err
		}
		cfg.Registers = regs
	}

	var err error
	if meta.IsDefined("trace", "level") {
		if cfg.Trace.Level, err = trace.ParseLevel(raw.Trace.Level); err != nil {
			return Config{}, fmt.Errorf("config: %w", err)
		}
	}
	if meta.IsDefined("trace", "mode") {
		if cfg.Trace.Mode, err = trace.ParseMode(raw.Trace.Mode); err != nil {
			return Config{}, fmt.Errorf("config: %w", err)
		}
	}
	if meta.IsDefined("trace", "format") {
		if cfg.Trace.Format, err = trace.ParseFormat(raw.Trace.Format); err != nil {
			return Config{}, fmt.Errorf("config: %w", err)
		}
	}
	cfg.Trace.OutputPath = raw.Trace.Output
	return cfg, nil
}

func registers(ids []int64) ([]asm.Reg, error) {
	regs := make([]asm.Reg, 0, len(ids))
	for _, id := range ids {
		n, err := safecast.Conv[int](id)
		if err != nil {
			return nil, fmt.Errorf("config: register %d: %w", id, err)
		}
		r, err := asm.RegAt(n)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		if slices.Contains(regs, r) {
			return nil, fmt.Errorf("config: duplicate register %s", r)
		}
		regs = append(regs, r)
	}
	slices.Sort(regs)
	return regs, nil
}

// NewTracer builds the tracer described by c.Trace.
func (c Config) NewTracer() (trace.Tracer, error) {
	return trace.New(c.Trace)
}
