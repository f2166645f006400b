package configs

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"Sonotext/pkg/modem"
)

// Config is the application configuration.
type Config struct {
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose"`
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`

	Modem  ModemConfig  `mapstructure:"modem" yaml:"modem"`
	Device DeviceConfig `mapstructure:"device" yaml:"device"`
}

// ModemConfig carries the tunable parameters of the modulation scheme. All
// fields have defaults; a config file or flags override them.
type ModemConfig struct {
	SampleRate      int           `mapstructure:"sample_rate" yaml:"sample_rate"`
	AlphabetSize    int           `mapstructure:"alphabet_size" yaml:"alphabet_size"`
	BaseFreq        float64       `mapstructure:"base_freq" yaml:"base_freq"`
	FreqStep        float64       `mapstructure:"freq_step" yaml:"freq_step"`
	StartFreq       float64       `mapstructure:"start_freq" yaml:"start_freq"`
	StopFreq        float64       `mapstructure:"stop_freq" yaml:"stop_freq"`
	SymbolDuration  time.Duration `mapstructure:"symbol_duration" yaml:"symbol_duration"`
	GapDuration     time.Duration `mapstructure:"gap_duration" yaml:"gap_duration"`
	Tolerance       float64       `mapstructure:"tolerance" yaml:"tolerance"`
	NoiseFloorDB    float64       `mapstructure:"noise_floor_db" yaml:"noise_floor_db"`
	SmoothingWindow int           `mapstructure:"smoothing_window" yaml:"smoothing_window"`
	Checksum        bool          `mapstructure:"checksum" yaml:"checksum"`
}

// DeviceConfig selects audio endpoints by name substring; empty means the
// host default.
type DeviceConfig struct {
	Input  string `mapstructure:"input" yaml:"input"`
	Output string `mapstructure:"output" yaml:"output"`
}

// Load populates a Config from viper with defaults applied, then validates it.
func Load(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the modem cannot run with, including
// overlapping classification bands.
func (c *Config) Validate() error {
	m := c.Modem
	if m.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive, got %d", m.SampleRate)
	}
	if m.SymbolDuration <= 0 {
		return fmt.Errorf("symbol duration must be positive, got %v", m.SymbolDuration)
	}
	if m.GapDuration < 0 {
		return fmt.Errorf("gap duration must not be negative, got %v", m.GapDuration)
	}
	if m.SmoothingWindow < 1 {
		return fmt.Errorf("smoothing window must be at least 1, got %d", m.SmoothingWindow)
	}
	if _, err := m.Alphabet(); err != nil {
		return err
	}
	return nil
}

// Alphabet builds the validated symbol alphabet described by the config.
func (m ModemConfig) Alphabet() (*modem.Alphabet, error) {
	return modem.AlphabetConfig{
		Size:       m.AlphabetSize,
		BaseFreq:   m.BaseFreq,
		FreqStep:   m.FreqStep,
		StartFreq:  m.StartFreq,
		StopFreq:   m.StopFreq,
		Tolerance:  m.Tolerance,
		SampleRate: m.SampleRate,
	}.New()
}

// SymbolSamples is the number of samples in one symbol duration: the receive
// block size and the length of every synthesized tone.
func (m ModemConfig) SymbolSamples() int {
	return m.SampleRate * int(m.SymbolDuration.Milliseconds()) / 1000
}
