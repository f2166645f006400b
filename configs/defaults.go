package configs

import (
	"time"

	"github.com/spf13/viper"
)

// setDefaults seeds every configuration key so a bare run works without a
// config file. Values already set (file, env, flag) win.
func setDefaults(v *viper.Viper) {
	if !v.IsSet("verbose") {
		v.Set("verbose", false)
	}
	if !v.IsSet("log_level") {
		v.Set("log_level", "info")
	}

	if !v.IsSet("modem.sample_rate") {
		v.Set("modem.sample_rate", 44100)
	}
	if !v.IsSet("modem.alphabet_size") {
		v.Set("modem.alphabet_size", 2)
	}
	if !v.IsSet("modem.base_freq") {
		v.Set("modem.base_freq", 2000.0)
	}
	if !v.IsSet("modem.freq_step") {
		v.Set("modem.freq_step", 400.0)
	}
	// marker frequencies sit above the widest (M=4) data band, one step apart
	if !v.IsSet("modem.start_freq") {
		v.Set("modem.start_freq", 4000.0)
	}
	if !v.IsSet("modem.stop_freq") {
		v.Set("modem.stop_freq", 4400.0)
	}
	if !v.IsSet("modem.symbol_duration") {
		v.Set("modem.symbol_duration", 100*time.Millisecond)
	}
	if !v.IsSet("modem.gap_duration") {
		v.Set("modem.gap_duration", 20*time.Millisecond)
	}
	if !v.IsSet("modem.tolerance") {
		v.Set("modem.tolerance", 150.0)
	}
	if !v.IsSet("modem.noise_floor_db") {
		v.Set("modem.noise_floor_db", -50.0)
	}
	if !v.IsSet("modem.smoothing_window") {
		v.Set("modem.smoothing_window", 3)
	}
	if !v.IsSet("modem.checksum") {
		v.Set("modem.checksum", false)
	}

	if !v.IsSet("device.input") {
		v.Set("device.input", "")
	}
	if !v.IsSet("device.output") {
		v.Set("device.output", "")
	}
}
