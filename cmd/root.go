package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"Sonotext/configs"
)

var (
	configFile string
	verbose    bool
	logLevel   string

	cfg    *configs.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "sonotext",
	Short: "Acoustic FSK text modem",
	Long: `Sonotext transmits short text messages between devices as sequences of
audible tones and decodes them with spectral analysis. No pairing, no clock
sync: frames are delimited by dedicated START/STOP marker tones.

Messages can be sent and received through a live audio device (PortAudio),
through WAV files for offline work, or through an in-memory loopback.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initialize()
	},
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default searches ./sonotext.yaml and $HOME/.config/sonotext/)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"verbose output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"log level (debug, info, warn, error)")

	rootCmd.PersistentFlags().Int("alphabet", 2, "FSK alphabet size M (2 or 4)")
	rootCmd.PersistentFlags().Bool("checksum", false, "append and verify a CRC-8 frame checksum")
	rootCmd.PersistentFlags().String("input", "", "input audio device name substring")
	rootCmd.PersistentFlags().String("output", "", "output audio device name substring")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("modem.alphabet_size", rootCmd.PersistentFlags().Lookup("alphabet"))
	viper.BindPFlag("modem.checksum", rootCmd.PersistentFlags().Lookup("checksum"))
	viper.BindPFlag("device.input", rootCmd.PersistentFlags().Lookup("input"))
	viper.BindPFlag("device.output", rootCmd.PersistentFlags().Lookup("output"))
}

func initialize() error {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "sonotext"))
		}
		viper.AddConfigPath(".")
		viper.SetConfigName("sonotext")
		viper.SetConfigType("yaml")
	}
	viper.SetEnvPrefix("SONOTEXT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	var err error
	cfg, err = configs.Load(viper.GetViper())
	if err != nil {
		return err
	}

	logger, err = buildLogger()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	return nil
}

func buildLogger() (*zap.Logger, error) {
	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	zcfg := zap.NewDevelopmentConfig()
	zcfg.Level = lvl
	return zcfg.Build()
}
