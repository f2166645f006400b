package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"Sonotext/pkg/device"
	"Sonotext/pkg/session"
)

var sendWAV string

var sendCmd = &cobra.Command{
	Use:   "send [text...]",
	Short: "Transmit a text message as tones",
	Long: `Encodes the given text into a framed FSK waveform and plays it on the
output audio device, or writes it to a WAV file with --wav.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")

		var sink device.Sink
		if sendWAV != "" {
			sink = &device.WAVSink{Path: sendWAV, SampleRate: cfg.Modem.SampleRate}
		} else {
			sink = &device.PortAudioSink{
				DeviceName: cfg.Device.Output,
				SampleRate: cfg.Modem.SampleRate,
			}
		}

		sess, err := session.New(cfg.Modem, nil, sink, logger)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if err := sess.Start(ctx); err != nil {
			return err
		}
		defer sess.Stop()

		return sess.Send(ctx, text)
	},
}

func init() {
	sendCmd.Flags().StringVar(&sendWAV, "wav", "", "write the waveform to this WAV file instead of playing it")
	rootCmd.AddCommand(sendCmd)
}
