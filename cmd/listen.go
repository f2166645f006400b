package cmd

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"Sonotext/pkg/device"
	"Sonotext/pkg/session"
)

var listenWAV string

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Receive messages from the input audio device",
	Long: `Runs the receive loop against the input audio device (or a WAV file with
--wav) and prints every decoded message. Interrupt to stop.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var source device.Source
		if listenWAV != "" {
			source = &device.WAVSource{Path: listenWAV, SampleRate: cfg.Modem.SampleRate}
		} else {
			source = &device.PortAudioSource{
				DeviceName: cfg.Device.Input,
				SampleRate: cfg.Modem.SampleRate,
				BlockSize:  cfg.Modem.SymbolSamples(),
			}
		}

		sess, err := session.New(cfg.Modem, source, nil, logger)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		if err := sess.Start(ctx); err != nil {
			return err
		}
		defer sess.Stop()

		finished := make(chan struct{})
		go func() {
			sess.Wait()
			close(finished)
		}()

		for {
			select {
			case msg := <-sess.Messages():
				fmt.Println(msg)
			case err := <-sess.Errors():
				return err
			case <-ctx.Done():
				return nil
			case <-finished:
				drain(sess.Messages())
				return nil
			}
		}
	},
}

func drain(messages <-chan string) {
	for {
		select {
		case msg := <-messages:
			fmt.Println(msg)
		default:
			return
		}
	}
}

func init() {
	listenCmd.Flags().StringVar(&listenWAV, "wav", "", "decode this WAV file instead of listening live")
	rootCmd.AddCommand(listenCmd)
}
