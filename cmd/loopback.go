package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"Sonotext/pkg/device"
	"Sonotext/pkg/session"
)

var loopbackCmd = &cobra.Command{
	Use:   "loopback [text...]",
	Short: "Send a message through an in-memory loopback and decode it",
	Long: `Runs the full transmit and receive pipeline against an in-memory pipe
instead of real audio hardware: the message is synthesized into a waveform,
fed back sample-for-sample, analyzed and reassembled. Useful as a smoke test
of the modem configuration.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")

		// The loopback pipe replays blocks exactly symbol-aligned, so gaps and
		// cross-symbol smoothing would only blur the deterministic replay.
		mcfg := cfg.Modem
		mcfg.GapDuration = 0
		mcfg.SmoothingWindow = 1

		pipe := device.NewLoopback()
		sess, err := session.New(mcfg, pipe, pipe, logger)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if err := sess.Start(ctx); err != nil {
			return err
		}
		defer sess.Stop()

		if err := sess.Send(ctx, text); err != nil {
			return err
		}

		select {
		case msg := <-sess.Messages():
			fmt.Printf("decoded: %q\n", msg)
			return nil
		case err := <-sess.Errors():
			return err
		case <-time.After(30 * time.Second):
			return fmt.Errorf("no message decoded")
		}
	},
}

func init() {
	rootCmd.AddCommand(loopbackCmd)
}
