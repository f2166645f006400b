package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"Sonotext/pkg/device"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List available audio devices",
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := device.ListDevices()
		if err != nil {
			return err
		}
		for i, name := range list {
			fmt.Printf("%2d: %s\n", i+1, name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(devicesCmd)
}
