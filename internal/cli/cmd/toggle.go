package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/matjam/zoomview/internal/ipc"
	"github.com/spf13/cobra"
)

func NewToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle",
		Short: "Zoom in or out, as a double tap would",
		Run: func(cmd *cobra.Command, args []string) {
			if _, err := ipc.SendToggle(); err != nil {
				log.Fatalf("Failed to send 'toggle' command: %v", err)
			}
			log.Info("Toggle command sent")
		},
	}
}
