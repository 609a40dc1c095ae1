package cmd

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/matjam/zoomview/internal/ipc"
	"github.com/spf13/cobra"
)

func NewFlingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fling VX VY",
		Short: "Fling the zoomed-in image with a velocity in pixels per second",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			vx, vy, err := parseVelocity(args[0], args[1])
			if err != nil {
				return err
			}
			if _, err := ipc.SendFling(vx, vy); err != nil {
				log.Fatalf("Failed to send 'fling' command: %v", err)
			}
			log.Infof("Fling (%v, %v) sent", vx, vy)
			return nil
		},
	}
}

var errNotFinite = errors.New("velocity must be finite")

func parseVelocity(x, y string) (float32, float32, error) {
	vx, err := parseAxis(x)
	if err != nil {
		return 0, 0, fmt.Errorf("bad x velocity %q: %w", x, err)
	}
	vy, err := parseAxis(y)
	if err != nil {
		return 0, 0, fmt.Errorf("bad y velocity %q: %w", y, err)
	}
	return vx, vy, nil
}

// parseAxis parses one float32 component. Values outside the float32 range
// fail with strconv.ErrRange.
func parseAxis(s string) (float32, error) {
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errNotFinite
	}
	return float32(v), nil
}
