package cmd

import (
	"fmt"

	"github.com/pixmob/wavebox/internal/audio"

	"github.com/spf13/cobra"
)

var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "List sample rates supported by the audio backend",
	Long:  `Probe the audio backend and list the sample rates that are safe to use for recording.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend := audio.NewBackend(cfg.Audio.Backend, cfg.Audio.Device)
		rates := audio.AvailableSampleRates(backend)

		if len(rates) == 0 {
			return fmt.Errorf("no supported sample rates found for backend %s", backend.Type())
		}

		fmt.Printf("Supported sample rates (%s backend):\n", backend.Type())
		for _, rate := range rates {
			marker := ""
			if rate == cfg.Audio.SampleRate {
				marker = " (configured)"
			}
			fmt.Printf("  %d Hz%s\n", rate, marker)
		}
		return nil
	},
}
