package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pixmob/wavebox/internal/service"

	"github.com/spf13/cobra"
)

var recordRate int

var recordCmd = &cobra.Command{
	Use:   "record [song-name]",
	Short: "Record audio from the capture device into a WAVE file",
	Long: `Record mono 16-bit PCM audio from the capture device into a WAVE file
in the output directory. Recording runs until interrupted with Ctrl+C;
the file header is finalized when recording stops.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		songName := args[0]

		if recordRate > 0 {
			cfg.Audio.SampleRate = recordRate
		}

		svc := service.New(cfg)

		if err := svc.Record(songName); err != nil {
			return fmt.Errorf("failed to start recording: %w", err)
		}

		slog.Info("Recording... Press Ctrl+C to stop")

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan

		slog.Info("Stopping recording...")
		svc.StopRecording()

		fmt.Printf("Saved: %s\n", svc.OutputPath(songName))
		return nil
	},
}

func init() {
	recordCmd.Flags().IntVarP(&recordRate, "rate", "r", 0, "sample rate in Hz (overrides config)")
}
