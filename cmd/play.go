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

var playCmd = &cobra.Command{
	Use:   "play [song-name]",
	Short: "Play a recorded WAVE file",
	Long: `Play a previously recorded WAVE file on the playback device. Playback
runs until the file ends or Ctrl+C is pressed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		songName := args[0]

		svc := service.New(cfg)

		if err := svc.Play(songName); err != nil {
			return fmt.Errorf("playback failed: %w", err)
		}

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

		select {
		case <-svc.PlaybackDone():
			fmt.Println("Playback completed")
		case <-sigChan:
			slog.Info("Stopping playback...")
			svc.StopPlayback()
		}
		return nil
	},
}
