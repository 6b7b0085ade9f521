package cmd

import (
	"fmt"
	"os"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/spf13/cobra"

	"github.com/pixmob/wavebox/internal/service"
)

var infoCmd = &cobra.Command{
	Use:   "info [song-name]",
	Short: "Show format details of a recorded WAVE file",
	Long: `Inspect a recorded WAVE file and print its format, duration and peak
amplitude. Accepts a song name resolved against the output directory.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := service.New(cfg)
		path := svc.OutputPath(args[0])

		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("audio file not found: %s", path)
		}
		defer f.Close()

		d := wav.NewDecoder(f)
		d.ReadInfo()
		if !d.IsValidFile() {
			return fmt.Errorf("not a valid WAVE file: %s", path)
		}

		fmt.Printf("file: %s\n", path)
		fmt.Printf("format: PCM (%d)\n", d.WavAudioFormat)
		fmt.Printf("sample_rate: %d Hz\n", d.SampleRate)
		fmt.Printf("channels: %d\n", d.NumChans)
		fmt.Printf("bit_depth: %d\n", d.BitDepth)

		if dur, err := d.Duration(); err == nil {
			fmt.Printf("duration: %s\n", dur)
		}

		peak, err := peakAmplitude(d)
		if err != nil {
			return fmt.Errorf("failed to scan samples: %w", err)
		}
		fmt.Printf("peak_amplitude: %d\n", peak)

		return nil
	},
}

// peakAmplitude scans the PCM data in chunks and returns the largest
// absolute sample value.
func peakAmplitude(d *wav.Decoder) (int, error) {
	buf := &gaudio.IntBuffer{Data: make([]int, 8192)}
	peak := 0

	for {
		n, err := d.PCMBuffer(buf)
		if err != nil {
			return peak, err
		}
		if n == 0 {
			return peak, nil
		}
		for _, s := range buf.Data[:n] {
			if s < 0 {
				s = -s
			}
			if s > peak {
				peak = s
			}
		}
	}
}
