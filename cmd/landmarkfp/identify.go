package main

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/himanishpuri/landmarkfp/pkg/landmarkfp"
	"github.com/himanishpuri/landmarkfp/pkg/landmarkfp/audio"
	"github.com/himanishpuri/landmarkfp/pkg/utils"
)

func newIdentifyCmd() *cobra.Command {
	var topk int
	var start, duration float64

	cmd := &cobra.Command{
		Use:   "identify <audio-file-or-url>...",
		Short: "Identify one or more audio snippets against the index",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := landmarkfp.New(landmarkfp.WithDBPath(dbPath))
			if err != nil {
				return fmt.Errorf("opening index: %w", err)
			}
			defer svc.Close()

			acquirer := audio.NewAcquirer("/tmp", 0)
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()

			for _, source := range args {
				fmt.Printf("\n%s\n", source)

				samples, channels, sampleRate, err := acquireQuery(ctx, acquirer, source)
				if err != nil {
					fmt.Printf("  could not acquire audio: %v\n", err)
					continue
				}

				samples = trimToWindow(samples, channels, sampleRate, start, duration)

				candidates, err := svc.Identify(ctx, samples, channels, sampleRate, topk)
				if err != nil {
					fmt.Printf("  identify failed: %v\n", err)
					continue
				}
				if len(candidates) == 0 {
					fmt.Println("  no match")
					continue
				}
				for i, c := range candidates {
					fmt.Printf("  %d. %q by %s (votes=%s offset=%d total_hits=%s)\n",
						i+1, c.Title, c.Artist,
						humanize.Comma(int64(c.Votes)), c.BestOffset, humanize.Comma(int64(c.TotalHits)))
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&topk, "topk", 5, "number of candidates to show")
	cmd.Flags().Float64Var(&start, "start", 0, "seconds to skip before the query window")
	cmd.Flags().Float64Var(&duration, "dur", 0, "seconds of audio to use from start (0 = whole file)")
	return cmd
}

func acquireQuery(ctx context.Context, acquirer audio.Acquirer, source string) ([]float64, int, int, error) {
	if isURL(source) {
		return acquirer.Fetch(ctx, "", source)
	}
	return acquirer.Fetch(ctx, source, "")
}

func isURL(s string) bool {
	if utils.IsYouTubeURL(s) {
		return true
	}
	return len(s) > 7 && (s[:7] == "http://" || (len(s) > 8 && s[:8] == "https://"))
}

func trimToWindow(samples []float64, channels, sampleRate int, start, duration float64) []float64 {
	if channels <= 0 || sampleRate <= 0 {
		return samples
	}
	startFrame := int(start * float64(sampleRate))
	startIdx := startFrame * channels
	if startIdx < 0 {
		startIdx = 0
	}
	if startIdx >= len(samples) {
		return nil
	}
	samples = samples[startIdx:]

	if duration <= 0 {
		return samples
	}
	endIdx := int(duration*float64(sampleRate)) * channels
	if endIdx < len(samples) {
		samples = samples[:endIdx]
	}
	return samples
}
