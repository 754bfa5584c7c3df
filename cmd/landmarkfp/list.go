package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/himanishpuri/landmarkfp/pkg/landmarkfp"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every song currently indexed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := landmarkfp.New(landmarkfp.WithDBPath(dbPath))
			if err != nil {
				return fmt.Errorf("opening index: %w", err)
			}
			defer svc.Close()

			songs, err := svc.ListSongs()
			if err != nil {
				return fmt.Errorf("listing songs: %w", err)
			}
			if len(songs) == 0 {
				fmt.Println("index is empty")
				return nil
			}

			for _, s := range songs {
				fmt.Printf("%d  %-30q  %-20q  %s\n", s.ID, s.Title, s.Artist, humanize.Comma(int64(s.DurationFrames)))
			}
			return nil
		},
	}
}
