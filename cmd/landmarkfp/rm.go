package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/himanishpuri/landmarkfp/pkg/landmarkfp"
)

func newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <song_id>",
		Short: "Remove a song and all of its postings from the index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			songID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid song_id: %w", err)
			}

			svc, err := landmarkfp.New(landmarkfp.WithDBPath(dbPath))
			if err != nil {
				return fmt.Errorf("opening index: %w", err)
			}
			defer svc.Close()

			song, err := svc.GetSong(songID)
			if err != nil {
				return fmt.Errorf("looking up song: %w", err)
			}
			if song == nil {
				return fmt.Errorf("no song with song_id=%d", songID)
			}

			if err := svc.DeleteSong(songID); err != nil {
				return fmt.Errorf("deleting song: %w", err)
			}

			fmt.Printf("removed song_id=%d %q by %s\n", song.ID, song.Title, song.Artist)
			return nil
		},
	}
}
