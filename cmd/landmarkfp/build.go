package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/himanishpuri/landmarkfp/pkg/landmarkfp"
	"github.com/himanishpuri/landmarkfp/pkg/logger"
)

func newBuildCmd() *cobra.Command {
	var idsFlag string
	var force bool

	cmd := &cobra.Command{
		Use:   "build <manifest.json>",
		Short: "Build or extend the fingerprint index from a manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manifest, err := loadManifest(args[0])
			if err != nil {
				return err
			}

			if idsFlag != "" {
				manifest, err = filterByIDs(manifest, idsFlag)
				if err != nil {
					return err
				}
			}

			svc, err := landmarkfp.New(landmarkfp.WithDBPath(dbPath))
			if err != nil {
				return fmt.Errorf("opening index: %w", err)
			}
			defer svc.Close()

			log := logger.GetLogger()
			bar := progressbar.NewOptions(len(manifest),
				progressbar.OptionSetDescription("fingerprinting"),
				progressbar.OptionShowCount(),
			)

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Hour)
			defer cancel()

			var full landmarkfp.BuildReport
			for _, item := range manifest {
				report, err := svc.Build(ctx, []landmarkfp.ManifestItem{item}, force)
				if err != nil {
					return fmt.Errorf("build: %w", err)
				}
				full.Items = append(full.Items, report.Items...)
				full.Added += report.Added
				full.Skipped += report.Skipped
				full.Failed += report.Failed
				bar.Add(1)
			}
			fmt.Println()

			for _, r := range full.Items {
				switch r.Status {
				case "added":
					fmt.Printf("added    song_id=%d (%d hashes)\n", r.SongID, r.Hashes)
				case "skipped":
					fmt.Printf("skipped  song_id=%d (%s)\n", r.SongID, r.Detail)
				default:
					fmt.Printf("failed   song_id=%d: %s\n", r.SongID, r.Detail)
					log.Warnf("build failed for song_id=%d: %s", r.SongID, r.Detail)
				}
			}

			fmt.Printf("\n%d added, %d skipped, %d failed\n", full.Added, full.Skipped, full.Failed)
			return nil
		},
	}

	cmd.Flags().StringVar(&idsFlag, "ids", "", "comma-separated song_ids to build (default: whole manifest)")
	cmd.Flags().BoolVar(&force, "force", false, "rebuild song_ids that already exist in the index")
	return cmd
}

func loadManifest(path string) ([]landmarkfp.ManifestItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var manifest []landmarkfp.ManifestItem
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	return manifest, nil
}

func filterByIDs(manifest []landmarkfp.ManifestItem, idsFlag string) ([]landmarkfp.ManifestItem, error) {
	wanted := make(map[int64]bool)
	for _, s := range strings.Split(idsFlag, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --ids entry %q: %w", s, err)
		}
		wanted[id] = true
	}
	var out []landmarkfp.ManifestItem
	for _, item := range manifest {
		if wanted[item.SongID] {
			out = append(out, item)
		}
	}
	return out, nil
}
