package landmarkfp

import (
	"context"
	"errors"
	"fmt"

	"github.com/himanishpuri/landmarkfp/pkg/landmarkfp/audio"
	"github.com/himanishpuri/landmarkfp/pkg/landmarkfp/fingerprint"
	"github.com/himanishpuri/landmarkfp/pkg/landmarkfp/match"
	"github.com/himanishpuri/landmarkfp/pkg/landmarkfp/model"
	"github.com/himanishpuri/landmarkfp/pkg/landmarkfp/storage"
	pkglogger "github.com/himanishpuri/landmarkfp/pkg/logger"
)

// service is the concrete Service implementation wiring together the
// signal front-end (fingerprint), the index (storage), and the voting
// matcher (match).
type service struct {
	cfg     Config
	storage Storage
	log     Logger
	acquire audio.Acquirer
}

// New constructs a Service. With no options it opens (or creates) a
// SQLite index at the default path using DefaultParams().
func New(opts ...Option) (Service, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.Logger == nil {
		cfg.Logger = pkglogger.GetLogger()
	}

	if cfg.Storage == nil {
		st, err := storage.Open(cfg.DBPath, cfg.Params)
		if err != nil {
			return nil, err
		}
		cfg.Storage = st
	}

	return &service{
		cfg:     *cfg,
		storage: cfg.Storage,
		log:     cfg.Logger,
		acquire: audio.NewAcquirer(cfg.TempDir, cfg.Params.SampleRate),
	}, nil
}

func (s *service) Close() error { return s.storage.Close() }

func (s *service) GetSong(songID int64) (*Song, error) { return s.storage.GetSong(songID) }

func (s *service) ListSongs() ([]Song, error) { return s.storage.ListSongs() }

func (s *service) DeleteSong(songID int64) error { return s.storage.DeleteSong(songID) }

// Build ingests every manifest item, skipping song_ids that already exist
// unless force is set.
func (s *service) Build(ctx context.Context, manifest []ManifestItem, force bool) (BuildReport, error) {
	var report BuildReport

	for _, item := range manifest {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		result := s.buildOne(ctx, item, force)
		report.Items = append(report.Items, result)
		switch result.Status {
		case "added":
			report.Added++
		case "skipped":
			report.Skipped++
		default:
			report.Failed++
		}
	}

	return report, nil
}

func (s *service) buildOne(ctx context.Context, item ManifestItem, force bool) BuildItemResult {
	result := BuildItemResult{SongID: item.SongID}

	exists, err := s.storage.SongExists(item.SongID)
	if err != nil {
		result.Status = "failed"
		result.Detail = err.Error()
		return result
	}
	if exists {
		if !force {
			result.Status = "skipped"
			result.Detail = "song_id already indexed"
			return result
		}
		if err := s.storage.DeleteSong(item.SongID); err != nil {
			result.Status = "failed"
			result.Detail = err.Error()
			return result
		}
	}

	source := item.Path
	if source == "" {
		source = item.URL
	}

	samples, channels, sampleRate, err := s.acquire.Fetch(ctx, item.Path, item.URL)
	if err != nil {
		result.Status = "failed"
		result.Detail = err.Error()
		return result
	}

	hashes, durationFrames, err := s.fingerprintSamples(samples, channels, sampleRate)
	var empty *model.EmptyFingerprintError
	if err != nil && !errors.As(err, &empty) {
		result.Status = "failed"
		result.Detail = err.Error()
		return result
	}
	if empty == nil && len(hashes) == 0 {
		empty = &model.EmptyFingerprintError{Source: source, Reason: "no landmark hashes"}
	}
	if empty != nil {
		result.Status = "skipped"
		result.Detail = empty.Error()
		s.log.Infof("skipping song_id=%d: %s", item.SongID, result.Detail)
		return result
	}

	song := model.Song{
		ID:             item.SongID,
		Artist:         item.Artist,
		Title:          item.Title,
		DurationFrames: durationFrames,
		SourceRef:      source,
	}
	if err := s.storage.AddSongWithHashes(song, hashes); err != nil {
		result.Status = "failed"
		result.Detail = err.Error()
		return result
	}

	result.Status = "added"
	result.Hashes = len(hashes)
	s.log.Infof("indexed song_id=%d %q by %q (%d hashes)", item.SongID, item.Title, item.Artist, len(hashes))
	return result
}

// Identify fingerprints unknown PCM and ranks index candidates by
// temporal alignment.
func (s *service) Identify(ctx context.Context, samples []float64, channels, sampleRate, topk int) ([]Candidate, error) {
	hashes, _, err := s.fingerprintSamples(samples, channels, sampleRate)
	if err != nil {
		return nil, err
	}
	return s.IdentifyHashes(ctx, hashes, topk)
}

// IdentifyHashes matches pre-computed hashes directly against the index.
func (s *service) IdentifyHashes(ctx context.Context, hashes []model.HashRecord, topk int) ([]Candidate, error) {
	if len(hashes) == 0 {
		return nil, nil
	}

	matches, err := match.Vote(hashes, s.storage.LookupBatch)
	if err != nil {
		return nil, &model.StoreIOError{Op: "vote", Err: err}
	}
	matches = match.TopK(matches, topk)

	candidates := make([]Candidate, 0, len(matches))
	for _, m := range matches {
		song, err := s.storage.GetSong(m.SongID)
		if err != nil {
			s.log.Warnf("identify: fetching song %d: %v", m.SongID, err)
			continue
		}
		if song == nil {
			continue
		}
		candidates = append(candidates, Candidate{
			SongID:     m.SongID,
			Artist:     song.Artist,
			Title:      song.Title,
			Votes:      m.Votes,
			BestOffset: m.BestOffset,
			TotalHits:  m.TotalHits,
		})
	}
	return candidates, nil
}

func (s *service) fingerprintSamples(samples []float64, channels, sampleRate int) ([]model.HashRecord, int, error) {
	if len(samples) == 0 {
		return nil, 0, &model.EmptyFingerprintError{Source: "samples", Reason: "zero-length input"}
	}
	if channels <= 0 || len(samples)%channels != 0 {
		return nil, 0, &UsageError{Msg: fmt.Sprintf("samples length %d not divisible by channels %d", len(samples), channels)}
	}

	spec := fingerprint.Compute(samples, channels, sampleRate, s.cfg.Params)
	peaks := fingerprint.ExtractPeaks(spec, s.cfg.Params)
	hashes := fingerprint.HashPeaks(peaks, s.cfg.Params)

	durationFrames := len(samples) / channels
	return hashes, durationFrames, nil
}
