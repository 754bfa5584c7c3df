package landmarkfp

import (
	"context"

	"github.com/himanishpuri/landmarkfp/pkg/landmarkfp/model"
)

// Service is the library-level API: build an index from a manifest, and
// identify unknown audio or pre-computed hashes against it.
type Service interface {
	// Build ingests every item in manifest. Items whose song_id already
	// exists are skipped unless force is set, in which case the existing
	// song and its hashes are deleted and rebuilt. Items whose audio yields
	// no landmark hashes are skipped. A failure on one item, storage errors
	// included, is recorded in the returned report and does not abort the
	// rest of the batch; the returned error is non-nil only when ctx is
	// done before the next item starts.
	Build(ctx context.Context, manifest []ManifestItem, force bool) (BuildReport, error)

	// Identify fingerprints the given PCM samples and ranks index
	// candidates by temporal alignment. samples is interleaved
	// multi-channel PCM at sampleRate; channels must divide len(samples).
	Identify(ctx context.Context, samples []float64, channels, sampleRate, topk int) ([]Candidate, error)

	// IdentifyHashes skips the signal front-end and matches pre-computed
	// hashes directly, for callers that already have a fingerprint (e.g.
	// a WASM frontend that ran ExtractPeaks client-side).
	IdentifyHashes(ctx context.Context, hashes []model.HashRecord, topk int) ([]Candidate, error)

	// GetSong retrieves one song's metadata by ID.
	GetSong(songID int64) (*Song, error)

	// ListSongs returns every song currently indexed.
	ListSongs() ([]Song, error)

	// DeleteSong removes a song and all of its postings.
	DeleteSong(songID int64) error

	// Close releases the underlying storage handle.
	Close() error
}

// Storage is the persistence-layer interface the Service depends on.
// Implementations must serialize writers and allow concurrent readers
// (the default SQLite-backed implementation relies on WAL mode for this).
type Storage interface {
	Params() Params

	SongExists(songID int64) (bool, error)
	DeleteSong(songID int64) error
	GetSong(songID int64) (*Song, error)
	ListSongs() ([]Song, error)

	// AddSongWithHashes inserts a song and its landmark-pair hashes in a
	// single transaction, so a reader never observes a song row with no
	// postings and a crash between the two writes cannot orphan a song.
	AddSongWithHashes(song Song, hashes []model.HashRecord) error
	Lookup(key [16]byte) ([]model.Couple, error)
	LookupBatch(keys [][16]byte) (map[[16]byte][]model.Couple, error)
	CountHashes(songID int64) (int, error)

	Close() error
}

// Logger is the logging interface the Service and its collaborators use.
// Any implementation satisfying this (including the standard library's
// slog.Logger via a thin adapter) may be substituted with WithLogger.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}
