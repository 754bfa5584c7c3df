// Package storage implements the SQLite-backed inverted index: song
// metadata, hash postings, and the embedded parameter fingerprint used to
// detect schema mismatches on reopen.
package storage

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/himanishpuri/landmarkfp/pkg/landmarkfp/model"
)

// songRow is the GORM model for a reference track. Unlike the teacher's
// autoincrement Song table, ID is caller-supplied (the manifest's
// song_id) so Build is idempotent across rebuilds.
type songRow struct {
	ID             int64 `gorm:"primaryKey;autoIncrement:false"`
	Artist         string
	Title          string
	DurationFrames int
	SourceRef      string
	CreatedAt      time.Time
}

func (songRow) TableName() string { return "songs" }

// hashRow is one posting: a landmark-pair hash key pointing at a song and
// the anchor time frame it was recorded at. Key is the raw 16-byte digest
// stored as a BLOB, matching the schema directly rather than a hex-text
// encoding of it.
type hashRow struct {
	ID      uint64 `gorm:"primaryKey;autoIncrement"`
	Key     []byte `gorm:"index:idx_hash_key;type:blob;size:16"`
	SongID  int64  `gorm:"index:idx_hash_song"`
	AnchorT int
}

func (hashRow) TableName() string { return "hashes" }

// paramsRow stores the single-row fingerprint parameter fingerprint that
// every index embeds. A mismatch against the caller's Params on Open means
// the index was built with a different spectrogram/peak/hash configuration
// and cannot be safely queried.
type paramsRow struct {
	ID                   uint `gorm:"primaryKey"`
	SampleRate           int
	FFTSize              int
	HopSize              int
	PeakNeighborhoodFreq int
	PeakNeighborhoodTime int
	TopPeaksPerFrame     int
	TargetZoneMinDT      int
	TargetZoneMaxDT      int
	TargetZoneFreqBins   int
	HashFanout           int
}

func (paramsRow) TableName() string { return "fingerprint_params" }

func paramsToRow(p model.Params) paramsRow {
	return paramsRow{
		ID:                   1,
		SampleRate:           p.SampleRate,
		FFTSize:              p.FFTSize,
		HopSize:              p.HopSize,
		PeakNeighborhoodFreq: p.PeakNeighborhoodFreq,
		PeakNeighborhoodTime: p.PeakNeighborhoodTime,
		TopPeaksPerFrame:     p.TopPeaksPerFrame,
		TargetZoneMinDT:      p.TargetZoneMinDT,
		TargetZoneMaxDT:      p.TargetZoneMaxDT,
		TargetZoneFreqBins:   p.TargetZoneFreqBins,
		HashFanout:           p.HashFanout,
	}
}

func rowToParams(r paramsRow) model.Params {
	return model.Params{
		SampleRate:           r.SampleRate,
		FFTSize:              r.FFTSize,
		HopSize:              r.HopSize,
		PeakNeighborhoodFreq: r.PeakNeighborhoodFreq,
		PeakNeighborhoodTime: r.PeakNeighborhoodTime,
		TopPeaksPerFrame:     r.TopPeaksPerFrame,
		TargetZoneMinDT:      r.TargetZoneMinDT,
		TargetZoneMaxDT:      r.TargetZoneMaxDT,
		TargetZoneFreqBins:   r.TargetZoneFreqBins,
		HashFanout:           r.HashFanout,
	}
}

// SQLite is a gorm.io-backed implementation of landmarkfp.Storage.
type SQLite struct {
	db     *gorm.DB
	sqlDB  *sql.DB
	params model.Params
}

// Open opens (or creates) the SQLite index at path. If the file already
// holds a fingerprint_params row that differs from params, Open fails with
// *model.SchemaMismatchError instead of silently querying a mismatched
// index.
func Open(path string, params model.Params) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, &model.StoreIOError{Op: "mkdir", Err: err}
		}
	}

	gormConfig := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
	db, err := gorm.Open(sqlite.Open(path), gormConfig)
	if err != nil {
		return nil, &model.StoreIOError{Op: "open", Err: err}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, &model.StoreIOError{Op: "open", Err: err}
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// WAL + NORMAL durability: readers never block on the writer, and a
	// crash can only lose the last uncommitted transaction rather than
	// corrupt the file.
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	} {
		if err := db.Exec(pragma).Error; err != nil {
			sqlDB.Close()
			return nil, &model.StoreIOError{Op: "pragma", Err: err}
		}
	}

	if err := db.AutoMigrate(&songRow{}, &hashRow{}, &paramsRow{}); err != nil {
		sqlDB.Close()
		return nil, &model.StoreIOError{Op: "migrate", Err: err}
	}

	var existing paramsRow
	err = db.First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := db.Create(paramsToRowPtr(params)).Error; err != nil {
			sqlDB.Close()
			return nil, &model.StoreIOError{Op: "write params", Err: err}
		}
	case err != nil:
		sqlDB.Close()
		return nil, &model.StoreIOError{Op: "read params", Err: err}
	default:
		stored := rowToParams(existing)
		if diff := stored.Diff(params); diff != "" {
			sqlDB.Close()
			return nil, &model.SchemaMismatchError{Path: path, Diff: diff}
		}
	}

	return &SQLite{db: db, sqlDB: sqlDB, params: params}, nil
}

func paramsToRowPtr(p model.Params) *paramsRow {
	r := paramsToRow(p)
	return &r
}

// Params returns the fingerprint parameter set this index was opened with.
func (s *SQLite) Params() model.Params { return s.params }

// Close releases the underlying database handle.
func (s *SQLite) Close() error {
	if s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// SongExists reports whether a song with the given ID is already indexed.
func (s *SQLite) SongExists(songID int64) (bool, error) {
	var count int64
	if err := s.db.Model(&songRow{}).Where("id = ?", songID).Count(&count).Error; err != nil {
		return false, &model.StoreIOError{Op: "song exists", Err: err}
	}
	return count > 0, nil
}

// AddSongWithHashes inserts song metadata and its landmark-pair hashes in a
// single transaction: a reader can never observe a committed song with no
// postings, and a mid-write crash cannot leave an orphaned song row behind.
func (s *SQLite) AddSongWithHashes(song model.Song, hashes []model.HashRecord) error {
	row := songRow{
		ID:             song.ID,
		Artist:         song.Artist,
		Title:          song.Title,
		DurationFrames: song.DurationFrames,
		SourceRef:      song.SourceRef,
	}
	hashRows := make([]hashRow, 0, len(hashes))
	for _, h := range hashes {
		key := make([]byte, 16)
		copy(key, h.Key[:])
		hashRows = append(hashRows, hashRow{Key: key, SongID: song.ID, AnchorT: h.AnchorT})
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		if len(hashRows) == 0 {
			return nil
		}
		return tx.CreateInBatches(hashRows, 500).Error
	})
	if err != nil {
		return &model.StoreIOError{Op: "add song with hashes", Err: err}
	}
	return nil
}

// DeleteSong removes a song and all of its postings in one transaction.
func (s *SQLite) DeleteSong(songID int64) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("song_id = ?", songID).Delete(&hashRow{}).Error; err != nil {
			return err
		}
		return tx.Delete(&songRow{}, songID).Error
	})
	if err != nil {
		return &model.StoreIOError{Op: "delete song", Err: err}
	}
	return nil
}

// GetSong retrieves one song's metadata by ID.
func (s *SQLite) GetSong(songID int64) (*model.Song, error) {
	var row songRow
	err := s.db.First(&row, songID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, &model.StoreIOError{Op: "get song", Err: err}
	}
	song := rowToSong(row)
	return &song, nil
}

// ListSongs returns every indexed song.
func (s *SQLite) ListSongs() ([]model.Song, error) {
	var rows []songRow
	if err := s.db.Order("id").Find(&rows).Error; err != nil {
		return nil, &model.StoreIOError{Op: "list songs", Err: err}
	}
	out := make([]model.Song, 0, len(rows))
	for _, r := range rows {
		out = append(out, rowToSong(r))
	}
	return out, nil
}

func rowToSong(r songRow) model.Song {
	return model.Song{
		ID:             r.ID,
		Artist:         r.Artist,
		Title:          r.Title,
		DurationFrames: r.DurationFrames,
		SourceRef:      r.SourceRef,
	}
}

// CountHashes returns how many postings a song currently has.
func (s *SQLite) CountHashes(songID int64) (int, error) {
	var count int64
	if err := s.db.Model(&hashRow{}).Where("song_id = ?", songID).Count(&count).Error; err != nil {
		return 0, &model.StoreIOError{Op: "count hashes", Err: err}
	}
	return int(count), nil
}

// Lookup returns every posting stored under a single hash key.
func (s *SQLite) Lookup(key [16]byte) ([]model.Couple, error) {
	var rows []hashRow
	if err := s.db.Where("key = ?", key[:]).Find(&rows).Error; err != nil {
		return nil, &model.StoreIOError{Op: "lookup", Err: err}
	}
	out := make([]model.Couple, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.Couple{SongID: r.SongID, AnchorT: r.AnchorT})
	}
	return out, nil
}

// LookupBatch resolves postings for many hash keys in a single IN query,
// grouping the results back by key so the matcher can align each query
// hash with its anchor time. This is the hash-join half of identification.
func (s *SQLite) LookupBatch(keys [][16]byte) (map[[16]byte][]model.Couple, error) {
	result := make(map[[16]byte][]model.Couple, len(keys))
	if len(keys) == 0 {
		return result, nil
	}

	blobKeys := make([][]byte, len(keys))
	for i, k := range keys {
		blobKeys[i] = k[:]
	}

	var rows []hashRow
	if err := s.db.Where("key IN ?", blobKeys).Find(&rows).Error; err != nil {
		return nil, &model.StoreIOError{Op: "lookup batch", Err: err}
	}
	for _, r := range rows {
		var k [16]byte
		copy(k[:], r.Key)
		result[k] = append(result[k], model.Couple{SongID: r.SongID, AnchorT: r.AnchorT})
	}
	return result, nil
}
