// Package model holds the plain data types shared between the fingerprint,
// storage, and match packages. None of these types carry behavior; they are
// the wire format between pipeline stages.
package model

// Peak is a single spectral landmark: a (frequency bin, time frame) pair
// plus the magnitude that earned it a place in the constellation.
type Peak struct {
	FreqBin   int
	TimeFrame int
	MagDB     float64
}

// HashRecord is one landmark-pair hash emitted by the hasher: a 128-bit key
// and the time frame of the anchor peak that produced it.
type HashRecord struct {
	Key     [16]byte
	AnchorT int
}

// Couple is the value half of a posting: which song and at what anchor time
// a given hash key was observed.
type Couple struct {
	SongID  int64
	AnchorT int
}

// Match is a single candidate surfaced by the matcher, before metadata is
// joined in.
type Match struct {
	SongID     int64
	BestOffset int
	Votes      int
	TotalHits  int
}

// Song is a reference track's metadata, as returned by ListSongs/GetSong.
type Song struct {
	ID             int64
	Artist         string
	Title          string
	DurationFrames int
	SourceRef      string
}

// Candidate is one ranked match returned by Identify, joining a Match with
// song metadata.
type Candidate struct {
	SongID     int64
	Artist     string
	Title      string
	Votes      int
	BestOffset int
	TotalHits  int
}

// ManifestItem describes one library entry to ingest during Build. Exactly
// one of Path or URL should be set: Path for a local audio file already on
// disk, URL for a remote source (e.g. a YouTube watch URL) that the
// acquisition collaborator must fetch first.
type ManifestItem struct {
	SongID int64  `json:"song_id"`
	Artist string `json:"artist"`
	Title  string `json:"title"`
	Path   string `json:"path,omitempty"`
	URL    string `json:"url,omitempty"`
}

// BuildItemResult records the outcome of ingesting a single manifest item,
// so a caller (typically the CLI) can report per-item success/skip/failure
// without Build aborting the batch.
type BuildItemResult struct {
	SongID int64
	Status string // "added", "skipped", "failed"
	Detail string
	Hashes int
}

// BuildReport summarizes a Build call across the whole manifest.
type BuildReport struct {
	Items   []BuildItemResult
	Added   int
	Skipped int
	Failed  int
}
