package storage

import (
	"path/filepath"
	"testing"

	"github.com/himanishpuri/landmarkfp/pkg/landmarkfp/model"
)

func openTestDB(t *testing.T) *SQLite {
	t.Helper()
	path := filepath.Join(t.TempDir(), "index.db")
	db, err := Open(path, model.DefaultParams())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpenCreatesParamsRowOnFirstUse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.db")
	p := model.DefaultParams()

	db, err := Open(path, p)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if db.Params() != p {
		t.Errorf("expected stored params to round-trip, got %+v", db.Params())
	}
	db.Close()

	reopened, err := Open(path, p)
	if err != nil {
		t.Fatalf("reopen with identical params should succeed: %v", err)
	}
	reopened.Close()
}

func TestOpenRejectsSchemaMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.db")
	p := model.DefaultParams()

	db, err := Open(path, p)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	db.Close()

	changed := p
	changed.HashFanout = p.HashFanout + 1
	_, err = Open(path, changed)
	if err == nil {
		t.Fatal("expected SchemaMismatchError on reopen with different params")
	}
	if _, ok := err.(*model.SchemaMismatchError); !ok {
		t.Errorf("expected *model.SchemaMismatchError, got %T: %v", err, err)
	}
}

func TestSongCRUD(t *testing.T) {
	db := openTestDB(t)

	song := model.Song{ID: 1, Artist: "Artist", Title: "Title", DurationFrames: 1000, SourceRef: "local:/music/a.mp3"}
	if err := db.AddSongWithHashes(song, nil); err != nil {
		t.Fatalf("AddSongWithHashes: %v", err)
	}

	exists, err := db.SongExists(1)
	if err != nil || !exists {
		t.Fatalf("SongExists: exists=%v err=%v", exists, err)
	}

	got, err := db.GetSong(1)
	if err != nil {
		t.Fatalf("GetSong: %v", err)
	}
	if got == nil || got.Title != "Title" || got.Artist != "Artist" {
		t.Fatalf("unexpected song: %+v", got)
	}

	list, err := db.ListSongs()
	if err != nil || len(list) != 1 {
		t.Fatalf("ListSongs: %v items, err=%v", len(list), err)
	}

	if err := db.DeleteSong(1); err != nil {
		t.Fatalf("DeleteSong: %v", err)
	}
	exists, err = db.SongExists(1)
	if err != nil || exists {
		t.Fatalf("expected song gone after delete: exists=%v err=%v", exists, err)
	}
}

func TestGetSongMissingReturnsNil(t *testing.T) {
	db := openTestDB(t)
	song, err := db.GetSong(999)
	if err != nil {
		t.Fatalf("GetSong: %v", err)
	}
	if song != nil {
		t.Errorf("expected nil for missing song, got %+v", song)
	}
}

func TestDeleteSongCascadesHashes(t *testing.T) {
	db := openTestDB(t)
	song := model.Song{ID: 1, Title: "T"}
	hashes := []model.HashRecord{
		{Key: [16]byte{1}, AnchorT: 0},
		{Key: [16]byte{2}, AnchorT: 5},
	}
	if err := db.AddSongWithHashes(song, hashes); err != nil {
		t.Fatalf("AddSongWithHashes: %v", err)
	}

	count, err := db.CountHashes(1)
	if err != nil || count != 2 {
		t.Fatalf("CountHashes before delete: %d, err=%v", count, err)
	}

	if err := db.DeleteSong(1); err != nil {
		t.Fatalf("DeleteSong: %v", err)
	}

	count, err = db.CountHashes(1)
	if err != nil || count != 0 {
		t.Fatalf("expected hashes to cascade-delete, got %d, err=%v", count, err)
	}
}

func TestLookupAndLookupBatch(t *testing.T) {
	db := openTestDB(t)

	keyA := [16]byte{0xaa}
	keyB := [16]byte{0xbb}
	if err := db.AddSongWithHashes(model.Song{ID: 1, Title: "A"}, []model.HashRecord{{Key: keyA, AnchorT: 3}}); err != nil {
		t.Fatalf("AddSongWithHashes: %v", err)
	}
	if err := db.AddSongWithHashes(model.Song{ID: 2, Title: "B"}, []model.HashRecord{{Key: keyA, AnchorT: 7}, {Key: keyB, AnchorT: 1}}); err != nil {
		t.Fatalf("AddSongWithHashes: %v", err)
	}

	couples, err := db.Lookup(keyA)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if len(couples) != 2 {
		t.Fatalf("expected 2 postings for keyA, got %d", len(couples))
	}

	batch, err := db.LookupBatch([][16]byte{keyA, keyB})
	if err != nil {
		t.Fatalf("LookupBatch: %v", err)
	}
	if len(batch[keyA]) != 2 {
		t.Errorf("expected 2 postings for keyA in batch, got %d", len(batch[keyA]))
	}
	if len(batch[keyB]) != 1 {
		t.Errorf("expected 1 posting for keyB in batch, got %d", len(batch[keyB]))
	}
}

func TestLookupBatchEmptyKeysReturnsEmptyMap(t *testing.T) {
	db := openTestDB(t)
	result, err := db.LookupBatch(nil)
	if err != nil {
		t.Fatalf("LookupBatch: %v", err)
	}
	if len(result) != 0 {
		t.Errorf("expected empty map, got %d entries", len(result))
	}
}
