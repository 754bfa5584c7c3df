package landmarkfp

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/himanishpuri/landmarkfp/pkg/landmarkfp/storage"
)

// fakeAcquirer serves precomputed PCM samples keyed by path, standing in
// for ffmpeg/yt-dlp so Build can be exercised without either binary
// present.
type fakeAcquirer struct {
	bySource map[string]fakeAudio
}

type fakeAudio struct {
	samples    []float64
	channels   int
	sampleRate int
}

func (f *fakeAcquirer) Fetch(ctx context.Context, path, url string) ([]float64, int, int, error) {
	source := path
	if source == "" {
		source = url
	}
	a, ok := f.bySource[source]
	if !ok {
		return nil, 0, 0, errors.New("fakeAcquirer: no fixture for " + source)
	}
	return a.samples, a.channels, a.sampleRate, nil
}

type silentLogger struct{}

func (silentLogger) Debugf(string, ...any) {}
func (silentLogger) Infof(string, ...any)  {}
func (silentLogger) Warnf(string, ...any)  {}
func (silentLogger) Errorf(string, ...any) {}

func sineSamples(freq float64, sampleRate, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * freq * float64(i) / float64(sampleRate))
	}
	return out
}

func newTestService(t *testing.T, acquirer *fakeAcquirer) *service {
	t.Helper()
	params := DefaultParams()
	st, err := storage.Open(filepath.Join(t.TempDir(), "index.db"), params)
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	return &service{
		cfg:     Config{Params: params},
		storage: st,
		log:     silentLogger{},
		acquire: acquirer,
	}
}

func TestBuildIndexesNewSong(t *testing.T) {
	samples := sineSamples(440, DefaultParams().SampleRate, DefaultParams().SampleRate*3)
	svc := newTestService(t, &fakeAcquirer{bySource: map[string]fakeAudio{
		"song.wav": {samples: samples, channels: 1, sampleRate: DefaultParams().SampleRate},
	}})

	report, err := svc.Build(context.Background(), []ManifestItem{
		{SongID: 1, Artist: "A", Title: "T", Path: "song.wav"},
	}, false)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if report.Added != 1 || report.Failed != 0 || report.Skipped != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}

	song, err := svc.GetSong(1)
	if err != nil || song == nil {
		t.Fatalf("expected song 1 to be indexed: %v, err=%v", song, err)
	}
}

func TestBuildSkipsExistingUnlessForced(t *testing.T) {
	samples := sineSamples(440, DefaultParams().SampleRate, DefaultParams().SampleRate*3)
	svc := newTestService(t, &fakeAcquirer{bySource: map[string]fakeAudio{
		"song.wav": {samples: samples, channels: 1, sampleRate: DefaultParams().SampleRate},
	}})

	item := ManifestItem{SongID: 1, Title: "T", Path: "song.wav"}
	if _, err := svc.Build(context.Background(), []ManifestItem{item}, false); err != nil {
		t.Fatalf("first Build: %v", err)
	}

	report, err := svc.Build(context.Background(), []ManifestItem{item}, false)
	if err != nil {
		t.Fatalf("second Build: %v", err)
	}
	if report.Skipped != 1 || report.Added != 0 {
		t.Fatalf("expected skip on re-build without force, got %+v", report)
	}

	report, err = svc.Build(context.Background(), []ManifestItem{item}, true)
	if err != nil {
		t.Fatalf("forced Build: %v", err)
	}
	if report.Added != 1 {
		t.Fatalf("expected force rebuild to re-add, got %+v", report)
	}
}

func TestBuildFailureDoesNotAbortBatch(t *testing.T) {
	samples := sineSamples(440, DefaultParams().SampleRate, DefaultParams().SampleRate*3)
	svc := newTestService(t, &fakeAcquirer{bySource: map[string]fakeAudio{
		"good.wav": {samples: samples, channels: 1, sampleRate: DefaultParams().SampleRate},
	}})

	report, err := svc.Build(context.Background(), []ManifestItem{
		{SongID: 1, Title: "Missing", Path: "missing.wav"},
		{SongID: 2, Title: "Good", Path: "good.wav"},
	}, false)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if report.Failed != 1 || report.Added != 1 {
		t.Fatalf("expected one failure and one success, got %+v", report)
	}
}

func TestIdentifyFindsSelfMatchAtZeroOffset(t *testing.T) {
	sampleRate := DefaultParams().SampleRate
	samples := sineSamples(440, sampleRate, sampleRate*5)
	svc := newTestService(t, &fakeAcquirer{bySource: map[string]fakeAudio{
		"song.wav": {samples: samples, channels: 1, sampleRate: sampleRate},
	}})

	if _, err := svc.Build(context.Background(), []ManifestItem{
		{SongID: 1, Artist: "Artist", Title: "Title", Path: "song.wav"},
	}, false); err != nil {
		t.Fatalf("Build: %v", err)
	}

	candidates, err := svc.Identify(context.Background(), samples, 1, sampleRate, 5)
	if err != nil {
		t.Fatalf("Identify: %v", err)
	}
	if len(candidates) == 0 {
		t.Fatal("expected at least one candidate for an exact self-match")
	}
	if candidates[0].SongID != 1 {
		t.Errorf("expected song 1 to rank first, got %+v", candidates[0])
	}
	if candidates[0].BestOffset != 0 {
		t.Errorf("expected a zero-offset self-match, got offset %d", candidates[0].BestOffset)
	}
}

func TestIdentifyEmptySamplesReturnsError(t *testing.T) {
	svc := newTestService(t, &fakeAcquirer{})
	if _, err := svc.Identify(context.Background(), nil, 1, DefaultParams().SampleRate, 5); err == nil {
		t.Error("expected an error identifying empty samples")
	}
}

func TestIdentifyHashesEmptyReturnsNilWithoutError(t *testing.T) {
	svc := newTestService(t, &fakeAcquirer{})
	candidates, err := svc.IdentifyHashes(context.Background(), nil, 5)
	if err != nil {
		t.Fatalf("IdentifyHashes: %v", err)
	}
	if candidates != nil {
		t.Errorf("expected nil candidates for empty hash input, got %v", candidates)
	}
}

func TestDeleteSongRemovesFromIndex(t *testing.T) {
	samples := sineSamples(440, DefaultParams().SampleRate, DefaultParams().SampleRate*3)
	svc := newTestService(t, &fakeAcquirer{bySource: map[string]fakeAudio{
		"song.wav": {samples: samples, channels: 1, sampleRate: DefaultParams().SampleRate},
	}})
	if _, err := svc.Build(context.Background(), []ManifestItem{
		{SongID: 1, Title: "T", Path: "song.wav"},
	}, false); err != nil {
		t.Fatalf("Build: %v", err)
	}

	if err := svc.DeleteSong(1); err != nil {
		t.Fatalf("DeleteSong: %v", err)
	}
	song, err := svc.GetSong(1)
	if err != nil {
		t.Fatalf("GetSong: %v", err)
	}
	if song != nil {
		t.Errorf("expected song to be gone after delete, got %+v", song)
	}
}
