package fingerprint

import (
	"testing"

	"github.com/himanishpuri/landmarkfp/pkg/landmarkfp/model"
)

func TestHashPeaksIsDeterministic(t *testing.T) {
	peaks := []model.Peak{
		{FreqBin: 10, TimeFrame: 0, MagDB: 0},
		{FreqBin: 12, TimeFrame: 5, MagDB: -1},
		{FreqBin: 8, TimeFrame: 10, MagDB: -2},
	}
	p := model.DefaultParams()

	a := HashPeaks(peaks, p)
	b := HashPeaks(peaks, p)
	if len(a) != len(b) {
		t.Fatalf("non-deterministic hash count: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("non-deterministic hash at %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestHashPeaksRespectsTargetZoneWindow(t *testing.T) {
	p := model.DefaultParams()
	anchor := model.Peak{FreqBin: 0, TimeFrame: 0}
	peaks := []model.Peak{
		anchor,
		{FreqBin: 0, TimeFrame: p.TargetZoneMinDT - 1}, // too close
		{FreqBin: 0, TimeFrame: p.TargetZoneMinDT},     // in window
		{FreqBin: 0, TimeFrame: p.TargetZoneMaxDT},     // in window
		{FreqBin: 0, TimeFrame: p.TargetZoneMaxDT + 1}, // too far
	}

	// Every peak acts as an anchor; only the pairs anchored at t=0 exercise
	// the window edges listed above.
	hashes := HashPeaks(peaks, p)
	fromAnchor := 0
	for _, h := range hashes {
		if h.AnchorT == anchor.TimeFrame {
			fromAnchor++
		}
	}
	if fromAnchor != 2 {
		t.Fatalf("expected 2 pairs from the anchor within the target zone window, got %d", fromAnchor)
	}
}

func TestHashPeaksRespectsFreqBinWindow(t *testing.T) {
	p := model.DefaultParams()
	peaks := []model.Peak{
		{FreqBin: 100, TimeFrame: 0},
		{FreqBin: 100 + p.TargetZoneFreqBins, TimeFrame: p.TargetZoneMinDT},
		{FreqBin: 100 + p.TargetZoneFreqBins + 1, TimeFrame: p.TargetZoneMinDT + 1},
	}
	hashes := HashPeaks(peaks, p)
	if len(hashes) != 1 {
		t.Fatalf("expected 1 pair within the freq bin window, got %d", len(hashes))
	}
}

func TestHashPeaksCapsFanout(t *testing.T) {
	p := model.DefaultParams()
	p.HashFanout = 3

	peaks := []model.Peak{{FreqBin: 0, TimeFrame: 0}}
	for i := 0; i < 10; i++ {
		peaks = append(peaks, model.Peak{FreqBin: 0, TimeFrame: p.TargetZoneMinDT + i})
	}

	// The cap applies per anchor: count the pairs anchored at t=0, which
	// has 10 candidate targets in its zone.
	hashes := HashPeaks(peaks, p)
	fromAnchor := 0
	for _, h := range hashes {
		if h.AnchorT == 0 {
			fromAnchor++
		}
	}
	if fromAnchor != p.HashFanout {
		t.Fatalf("expected fanout capped at %d, got %d", p.HashFanout, fromAnchor)
	}
}

func TestHashPairProducesDistinctKeys(t *testing.T) {
	k1 := hashPair(1, 2, 3)
	k2 := hashPair(1, 2, 4)
	if k1 == k2 {
		t.Error("expected different deltaT to produce different hash keys")
	}
	if len(k1) != 16 {
		t.Errorf("expected a 16-byte key, got %d", len(k1))
	}
}
