package model

import "fmt"

// Params is the full set of tunable fingerprinting constants. Changing any
// field invalidates an existing index: the same Params used to build an
// index must be supplied to open it, or storage returns a schema-mismatch
// error. Params is serialized verbatim into the index's
// fingerprint_params table so this is detectable instead of silently
// corrupting queries.
type Params struct {
	SampleRate int `json:"sample_rate"`

	FFTSize int `json:"fft_size"`
	HopSize int `json:"hop_size"`

	PeakNeighborhoodFreq int `json:"peak_neighborhood_freq"`
	PeakNeighborhoodTime int `json:"peak_neighborhood_time"`
	TopPeaksPerFrame     int `json:"top_peaks_per_frame"`

	TargetZoneMinDT    int `json:"target_zone_min_dt"`
	TargetZoneMaxDT    int `json:"target_zone_max_dt"`
	TargetZoneFreqBins int `json:"target_zone_freq_bins"`
	HashFanout         int `json:"hash_fanout"`
}

// DefaultParams returns the reference implementation's constants.
func DefaultParams() Params {
	return Params{
		SampleRate:           8000,
		FFTSize:              2048,
		HopSize:              512,
		PeakNeighborhoodFreq: 16,
		PeakNeighborhoodTime: 16,
		TopPeaksPerFrame:     16,
		TargetZoneMinDT:      2,
		TargetZoneMaxDT:      64,
		TargetZoneFreqBins:   48,
		HashFanout:           8,
	}
}

// Diff renders a human-readable description of the fields that differ
// between two parameter sets, or "" if they are identical. Used to build
// SchemaMismatchError messages.
func (p Params) Diff(o Params) string {
	if p == o {
		return ""
	}
	diffs := ""
	add := func(name string, a, b int) {
		if a != b {
			if diffs != "" {
				diffs += ", "
			}
			diffs += fmt.Sprintf("%s: index has %d, caller wants %d", name, a, b)
		}
	}
	add("sample_rate", p.SampleRate, o.SampleRate)
	add("fft_size", p.FFTSize, o.FFTSize)
	add("hop_size", p.HopSize, o.HopSize)
	add("peak_neighborhood_freq", p.PeakNeighborhoodFreq, o.PeakNeighborhoodFreq)
	add("peak_neighborhood_time", p.PeakNeighborhoodTime, o.PeakNeighborhoodTime)
	add("top_peaks_per_frame", p.TopPeaksPerFrame, o.TopPeaksPerFrame)
	add("target_zone_min_dt", p.TargetZoneMinDT, o.TargetZoneMinDT)
	add("target_zone_max_dt", p.TargetZoneMaxDT, o.TargetZoneMaxDT)
	add("target_zone_freq_bins", p.TargetZoneFreqBins, o.TargetZoneFreqBins)
	add("hash_fanout", p.HashFanout, o.HashFanout)
	return diffs
}
