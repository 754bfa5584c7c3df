package fingerprint

import (
	"math"
	"sort"

	"github.com/himanishpuri/landmarkfp/pkg/landmarkfp/model"
)

// ExtractPeaks runs the constellation peak picker over a spectrogram: a
// rectangular 2-D maximum filter locates local maxima, a 4-connected binary
// erosion of the silence mask removes maxima that sit entirely inside
// silent/background regions, and the per-time-frame survivors are capped
// to the top TopPeaksPerFrame by magnitude. The result is sorted by
// TimeFrame then FreqBin ascending.
func ExtractPeaks(spec *Spectrogram, p model.Params) []model.Peak {
	if spec.NTime == 0 || spec.NFreq == 0 {
		return nil
	}

	isLocalMax := maximumFilterEquals(spec, p.PeakNeighborhoodFreq, p.PeakNeighborhoodTime)
	background := make([]bool, len(spec.Data))
	for i, v := range spec.Data {
		background[i] = math.IsInf(v, -1)
	}
	erodedBackground := erodeBackground(background, spec.NFreq, spec.NTime)

	byFrame := make([][]model.Peak, spec.NTime)
	for f := 0; f < spec.NFreq; f++ {
		for t := 0; t < spec.NTime; t++ {
			idx := f*spec.NTime + t
			if !isLocalMax[idx] || erodedBackground[idx] {
				continue
			}
			byFrame[t] = append(byFrame[t], model.Peak{
				FreqBin:   f,
				TimeFrame: t,
				MagDB:     spec.Data[idx],
			})
		}
	}

	var peaks []model.Peak
	for t := 0; t < spec.NTime; t++ {
		frame := byFrame[t]
		sort.Slice(frame, func(i, j int) bool { return frame[i].MagDB > frame[j].MagDB })
		if len(frame) > p.TopPeaksPerFrame {
			frame = frame[:p.TopPeaksPerFrame]
		}
		peaks = append(peaks, frame...)
	}

	sort.Slice(peaks, func(i, j int) bool {
		if peaks[i].TimeFrame != peaks[j].TimeFrame {
			return peaks[i].TimeFrame < peaks[j].TimeFrame
		}
		return peaks[i].FreqBin < peaks[j].FreqBin
	})
	return peaks
}

// maximumFilterEquals reports, per cell, whether the cell equals the
// maximum of its neighborhood, where freqSize x timeSize is the *total*
// footprint extent (e.g. scipy's np.ones((16,16)), 16 cells wide, not a
// radius-16 window). scipy centers an even-sized footprint asymmetrically
// at origin=0: for a size-n axis the window covers n/2 cells before the
// center and n-1-n/2 after it, so size=16 yields offsets [-8, +7]. Cells
// outside the spectrogram are treated as -Inf (constant boundary), so edge
// cells are compared only against the neighbors that exist.
func maximumFilterEquals(spec *Spectrogram, freqSize, timeSize int) []bool {
	freqBefore, freqAfter := footprintSpan(freqSize)
	timeBefore, timeAfter := footprintSpan(timeSize)

	out := make([]bool, len(spec.Data))
	for f := 0; f < spec.NFreq; f++ {
		fLo, fHi := clampRange(f-freqBefore, f+freqAfter, spec.NFreq)
		for t := 0; t < spec.NTime; t++ {
			tLo, tHi := clampRange(t-timeBefore, t+timeAfter, spec.NTime)
			center := spec.At(f, t)
			maxV := math.Inf(-1)
			for ff := fLo; ff <= fHi; ff++ {
				for tt := tLo; tt <= tHi; tt++ {
					if v := spec.At(ff, tt); v > maxV {
						maxV = v
					}
				}
			}
			out[f*spec.NTime+t] = center >= maxV
		}
	}
	return out
}

// footprintSpan splits a total footprint extent into the (before, after)
// cell counts around the center, matching scipy's origin=0 centering: a
// size-n window covers n/2 cells before the center and n-1-n/2 after it.
func footprintSpan(size int) (before, after int) {
	if size <= 0 {
		return 0, 0
	}
	before = size / 2
	after = size - 1 - before
	return before, after
}

func clampRange(lo, hi, n int) (int, int) {
	if lo < 0 {
		lo = 0
	}
	if hi > n-1 {
		hi = n - 1
	}
	return lo, hi
}

// erodeBackground performs 4-connected binary erosion over the background
// (silence) mask with border_value=1: out-of-bounds neighbors count as
// background. A cell survives erosion only if it and all four of its
// direct neighbors are background.
func erodeBackground(background []bool, nFreq, nTime int) []bool {
	at := func(f, t int) bool {
		if f < 0 || f >= nFreq || t < 0 || t >= nTime {
			return true
		}
		return background[f*nTime+t]
	}
	out := make([]bool, len(background))
	for f := 0; f < nFreq; f++ {
		for t := 0; t < nTime; t++ {
			out[f*nTime+t] = at(f, t) && at(f-1, t) && at(f+1, t) && at(f, t-1) && at(f, t+1)
		}
	}
	return out
}
