// Package fingerprint implements the signal front-end and landmark-pair
// hashing scheme: spectrogram extraction, constellation peak picking, and
// target-zone hash derivation.
package fingerprint

import (
	"math"

	"github.com/mjibson/go-dsp/fft"

	"github.com/himanishpuri/landmarkfp/pkg/landmarkfp/model"
)

// hann returns a periodic Hann window of length n. Hann rather than the
// teacher's Hamming: its zero endpoints suppress the spectral leakage that
// would otherwise smear peak magnitudes across frequency bins.
func hann(n int) []float64 {
	w := make([]float64, n)
	for i := 0; i < n; i++ {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n))
	}
	return w
}

// Spectrogram is a decibel-scaled magnitude spectrogram, freq-major: cell
// (f, t) is stored at Data[f*NTime+t]. Silent cells are -Inf.
type Spectrogram struct {
	Data       []float64
	NFreq      int
	NTime      int
	SampleRate int
}

// At returns the decibel magnitude at frequency bin f, time frame t.
func (s *Spectrogram) At(f, t int) float64 { return s.Data[f*s.NTime+t] }

func (s *Spectrogram) set(f, t int, v float64) { s.Data[f*s.NTime+t] = v }

// Compute downmixes, resamples, and STFTs raw PCM into a decibel
// spectrogram. samples is interleaved multi-channel PCM at sourceRate.
func Compute(samples []float64, channels, sourceRate int, p model.Params) *Spectrogram {
	mono := Downmix(samples, channels)
	mono = Resample(mono, sourceRate, p.SampleRate)

	nFreq := p.FFTSize/2 + 1
	spec := &Spectrogram{NFreq: nFreq, SampleRate: p.SampleRate}

	if len(mono) == 0 {
		spec.NTime = 0
		return spec
	}

	win := hann(p.FFTSize)
	padded := reflectPadCentered(mono, p.FFTSize)
	nTime := len(mono)/p.HopSize + 1

	spec.NTime = nTime
	spec.Data = make([]float64, nFreq*nTime)

	frame := make([]float64, p.FFTSize)
	magnitudes := make([]float64, nFreq*nTime)
	globalMax := 0.0

	for t := 0; t < nTime; t++ {
		start := t * p.HopSize
		for i := 0; i < p.FFTSize; i++ {
			frame[i] = padded[start+i] * win[i]
		}
		spectrum := fft.FFTReal(frame)
		for f := 0; f < nFreq; f++ {
			mag := cmplxAbs(spectrum[f])
			magnitudes[f*nTime+t] = mag
			if mag > globalMax {
				globalMax = mag
			}
		}
	}

	for f := 0; f < nFreq; f++ {
		for t := 0; t < nTime; t++ {
			mag := magnitudes[f*nTime+t]
			if mag <= 0 || globalMax <= 0 {
				spec.set(f, t, math.Inf(-1))
				continue
			}
			spec.set(f, t, 20*math.Log10(mag/globalMax))
		}
	}

	return spec
}

func cmplxAbs(c complex128) float64 {
	return math.Hypot(real(c), imag(c))
}

// reflectPadCentered pads samples by fftSize/2 on each side using
// reflection, so frame t is centered on sample t*hopSize (librosa's
// center=True convention). Works for inputs shorter than the pad width by
// folding the reflection index, never indexing out of bounds.
func reflectPadCentered(samples []float64, fftSize int) []float64 {
	padAmt := fftSize / 2
	out := make([]float64, len(samples)+2*padAmt)
	for i := range out {
		out[i] = samples[reflectIndex(i-padAmt, len(samples))]
	}
	return out
}

// reflectIndex maps an arbitrary (possibly out-of-range) index into
// [0, n) by triangle-wave reflection, matching numpy's pad(mode="reflect")
// for any pad width, including widths exceeding n-1.
func reflectIndex(i, n int) int {
	if n <= 1 {
		return 0
	}
	period := 2 * (n - 1)
	i %= period
	if i < 0 {
		i += period
	}
	if i < n {
		return i
	}
	return period - i
}
