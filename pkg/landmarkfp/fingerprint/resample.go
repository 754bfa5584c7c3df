package fingerprint

import "math"

// lanczosLobes is the half-width, in source samples, of the windowed-sinc
// kernel used by Resample. 3 lobes is the usual tradeoff between ringing
// and sharpness for speech/music resampling.
const lanczosLobes = 3

// Downmix averages interleaved multi-channel PCM down to mono. channels
// must divide len(samples) evenly.
func Downmix(samples []float64, channels int) []float64 {
	if channels <= 1 {
		out := make([]float64, len(samples))
		copy(out, samples)
		return out
	}
	n := len(samples) / channels
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		var sum float64
		base := i * channels
		for c := 0; c < channels; c++ {
			sum += samples[base+c]
		}
		out[i] = sum / float64(channels)
	}
	return out
}

// Resample converts mono PCM from srcRate to dstRate using windowed-sinc
// (Lanczos) interpolation. No library in the reachable ecosystem does
// sample-rate conversion in pure Go without cgo, so this is hand-rolled;
// see DESIGN.md.
func Resample(samples []float64, srcRate, dstRate int) []float64 {
	if len(samples) == 0 {
		return nil
	}
	if srcRate == dstRate {
		out := make([]float64, len(samples))
		copy(out, samples)
		return out
	}

	ratio := float64(dstRate) / float64(srcRate)
	outLen := int(math.Round(float64(len(samples)) * ratio))
	if outLen <= 0 {
		return nil
	}

	out := make([]float64, outLen)
	// When downsampling, widen the kernel support proportionally to avoid
	// aliasing (a standard windowed-sinc resampler trick).
	scale := ratio
	if scale > 1 {
		scale = 1
	}
	support := float64(lanczosLobes) / scale

	for i := 0; i < outLen; i++ {
		srcPos := float64(i) / ratio
		lo := int(math.Floor(srcPos - support))
		hi := int(math.Ceil(srcPos + support))

		var sum, weightSum float64
		for k := lo; k <= hi; k++ {
			x := (srcPos - float64(k)) * scale
			w := lanczosKernel(x)
			if w == 0 {
				continue
			}
			idx := clampIndex(k, len(samples))
			sum += samples[idx] * w
			weightSum += w
		}
		if weightSum != 0 {
			out[i] = sum / weightSum
		}
	}
	return out
}

func lanczosKernel(x float64) float64 {
	if x == 0 {
		return 1
	}
	ax := math.Abs(x)
	if ax >= lanczosLobes {
		return 0
	}
	piX := math.Pi * x
	return lanczosLobes * math.Sin(piX) * math.Sin(piX/lanczosLobes) / (piX * piX)
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
