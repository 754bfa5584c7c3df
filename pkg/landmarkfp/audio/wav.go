// Package audio implements the acquisition and decode collaborators:
// fetching PCM samples from a local file or a remote URL, transcoding
// arbitrary containers to PCM via ffmpeg, and decoding WAV into the
// interleaved float64 samples the fingerprint package expects.
package audio

import (
	"os"

	"github.com/go-audio/wav"

	"github.com/himanishpuri/landmarkfp/pkg/landmarkfp/model"
)

// decodeWAV reads a PCM WAV file into interleaved float64 samples
// normalized to [-1, 1], along with its channel count and sample rate.
// Replaces the teacher's hand-rolled RIFF chunk scanner with go-audio/wav,
// which also tolerates the LIST/INFO/junk chunks many encoders emit.
func decodeWAV(path string) ([]float64, int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, 0, &model.DecodeError{Source: path, Err: err}
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, 0, &model.DecodeError{Source: path, Err: err}
	}
	if !dec.IsValidFile() {
		return nil, 0, 0, &model.DecodeError{Source: path, Err: errNotAWav}
	}

	channels := buf.Format.NumChannels
	sampleRate := buf.Format.SampleRate
	bitDepth := int(dec.BitDepth)
	if bitDepth == 0 {
		bitDepth = 16
	}
	scale := 1.0 / float64(int64(1)<<(uint(bitDepth)-1))

	samples := make([]float64, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = float64(v) * scale
	}

	return samples, channels, sampleRate, nil
}

var errNotAWav = decodeErr("not a valid WAV file")

type decodeErr string

func (e decodeErr) Error() string { return string(e) }
