package audio

import (
	"context"

	"github.com/himanishpuri/landmarkfp/pkg/landmarkfp/model"
	"github.com/himanishpuri/landmarkfp/pkg/utils"
)

// Acquirer obtains interleaved PCM samples from a local path or a remote
// URL, transcoding/downloading as needed.
type Acquirer interface {
	Fetch(ctx context.Context, path, url string) (samples []float64, channels, sampleRate int, err error)
}

type collaboratorAcquirer struct {
	tempDir string
}

// NewAcquirer builds the default Acquirer: ffmpeg for container
// transcoding, go-ytdlp for remote fetch, go-audio/wav for decode.
// targetSampleRate is unused here (resampling happens in the fingerprint
// package) but kept in the constructor signature for callers that may
// want to fetch pre-resampled audio in the future.
func NewAcquirer(tempDir string, targetSampleRate int) Acquirer {
	return &collaboratorAcquirer{tempDir: tempDir}
}

func (a *collaboratorAcquirer) Fetch(ctx context.Context, path, url string) ([]float64, int, int, error) {
	if path == "" && url == "" {
		return nil, 0, 0, &model.UsageError{Msg: "acquire: neither path nor url set"}
	}

	source := path
	if source == "" {
		local, err := downloadRemote(ctx, url, a.tempDir)
		if err != nil {
			return nil, 0, 0, err
		}
		defer utils.DeleteFile(local)
		source = local
	}

	wavPath, err := convertToWAV(ctx, source, a.tempDir)
	if err != nil {
		return nil, 0, 0, err
	}
	defer utils.DeleteFile(wavPath)

	samples, channels, sampleRate, err := decodeWAV(wavPath)
	if err != nil {
		return nil, 0, 0, err
	}
	return samples, channels, sampleRate, nil
}
