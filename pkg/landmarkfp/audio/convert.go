package audio

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/himanishpuri/landmarkfp/pkg/landmarkfp/model"
	"github.com/himanishpuri/landmarkfp/pkg/utils"
)

// convertToWAV shells out to ffmpeg to transcode an arbitrary audio
// container to PCM WAV, preserving the source's channel count and sample
// rate. Downmixing and resampling to the fingerprinting rate happen in
// pure Go afterward (fingerprint.Compute), so this step only needs to get
// the bytes into a format decodeWAV understands.
func convertToWAV(ctx context.Context, inputPath, tempDir string) (string, error) {
	if err := utils.MakeDir(tempDir); err != nil {
		return "", &model.AcquisitionError{Source: inputPath, Err: err}
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
	}

	outPath := filepath.Join(tempDir, utils.GenerateUUID()+".wav")

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-y",
		"-v", "quiet",
		"-i", inputPath,
		"-c:a", "pcm_s16le",
		outPath,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		if ctx.Err() != nil {
			return "", &model.AcquisitionError{Source: inputPath, Err: ctx.Err()}
		}
		return "", &model.AcquisitionError{Source: inputPath, Err: fmt.Errorf("ffmpeg: %w (%s)", err, out)}
	}

	return outPath, nil
}
