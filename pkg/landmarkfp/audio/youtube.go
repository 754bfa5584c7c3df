package audio

import (
	"context"
	"path/filepath"

	"github.com/lrstanley/go-ytdlp"

	"github.com/himanishpuri/landmarkfp/pkg/landmarkfp/model"
	"github.com/himanishpuri/landmarkfp/pkg/utils"
)

// downloadRemote fetches the best-available audio track from a remote URL
// (YouTube and anything else yt-dlp's extractors support) and saves it as
// a WAV file under tempDir. Replaces the teacher's raw yt-dlp exec.Command
// invocation with the go-ytdlp wrapper, which also handles locating or
// installing the yt-dlp binary itself.
func downloadRemote(ctx context.Context, url, tempDir string) (string, error) {
	if err := utils.MakeDir(tempDir); err != nil {
		return "", &model.AcquisitionError{Source: url, Err: err}
	}

	if _, err := ytdlp.Install(ctx, nil); err != nil {
		return "", &model.AcquisitionError{Source: url, Err: err}
	}

	outPath := filepath.Join(tempDir, utils.GenerateUUID()+".wav")

	dl := ytdlp.New().
		ExtractAudio().
		AudioFormat("wav").
		NoPlaylist().
		NoProgress().
		Output(outPath)

	if _, err := dl.Run(ctx, url); err != nil {
		return "", &model.AcquisitionError{Source: url, Err: err}
	}

	return outPath, nil
}
