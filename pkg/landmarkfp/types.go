package landmarkfp

import "github.com/himanishpuri/landmarkfp/pkg/landmarkfp/model"

// These are re-exported from model so that fingerprint/storage/match can
// construct and return them without importing this package back.
type (
	Song            = model.Song
	Candidate       = model.Candidate
	ManifestItem    = model.ManifestItem
	BuildItemResult = model.BuildItemResult
	BuildReport     = model.BuildReport
)
