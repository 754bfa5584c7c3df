package landmarkfp

import "github.com/himanishpuri/landmarkfp/pkg/landmarkfp/model"

// These are re-exported from model so that fingerprint/storage/match can
// construct them without importing this package back.
type (
	AcquisitionError      = model.AcquisitionError
	DecodeError           = model.DecodeError
	EmptyFingerprintError = model.EmptyFingerprintError
	StoreIOError          = model.StoreIOError
	SchemaMismatchError   = model.SchemaMismatchError
	UsageError            = model.UsageError
)
