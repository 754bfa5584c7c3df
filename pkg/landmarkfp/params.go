package landmarkfp

import "github.com/himanishpuri/landmarkfp/pkg/landmarkfp/model"

// Params is re-exported from model so fingerprint/storage/match can depend
// on the parameter set without importing this package back.
type Params = model.Params

// DefaultParams returns the reference implementation's constants.
func DefaultParams() Params { return model.DefaultParams() }
