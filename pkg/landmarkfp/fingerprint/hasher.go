package fingerprint

import (
	"crypto/md5"
	"encoding/binary"

	"github.com/himanishpuri/landmarkfp/pkg/landmarkfp/model"
)

// HashPeaks pairs each peak with up to HashFanout later peaks in its target
// zone and derives a stable 128-bit key from each pair. peaks must be
// sorted by TimeFrame ascending (ExtractPeaks guarantees this).
func HashPeaks(peaks []model.Peak, p model.Params) []model.HashRecord {
	var hashes []model.HashRecord
	for i, anchor := range peaks {
		fanout := 0
		for j := i + 1; j < len(peaks) && fanout < p.HashFanout; j++ {
			target := peaks[j]
			dt := target.TimeFrame - anchor.TimeFrame
			if dt < p.TargetZoneMinDT {
				continue
			}
			if dt > p.TargetZoneMaxDT {
				break
			}
			if abs(target.FreqBin-anchor.FreqBin) > p.TargetZoneFreqBins {
				continue
			}
			hashes = append(hashes, model.HashRecord{
				Key:     hashPair(anchor.FreqBin, target.FreqBin, dt),
				AnchorT: anchor.TimeFrame,
			})
			fanout++
		}
	}
	return hashes
}

// hashPair derives the 16-byte MD5 key for one landmark pair. The digest
// need not be cryptographically strong, only a stable, well-distributed
// bucketing key: MD5 is cheap and the 128-bit output matches the storage
// layer's fixed-width key column.
func hashPair(anchorFreq, targetFreq, deltaT int) [16]byte {
	var buf [12]byte
	binary.BigEndian.PutUint32(buf[0:4], uint32(anchorFreq))
	binary.BigEndian.PutUint32(buf[4:8], uint32(targetFreq))
	binary.BigEndian.PutUint32(buf[8:12], uint32(deltaT))
	return md5.Sum(buf[:])
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
