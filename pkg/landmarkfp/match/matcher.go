// Package match implements the hash-join and time-offset histogram voting
// that turns a query's landmark hashes into ranked song candidates.
package match

import (
	"sort"

	"github.com/himanishpuri/landmarkfp/pkg/landmarkfp/model"
)

// Lookup resolves a batch of query hash keys to their stored postings,
// grouped by key. It is the storage-facing half of a match; Vote consumes
// its result.
type Lookup func(keys [][16]byte) (map[[16]byte][]model.Couple, error)

// offsetKey flattens (song_id, delta) into a single map key. A flattened
// map outperforms map[int64]map[int]int here: one hash lookup per vote
// instead of two, and no per-song sub-map allocation for songs that only
// ever get a handful of votes.
type offsetKey struct {
	songID int64
	delta  int
}

// Vote runs the offset-histogram voting pass: for every query hash that
// exists in the index, each posting casts a vote for (song, anchorT -
// queryAnchorT). The song/offset pair with the most votes is that song's
// best alignment; songs are ranked by their best offset's vote count.
//
// hashes must come from a single query fingerprint, in the same order
// ExtractPeaks/HashPeaks produced them, so AnchorT is comparable across
// query and index.
func Vote(hashes []model.HashRecord, lookup Lookup) ([]model.Match, error) {
	if len(hashes) == 0 {
		return nil, nil
	}

	keys := make([][16]byte, len(hashes))
	anchorByKey := make(map[[16]byte][]int)
	for i, h := range hashes {
		keys[i] = h.Key
		anchorByKey[h.Key] = append(anchorByKey[h.Key], h.AnchorT)
	}

	postings, err := lookup(keys)
	if err != nil {
		return nil, err
	}

	votes := make(map[offsetKey]int)
	totalHits := make(map[int64]int)

	for key, couples := range postings {
		queryAnchors := anchorByKey[key]
		for _, queryAnchorT := range queryAnchors {
			for _, c := range couples {
				delta := c.AnchorT - queryAnchorT
				votes[offsetKey{songID: c.SongID, delta: delta}]++
				totalHits[c.SongID]++
			}
		}
	}

	best := make(map[int64]model.Match)
	for ok, count := range votes {
		m, exists := best[ok.songID]
		if !exists || count > m.Votes {
			best[ok.songID] = model.Match{
				SongID:     ok.songID,
				BestOffset: ok.delta,
				Votes:      count,
				TotalHits:  totalHits[ok.songID],
			}
		}
	}

	matches := make([]model.Match, 0, len(best))
	for _, m := range best {
		matches = append(matches, m)
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Votes != matches[j].Votes {
			return matches[i].Votes > matches[j].Votes
		}
		if matches[i].TotalHits != matches[j].TotalHits {
			return matches[i].TotalHits > matches[j].TotalHits
		}
		return matches[i].SongID < matches[j].SongID
	})
	return matches, nil
}

// TopK truncates a ranked match list to at most k entries. k<=0 means no
// limit.
func TopK(matches []model.Match, k int) []model.Match {
	if k <= 0 || len(matches) <= k {
		return matches
	}
	return matches[:k]
}
