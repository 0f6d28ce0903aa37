package fusion

import (
	"sort"

	"doc-collab-be/pkg/store"

	"github.com/google/uuid"
)

// RRFConstant damps the contribution of top ranks so a rank-1 hit in one
// list cannot drown out agreement between lists.
const RRFConstant = 60

// ReciprocalRankFuse merges two ranked lists into one ranking. Each passage
// contributes 1/(rank+k) per list it appears in, with 0-based ranks;
// contributions sum for passages present in both lists. Passage fields are
// preserved from their first occurrence (vector list first) and Similarity is
// overwritten by the fused score.
func ReciprocalRankFuse(vectorResults, keywordResults []store.SearchResult) []store.SearchResult {
	scores := make(map[uuid.UUID]float64)
	byId := make(map[uuid.UUID]store.SearchResult)
	var order []uuid.UUID

	accumulate := func(results []store.SearchResult) {
		for rank, res := range results {
			id := res.ParagraphId
			if _, seen := scores[id]; !seen {
				byId[id] = res
				order = append(order, id)
			}
			scores[id] += 1.0 / float64(rank+RRFConstant)
		}
	}

	accumulate(vectorResults)
	accumulate(keywordResults)

	fused := make([]store.SearchResult, 0, len(order))
	for _, id := range order {
		res := byId[id]
		res.Similarity = scores[id]
		fused = append(fused, res)
	}

	// Stable sort keeps vector-first ordering on exact score ties.
	sort.SliceStable(fused, func(i, j int) bool {
		return fused[i].Similarity > fused[j].Similarity
	})

	return fused
}
