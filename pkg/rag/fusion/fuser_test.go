package fusion

import (
	"testing"

	"doc-collab-be/pkg/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func result(id uuid.UUID, similarity float64) store.SearchResult {
	return store.SearchResult{ParagraphId: id, Similarity: similarity}
}

func TestReciprocalRankFuseScores(t *testing.T) {
	p1 := uuid.New()
	p2 := uuid.New()

	// P1 at rank 0 in vector, rank 2 in keyword. P2 at rank 0 in keyword.
	vector := []store.SearchResult{result(p1, 0.9)}
	keyword := []store.SearchResult{result(p2, 0.8), result(uuid.New(), 0.8), result(p1, 0.8)}

	fused := ReciprocalRankFuse(vector, keyword)

	scores := make(map[uuid.UUID]float64)
	for _, r := range fused {
		scores[r.ParagraphId] = r.Similarity
	}

	assert.InDelta(t, 1.0/60+1.0/62, scores[p1], 1e-12)
	assert.InDelta(t, 1.0/60, scores[p2], 1e-12)

	// P1 appears in both lists, so it outranks P2
	assert.Equal(t, p1, fused[0].ParagraphId)
	assert.Equal(t, p2, fused[1].ParagraphId)
}

func TestReciprocalRankFuseSingleList(t *testing.T) {
	p1 := uuid.New()
	fused := ReciprocalRankFuse([]store.SearchResult{result(p1, 0.7)}, nil)

	assert.Len(t, fused, 1)
	assert.InDelta(t, 1.0/60, fused[0].Similarity, 1e-12)
}

func TestReciprocalRankFusePreservesFields(t *testing.T) {
	p1 := uuid.New()
	sec := uuid.New()
	vector := []store.SearchResult{{
		ParagraphId:  p1,
		Content:      "the content",
		SectionId:    sec,
		SectionTitle: "2. Scope",
		OrderIndex:   4,
		Similarity:   0.91,
		Source:       store.SourceVector,
	}}

	fused := ReciprocalRankFuse(vector, []store.SearchResult{result(p1, 0.8)})

	assert.Equal(t, "the content", fused[0].Content)
	assert.Equal(t, "2. Scope", fused[0].SectionTitle)
	assert.Equal(t, 4, fused[0].OrderIndex)
	assert.Equal(t, store.SourceVector, fused[0].Source)
}

func TestDeduplicate(t *testing.T) {
	p1 := uuid.New()
	p2 := uuid.New()

	input := []store.SearchResult{
		{ParagraphId: p1, Similarity: 1.0, Source: store.SourceSection},
		{ParagraphId: p2, Similarity: 0.8, Source: store.SourceVector},
		{ParagraphId: p1, Similarity: 0.8, Source: store.SourceKeyword},
	}

	deduped := Deduplicate(input, 20)

	assert.Len(t, deduped, 2)
	// First occurrence wins
	assert.Equal(t, store.SourceSection, deduped[0].Source)
	assert.Equal(t, p2, deduped[1].ParagraphId)

	// Idempotent: running again on its own output changes nothing
	again := Deduplicate(deduped, 20)
	assert.Equal(t, deduped, again)
}

func TestDeduplicateTruncatesAfterDedup(t *testing.T) {
	dup := uuid.New()
	input := []store.SearchResult{
		{ParagraphId: dup, Similarity: 0.9},
		{ParagraphId: dup, Similarity: 0.9},
	}
	for i := 0; i < 24; i++ {
		input = append(input, store.SearchResult{ParagraphId: uuid.New(), Similarity: 0.5})
	}

	// 25 unique candidates after dedup, limit 20: truncation happens after
	// duplicates are removed so the set is not starved.
	deduped := Deduplicate(input, 20)
	assert.Len(t, deduped, 20)
	assert.Equal(t, dup, deduped[0].ParagraphId)
}
