package section

import (
	"testing"

	"doc-collab-be/pkg/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestParseReferences(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{
			name:  "no references",
			query: "What is the deadline?",
			want:  nil,
		},
		{
			name:  "section keyword",
			query: "What does section 3 say about deadlines?",
			want:  []string{"3"},
		},
		{
			name:  "section keyword case insensitive",
			query: "Summarize Section 12 please",
			want:  []string{"12"},
		},
		{
			name:  "bare number token",
			query: "Explain 4. in simple terms",
			want:  []string{"4"},
		},
		{
			name:  "duplicate forms collapse",
			query: "Compare section 3 with 3. again",
			want:  []string{"3"},
		},
		{
			name:  "multiple sections",
			query: "Is section 2 consistent with section 5?",
			want:  []string{"2", "5"},
		},
		{
			name:  "decimal inside word does not match",
			query: "the budget is 3.5 million",
			want:  nil,
		},
		{
			name:  "bare number at end of query",
			query: "summarize 7.",
			want:  []string{"7"},
		},
		{
			name:  "bare number before punctuation",
			query: "see 3., then continue",
			want:  []string{"3"},
		},
		{
			name:  "bare number before question mark",
			query: "what does 6.? cover",
			want:  []string{"6"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseReferences(tt.query))
		})
	}
}

func TestBoostMatched(t *testing.T) {
	matched := uuid.New()
	other := uuid.New()

	results := []store.SearchResult{
		{ParagraphId: uuid.New(), SectionId: matched, Similarity: 0.6},
		{ParagraphId: uuid.New(), SectionId: other, Similarity: 0.9},
	}

	boosted := BoostMatched(results, map[uuid.UUID]bool{matched: true})

	assert.InDelta(t, 0.6*1.5, boosted[0].Similarity, 1e-9)
	assert.Equal(t, 0.9, boosted[1].Similarity)

	// Boosting never decreases a score
	for i := range results {
		assert.GreaterOrEqual(t, boosted[i].Similarity, results[i].Similarity)
	}

	// Empty matched set passes through unchanged
	unchanged := BoostMatched(results, nil)
	assert.Equal(t, results, unchanged)
}
