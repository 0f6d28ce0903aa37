package citation

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doc-collab-be/pkg/store"
)

func TestBuild_TakesTopFiveInRankOrder(t *testing.T) {
	messageId := uuid.New()
	var results []store.SearchResult
	for i := 0; i < 8; i++ {
		results = append(results, store.SearchResult{
			ParagraphId:  uuid.New(),
			SectionTitle: "1. Scope",
			Content:      "passage",
		})
	}

	citations := Build(messageId, results)
	require.Len(t, citations, MaxCitations)
	for i, c := range citations {
		assert.Equal(t, messageId, c.ChatMessageId)
		assert.Equal(t, results[i].ParagraphId, c.ParagraphId)
	}
}

func TestBuild_FewerResultsThanCap(t *testing.T) {
	citations := Build(uuid.New(), []store.SearchResult{
		{ParagraphId: uuid.New(), SectionTitle: "2. Timeline", Content: "short"},
	})
	require.Len(t, citations, 1)
	assert.Equal(t, "short", citations[0].Preview)
	assert.Equal(t, "2. Timeline", citations[0].SectionTitle)
}

func TestBuild_ClipsLongPreview(t *testing.T) {
	long := strings.Repeat("a", PreviewMaxLen+40)
	citations := Build(uuid.New(), []store.SearchResult{
		{ParagraphId: uuid.New(), Content: long},
	})
	require.Len(t, citations, 1)
	assert.Len(t, citations[0].Preview, PreviewMaxLen)
}

func TestBuild_ClipIsRuneSafe(t *testing.T) {
	long := strings.Repeat("é", PreviewMaxLen+10)
	citations := Build(uuid.New(), []store.SearchResult{
		{ParagraphId: uuid.New(), Content: long},
	})
	require.Len(t, citations, 1)
	assert.True(t, utf8.ValidString(citations[0].Preview))
	assert.Equal(t, PreviewMaxLen, utf8.RuneCountInString(citations[0].Preview))
}

func TestBuild_EmptyResults(t *testing.T) {
	assert.Empty(t, Build(uuid.New(), nil))
}
