package citation

import (
	"doc-collab-be/internal/entity"
	"doc-collab-be/pkg/store"

	"github.com/google/uuid"
)

const (
	// MaxCitations caps how many sources are attached to an answer.
	MaxCitations = 5

	// PreviewMaxLen bounds the citation preview text.
	PreviewMaxLen = 150
)

// Build converts the top-ranked passages into citations for a persisted
// assistant message. Passages must arrive ranked; at most MaxCitations are
// taken and each preview is clipped to PreviewMaxLen characters.
func Build(messageId uuid.UUID, results []store.SearchResult) []*entity.ChatCitation {
	n := len(results)
	if n > MaxCitations {
		n = MaxCitations
	}

	citations := make([]*entity.ChatCitation, 0, n)
	for _, res := range results[:n] {
		citations = append(citations, &entity.ChatCitation{
			Id:            uuid.New(),
			ChatMessageId: messageId,
			ParagraphId:   res.ParagraphId,
			SectionTitle:  res.SectionTitle,
			Preview:       clip(res.Content, PreviewMaxLen),
		})
	}
	return citations
}

func clip(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
