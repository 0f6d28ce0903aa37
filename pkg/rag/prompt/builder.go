package prompt

import (
	"fmt"
	"strings"

	"doc-collab-be/internal/entity"
	"doc-collab-be/pkg/store"
)

// MaxPassages caps how many retrieved passages are shown to the model.
// Anything past the top ten adds noise faster than signal.
const MaxPassages = 10

// Input is everything the grounding prompt is assembled from.
type Input struct {
	DocumentTitle string
	History       []*entity.ChatMessage
	Passages      []store.SearchResult
	Question      string
}

// Build renders the grounding prompt. Passages must arrive ranked; only the
// top MaxPassages are included, numbered so the model can cite them.
func Build(in Input) string {
	var b strings.Builder

	b.WriteString("You are an assistant answering questions about the document \"")
	b.WriteString(in.DocumentTitle)
	b.WriteString("\".\n")
	b.WriteString("Answer using only the excerpts below. ")
	b.WriteString("If the excerpts do not contain the answer, say you cannot find it in the document. ")
	b.WriteString("Refer to excerpts by their number when citing.\n\n")

	if len(in.History) > 0 {
		b.WriteString("Conversation so far:\n")
		for _, msg := range in.History {
			b.WriteString(msg.Role)
			b.WriteString(": ")
			b.WriteString(msg.Content)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	passages := in.Passages
	if len(passages) > MaxPassages {
		passages = passages[:MaxPassages]
	}
	if len(passages) > 0 {
		b.WriteString("Document excerpts:\n")
		for i, p := range passages {
			fmt.Fprintf(&b, "[%d] %s\n%s\n\n", i+1, p.SectionTitle, p.Content)
		}
	} else {
		b.WriteString("No relevant excerpts were found in the document.\n\n")
	}

	b.WriteString("Question: ")
	b.WriteString(in.Question)
	b.WriteString("\n")

	return b.String()
}
