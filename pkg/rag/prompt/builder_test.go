package prompt

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"doc-collab-be/internal/constant"
	"doc-collab-be/internal/entity"
	"doc-collab-be/pkg/store"
)

func TestBuild_FullPromptShape(t *testing.T) {
	out := Build(Input{
		DocumentTitle: "Vendor Agreement",
		History: []*entity.ChatMessage{
			{Role: constant.ChatMessageRoleUser, Content: "what is the scope?"},
			{Role: constant.ChatMessageRoleAssistant, Content: "The scope covers integration."},
		},
		Passages: []store.SearchResult{
			{SectionTitle: "1. Scope", Content: "Scope covers integration work."},
			{SectionTitle: "2. Timeline", Content: "The project runs six months."},
		},
		Question: "how long does it run?",
	})

	assert.Contains(t, out, `document "Vendor Agreement"`)
	assert.Contains(t, out, "user: what is the scope?")
	assert.Contains(t, out, "assistant: The scope covers integration.")
	assert.Contains(t, out, "[1] 1. Scope\nScope covers integration work.")
	assert.Contains(t, out, "[2] 2. Timeline\nThe project runs six months.")
	assert.Contains(t, out, "Question: how long does it run?")

	// History must appear before excerpts, excerpts before the question.
	assert.Less(t, strings.Index(out, "Conversation so far:"), strings.Index(out, "Document excerpts:"))
	assert.Less(t, strings.Index(out, "Document excerpts:"), strings.Index(out, "Question:"))
}

func TestBuild_TruncatesToTopPassages(t *testing.T) {
	var passages []store.SearchResult
	for i := 0; i < MaxPassages+5; i++ {
		passages = append(passages, store.SearchResult{
			SectionTitle: fmt.Sprintf("%d. Section", i+1),
			Content:      fmt.Sprintf("passage %d", i+1),
		})
	}

	out := Build(Input{DocumentTitle: "Doc", Passages: passages, Question: "q"})

	assert.Contains(t, out, fmt.Sprintf("[%d]", MaxPassages))
	assert.NotContains(t, out, fmt.Sprintf("[%d]", MaxPassages+1))
	assert.NotContains(t, out, fmt.Sprintf("passage %d", MaxPassages+1))
}

func TestBuild_NoHistoryOmitsConversationBlock(t *testing.T) {
	out := Build(Input{
		DocumentTitle: "Doc",
		Passages:      []store.SearchResult{{SectionTitle: "1. Scope", Content: "text"}},
		Question:      "q",
	})
	assert.NotContains(t, out, "Conversation so far:")
}

func TestBuild_NoPassages(t *testing.T) {
	out := Build(Input{DocumentTitle: "Doc", Question: "q"})
	assert.Contains(t, out, "No relevant excerpts were found")
	assert.NotContains(t, out, "Document excerpts:")
}
