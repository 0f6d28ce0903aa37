package history

import (
	"context"

	"doc-collab-be/internal/entity"
	"doc-collab-be/internal/repository/contract"
	"doc-collab-be/internal/repository/specification"

	"github.com/google/uuid"
)

const (
	// WindowExchanges bounds the conversational memory to the last five
	// user/assistant exchanges.
	WindowExchanges = 5
	WindowTurns     = WindowExchanges * 2
)

// Loader fetches the trailing conversation window for a session.
type Loader struct {
	messageRepository contract.ChatMessageRepository
}

func NewLoader(messageRepository contract.ChatMessageRepository) *Loader {
	return &Loader{messageRepository: messageRepository}
}

// Load returns at most WindowTurns messages in ascending chronological
// order. The window is cut newest-first so a long session keeps its most
// recent turns, then reversed for prompt assembly.
func (l *Loader) Load(ctx context.Context, sessionId uuid.UUID) ([]*entity.ChatMessage, error) {
	messages, err := l.messageRepository.FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Limit{Count: WindowTurns},
	)
	if err != nil {
		return nil, err
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}
