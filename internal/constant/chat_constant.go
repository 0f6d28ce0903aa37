package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"

	// Retrieval methods. The method stored on a turn reflects what was
	// actually used, which may differ from the requested method after
	// degradation.
	RetrievalMethodVector  = "vector"
	RetrievalMethodKeyword = "keyword"
	RetrievalMethodHybrid  = "hybrid"

	// Session titles are derived from the first user message.
	SessionTitleMaxLen  = 80
	SessionDefaultTitle = "Unnamed session"
)
