package domain

// Conversation roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one conversation message.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Stream event kinds. Exactly one metadata event is emitted before the first
// delta; the done event is the explicit terminal marker.
const (
	EventMetadata = "metadata"
	EventDelta    = "delta"
	EventDone     = "done"
)

// StreamEvent is one frame of an answer stream.
type StreamEvent struct {
	Type          string   `json:"type"`
	Reasoning     string   `json:"reasoning,omitempty"`
	UsedDocuments []string `json:"used_documents,omitempty"`
	Content       string   `json:"content,omitempty"`
}

// Answer is the non-streaming query result. CitedSources holds the canonical
// document names claimed in the answer's source line, if any.
type Answer struct {
	Content      string   `json:"content"`
	Reasoning    string   `json:"reasoning"`
	CitedSources []string `json:"cited_sources,omitempty"`
}
