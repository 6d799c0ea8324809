package elevenlabs

// Conversation status values reported by the ConvAI API. The monitor only
// ever branches on StatusDone; anything else is carried through as-is.
const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusDone       = "done"
)

// ConversationStub is one entry in the paginated conversation listing.
type ConversationStub struct {
	ConversationID string `json:"conversation_id"`
	Status         string `json:"status"`
}

// ConversationPage is a single page of the most-recent-first listing.
type ConversationPage struct {
	Conversations []ConversationStub `json:"conversations"`
	NextCursor    string             `json:"next_cursor"`
	HasMore       bool               `json:"has_more"`
}

// TranscriptEntry is one turn of the call. An empty Message denotes a
// non-verbal event such as a tool call.
type TranscriptEntry struct {
	Role           string `json:"role"`
	Message        string `json:"message"`
	TimeInCallSecs int    `json:"time_in_call_secs"`
}

type ConversationMetadata struct {
	StartTimeUnixSecs int64 `json:"start_time_unix_secs"`
	CallDurationSecs  int   `json:"call_duration_secs"`
}

// ClientData carries fields the caller supplied when initiating the call.
type ClientData struct {
	Email string `json:"email"`
}

// Conversation is the full per-conversation detail.
type Conversation struct {
	ConversationID       string               `json:"conversation_id"`
	Status               string               `json:"status"`
	Metadata             ConversationMetadata `json:"metadata"`
	Transcript           []TranscriptEntry    `json:"transcript"`
	InitiationClientData ClientData           `json:"conversation_initiation_client_data"`
}
