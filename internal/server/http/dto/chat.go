package dto

// ChatRequest carries one user message to the assistant.
type ChatRequest struct {
	Message string `json:"message"`
}

// QuickReplyResponse is a suggested follow-up message.
type QuickReplyResponse struct {
	Label   string `json:"label"`
	Message string `json:"message"`
}

// ChatResponse is the assistant's answer.
type ChatResponse struct {
	Response     string               `json:"response"`
	Intent       string               `json:"intent"`
	QuickReplies []QuickReplyResponse `json:"quick_replies"`
}
