package httpx

import (
	"context"
	"net/http"
)

// ChatReplier is the slice of the chat service the handler needs.
type ChatReplier interface {
	Reply(ctx context.Context, message string) string
}

// ChatHandlers proxies chat messages to the configured backend.
type ChatHandlers struct {
	Svc ChatReplier
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// Chat handles POST /api/chat. The service degrades to a fixed fallback
// reply on backend failure, so this endpoint always answers 200.
func (h *ChatHandlers) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	reply := h.Svc.Reply(r.Context(), req.Message)
	WriteJSON(w, http.StatusOK, chatResponse{Reply: reply})
}
