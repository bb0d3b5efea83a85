package chat

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"ClaudBot/internal/lib/api/response"
)

// Core is the conversation store surface the handlers need.
type Core interface {
	Reset(sender string)
	Count() int
}

// ResetConversation clears one sender's conversation history.
func ResetConversation(log *slog.Logger, store Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sender := r.URL.Query().Get("sender")
		if sender == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Missing sender parameter"))
			return
		}

		store.Reset(sender)
		log.Info("conversation reset", slog.String("sender", sender))

		render.JSON(w, r, response.Ok("Conversation reset successfully"))
	}
}
