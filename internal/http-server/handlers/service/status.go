package service

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
)

var started = time.Now()

// Core exposes the counters the status endpoint reports.
type Core interface {
	Count() int
}

type statusResponse struct {
	Status        string `json:"status"`
	Uptime        string `json:"uptime"`
	Conversations int    `json:"conversations"`
}

// Status reports process health, uptime and active conversation count.
func Status(_ *slog.Logger, store Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, statusResponse{
			Status:        "ok",
			Uptime:        time.Since(started).Round(time.Second).String(),
			Conversations: store.Count(),
		})
	}
}
