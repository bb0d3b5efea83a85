package api

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	botchat "ClaudBot/bot/chat"
	botwhatsapp "ClaudBot/bot/whatsapp"
	"ClaudBot/internal/config"
	chathandler "ClaudBot/internal/http-server/handlers/chat"
	"ClaudBot/internal/http-server/handlers/errors"
	"ClaudBot/internal/http-server/handlers/service"
	"ClaudBot/internal/http-server/handlers/whatsapp"
	"ClaudBot/internal/http-server/middleware/authenticate"
	"ClaudBot/internal/http-server/middleware/timeout"
	"ClaudBot/internal/lib/sl"
	"ClaudBot/internal/ws"
)

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	log        *slog.Logger
}

// New assembles the router and blocks serving it.
func New(conf *config.Config, log *slog.Logger, bot *botwhatsapp.Bot, store *botchat.Store, hub *ws.Hub) error {

	server := Server{
		conf: conf,
		log:  log.With(sl.Module("api.server")),
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)

	router.NotFound(errors.NotFound(log))
	router.MethodNotAllowed(errors.NotAllowed(log))

	// Meta webhook. No bearer auth here: the platform authenticates with
	// the verify token on GET and the payload signature on POST.
	router.Route("/webhook/whatsapp", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Get("/", whatsapp.WebhookVerify(log, bot))
		r.Post("/", whatsapp.WebhookHandler(log, bot))
	})

	router.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(timeout.Timeout(5))
		v1.Use(render.SetContentType(render.ContentTypeJSON))
		v1.Use(authenticate.New(log, conf.Listen.ApiKey))

		v1.Get("/status", service.Status(log, store))
		v1.Post("/chat/reset", chathandler.ResetConversation(log, store))
	})

	if hub != nil {
		router.Get("/ws/chat", func(w http.ResponseWriter, r *http.Request) {
			ws.ServeWs(hub, conf.Listen.ApiKey, log, w, r)
		})
	}

	httpLog := slog.NewLogLogger(log.Handler(), slog.LevelError)
	server.httpServer = &http.Server{
		Handler:  router,
		ErrorLog: httpLog,
	}

	serverAddress := fmt.Sprintf("%s:%s", conf.Listen.BindIP, conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	server.log.Info("starting api server", slog.String("address", serverAddress))

	return server.httpServer.Serve(listener)
}
