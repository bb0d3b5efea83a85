package whatsapp

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/render"

	"ClaudBot/bot/chat"
	"ClaudBot/entity"
	"ClaudBot/internal/config"
	"ClaudBot/internal/lib/api/response"
	"ClaudBot/internal/lib/sl"
)

const graphAPIURL = "https://graph.facebook.com/v21.0"

// Assistant produces the next reply for a conversation history.
type Assistant interface {
	Reply(ctx context.Context, history []entity.Turn) (string, error)
}

// EventPublisher receives chat activity notifications for live admin views.
type EventPublisher interface {
	BroadcastChat(event entity.ChatEvent)
}

// Bot bridges the WhatsApp Cloud API webhook to the completion assistant.
type Bot struct {
	log           *slog.Logger
	accessToken   string
	verifyToken   string
	appSecret     string
	phoneNumberID string
	apiURL        string
	maxChunkLen   int
	client        *http.Client
	history       *chat.Store
	assistant     Assistant
	events        EventPublisher
}

// WebhookPayload represents the incoming webhook payload from WhatsApp.
type WebhookPayload struct {
	Object string `json:"object"`
	Entry  []struct {
		ID      string `json:"id"`
		Changes []struct {
			Value struct {
				MessagingProduct string `json:"messaging_product"`
				Metadata         struct {
					DisplayPhoneNumber string `json:"display_phone_number"`
					PhoneNumberID      string `json:"phone_number_id"`
				} `json:"metadata"`
				Contacts []struct {
					Profile struct {
						Name string `json:"name"`
					} `json:"profile"`
					WaID string `json:"wa_id"`
				} `json:"contacts"`
				Messages []struct {
					From      string `json:"from"`
					ID        string `json:"id"`
					Timestamp string `json:"timestamp"`
					Type      string `json:"type"`
					Text      *struct {
						Body string `json:"body"`
					} `json:"text,omitempty"`
				} `json:"messages"`
			} `json:"value"`
			Field string `json:"field"`
		} `json:"changes"`
	} `json:"entry"`
}

// NewBot creates a WhatsApp bot from the loaded configuration. The chunk
// limit leaves a reserve below the transport maximum for metadata the
// platform appends on delivery.
func NewBot(conf *config.Config, history *chat.Store, log *slog.Logger) *Bot {
	maxChunkLen := conf.WhatsApp.MaxMessageLen - conf.WhatsApp.ReservedChars
	if maxChunkLen < 1 {
		maxChunkLen = 1
	}
	return &Bot{
		log:           log.With(sl.Module("whatsappbot")),
		accessToken:   conf.WhatsApp.AccessToken,
		verifyToken:   conf.WhatsApp.VerifyToken,
		appSecret:     conf.WhatsApp.AppSecret,
		phoneNumberID: conf.WhatsApp.PhoneNumberID,
		apiURL:        graphAPIURL,
		maxChunkLen:   maxChunkLen,
		client:        &http.Client{Timeout: 30 * time.Second},
		history:       history,
	}
}

// SetAssistant attaches the completion assistant. Without one the bot
// answers with a fixed "not configured" reply.
func (b *Bot) SetAssistant(assistant Assistant) {
	b.assistant = assistant
}

// SetEvents attaches the live activity publisher.
func (b *Bot) SetEvents(events EventPublisher) {
	b.events = events
}

// HandleWebhookVerification handles the GET request for the Meta webhook
// verification handshake.
func (b *Bot) HandleWebhookVerification(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("hub.mode")
	token := r.URL.Query().Get("hub.verify_token")
	challenge := r.URL.Query().Get("hub.challenge")

	if mode == "subscribe" && token == b.verifyToken {
		b.log.Info("webhook verified")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(challenge))
		return
	}

	b.log.Warn("webhook verification failed",
		slog.String("mode", mode),
		slog.Bool("token_match", token == b.verifyToken),
	)
	render.Status(r, http.StatusForbidden)
	render.JSON(w, r, response.Error("Forbidden"))
}

// HandleWebhook handles incoming webhook POST requests. The delivery is
// acknowledged as soon as the payload is authenticated and parsed;
// message processing runs detached so a slow completion call never trips
// the platform's webhook timeout.
func (b *Bot) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		b.log.Error("failed to read request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("Bad Request"))
		return
	}
	defer r.Body.Close()

	if !b.VerifySignature(body, r.Header.Get("X-Hub-Signature-256")) {
		b.log.Warn("invalid webhook signature")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("Unauthorized"))
		return
	}

	var payload WebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		// A payload we cannot parse is still acknowledged, otherwise the
		// platform keeps redelivering it.
		b.log.Warn("failed to parse webhook payload", sl.Err(err))
		render.JSON(w, r, response.Ok(""))
		return
	}

	render.JSON(w, r, response.Ok(""))

	go b.processPayload(payload)
}

// VerifySignature checks the X-Hub-Signature-256 header against the app
// secret. Signature checking is opt-in: without a secret every payload
// passes.
func (b *Bot) VerifySignature(body []byte, signature string) bool {
	if b.appSecret == "" {
		return true
	}
	if !strings.HasPrefix(signature, "sha256=") {
		return false
	}

	mac := hmac.New(sha256.New, []byte(b.appSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(strings.TrimPrefix(signature, "sha256=")), []byte(expected))
}
