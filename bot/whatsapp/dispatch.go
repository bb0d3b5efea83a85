package whatsapp

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"ClaudBot/entity"
	"ClaudBot/internal/lib/sl"
)

const helpText = `*ClaudBot — LitigationForce AI Assistant*

Send me any message and I'll respond using the AI assistant.

Commands:
/help — Show this help message
/reset — Clear conversation history and start fresh`

const (
	resetReply         = "Conversation cleared. Send me a new message to start fresh."
	notConfiguredReply = "ClaudBot is not configured yet. The completion service API key is missing."
	apologyReply       = "Sorry, I encountered an error. Please try again shortly."
)

// processPayload walks the entry/change/message nesting and handles every
// text message in order. Runs detached from the webhook response; failure
// on one message never stops its siblings.
func (b *Bot) processPayload(payload WebhookPayload) {
	if payload.Object != "whatsapp_business_account" {
		return
	}

	log := b.log.With(slog.String("delivery_id", uuid.NewString()))

	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			if change.Field != "messages" {
				continue
			}
			for _, message := range change.Value.Messages {
				if message.Type != "text" || message.Text == nil || message.Text.Body == "" {
					continue
				}
				b.handleText(log, message.From, message.ID, message.Text.Body)
			}
		}
	}
}

// handleText drives one inbound message through read receipt, history,
// completion and reply delivery.
func (b *Bot) handleText(log *slog.Logger, sender, messageID, text string) {
	defer func() {
		if r := recover(); r != nil {
			log.With(slog.Any("panic", r)).Error("handling message")
		}
	}()

	log.Info("received message",
		slog.String("sender", sender),
		slog.String("text", truncate(text, 100)),
	)
	b.publish(sender, "incoming", text)

	b.MarkAsRead(messageID)

	reply := b.replyTo(log, sender, text)
	if reply == "" {
		return
	}

	b.publish(sender, "outgoing", reply)
	b.SendMessage(sender, reply)
}

// replyTo produces the reply for one inbound text. Commands are
// intercepted before any history mutation and answered locally.
func (b *Bot) replyTo(log *slog.Logger, sender, text string) string {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "/reset", "/clear":
		b.history.Reset(sender)
		return resetReply
	case "/help", "/start":
		return helpText
	}

	if b.assistant == nil {
		return notConfiguredReply
	}

	b.history.Append(sender, entity.Turn{Role: entity.RoleUser, Content: text})

	reply, err := b.assistant.Reply(context.Background(), b.history.History(sender))
	if err != nil {
		// The user turn stays in history; no assistant turn is recorded
		// for a failed completion.
		log.With(slog.String("sender", sender), sl.Err(err)).Error("completion failed")
		return apologyReply
	}

	b.history.Append(sender, entity.Turn{Role: entity.RoleAssistant, Content: reply})
	return reply
}

func (b *Bot) publish(sender, direction, text string) {
	if b.events == nil {
		return
	}
	b.events.BroadcastChat(entity.ChatEvent{
		Sender:    sender,
		Direction: direction,
		Text:      text,
		CreatedAt: time.Now(),
	})
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
