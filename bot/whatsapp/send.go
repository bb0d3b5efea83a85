package whatsapp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"ClaudBot/internal/lib/sl"
)

// sendMessageRequest is the Graph API body for an outbound text message.
type sendMessageRequest struct {
	MessagingProduct string `json:"messaging_product"`
	To               string `json:"to"`
	Type             string `json:"type"`
	Text             struct {
		Body string `json:"body"`
	} `json:"text"`
}

// markReadRequest is the Graph API body for a read receipt.
type markReadRequest struct {
	MessagingProduct string `json:"messaging_product"`
	Status           string `json:"status"`
	MessageID        string `json:"message_id"`
}

// SendMessage delivers text to the recipient, splitting it into as many
// sequential sends as the transport limit requires. Chunks go out in
// order, one request at a time; a failed chunk is logged and the rest
// still go out.
func (b *Bot) SendMessage(recipient, text string) {
	if !b.configured() {
		b.log.Error("whatsapp credentials not configured, dropping outbound message",
			slog.String("recipient", recipient),
		)
		return
	}

	for _, chunk := range SplitMessage(text, b.maxChunkLen) {
		if err := b.sendChunk(recipient, chunk); err != nil {
			b.log.With(
				slog.String("recipient", recipient),
				sl.Err(err),
			).Error("send message chunk")
		}
	}
}

func (b *Bot) sendChunk(recipient, chunk string) error {
	reqBody := sendMessageRequest{
		MessagingProduct: "whatsapp",
		To:               recipient,
		Type:             "text",
	}
	reqBody.Text.Body = chunk
	return b.post(reqBody)
}

// MarkAsRead sends a read receipt for an inbound message. Receipts are
// best effort and never block reply delivery.
func (b *Bot) MarkAsRead(messageID string) {
	if !b.configured() {
		b.log.Error("whatsapp credentials not configured, skipping read receipt")
		return
	}

	reqBody := markReadRequest{
		MessagingProduct: "whatsapp",
		Status:           "read",
		MessageID:        messageID,
	}
	if err := b.post(reqBody); err != nil {
		b.log.Debug("mark as read", sl.Err(err))
	}
}

func (b *Bot) post(body any) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", b.apiURL, b.phoneNumberID)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+b.accessToken)

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(respBody))
	}
	return nil
}

func (b *Bot) configured() bool {
	return b.accessToken != "" && b.phoneNumberID != ""
}
