package logger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// AlertSender delivers a plain-text alert to the operator, typically the
// Telegram admin chat.
type AlertSender interface {
	SendMessage(msg string)
}

// TelegramHandler wraps another slog handler and forwards records at or
// above minLevel to an AlertSender.
type TelegramHandler struct {
	next     slog.Handler
	sender   AlertSender
	minLevel slog.Level
	attrs    []slog.Attr
}

// SetupTelegramHandler attaches a Telegram alert sink to an existing logger.
func SetupTelegramHandler(log *slog.Logger, sender AlertSender, minLevel slog.Level) *slog.Logger {
	return slog.New(&TelegramHandler{
		next:     log.Handler(),
		sender:   sender,
		minLevel: minLevel,
	})
}

func (h *TelegramHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *TelegramHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= h.minLevel && h.sender != nil {
		var b strings.Builder
		fmt.Fprintf(&b, "%s: %s", r.Level.String(), r.Message)
		for _, a := range h.attrs {
			fmt.Fprintf(&b, "\n%s=%s", a.Key, a.Value.String())
		}
		r.Attrs(func(a slog.Attr) bool {
			fmt.Fprintf(&b, "\n%s=%s", a.Key, a.Value.String())
			return true
		})
		// Alerts must never block or fail the logging path.
		go h.sender.SendMessage(b.String())
	}
	return h.next.Handle(ctx, r)
}

func (h *TelegramHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &TelegramHandler{
		next:     h.next.WithAttrs(attrs),
		sender:   h.sender,
		minLevel: h.minLevel,
		attrs:    append(append([]slog.Attr{}, h.attrs...), attrs...),
	}
}

func (h *TelegramHandler) WithGroup(name string) slog.Handler {
	return &TelegramHandler{
		next:     h.next.WithGroup(name),
		sender:   h.sender,
		minLevel: h.minLevel,
		attrs:    h.attrs,
	}
}
