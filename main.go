package main

import (
	"flag"
	"fmt"
	"log/slog"
	"time"

	"ClaudBot/ai/gpt"
	"ClaudBot/bot"
	"ClaudBot/bot/chat"
	"ClaudBot/bot/whatsapp"
	"ClaudBot/internal/config"
	"ClaudBot/internal/http-server/api"
	"ClaudBot/internal/lib/logger"
	"ClaudBot/internal/lib/sl"
	"ClaudBot/internal/ws"
)

func main() {

	configPath := flag.String("conf", "config.yml", "path to config file")
	logPath := flag.String("log", "/var/log/", "path to log file directory")
	flag.Parse()

	conf := config.MustLoad(*configPath)
	lg := logger.SetupLogger(conf.Env, *logPath)

	started := time.Now()
	store := chat.NewStore(conf.Chat.MaxHistory)

	// Initialize Telegram admin bot if enabled
	if conf.Telegram.Enabled {
		tgBot, err := bot.NewTgBot(conf.Telegram.BotName, conf.Telegram.ApiKey, conf.Telegram.AdminId, lg)
		if err != nil {
			lg.Error("failed to initialize telegram bot", sl.Err(err))
		} else {
			tgBot.SetStatus(func() string {
				return fmt.Sprintf("ClaudBot up %s, %d active conversations",
					time.Since(started).Round(time.Second), store.Count())
			})
			lg = logger.SetupTelegramHandler(lg, tgBot, slog.LevelWarn)
			lg.With(
				slog.String("bot_name", conf.Telegram.BotName),
			).Info("telegram bot initialized")

			go func() {
				if err := tgBot.Start(); err != nil {
					lg.Error("telegram bot error", sl.Err(err))
				}
			}()
		}
	}

	lg.Info("starting claudbot", slog.String("config", *configPath), slog.String("env", conf.Env))
	lg.Debug("debug messages enabled")

	waBot := whatsapp.NewBot(conf, store, lg)

	assistant := gpt.NewAssistant(conf, lg)
	if assistant != nil {
		waBot.SetAssistant(assistant)
		lg.With(
			sl.Secret("openai_key", conf.OpenAI.ApiKey),
			slog.String("model", conf.OpenAI.Model),
		).Info("assistant initialized")
	} else {
		lg.Warn("openai api key not configured, replies degraded to a fixed notice")
	}

	if conf.WhatsApp.AccessToken == "" || conf.WhatsApp.PhoneNumberID == "" {
		lg.Warn("whatsapp credentials not configured, outbound delivery disabled")
	}

	hub := ws.NewHub(lg)
	go hub.Run()
	waBot.SetEvents(hub)

	// *** blocking start with http server ***
	err := api.New(conf, lg, waBot, store, hub)
	if err != nil {
		lg.Error("server start", sl.Err(err))
		return
	}
	lg.Error("service stopped")
}
