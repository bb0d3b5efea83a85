package config

import (
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env    string `yaml:"env" env:"ENV" env-default:"local"`
	Listen struct {
		BindIP string `yaml:"bind_ip" env:"BIND_IP" env-default:"0.0.0.0"`
		Port   string `yaml:"port" env:"PORT" env-default:"8080"`
		ApiKey string `yaml:"key" env:"ADMIN_API_KEY" env-default:""`
	} `yaml:"listen"`
	WhatsApp struct {
		AccessToken   string `yaml:"access_token" env:"WHATSAPP_TOKEN" env-default:""`
		PhoneNumberID string `yaml:"phone_number_id" env:"WHATSAPP_PHONE_NUMBER_ID" env-default:""`
		VerifyToken   string `yaml:"verify_token" env:"WHATSAPP_VERIFY_TOKEN" env-default:"claudbot_verify"`
		AppSecret     string `yaml:"app_secret" env:"WHATSAPP_APP_SECRET" env-default:""`
		MaxMessageLen int    `yaml:"max_message_length" env:"WHATSAPP_MAX_MESSAGE_LENGTH" env-default:"4096" validate:"min=1"`
		ReservedChars int    `yaml:"reserved_chars" env:"WHATSAPP_RESERVED_CHARS" env-default:"96" validate:"min=0"`
	} `yaml:"whatsapp"`
	OpenAI struct {
		ApiKey    string `yaml:"api_key" env:"OPENAI_API_KEY" env-default:""`
		Model     string `yaml:"model" env:"OPENAI_MODEL" env-default:"gpt-4o-mini"`
		MaxTokens int    `yaml:"max_tokens" env:"OPENAI_MAX_TOKENS" env-default:"1024" validate:"min=1"`
	} `yaml:"openai"`
	Chat struct {
		MaxHistory int `yaml:"max_history" env:"CHAT_MAX_HISTORY" env-default:"40" validate:"min=2"`
	} `yaml:"chat"`
	Telegram struct {
		Enabled bool   `yaml:"enabled" env:"TELEGRAM_ENABLED" env-default:"false"`
		ApiKey  string `yaml:"api_key" env:"TELEGRAM_API_KEY" env-default:""`
		AdminId int64  `yaml:"admin_id" env:"TELEGRAM_ADMIN_ID" env-default:"0"`
		BotName string `yaml:"bot_name" env:"TELEGRAM_BOT_NAME" env-default:"ClaudBotAlerts"`
	} `yaml:"telegram"`
}

var instance *Config
var once sync.Once

// MustLoad reads configuration from the yaml file at path, overlaid with
// environment variables. When the file does not exist the environment
// alone is used, so the bridge can run from env vars only.
func MustLoad(path string) *Config {
	var err error
	once.Do(func() {
		instance = &Config{}
		if _, statErr := os.Stat(path); statErr == nil {
			err = cleanenv.ReadConfig(path, instance)
		} else {
			err = cleanenv.ReadEnv(instance)
		}
		if err != nil {
			desc, _ := cleanenv.GetDescription(instance, nil)
			err = fmt.Errorf("%s; %s", err, desc)
			instance = nil
			log.Fatal(err)
		}
		if err = validator.New().Struct(instance); err != nil {
			instance = nil
			log.Fatal(fmt.Errorf("invalid config: %w", err))
		}
	})
	return instance
}
