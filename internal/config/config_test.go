package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMustLoad_DefaultsAndOverrides(t *testing.T) {
	yaml := `
env: dev
whatsapp:
  access_token: token-123
  phone_number_id: "42"
openai:
  api_key: sk-test
`
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	conf := MustLoad(path)
	require.NotNil(t, conf)

	assert.Equal(t, "dev", conf.Env)
	assert.Equal(t, "token-123", conf.WhatsApp.AccessToken)
	assert.Equal(t, "42", conf.WhatsApp.PhoneNumberID)
	assert.Equal(t, "sk-test", conf.OpenAI.ApiKey)

	// Everything else falls back to defined defaults.
	assert.Equal(t, "claudbot_verify", conf.WhatsApp.VerifyToken)
	assert.Equal(t, 4096, conf.WhatsApp.MaxMessageLen)
	assert.Equal(t, 96, conf.WhatsApp.ReservedChars)
	assert.Equal(t, "gpt-4o-mini", conf.OpenAI.Model)
	assert.Equal(t, 1024, conf.OpenAI.MaxTokens)
	assert.Equal(t, 40, conf.Chat.MaxHistory)
	assert.Equal(t, "8080", conf.Listen.Port)
	assert.False(t, conf.Telegram.Enabled)
}
