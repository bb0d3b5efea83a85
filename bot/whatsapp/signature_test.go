package whatsapp

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signFor(secret, payload string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature_AcceptsValidHeader(t *testing.T) {
	b := &Bot{appSecret: "s"}

	header := "sha256=" + signFor("s", "p")
	assert.True(t, b.VerifySignature([]byte("p"), header))
}

func TestVerifySignature_RejectsAnyHexMutation(t *testing.T) {
	b := &Bot{appSecret: "s"}

	valid := signFor("s", "p")
	require.True(t, b.VerifySignature([]byte("p"), "sha256="+valid))

	for i := range valid {
		mutated := []byte(valid)
		if mutated[i] == 'f' {
			mutated[i] = '0'
		} else {
			mutated[i] = 'f'
		}
		assert.False(t, b.VerifySignature([]byte("p"), "sha256="+string(mutated)),
			"mutation at index %d must be rejected", i)
	}
}

func TestVerifySignature_RejectsMissingHeader(t *testing.T) {
	b := &Bot{appSecret: "s"}

	assert.False(t, b.VerifySignature([]byte("p"), ""))
}

func TestVerifySignature_RejectsWrongPrefix(t *testing.T) {
	b := &Bot{appSecret: "s"}

	assert.False(t, b.VerifySignature([]byte("p"), "sha1="+signFor("s", "p")))
	assert.False(t, b.VerifySignature([]byte("p"), signFor("s", "p")))
}

func TestVerifySignature_RejectsWrongPayload(t *testing.T) {
	b := &Bot{appSecret: "s"}

	assert.False(t, b.VerifySignature([]byte("q"), "sha256="+signFor("s", "p")))
}

func TestVerifySignature_SkippedWithoutSecret(t *testing.T) {
	b := &Bot{}

	assert.True(t, b.VerifySignature([]byte("p"), ""))
	assert.True(t, b.VerifySignature([]byte("p"), "sha256=deadbeef"))
}
