package chat

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ClaudBot/entity"
)

func TestStore_TrimsOldestTurns(t *testing.T) {
	store := NewStore(40)

	for i := 0; i < 45; i++ {
		store.Append("sender", entity.Turn{
			Role:    entity.RoleUser,
			Content: fmt.Sprintf("turn %d", i),
		})
	}

	history := store.History("sender")
	require.Len(t, history, 40)

	// The oldest 5 turns are evicted, relative order preserved.
	assert.Equal(t, "turn 5", history[0].Content)
	assert.Equal(t, "turn 44", history[39].Content)
	for i, turn := range history {
		assert.Equal(t, fmt.Sprintf("turn %d", i+5), turn.Content)
	}
}

func TestStore_FreshSenderHasEmptyHistory(t *testing.T) {
	store := NewStore(40)

	assert.Empty(t, store.History("nobody"))
	assert.Equal(t, 0, store.Count())
}

func TestStore_Reset(t *testing.T) {
	store := NewStore(40)

	store.Append("sender", entity.Turn{Role: entity.RoleUser, Content: "hello"})
	store.Append("sender", entity.Turn{Role: entity.RoleAssistant, Content: "hi"})
	require.Len(t, store.History("sender"), 2)
	require.Equal(t, 1, store.Count())

	store.Reset("sender")

	assert.Empty(t, store.History("sender"))
	assert.Equal(t, 0, store.Count())
}

func TestStore_HistoryReturnsCopy(t *testing.T) {
	store := NewStore(40)
	store.Append("sender", entity.Turn{Role: entity.RoleUser, Content: "original"})

	history := store.History("sender")
	history[0].Content = "mutated"

	assert.Equal(t, "original", store.History("sender")[0].Content)
}
