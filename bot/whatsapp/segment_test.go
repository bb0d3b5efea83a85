package whatsapp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitMessage_ShortTextIsSingleChunk(t *testing.T) {
	chunks := SplitMessage("hello", 100)
	assert.Equal(t, []string{"hello"}, chunks)
}

func TestSplitMessage_ExactLengthIsSingleChunk(t *testing.T) {
	text := strings.Repeat("A", 10)
	chunks := SplitMessage(text, 10)
	assert.Equal(t, []string{text}, chunks)
}

func TestSplitMessage_EmptyTextYieldsNoChunks(t *testing.T) {
	assert.Empty(t, SplitMessage("", 10))
}

func TestSplitMessage_PrefersParagraphBreak(t *testing.T) {
	chunks := SplitMessage("AAAA\n\nBBBB", 6)
	assert.Equal(t, []string{"AAAA", "BBBB"}, chunks)
}

func TestSplitMessage_FallsBackToLineBreak(t *testing.T) {
	chunks := SplitMessage("AAAA\nBBBB", 6)
	assert.Equal(t, []string{"AAAA", "BBBB"}, chunks)
}

func TestSplitMessage_FallsBackToSpace(t *testing.T) {
	chunks := SplitMessage("AAAA BBBB", 6)
	assert.Equal(t, []string{"AAAA", "BBBB"}, chunks)
}

func TestSplitMessage_HardCutWithoutBreakpoints(t *testing.T) {
	chunks := SplitMessage(strings.Repeat("A", 10), 4)
	assert.Equal(t, []string{"AAAA", "AAAA", "AA"}, chunks)
}

func TestSplitMessage_RejectsBreakpointBeforeHalf(t *testing.T) {
	// The only space sits at index 2, before half of maxLen 8, so the
	// cut is forced at exactly 8 instead.
	chunks := SplitMessage("AB CDEFGHIJ", 8)
	assert.Equal(t, []string{"AB CDEFG", "HIJ"}, chunks)
}

func TestSplitMessage_MultiByteRunesNeverSplit(t *testing.T) {
	text := strings.Repeat("ü", 7)
	chunks := SplitMessage(text, 3)
	assert.Equal(t, []string{"üüü", "üüü", "ü"}, chunks)
}

func TestSplitMessage_Properties(t *testing.T) {
	texts := []string{
		"one paragraph only",
		strings.Repeat("word ", 200),
		strings.Repeat("line one\nline two\n\n", 40),
		strings.Repeat("x", 517),
		"short",
		"a\n\nb\n\nc\n\nd\n\ne\n\nf\n\ng",
	}

	for _, text := range texts {
		for _, maxLen := range []int{1, 2, 7, 16, 100, 4000} {
			chunks := SplitMessage(text, maxLen)

			for _, chunk := range chunks {
				length := len([]rune(chunk))
				require.GreaterOrEqual(t, length, 1,
					"maxLen %d text %q", maxLen, text)
				require.LessOrEqual(t, length, maxLen,
					"maxLen %d text %q", maxLen, text)
			}

			// Only boundary whitespace may differ between the input and
			// the reassembled chunks.
			joined := strings.Join(strings.Fields(strings.Join(chunks, " ")), " ")
			original := strings.Join(strings.Fields(text), " ")
			require.Equal(t, original, joined, "maxLen %d", maxLen)
		}
	}
}
