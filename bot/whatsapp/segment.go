package whatsapp

import "unicode"

// SplitMessage splits text into ordered chunks of at most maxLen
// characters, preferring a cut at a paragraph break, then a line break,
// then a space. A break closer to the start than half of maxLen is
// rejected so chunks never degenerate into tiny fragments; when no break
// qualifies the cut is forced at exactly maxLen. Leading whitespace left
// behind by a cut is trimmed from the remainder.
func SplitMessage(text string, maxLen int) []string {
	if text == "" {
		return nil
	}
	if maxLen < 1 {
		maxLen = 1
	}

	runes := []rune(text)
	if len(runes) <= maxLen {
		return []string{text}
	}

	var chunks []string
	for len(runes) > 0 {
		if len(runes) <= maxLen {
			chunks = append(chunks, string(runes))
			break
		}

		cut := lastBreak(runes, []rune("\n\n"), maxLen)
		if cut*2 < maxLen {
			cut = lastBreak(runes, []rune("\n"), maxLen)
		}
		if cut*2 < maxLen {
			cut = lastBreak(runes, []rune(" "), maxLen)
		}
		if cut*2 < maxLen {
			cut = maxLen
		}

		chunks = append(chunks, string(runes[:cut]))
		runes = trimLeadingSpace(runes[cut:])
	}
	return chunks
}

// lastBreak returns the largest index <= limit at which sep begins, or -1.
func lastBreak(runes, sep []rune, limit int) int {
	for i := limit; i >= 0; i-- {
		if breakAt(runes, sep, i) {
			return i
		}
	}
	return -1
}

func breakAt(runes, sep []rune, at int) bool {
	if at+len(sep) > len(runes) {
		return false
	}
	for j, r := range sep {
		if runes[at+j] != r {
			return false
		}
	}
	return true
}

func trimLeadingSpace(runes []rune) []rune {
	i := 0
	for i < len(runes) && unicode.IsSpace(runes[i]) {
		i++
	}
	return runes[i:]
}
