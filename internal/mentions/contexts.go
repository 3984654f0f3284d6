package mentions

import "strings"

// DefaultContextWindow is the number of characters surrounding a mention
// that are kept for human review.
const DefaultContextWindow = 150

// MentionContext is the text surrounding one mention of a name.
type MentionContext struct {
	Snippet      string `json:"snippet"`
	SourceOffset int    `json:"source_offset"`
}

// ExtractContexts returns one snippet per occurrence of name in text, in
// occurrence order. Each snippet spans window/2 characters before the
// occurrence and window/2 characters after its end, clipped to the text and
// trimmed of surrounding whitespace. Snippets equal to one already collected
// are dropped. The result is not capped.
//
// Offsets and window sizes count runes, not bytes. Invalid UTF-8 bytes in
// text are replaced with U+FFFD, so snippets of such input are not always
// substrings of it.
func ExtractContexts(text, name string, window int) []MentionContext {
	if text == "" || name == "" {
		return nil
	}
	return extractContexts(newDocument(text), foldRunes([]rune(name)), window)
}

func extractContexts(doc document, needle []rune, window int) []MentionContext {
	if window < 0 {
		window = 0
	}
	half := window / 2

	var contexts []MentionContext
	seen := make(map[string]struct{})
	for _, pos := range doc.occurrences(needle) {
		start := pos - half
		if start < 0 {
			start = 0
		}
		end := pos + len(needle) + half
		if end > doc.len() {
			end = doc.len()
		}

		snippet := strings.TrimSpace(string(doc.original[start:end]))
		if snippet == "" {
			continue
		}
		if _, dup := seen[snippet]; dup {
			continue
		}
		seen[snippet] = struct{}{}
		contexts = append(contexts, MentionContext{Snippet: snippet, SourceOffset: pos})
	}
	return contexts
}
