package mentions

import "unicode"

// document keeps the original runes of a text next to a case-folded copy of
// the same length, so offsets found in the folded copy index the original.
type document struct {
	original []rune
	folded   []rune
}

func newDocument(text string) document {
	original := []rune(text)
	return document{original: original, folded: foldRunes(original)}
}

func (d document) len() int {
	return len(d.original)
}

func foldRunes(runes []rune) []rune {
	folded := make([]rune, len(runes))
	for i, r := range runes {
		folded[i] = unicode.ToLower(r)
	}
	return folded
}

// indexFrom returns the first offset >= start at which needle occurs in
// d.folded, or -1.
func (d document) indexFrom(needle []rune, start int) int {
	if len(needle) == 0 {
		return -1
	}
	last := len(d.folded) - len(needle)
	for i := start; i <= last; i++ {
		if d.folded[i] != needle[0] {
			continue
		}
		match := true
		for j := 1; j < len(needle); j++ {
			if d.folded[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

// occurrences returns every non-overlapping offset of needle, scanning
// left to right and resuming after the end of each match.
func (d document) occurrences(needle []rune) []int {
	if len(needle) == 0 {
		return nil
	}
	var offsets []int
	start := 0
	for {
		pos := d.indexFrom(needle, start)
		if pos < 0 {
			return offsets
		}
		offsets = append(offsets, pos)
		start = pos + len(needle)
	}
}

// FindOccurrences returns the character offsets of every case-insensitive,
// non-overlapping occurrence of name in text. Empty text or name yields no
// occurrences.
func FindOccurrences(text, name string) []int {
	if text == "" || name == "" {
		return nil
	}
	return newDocument(text).occurrences(foldRunes([]rune(name)))
}

// FirstOccurrence returns the character offset of the first
// case-insensitive occurrence of name in text.
func FirstOccurrence(text, name string) (int, bool) {
	if text == "" || name == "" {
		return 0, false
	}
	pos := newDocument(text).indexFrom(foldRunes([]rune(name)), 0)
	return pos, pos >= 0
}

// Contains reports whether name occurs anywhere in text, ignoring case.
func Contains(text, name string) bool {
	_, ok := FirstOccurrence(text, name)
	return ok
}
