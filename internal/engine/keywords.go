package engine

import (
	"strings"
	"unicode"
)

// MatchMode selects how keywords are located inside text.
type MatchMode int

const (
	// MatchSubstring finds a keyword anywhere in the text, including inside
	// longer words ("class" matches "classic").
	MatchSubstring MatchMode = iota
	// MatchWholeWord requires the keyword to be delimited by non-alphanumeric
	// characters or the text boundaries.
	MatchWholeWord
)

// KeywordSet is an ordered, immutable collection of lowercase phrases.
type KeywordSet struct {
	name     string
	keywords []string
	mode     MatchMode
}

// NewKeywordSet builds a set from the given phrases. Phrases are lowercased and
// trimmed; blank phrases and duplicates are dropped, first occurrence wins.
func NewKeywordSet(name string, mode MatchMode, phrases ...string) KeywordSet {
	seen := make(map[string]struct{}, len(phrases))
	keywords := make([]string, 0, len(phrases))
	for _, p := range phrases {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		keywords = append(keywords, p)
	}

	return KeywordSet{name: name, keywords: keywords, mode: mode}
}

// Name returns the set name, e.g. "allow" or "block".
func (s KeywordSet) Name() string { return s.name }

// Len returns the number of phrases in the set.
func (s KeywordSet) Len() int { return len(s.keywords) }

// Keywords returns a copy of the phrases in order.
func (s KeywordSet) Keywords() []string {
	out := make([]string, len(s.keywords))
	copy(out, s.keywords)

	return out
}

// Match returns the first phrase, in set order, found in any of the texts.
func (s KeywordSet) Match(texts ...string) (string, bool) {
	lowered := make([]string, 0, len(texts))
	for _, t := range texts {
		if strings.TrimSpace(t) == "" {
			continue
		}
		lowered = append(lowered, strings.ToLower(t))
	}
	if len(lowered) == 0 {
		return "", false
	}

	for _, kw := range s.keywords {
		for _, t := range lowered {
			if s.contains(t, kw) {
				return kw, true
			}
		}
	}

	return "", false
}

func (s KeywordSet) contains(text, kw string) bool {
	if s.mode != MatchWholeWord {
		return strings.Contains(text, kw)
	}

	for offset := 0; offset < len(text); {
		i := strings.Index(text[offset:], kw)
		if i < 0 {
			return false
		}
		start := offset + i
		end := start + len(kw)
		if isBoundary(text, start-1) && isBoundary(text, end) {
			return true
		}
		offset = start + 1
	}

	return false
}

// isBoundary reports whether the byte at i is outside text or not part of a word.
func isBoundary(text string, i int) bool {
	if i < 0 || i >= len(text) {
		return true
	}
	r := rune(text[i])

	return r < 0x80 && !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// DefaultAllowKeywords are phrases that indicate educational content.
func DefaultAllowKeywords() []string {
	return []string{
		"tutorial", "lecture", "course", "lesson", "learn", "education", "educational",
		"explained", "how to", "introduction to", "science", "math", "physics",
		"chemistry", "biology", "history", "geography", "economics", "programming",
		"coding", "algorithm", "university", "school", "class", "study", "exam",
		"documentary", "khan academy", "crash course", "ted-ed", "mit opencourseware",
	}
}

// DefaultBlockKeywords are phrases that indicate entertainment content.
func DefaultBlockKeywords() []string {
	return []string{
		"prank", "funny", "meme", "vlog", "gameplay", "gaming", "let's play",
		"music video", "official video", "lyrics", "trailer", "reaction", "challenge",
		"comedy", "entertainment", "celebrity", "gossip", "tiktok", "shorts",
		"fortnite", "minecraft", "unboxing", "asmr", "mukbang",
	}
}
