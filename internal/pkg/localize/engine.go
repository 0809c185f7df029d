// Package localize translates Japanese place names, addresses, and notes
// into Korean and English using curated dictionaries. Translation is
// best-effort substring replacement; unmatched text passes through.
package localize

import (
	"sort"
	"strings"

	"github.com/smokemap/smokemap/internal/core/domain"
)

// Engine performs language detection and dictionary translation. Dictionaries
// are supplied at construction; the engine holds no mutable state and is safe
// for concurrent use.
type Engine struct {
	entries map[string]Entry
	// keys sorted longest first so compound terms match before their parts
	sorted []string
}

// New builds an engine from one or more dictionaries. Later dictionaries
// override earlier ones on key collision.
func New(dicts ...map[string]Entry) *Engine {
	merged := make(map[string]Entry)
	for _, d := range dicts {
		for k, v := range d {
			merged[k] = v
		}
	}

	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	return &Engine{entries: merged, sorted: keys}
}

// DefaultEngine returns an engine loaded with the built-in term and region
// dictionaries.
func DefaultEngine() *Engine {
	return New(Terms(), Regions())
}

// Detect classifies text by character script. Japanese kana or kanji wins
// over Hangul, which wins over pure ASCII. CJK ideographs outside the
// Japanese range are treated as Chinese.
func (e *Engine) Detect(text string) domain.Lang {
	if text == "" {
		return domain.LangUnknown
	}

	japanese := false
	hangul := false
	cjkOther := false
	asciiOnly := true
	for _, r := range text {
		switch {
		case r >= 0x3040 && r <= 0x309F, // hiragana
			r >= 0x30A0 && r <= 0x30FF, // katakana
			r >= 0x4E00 && r <= 0x9FAF: // common kanji
			japanese = true
			asciiOnly = false
		case r >= 0xAC00 && r <= 0xD7AF: // hangul syllables
			hangul = true
			asciiOnly = false
		case r >= 0x9FB0 && r <= 0x9FFF: // CJK ideographs past the kanji range
			cjkOther = true
			asciiOnly = false
		case r < 0x80 && isLatinAllowed(r):
			// still ascii
		default:
			asciiOnly = false
		}
	}

	switch {
	case japanese:
		return domain.LangJA
	case hangul:
		return domain.LangKO
	case cjkOther:
		return domain.LangZH
	case asciiOnly:
		return domain.LangEN
	default:
		return domain.LangUnknown
	}
}

func isLatinAllowed(r rune) bool {
	if r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
		return true
	}
	switch r {
	case ' ', '\t', '-', '.', ',', '!', '?', '\'', '"', '(', ')':
		return true
	}
	return false
}

// Localize builds a localized bundle for the given text. Empty input yields
// nil, never an empty bundle. Only Japanese text is translated; Korean text
// is carried into the ko field, everything else keeps just the original.
func (e *Engine) Localize(text string) *domain.LocalizedText {
	if text == "" {
		return nil
	}

	lang := e.Detect(text)
	lt := &domain.LocalizedText{Original: text, OriginalLang: lang}

	switch lang {
	case domain.LangJA:
		lt.Ko, lt.En = e.translate(text)
	case domain.LangKO:
		lt.Ko = text
	}

	return lt
}

// translate replaces dictionary terms in two parallel outputs. Matches are
// checked against the original text, longest key first. English replacements
// are padded with spaces and the result re-collapsed so adjacent tokens read
// naturally; Korean compounds stay joined as in normal Korean orthography.
func (e *Engine) translate(text string) (ko, en string) {
	ko, en = text, text

	for _, key := range e.sorted {
		if !strings.Contains(text, key) {
			continue
		}
		entry := e.entries[key]
		ko = strings.ReplaceAll(ko, key, entry.Ko)
		en = strings.ReplaceAll(en, key, " "+entry.En+" ")
	}

	for _, n := range kanjiNumerals {
		ko = strings.ReplaceAll(ko, n.Kanji, n.Digit)
		en = strings.ReplaceAll(en, n.Kanji, n.Digit)
	}

	en = strings.Join(strings.Fields(en), " ")
	return ko, en
}
