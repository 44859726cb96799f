package lexicon

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// shortTerm is the rune length at or below which a synonym must match a whole word.
const shortTerm = 3

// minTokenRunes is the minimum rune length of a keyword token.
const minTokenRunes = 3

// Lower lower-cases s. Dotted capital İ becomes a plain i; everything else
// follows the generic Unicode rules so that "IPHONE" stays "iphone".
func Lower(s string) string {
	s = strings.ReplaceAll(s, "İ", "i")
	// Caser is stateful, one per call.
	return cases.Lower(language.Und).String(s)
}

// Fold reduces s to its matching form: lower-cased, dotless ı mapped to i,
// combining marks removed and whitespace collapsed. "Kırmızı  ÇANTA" folds to
// "kirmizi canta".
func Fold(s string) string {
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Map(func(r rune) rune {
			if r == 'ı' {
				return 'i'
			}
			return r
		}),
		norm.NFC,
	)
	folded, _, err := transform.String(t, Lower(s))
	if err != nil {
		folded = Lower(s)
	}
	return strings.Join(strings.Fields(folded), " ")
}

// Contains reports whether text contains sub after folding both sides.
// An empty sub never matches.
func Contains(text, sub string) bool {
	sub = Fold(sub)
	if sub == "" {
		return false
	}
	return strings.Contains(Fold(text), sub)
}

// isWordRune reports whether r belongs to a word. '&' is kept so brand names
// like h&m stay in one piece.
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '&'
}

// containsTerm looks for a folded term inside folded text. The match must
// start at a word boundary; short terms and whole-word terms must also end at one.
func containsTerm(text, term string, exact bool) bool {
	if term == "" {
		return false
	}
	whole := exact || utf8.RuneCountInString(term) <= shortTerm
	for i := 0; i < len(text); {
		j := strings.Index(text[i:], term)
		if j < 0 {
			return false
		}
		start := i + j
		end := start + len(term)
		if boundaryBefore(text, start) && (!whole || boundaryAfter(text, end)) {
			return true
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		i = start + size
	}
	return false
}

func boundaryBefore(text string, pos int) bool {
	if pos == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:pos])
	return !isWordRune(r)
}

func boundaryAfter(text string, pos int) bool {
	if pos >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[pos:])
	return !isWordRune(r)
}

// Tokenize splits a query into keyword tokens: lower-cased, longer than two
// runes, without stop-words and without duplicates. Order of first appearance
// is preserved.
func Tokenize(query string) []string {
	parts := strings.FieldsFunc(Lower(query), func(r rune) bool { return !isWordRune(r) })

	tokens := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		if utf8.RuneCountInString(p) < minTokenRunes {
			continue
		}
		if _, stop := stopWords[Fold(p)]; stop {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		tokens = append(tokens, p)
	}
	return tokens
}

// stopWords holds folded Turkish and English function words.
var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "or": {}, "but": {}, "in": {}, "on": {}, "at": {},
	"to": {}, "for": {}, "of": {}, "with": {}, "by": {}, "a": {}, "an": {},
	"ve": {}, "veya": {}, "ile": {}, "icin": {}, "bir": {}, "bu": {}, "su": {},
	"o": {}, "da": {}, "de": {}, "ta": {}, "te": {}, "ya": {}, "ye": {},
}
