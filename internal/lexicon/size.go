package lexicon

import (
	"regexp"
	"strings"
)

var (
	// "size 42", "beden: M", "numara 38.5"
	sizeAfterMarker = regexp.MustCompile(`(?:^|[^\p{L}\p{N}])(?:size|beden|numara)\s*[:=]?\s*(\d{1,3}(?:[.,]5)?|xxxl|xxl|xl|xs|s|m|l)(?:$|[^\p{L}\p{N}])`)
	// "42 numara", "38 beden"
	sizeBeforeMarker = regexp.MustCompile(`(?:^|[^\p{L}\p{N}])(\d{2}(?:[.,]5)?)\s*(?:numara|beden)(?:$|[^\p{L}\p{N}])`)
	// standalone letter sizes that cannot be mistaken for words
	sizeLetters = regexp.MustCompile(`(?:^|[^\p{L}\p{N}])(xxxl|xxl|xl|xs)(?:$|[^\p{L}\p{N}])`)
)

// DetectSize finds a clothing or shoe size in text. Letter sizes are returned
// upper-cased, numeric sizes with a dot decimal separator.
func DetectSize(text string) (string, bool) {
	folded := Fold(text)
	for _, re := range []*regexp.Regexp{sizeAfterMarker, sizeBeforeMarker, sizeLetters} {
		if m := re.FindStringSubmatch(folded); m != nil {
			return normalizeSize(m[1]), true
		}
	}
	return "", false
}

func normalizeSize(s string) string {
	s = strings.ReplaceAll(s, ",", ".")
	return strings.ToUpper(s)
}
