package card

import "strings"

// MeasureFunc reports the rendered pixel width of a string in some font.
type MeasureFunc func(s string) float64

// Wrap breaks text into lines no wider than maxWidth pixels, as measured
// by measure. The text is first split on newlines and each paragraph is
// wrapped independently; an empty paragraph yields a single empty line so
// blank-line spacing survives wrapping. Empty input yields no lines.
//
// Breaking is character-granular: characters accumulate onto a candidate
// line until the candidate overflows, then the candidate minus its last
// character is committed and the overflowing character starts the next
// line. One code path handles CJK and Latin text alike, since the
// dominant script has no inter-word spaces to break on. A single character wider
// than maxWidth is emitted as its own line, unmodified.
func Wrap(text string, maxWidth float64, measure MeasureFunc) []string {
	if text == "" {
		return nil
	}
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		lines = append(lines, wrapParagraph(para, maxWidth, measure)...)
	}
	return lines
}

func wrapParagraph(para string, maxWidth float64, measure MeasureFunc) []string {
	if para == "" {
		return []string{""}
	}

	var lines []string
	var candidate []rune
	for _, r := range para {
		candidate = append(candidate, r)
		if len(candidate) > 1 && measure(string(candidate)) > maxWidth {
			lines = append(lines, string(candidate[:len(candidate)-1]))
			candidate = candidate[:1]
			candidate[0] = r
		}
	}
	// candidate is never empty here; the trailing partial line always flushes.
	return append(lines, string(candidate))
}
