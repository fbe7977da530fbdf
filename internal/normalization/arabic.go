package normalization

import (
	"strings"
)

// Arabic spreadsheet headers come with inconsistent letter variants and
// stray elongation marks, so matching has to happen on a folded form.
var arabicFolder = strings.NewReplacer(
	"أ", "ا",
	"إ", "ا",
	"آ", "ا",
	"ٱ", "ا",
	"ى", "ي",
	"ئ", "ي",
	"ة", "ه",
	"ؤ", "و",
	"ـ", "", // tatweel
)

// NormalizeArabic folds Arabic letter variants to a canonical form, strips
// tatweel and diacritics, collapses internal whitespace and lowercases any
// Latin text. The result is only meant for matching, never for display.
func NormalizeArabic(input string) string {
	s := arabicFolder.Replace(input)
	s = stripDiacritics(s)
	s = strings.ToLower(s)
	return strings.Join(strings.Fields(s), " ")
}

func stripDiacritics(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		// Arabic harakat and Quranic annotation ranges.
		if (r >= 0x064B && r <= 0x065F) || r == 0x0670 || (r >= 0x06D6 && r <= 0x06ED) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
