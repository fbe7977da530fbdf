package normalization

import "testing"

func TestNormalizeArabic_FoldsLetterVariants(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"أحمد", "احمد"},
		{"إسلامية", "اسلاميه"},
		{"آداب", "اداب"},
		{"مصطفى", "مصطفي"},
		{"قراءة", "قراءه"},
		{"مؤسسة", "موسسه"},
		{"اللغة العربية", "اللغه العربيه"},
	}
	for _, tc := range cases {
		if got := NormalizeArabic(tc.in); got != tc.want {
			t.Fatalf("NormalizeArabic(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeArabic_StripsTatweelAndDiacritics(t *testing.T) {
	if got := NormalizeArabic("الرياضيـــات"); got != "الرياضيات" {
		t.Fatalf("tatweel survived: %q", got)
	}
	if got := NormalizeArabic("مُعَدَّل"); got != "معدل" {
		t.Fatalf("diacritics survived: %q", got)
	}
}

func TestNormalizeArabic_WhitespaceAndLatin(t *testing.T) {
	if got := NormalizeArabic("  Langue   Arabe \t"); got != "langue arabe" {
		t.Fatalf("got %q", got)
	}
	if got := NormalizeArabic(" "); got != "" {
		// strings.Fields splits on unicode whitespace, NBSP included.
		t.Fatalf("NBSP-only input produced %q", got)
	}
	if got := NormalizeArabic(""); got != "" {
		t.Fatalf("empty input produced %q", got)
	}
}
