package scripture

import (
	"strings"
	"testing"
)

func TestNormalizeLongestMatch(t *testing.T) {
	n := NewNumeralNormalizer()

	got := n.Normalize("이십일장")
	if got != "21장" {
		t.Fatalf("Normalize(이십일장) = %q, want %q", got, "21장")
	}
	if strings.Contains(got, "2101") || strings.Contains(got, "210") {
		t.Fatalf("numeral split into parts: %q", got)
	}
}

func TestNormalizeRecognizerVariants(t *testing.T) {
	n := NewNumeralNormalizer()
	cases := map[string]string{
		"삼장 신육절":  "3장 16절",
		"삼장 시뉵절":  "3장 16절",
		"오장 심칠절":  "5장 17절",
		"백오십편":    "150편",
		"삼십일장 십절": "31장 10절",
	}
	for in, want := range cases {
		if got := n.Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	n := NewNumeralNormalizer()
	inputs := []string{
		"",
		"창세기 1장 1절",
		"요한복음 삼장 십육절",
		"이십일장 이십이절부터 이십구절",
		"시편 백오십편 육절",
		"신육 시뉵 심육 신구",
		"hey 은석",
	}
	for _, in := range inputs {
		once := n.Normalize(in)
		if twice := n.Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestNormalizeTieKeepsDeclarationOrder(t *testing.T) {
	n := newNumeralNormalizer([]numeralEntry{
		{"가나", "1"},
		{"나다", "2"},
	})
	if got := n.Normalize("가나다"); got != "1다" {
		t.Fatalf("Normalize(가나다) = %q, want %q", got, "1다")
	}
}
