package card

import (
	"testing"

	"github.com/lingqianapp/lingqian/pkg/i18n"
)

func TestCandidatesBoldFallsBackToRegular(t *testing.T) {
	names := candidates(i18n.LangEN, FontSpec{Family: FamilyBody, Bold: true})
	if len(names) == 0 {
		t.Fatal("no candidates")
	}
	if names[0] != "DejaVuSerif-Bold.ttf" {
		t.Errorf("first candidate = %q, want the bold cut", names[0])
	}
	found := false
	for _, n := range names {
		if n == "DejaVuSerif.ttf" {
			found = true
		}
	}
	if !found {
		t.Error("regular cut missing from the fallback tail")
	}
}

func TestCandidatesCJKItalicUsesRegular(t *testing.T) {
	// The zh serif stack ships no italic cut, so an italic spec resolves
	// straight to the regular list.
	names := candidates(i18n.LangZH, FontSpec{Family: FamilyBody, Italic: true})
	if len(names) == 0 {
		t.Fatal("no candidates")
	}
	if names[0] != "NotoSerifCJK-Regular.ttc" {
		t.Errorf("first candidate = %q, want the regular cut", names[0])
	}
}

func TestCandidatesAccentIgnoresLanguage(t *testing.T) {
	zh := candidates(i18n.LangZH, FontSpec{Family: FamilyAccent})
	en := candidates(i18n.LangEN, FontSpec{Family: FamilyAccent})
	if len(zh) != len(en) {
		t.Fatalf("accent stacks differ: %v vs %v", zh, en)
	}
	for i := range zh {
		if zh[i] != en[i] {
			t.Errorf("accent candidate %d differs: %q vs %q", i, zh[i], en[i])
		}
	}
}

func TestCandidatesUnknownLanguage(t *testing.T) {
	got := candidates("xx", FontSpec{Family: FamilyBody})
	want := candidates(i18n.DefaultLanguage, FontSpec{Family: FamilyBody})
	if len(got) != len(want) {
		t.Fatalf("got %v, want default-language stack %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("candidate %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSystemFontsResolve(t *testing.T) {
	src := NewSystemFonts()
	spec := FontSpec{Family: FamilyAccent, Size: 16}

	face, err := src.Face(i18n.LangEN, spec)
	if err != nil {
		t.Skipf("no system fonts available: %v", err)
	}
	if face == nil {
		t.Fatal("Face() returned nil face without error")
	}

	measure, err := src.Measure(i18n.LangEN, spec)
	if err != nil {
		t.Fatalf("Measure() error = %v", err)
	}
	if w := measure("Hello"); w <= 0 {
		t.Errorf("measure(%q) = %v, want > 0", "Hello", w)
	}

	again, err := src.Face(i18n.LangEN, spec)
	if err != nil {
		t.Fatalf("second Face() error = %v", err)
	}
	if again != face {
		t.Error("face not served from cache on second resolve")
	}
}
