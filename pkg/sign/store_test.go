package sign

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/lingqianapp/lingqian/pkg/errors"
	"github.com/lingqianapp/lingqian/pkg/i18n"
)

func TestNewStore(t *testing.T) {
	s, err := NewStore()
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	if s.Count(i18n.LangZH) == 0 {
		t.Fatal("embedded zh set is empty")
	}
	if s.Count(i18n.LangEN) != s.Count(i18n.LangZH) {
		t.Errorf("en set has %d signs, zh has %d; sets should be parallel",
			s.Count(i18n.LangEN), s.Count(i18n.LangZH))
	}

	// Every sign carries a parseable rating and a non-empty prophecy.
	for _, r := range s.Signs(i18n.LangZH) {
		if r.Rating() < 1 || r.Rating() > MaxRating {
			t.Errorf("sign %s has rating %d outside 1..%d", r.ID, r.Rating(), MaxRating)
		}
		if r.ProphecyText == "" {
			t.Errorf("sign %s has empty prophecy", r.ID)
		}
	}
}

func TestStoreGet(t *testing.T) {
	s, err := NewStore()
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	r, err := s.Get(i18n.LangEN, "qian-01")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if r.ID != "qian-01" {
		t.Errorf("Get returned id %q", r.ID)
	}

	if _, err := s.Get(i18n.LangZH, "no-such-sign"); !errors.Is(err, errors.ErrCodeSignNotFound) {
		t.Errorf("Get unknown id: code = %s, want SIGN_NOT_FOUND", errors.GetCode(err))
	}
	if _, err := s.Get(i18n.LangZH, "../escape"); !errors.Is(err, errors.ErrCodeInvalidSign) {
		t.Errorf("Get traversal id: code = %s, want INVALID_SIGN", errors.GetCode(err))
	}
}

func TestStoreDrawDeterministic(t *testing.T) {
	s, err := NewStore()
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	a, err := s.Draw(i18n.LangZH, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("Draw: %v", err)
	}
	b, err := s.Draw(i18n.LangZH, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if a.ID != b.ID {
		t.Errorf("same seed drew %s and %s", a.ID, b.ID)
	}
}

func TestStoreDirFallback(t *testing.T) {
	// A directory with only the default-language set: other languages
	// must fall back to it rather than erroring.
	dir := t.TempDir()
	zh := `[{"id": "only-one", "luck_index": "★★★", "prophecy_text": "一路平安", "fortune_text": "平", "summary_text": "中"}]`
	if err := os.WriteFile(filepath.Join(dir, "signs_zh.json"), []byte(zh), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := NewStoreFromDir(dir)
	if err != nil {
		t.Fatalf("NewStoreFromDir: %v", err)
	}

	if s.Count(i18n.LangEN) != 1 {
		t.Errorf("en count = %d, want 1 (fallback to zh)", s.Count(i18n.LangEN))
	}
	r, err := s.Get(i18n.LangEN, "only-one")
	if err != nil {
		t.Fatalf("Get via fallback: %v", err)
	}
	if r.SummaryText != "中" {
		t.Errorf("fallback record summary = %q", r.SummaryText)
	}
}

func TestStoreDirMissingDefault(t *testing.T) {
	if _, err := NewStoreFromDir(t.TempDir()); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("empty dir: code = %s, want FILE_NOT_FOUND", errors.GetCode(err))
	}
}

func TestStoreDuplicateID(t *testing.T) {
	dir := t.TempDir()
	zh := `[{"id": "dup"}, {"id": "dup"}]`
	if err := os.WriteFile(filepath.Join(dir, "signs_zh.json"), []byte(zh), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewStoreFromDir(dir); err == nil {
		t.Error("duplicate ids should fail to load")
	}
}
