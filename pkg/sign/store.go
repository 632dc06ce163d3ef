package sign

import (
	"embed"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/lingqianapp/lingqian/pkg/errors"
	"github.com/lingqianapp/lingqian/pkg/i18n"
)

//go:embed data/signs_zh.json data/signs_en.json
var dataFS embed.FS

// Store holds the sign sets for all languages and answers lookups and
// random draws. A Store is immutable after construction and safe for
// concurrent use.
type Store struct {
	byLang map[i18n.Language][]Record
	byID   map[i18n.Language]map[string]Record
}

// NewStore loads the embedded sign library.
func NewStore() (*Store, error) {
	byLang := make(map[i18n.Language][]Record)
	for _, lang := range i18n.All() {
		data, err := dataFS.ReadFile(dataFile(lang))
		if err != nil {
			// Embedded sets exist for every supported language; a miss
			// here is a packaging mistake, not a runtime condition.
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "embedded sign set for %s", lang)
		}
		records, err := parseSigns(data)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "parsing embedded sign set for %s", lang)
		}
		byLang[lang] = records
	}
	return newStore(byLang)
}

// NewStoreFromDir loads sign sets from dir, expecting one signs_<lang>.json
// per language. Languages without a file (or with an empty set) fall back to
// the default language at lookup time, mirroring the web front end's
// fetch-with-fallback behavior. The default language's file is required.
func NewStoreFromDir(dir string) (*Store, error) {
	byLang := make(map[i18n.Language][]Record)
	for _, lang := range i18n.All() {
		data, err := os.ReadFile(filepath.Join(dir, dataFile(lang)))
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "reading sign set for %s", lang)
		}
		records, err := parseSigns(data)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parsing sign set for %s", lang)
		}
		byLang[lang] = records
	}
	if len(byLang[i18n.DefaultLanguage]) == 0 {
		return nil, errors.New(errors.ErrCodeFileNotFound,
			"no sign set for default language %s in %s", i18n.DefaultLanguage, dir)
	}
	return newStore(byLang)
}

func newStore(byLang map[i18n.Language][]Record) (*Store, error) {
	byID := make(map[i18n.Language]map[string]Record, len(byLang))
	for lang, records := range byLang {
		m := make(map[string]Record, len(records))
		for _, r := range records {
			if r.ID == "" {
				return nil, errors.New(errors.ErrCodeInvalidInput, "sign set for %s contains a record without id", lang)
			}
			if _, dup := m[r.ID]; dup {
				return nil, errors.New(errors.ErrCodeInvalidInput, "sign set for %s contains duplicate id %q", lang, r.ID)
			}
			m[r.ID] = r
		}
		byID[lang] = m
	}
	return &Store{byLang: byLang, byID: byID}, nil
}

func parseSigns(data []byte) ([]Record, error) {
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func dataFile(lang i18n.Language) string {
	return fmt.Sprintf("data/signs_%s.json", lang)
}

// resolve returns the sign set for lang, falling back to the default
// language when lang has no (or an empty) set of its own.
func (s *Store) resolve(lang i18n.Language) (i18n.Language, []Record) {
	if records := s.byLang[lang]; len(records) > 0 {
		return lang, records
	}
	return i18n.DefaultLanguage, s.byLang[i18n.DefaultLanguage]
}

// Signs returns the sign set used for lang (after fallback). The returned
// slice is shared; callers must not modify it.
func (s *Store) Signs(lang i18n.Language) []Record {
	_, records := s.resolve(lang)
	return records
}

// Count returns the number of signs served for lang (after fallback).
func (s *Store) Count(lang i18n.Language) int {
	return len(s.Signs(lang))
}

// Get looks up a sign by ID in lang's set (after fallback).
func (s *Store) Get(lang i18n.Language, id string) (Record, error) {
	if err := errors.ValidateSignID(id); err != nil {
		return Record{}, err
	}
	resolved, _ := s.resolve(lang)
	if r, ok := s.byID[resolved][id]; ok {
		return r, nil
	}
	return Record{}, errors.New(errors.ErrCodeSignNotFound, "no sign %q for language %s", id, lang)
}

// Draw picks a uniformly random sign from lang's set (after fallback).
// The caller supplies the random source so draws can be seeded for tests.
func (s *Store) Draw(lang i18n.Language, rng *rand.Rand) (Record, error) {
	_, records := s.resolve(lang)
	if len(records) == 0 {
		return Record{}, errors.New(errors.ErrCodeSignNotFound, "sign library is empty")
	}
	return records[rng.Intn(len(records))], nil
}
