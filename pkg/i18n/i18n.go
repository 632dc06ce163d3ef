// Package i18n provides language handling and UI string lookup for lingqian.
//
// Translations are a flat key → string mapping supplied by the caller (the
// web front end ships its own translation files). Every key the card
// composer consumes has a baked-in default per language, so a missing or
// partial table degrades to sensible built-in strings rather than erroring.
// This fallback table is part of the composer's contract.
package i18n

import (
	"fmt"
	"strings"
	"time"

	"github.com/lingqianapp/lingqian/pkg/errors"
)

// Language identifies a supported UI language.
type Language string

// Supported languages.
const (
	LangZH Language = "zh"
	LangEN Language = "en"
)

// DefaultLanguage is the language all lookups fall back to. The sign
// library is authored in Chinese first, so zh is the canonical source.
const DefaultLanguage = LangZH

// Table is a flat key → string translation mapping. A nil Table is valid
// and resolves every key through the built-in defaults.
type Table map[string]string

// Keys consumed by the card composer. Callers may override any of them
// through a Table; the defaults below apply otherwise.
const (
	KeyCardTitle     = "card_title"
	KeyProphecyTitle = "prophecy_title"
	KeyFortuneTitle  = "fortune_title"
	KeyNoData        = "no_data"
)

// defaults holds the baked-in fallback strings per language.
var defaults = map[Language]map[string]string{
	LangZH: {
		KeyCardTitle:     "天机灵签",
		KeyProphecyTitle: "签诗",
		KeyFortuneTitle:  "解签",
		KeyNoData:        "暂无数据",
	},
	LangEN: {
		KeyCardTitle:     "Fortune Sign",
		KeyProphecyTitle: "Oracle Verse",
		KeyFortuneTitle:  "Interpretation",
		KeyNoData:        "No data",
	},
}

// Parse converts a language tag to a Language. Matching is case-insensitive
// and ignores any region subtag ("zh-CN" parses as zh). An empty tag yields
// the default language; an unknown tag is an INVALID_LANGUAGE error.
func Parse(tag string) (Language, error) {
	if tag == "" {
		return DefaultLanguage, nil
	}
	base := strings.ToLower(tag)
	if i := strings.IndexAny(base, "-_"); i > 0 {
		base = base[:i]
	}
	switch Language(base) {
	case LangZH:
		return LangZH, nil
	case LangEN:
		return LangEN, nil
	}
	return "", errors.New(errors.ErrCodeInvalidLanguage, "unknown language: %q", tag)
}

// Known reports whether lang is a supported language.
func Known(lang Language) bool {
	_, ok := defaults[lang]
	return ok
}

// All returns the supported languages, default language first.
func All() []Language {
	return []Language{LangZH, LangEN}
}

// Text resolves key for lang: the caller-supplied table wins, then the
// language's built-in default, then the default language's default. The
// final fallback is the key itself, which keeps a typo visible instead of
// silently blank.
func Text(tbl Table, lang Language, key string) string {
	if s, ok := tbl[key]; ok && s != "" {
		return s
	}
	if s, ok := defaults[lang][key]; ok {
		return s
	}
	if s, ok := defaults[DefaultLanguage][key]; ok {
		return s
	}
	return key
}

// FormatDate renders t as a date stamp in the locale conventions of lang.
// Only the date is printed; the composer's card carries no time of day.
func FormatDate(lang Language, t time.Time) string {
	switch lang {
	case LangEN:
		return t.Format("January 2, 2006")
	default:
		return fmt.Sprintf("%d年%d月%d日", t.Year(), int(t.Month()), t.Day())
	}
}
