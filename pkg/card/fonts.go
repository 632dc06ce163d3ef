package card

import (
	"os"
	"strings"
	"sync"

	"github.com/flopp/go-findfont"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"

	"github.com/lingqianapp/lingqian/pkg/errors"
	"github.com/lingqianapp/lingqian/pkg/i18n"
)

// Family selects which font stack a block draws from.
type Family int

// Font families.
const (
	// FamilyBody is the language-dependent serif used for running text
	// and titles: a CJK serif for Chinese, a Latin serif otherwise.
	FamilyBody Family = iota

	// FamilyAccent is a fixed sans-serif used for the luck stars. Star
	// glyphs and digits render the same across font stacks, so the accent
	// family does not vary with language.
	FamilyAccent
)

// FontSpec names a concrete face: family, pixel size, and style flags.
type FontSpec struct {
	Family Family
	Size   float64
	Bold   bool
	Italic bool
}

// FaceSource resolves font specs for a language into drawable faces and
// measurement functions. The layout pass only measures; the paint pass
// only draws. A resolution failure is fatal to the render in progress.
type FaceSource interface {
	Face(lang i18n.Language, spec FontSpec) (font.Face, error)
	Measure(lang i18n.Language, spec FontSpec) (MeasureFunc, error)
}

// =============================================================================
// System Fonts - findfont-backed FaceSource
// =============================================================================

// variants lists candidate font file names per style, tried in order.
type variants struct {
	regular []string
	bold    []string
	italic  []string
}

// bodyStacks maps each language to its body font stack. Adding a language
// is one entry here; nothing else in the composer branches on language for
// font selection.
var bodyStacks = map[i18n.Language]variants{
	i18n.LangZH: {
		regular: []string{"NotoSerifCJK-Regular.ttc", "NotoSerifCJKsc-Regular.otf", "SourceHanSerifSC-Regular.otf", "simsun.ttc"},
		bold:    []string{"NotoSerifCJK-Bold.ttc", "NotoSerifCJKsc-Bold.otf", "SourceHanSerifSC-Bold.otf", "simhei.ttf"},
		// CJK serif families ship no italic cut; the regular face stands in.
	},
	i18n.LangEN: {
		regular: []string{"DejaVuSerif.ttf", "Georgia.ttf", "times.ttf"},
		bold:    []string{"DejaVuSerif-Bold.ttf", "georgiab.ttf", "timesbd.ttf"},
		italic:  []string{"DejaVuSerif-Italic.ttf", "georgiai.ttf", "timesi.ttf"},
	},
}

// accentStack is the fixed sans stack for stars and digits.
var accentStack = variants{
	regular: []string{"DejaVuSans.ttf", "NotoSansCJK-Regular.ttc", "arial.ttf"},
	bold:    []string{"DejaVuSans-Bold.ttf", "arialbd.ttf"},
}

// SystemFonts resolves faces from fonts installed on the host via
// go-findfont. Parsed fonts and built faces are cached; a SystemFonts is
// safe for concurrent use.
type SystemFonts struct {
	mu    sync.Mutex
	fonts map[string]*opentype.Font // by resolved file path
	faces map[faceKey]font.Face
}

type faceKey struct {
	lang i18n.Language
	spec FontSpec
}

// NewSystemFonts creates a SystemFonts source. Resolution is lazy: fonts
// are located and parsed on first use of each spec.
func NewSystemFonts() *SystemFonts {
	return &SystemFonts{
		fonts: make(map[string]*opentype.Font),
		faces: make(map[faceKey]font.Face),
	}
}

// Face resolves spec for lang to a drawable face.
func (s *SystemFonts) Face(lang i18n.Language, spec FontSpec) (font.Face, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := faceKey{lang, spec}
	if face, ok := s.faces[key]; ok {
		return face, nil
	}

	fnt, err := s.resolve(lang, spec)
	if err != nil {
		return nil, err
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    spec.Size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFontUnavailable, err, "building face at %.0fpx", spec.Size)
	}
	s.faces[key] = face
	return face, nil
}

// Measure resolves spec for lang to a measurement function. The returned
// function reports advance widths in pixels and never fails; any failure
// surfaces here, before measurement starts.
func (s *SystemFonts) Measure(lang i18n.Language, spec FontSpec) (MeasureFunc, error) {
	face, err := s.Face(lang, spec)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMeasureFailed, err, "no metrics for %v", spec)
	}
	return func(str string) float64 {
		return float64(font.MeasureString(face, str)) / 64
	}, nil
}

// resolve locates and parses the first available candidate for spec.
// Callers hold s.mu.
func (s *SystemFonts) resolve(lang i18n.Language, spec FontSpec) (*opentype.Font, error) {
	names := candidates(lang, spec)
	for _, name := range names {
		path, err := findfont.Find(name)
		if err != nil {
			continue
		}
		if fnt, ok := s.fonts[path]; ok {
			return fnt, nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		fnt, err := parseFont(data)
		if err != nil {
			continue
		}
		s.fonts[path] = fnt
		return fnt, nil
	}
	return nil, errors.New(errors.ErrCodeFontUnavailable,
		"no usable font for language %s (tried %s)", lang, strings.Join(names, ", "))
}

// candidates builds the ordered candidate list for spec: the styled list
// first, then the regular list as a stand-in for missing cuts.
func candidates(lang i18n.Language, spec FontSpec) []string {
	stack := accentStack
	if spec.Family == FamilyBody {
		if v, ok := bodyStacks[lang]; ok {
			stack = v
		} else {
			stack = bodyStacks[i18n.DefaultLanguage]
		}
	}

	var names []string
	if spec.Bold {
		names = append(names, stack.bold...)
	}
	if spec.Italic {
		names = append(names, stack.italic...)
	}
	return append(names, stack.regular...)
}

// parseFont parses font data, accepting both single fonts and collections
// (.ttc); for a collection the first font is used.
func parseFont(data []byte) (*opentype.Font, error) {
	coll, err := opentype.ParseCollection(data)
	if err != nil {
		return nil, err
	}
	return coll.Font(0)
}
