package card

import (
	"time"

	"github.com/lingqianapp/lingqian/pkg/i18n"
	"github.com/lingqianapp/lingqian/pkg/sign"
)

// RenderRequest carries everything one render needs. It is immutable for
// the duration of the render: the composer reads no ambient state, so two
// identical requests produce identical cards (given a fixed clock).
type RenderRequest struct {
	Sign        sign.Record
	UserRequest string        // free-text wish printed on the card; may be empty
	Language    i18n.Language // zero value falls back to the default language
	Translations i18n.Table   // optional overrides; nil resolves to built-in defaults

	// DrawnAt is the timestamp printed as the card's date stamp. The
	// composer fills it from its clock when zero.
	DrawnAt time.Time
}

// blockText is one entry of the card's fixed block sequence before
// measurement: which kind, and what text it carries.
type blockText struct {
	kind Kind
	text string
}

// blockSequence builds the ordered block list for a request. Both passes
// consume the blocks this single function produced, so the sequence cannot
// diverge between measuring and painting. Missing optional sign fields are
// substituted with the localized no-data placeholder here, at the point of
// use; the user request is the one block left empty rather than
// substituted, because it still reserves its spacing either way.
func blockSequence(req RenderRequest) []blockText {
	tr, lang := req.Translations, req.Language
	noData := i18n.Text(tr, lang, i18n.KeyNoData)
	or := func(s string) string {
		if s == "" {
			return noData
		}
		return s
	}

	return []blockText{
		{KindTitle, i18n.Text(tr, lang, i18n.KeyCardTitle)},
		{KindRequest, req.UserRequest},
		{KindDate, i18n.FormatDate(lang, req.DrawnAt)},
		{KindLuck, or(req.Sign.LuckIndex)},
		{KindSectionTitle, i18n.Text(tr, lang, i18n.KeyProphecyTitle)},
		{KindBody, or(req.Sign.ProphecyText)},
		{KindSectionTitle, i18n.Text(tr, lang, i18n.KeyFortuneTitle)},
		{KindBody, or(req.Sign.FortuneText)},
		{KindSummary, or(req.Sign.SummaryText)},
		{KindQR, ""},
	}
}

// BuildPlan runs the measure pass: it wraps every block's text against the
// content width and accumulates the vertical cursor into a Plan. The final
// height is max(top + blocks + spacing + bottom, MinHeight); the floor
// pads short cards but never clips content.
//
// A zero req.DrawnAt is stamped with the current time; callers needing
// reproducible plans set it explicitly (the Composer does).
func BuildPlan(req RenderRequest, faces FaceSource, geo Geometry) (*Plan, error) {
	if req.Language == "" {
		req.Language = i18n.DefaultLanguage
	}
	if req.DrawnAt.IsZero() {
		req.DrawnAt = time.Now()
	}

	contentWidth := geo.ContentWidth()
	measures := make(map[FontSpec]MeasureFunc)

	y := geo.TopPadding
	var blocks []Block
	for _, bt := range blockSequence(req) {
		style := blockStyles[bt.kind]
		y += style.spaceBefore

		b := Block{
			Kind:    bt.kind,
			StartY:  y,
			Align:   style.align,
			Divider: style.divider,
		}

		if bt.kind == KindQR {
			b.Height = geo.QRSize
		} else {
			spec := style.spec()
			measure, ok := measures[spec]
			if !ok {
				var err error
				if measure, err = faces.Measure(req.Language, spec); err != nil {
					return nil, err
				}
				measures[spec] = measure
			}

			if style.single {
				b.Lines = []string{bt.text}
			} else {
				b.Lines = Wrap(bt.text, contentWidth, measure)
			}
			b.Spec = spec
			b.LineHeight = style.lineHeight()
			b.Height = float64(len(b.Lines)) * b.LineHeight
		}

		y += b.Height
		blocks = append(blocks, b)
	}

	total := y + geo.BottomPadding
	if total < geo.MinHeight {
		total = geo.MinHeight
	}

	return &Plan{
		Language:      req.Language,
		Geo:           geo,
		Blocks:        blocks,
		ContentBottom: y,
		TotalHeight:   total,
	}, nil
}
