package card

import "github.com/lingqianapp/lingqian/pkg/i18n"

// Kind identifies a block in the card's fixed vertical sequence. Blocks are
// never reordered or skipped: a block with no content still reserves its
// spacing so the card's vertical rhythm stays predictable.
type Kind int

// Block kinds, in card order.
const (
	KindTitle Kind = iota
	KindRequest
	KindDate
	KindLuck
	KindSectionTitle
	KindBody
	KindSummary
	KindQR
)

// Block is one laid-out content block: its wrapped lines, the font they
// were measured with, and the vertical extent the measure pass assigned.
type Block struct {
	Kind       Kind
	Lines      []string // wrapped lines; empty for a content-less block or the QR reservation
	Spec       FontSpec
	LineHeight float64
	StartY     float64 // top of the block, after its spaceBefore
	Height     float64 // lines × line height, or the QR side length
	Align      Align
	Divider    bool // thin rule above, at StartY - DividerGap/2
}

// Plan is the product of the measure pass: the ordered block list with
// final offsets and the total card height. A Plan is built fresh per
// render, consumed once by Paint, and never mutated.
type Plan struct {
	Language i18n.Language
	Geo      Geometry
	Blocks   []Block

	// ContentBottom is the y cursor after the last block, before bottom
	// padding. TotalHeight equals ContentBottom + BottomPadding unless the
	// MinHeight floor applies.
	ContentBottom float64

	// TotalHeight is the final card height in pixels.
	TotalHeight float64
}

// QRBlock returns the QR reservation block.
func (p *Plan) QRBlock() (Block, bool) {
	for _, b := range p.Blocks {
		if b.Kind == KindQR {
			return b, true
		}
	}
	return Block{}, false
}
