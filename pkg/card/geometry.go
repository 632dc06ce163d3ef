package card

// =============================================================================
// Geometry and Style Tables - Single Source of Truth for Both Passes
// =============================================================================
//
// Every constant that affects vertical placement lives here and nowhere
// else. BuildPlan reads these tables to compute offsets; Paint replays the
// plan without consulting its own copies, so the two passes cannot drift.

// Geometry holds the card-level layout constants.
type Geometry struct {
	// Width is the fixed card width in pixels. Cards never grow
	// horizontally; long content grows the card downward.
	Width float64

	// SidePadding is the horizontal inset of the content area.
	SidePadding float64

	// TopPadding is the distance from the top edge to the first block.
	TopPadding float64

	// BottomPadding is the distance from the last block to the bottom edge.
	BottomPadding float64

	// MinHeight is the floor for the final card height. Very short signs
	// still produce a visually balanced card; content computed above the
	// floor is never clipped by it.
	MinHeight float64

	// QRSize is the side length of the square QR inset.
	QRSize float64

	// DividerGap is the fixed title-to-divider gap. The rule above a
	// section title is drawn at the title's startY minus half this gap.
	DividerGap float64
}

// DefaultGeometry returns the production card geometry.
func DefaultGeometry() Geometry {
	return Geometry{
		Width:         640,
		SidePadding:   46,
		TopPadding:    56,
		BottomPadding: 48,
		MinHeight:     900,
		QRSize:        112,
		DividerGap:    16,
	}
}

// ContentWidth returns the wrappable width between the side paddings.
func (g Geometry) ContentWidth() float64 {
	return g.Width - 2*g.SidePadding
}

// Align selects horizontal placement of a block's lines.
type Align int

// Alignments.
const (
	AlignCenter Align = iota
	AlignLeft
)

// blockStyle drives the measure pass for one block kind: font selection,
// line height, and the spacing that precedes the block. Paint-only
// constants (colors, shadows) live in paint.go because they cannot affect
// vertical placement.
type blockStyle struct {
	family      Family
	size        float64 // font size in pixels
	bold        bool
	italic      bool
	lineScale   float64 // line height = size * lineScale
	spaceBefore float64 // gap between the previous block and this one
	align       Align
	divider     bool // thin rule drawn above the block
	single      bool // exactly one line, never wrapped
}

// blockStyles is the per-kind style table shared by both passes.
var blockStyles = map[Kind]blockStyle{
	KindTitle:        {family: FamilyBody, size: 30, bold: true, lineScale: 1.4, spaceBefore: 0, align: AlignCenter, single: true},
	KindRequest:      {family: FamilyBody, size: 20, bold: true, lineScale: 1.6, spaceBefore: 26, align: AlignCenter},
	KindDate:         {family: FamilyBody, size: 16, italic: true, lineScale: 1.5, spaceBefore: 18, align: AlignCenter, single: true},
	KindLuck:         {family: FamilyAccent, size: 22, lineScale: 1.5, spaceBefore: 16, align: AlignCenter, single: true},
	KindSectionTitle: {family: FamilyBody, size: 22, bold: true, lineScale: 1.5, spaceBefore: 34, align: AlignLeft, divider: true, single: true},
	KindBody:         {family: FamilyBody, size: 18, lineScale: 1.65, spaceBefore: 10, align: AlignLeft},
	KindSummary:      {family: FamilyBody, size: 26, bold: true, lineScale: 1.5, spaceBefore: 36, align: AlignCenter},
	KindQR:           {spaceBefore: 30},
}

// spec returns the font spec the style table prescribes for a kind.
func (s blockStyle) spec() FontSpec {
	return FontSpec{Family: s.family, Size: s.size, Bold: s.bold, Italic: s.italic}
}

// lineHeight returns the style's line box height.
func (s blockStyle) lineHeight() float64 {
	return s.size * s.lineScale
}
