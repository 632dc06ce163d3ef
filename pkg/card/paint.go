package card

import (
	"image/color"

	"github.com/fogleman/gg"

	"github.com/lingqianapp/lingqian/pkg/errors"
)

// =============================================================================
// Paint Constants - Fixed Visual Identity
// =============================================================================
//
// Colors and shadows are block-kind constants, not data: they encode the
// card's look and are deliberately outside localization. None of them can
// affect vertical placement, which is owned entirely by geometry.go.

var (
	colorPaper       = color.RGBA{0xF6, 0xEF, 0xDD, 0xFF} // antique paper background
	colorBorderOuter = color.RGBA{0x8A, 0x6D, 0x3B, 0xFF}
	colorBorderInner = color.RGBA{0xB5, 0x9A, 0x68, 0xFF}
	colorDivider     = color.RGBA{0xC9, 0xB6, 0x8C, 0xFF}
	colorInk         = color.RGBA{0x3A, 0x32, 0x26, 0xFF}
	colorVermilion   = color.RGBA{0x8C, 0x2D, 0x19, 0xFF}
	colorStarGold    = color.RGBA{0xC9, 0xA2, 0x27, 0xFF}
	colorDateGray    = color.RGBA{0x6B, 0x61, 0x52, 0xFF}
	colorSection     = color.RGBA{0x5A, 0x46, 0x32, 0xFF}
	colorGoldShadow  = color.RGBA{0xE0, 0xC8, 0x8A, 0xB0}
)

const (
	borderOuterInset = 8
	borderOuterWidth = 3
	borderInnerInset = 14
	borderInnerWidth = 1
	dividerWidth     = 1
)

// shadowSpec offsets a second, tinted draw behind a block's text.
type shadowSpec struct {
	dx, dy float64
	color  color.Color
}

type paintStyle struct {
	color  color.Color
	shadow *shadowSpec
}

var paintStyles = map[Kind]paintStyle{
	KindTitle:        {color: colorVermilion, shadow: &shadowSpec{dx: 1.5, dy: 1.5, color: colorGoldShadow}},
	KindRequest:      {color: colorInk},
	KindDate:         {color: colorDateGray},
	KindLuck:         {color: colorStarGold},
	KindSectionTitle: {color: colorSection},
	KindBody:         {color: colorInk},
	KindSummary:      {color: colorVermilion},
}

// Paint runs the paint pass: background fill, the two concentric border
// rules, then every block of the plan at exactly the offsets the measure
// pass recorded. The QR reservation is skipped here; the composer
// composites the encoded bitmap separately.
func Paint(plan *Plan, dc *gg.Context, faces FaceSource) error {
	geo := plan.Geo
	height := plan.TotalHeight

	dc.SetColor(colorPaper)
	dc.Clear()

	drawBorder(dc, geo.Width, height, borderOuterInset, borderOuterWidth, colorBorderOuter)
	drawBorder(dc, geo.Width, height, borderInnerInset, borderInnerWidth, colorBorderInner)

	for _, b := range plan.Blocks {
		if b.Kind == KindQR {
			continue
		}
		if b.Divider {
			drawDivider(dc, geo, b)
		}
		if err := paintBlock(dc, geo, b, plan, faces); err != nil {
			return err
		}
	}
	return nil
}

func paintBlock(dc *gg.Context, geo Geometry, b Block, plan *Plan, faces FaceSource) error {
	if len(b.Lines) == 0 {
		return nil
	}

	face, err := faces.Face(plan.Language, b.Spec)
	if err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, err, "painting block %d", b.Kind)
	}
	dc.SetFontFace(face)

	style := paintStyles[b.Kind]
	for i, line := range b.Lines {
		if line == "" {
			continue
		}
		// Each line is anchored at the vertical center of its line box.
		cy := b.StartY + (float64(i)+0.5)*b.LineHeight

		x, ax := geo.Width/2, 0.5
		if b.Align == AlignLeft {
			x, ax = geo.SidePadding, 0
		}

		if style.shadow != nil {
			dc.SetColor(style.shadow.color)
			dc.DrawStringAnchored(line, x+style.shadow.dx, cy+style.shadow.dy, ax, 0.5)
		}
		dc.SetColor(style.color)
		dc.DrawStringAnchored(line, x, cy, ax, 0.5)
	}
	return nil
}

// drawDivider draws the thin rule above a section title, halfway into the
// fixed title-to-divider gap.
func drawDivider(dc *gg.Context, geo Geometry, b Block) {
	y := b.StartY - geo.DividerGap/2
	dc.SetColor(colorDivider)
	dc.SetLineWidth(dividerWidth)
	dc.DrawLine(geo.SidePadding, y, geo.Width-geo.SidePadding, y)
	dc.Stroke()
}

func drawBorder(dc *gg.Context, width, height, inset, stroke float64, c color.Color) {
	dc.SetColor(c)
	dc.SetLineWidth(stroke)
	dc.DrawRectangle(inset, inset, width-2*inset, height-2*inset)
	dc.Stroke()
}
