// Package card composes a drawn fortune sign into a shareable card image.
//
// The composer is a two-pass layout engine. The first pass ([BuildPlan])
// walks an ordered block list (title, user request, date stamp, luck
// stars, the prophecy and interpretation sections, summary, QR reservation),
// wrapping each block's text against the card's content width and
// accumulating a vertical cursor into a [Plan]. The second pass ([Paint])
// replays the same plan onto a raster context at the offsets the first pass
// recorded. Because both passes consume one block list and one
// geometry/style table, the computed height and the painted extent agree by
// construction.
//
// # Pipeline
//
//	RenderRequest
//	     ↓
//	[BuildPlan]  (measure pass: wrap text, accumulate heights)
//	     ↓
//	   Plan
//	     ↓
//	 [Paint]     (paint pass: background, borders, blocks)
//	     ↓
//	 QR inset    (skip2/go-qrcode, composited bottom-center)
//	     ↓
//	  *Card      (PNG bytes + data URI)
//
// # Usage
//
//	composer := card.New()
//	c, err := composer.Compose(card.RenderRequest{
//	    Sign:        record,
//	    UserRequest: "求事业",
//	    Language:    i18n.LangZH,
//	})
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("card.png", c.PNG, 0644)
//
// Composition is synchronous and holds no state across calls; a fatal error
// at any stage (font resolution, measurement, QR encoding, PNG encoding)
// aborts the whole render and no partial image is produced. Rendering the
// same request twice with a fixed clock yields byte-identical output.
//
// Text wrapping is character-granular rather than word-granular: the
// dominant script has no inter-word spaces, and mixed CJK/Latin text is
// handled by one code path with no per-script special cases.
package card
