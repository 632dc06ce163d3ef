package card

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/lingqianapp/lingqian/pkg/errors"
)

// DefaultQRTarget is the URL every generated card encodes. The card links
// back to the app rather than to the individual draw.
const DefaultQRTarget = "https://lingqian.app/s"

// QR colors match the card palette so the inset reads as part of the card.
var (
	qrForeground = color.RGBA{0x3A, 0x32, 0x26, 0xFF}
	qrBackground = color.RGBA{0xF6, 0xEF, 0xDD, 0xFF}
)

// qrInset encodes target into a size×size bitmap at the highest error
// correction level. A card without its QR inset is incomplete, so any
// failure here is fatal to the render.
func qrInset(target string, size int) (image.Image, error) {
	code, err := qrcode.New(target, qrcode.Highest)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQRFailed, err, "encoding %q", target)
	}
	code.ForegroundColor = qrForeground
	code.BackgroundColor = qrBackground

	img := code.Image(size)
	if b := img.Bounds(); b.Dx() != size || b.Dy() != size {
		// Tiny targets can round up to the module grid; normalize.
		img = imaging.Resize(img, size, size, imaging.Lanczos)
	}
	return img, nil
}
