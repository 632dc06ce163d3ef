package card

import (
	"bytes"
	"math"
	"time"

	"github.com/fogleman/gg"

	"github.com/lingqianapp/lingqian/pkg/errors"
	"github.com/lingqianapp/lingqian/pkg/i18n"
	"github.com/lingqianapp/lingqian/pkg/observability"
)

// Composer renders fortune cards. A Composer is stateless across renders
// and safe for concurrent use as long as its FaceSource is (SystemFonts
// is; each render allocates its own drawing surface).
type Composer struct {
	faces    FaceSource
	geo      Geometry
	qrTarget string
	now      func() time.Time
}

// Option configures a Composer.
type Option func(*Composer)

// WithFaceSource replaces the default system-font source.
func WithFaceSource(faces FaceSource) Option {
	return func(c *Composer) { c.faces = faces }
}

// WithGeometry replaces the default card geometry.
func WithGeometry(geo Geometry) Option {
	return func(c *Composer) { c.geo = geo }
}

// WithQRTarget replaces the URL encoded in the card's QR inset.
func WithQRTarget(url string) Option {
	return func(c *Composer) { c.qrTarget = url }
}

// WithClock replaces the clock used to stamp cards whose request carries
// no DrawnAt. Fix the clock to make Compose fully deterministic.
func WithClock(now func() time.Time) Option {
	return func(c *Composer) { c.now = now }
}

// New creates a Composer with system fonts, default geometry, and the
// default QR target.
func New(opts ...Option) *Composer {
	c := &Composer{
		faces:    NewSystemFonts(),
		geo:      DefaultGeometry(),
		qrTarget: DefaultQRTarget,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Card is a finished render: PNG bytes plus the plan that produced them.
type Card struct {
	PNG    []byte
	Width  int
	Height int
	Plan   *Plan
}

// DataURI returns the card as a base64 PNG data URI, the payload handed to
// the share/preview UI.
func (c *Card) DataURI() string {
	return PNGDataURI(c.PNG)
}

// Compose renders req into a card. Both passes run synchronously on the
// calling goroutine; any failure (validation, font resolution, measurement,
// QR encoding, PNG encoding) aborts the render with no partial output and
// no retry.
func (c *Composer) Compose(req RenderRequest) (*Card, error) {
	if req.Language == "" {
		req.Language = i18n.DefaultLanguage
	}
	if !i18n.Known(req.Language) {
		return nil, errors.New(errors.ErrCodeInvalidLanguage, "unknown language: %q", req.Language)
	}
	if err := errors.ValidateUserRequest(req.UserRequest); err != nil {
		return nil, err
	}
	if req.DrawnAt.IsZero() {
		req.DrawnAt = c.now()
	}

	start := time.Now()
	observability.Compose().OnComposeStart(req.Sign.ID, string(req.Language))
	card, err := c.compose(req)
	observability.Compose().OnComposeComplete(req.Sign.ID, string(req.Language), time.Since(start), err)
	return card, err
}

func (c *Composer) compose(req RenderRequest) (*Card, error) {
	plan, err := BuildPlan(req, c.faces, c.geo)
	if err != nil {
		return nil, err
	}

	width := int(c.geo.Width)
	height := int(math.Ceil(plan.TotalHeight))
	dc := gg.NewContext(width, height)

	if err := Paint(plan, dc, c.faces); err != nil {
		return nil, err
	}

	// The QR inset anchors to the bottom of the final card, not to its
	// flow position: when the MinHeight floor stretches a short card, the
	// code stays at the fixed bottom-center offset. The layout reservation
	// guarantees the anchored position never overlaps painted content.
	qr, err := qrInset(c.qrTarget, int(c.geo.QRSize))
	if err != nil {
		return nil, err
	}
	qrX := int((c.geo.Width - c.geo.QRSize) / 2)
	qrY := int(plan.TotalHeight - c.geo.BottomPadding - c.geo.QRSize)
	dc.DrawImage(qr, qrX, qrY)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "encoding card PNG")
	}

	return &Card{
		PNG:    buf.Bytes(),
		Width:  width,
		Height: height,
		Plan:   plan,
	}, nil
}
