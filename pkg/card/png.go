package card

import (
	"bytes"
	"encoding/base64"
	"image/png"
)

// PNGDataURI returns data as a base64 PNG data URI.
func PNGDataURI(data []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data)
}

// PNGSize reads the pixel dimensions from a PNG header. The third return
// is false when data is not a decodable PNG.
func PNGSize(data []byte) (width, height int, ok bool) {
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, false
	}
	return cfg.Width, cfg.Height, true
}
