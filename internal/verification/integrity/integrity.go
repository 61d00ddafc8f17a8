// Package integrity checks uploaded document images against the magic bytes
// of their declared media type before any provider is called.
package integrity

import (
	"bytes"
	"image"
	_ "image/jpeg" // register decoders for DecodeConfig
	_ "image/png"
	"mime"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// MinimumSize is the smallest buffer accepted as an image.
const MinimumSize = 100

type signature struct {
	offset int
	magic  []byte
}

var signatures = map[string][][]signature{
	"image/jpeg":      {{{0, []byte{0xFF, 0xD8, 0xFF}}}},
	"image/png":       {{{0, []byte{0x89, 0x50, 0x4E, 0x47}}}},
	"application/pdf": {{{0, []byte{0x25, 0x50, 0x44, 0x46}}}},
	"image/webp":      {{{0, []byte("RIFF")}, {8, []byte("WEBP")}}},
	"image/bmp":       {{{0, []byte{0x42, 0x4D}}}},
	"image/tiff": {
		{{0, []byte{0x49, 0x49, 0x2A, 0x00}}},
		{{0, []byte{0x4D, 0x4D, 0x00, 0x2A}}},
	},
}

var aliases = map[string]string{
	"image/jpg": "image/jpeg",
	"image/tif": "image/tiff",
}

// NormalizeMediaType lower-cases the type, strips parameters and resolves aliases.
func NormalizeMediaType(declared string) string {
	mt := strings.ToLower(strings.TrimSpace(declared))
	if parsed, _, err := mime.ParseMediaType(mt); err == nil {
		mt = parsed
	}
	if canonical, ok := aliases[mt]; ok {
		return canonical
	}
	return mt
}

// Validate reports whether data plausibly is a file of the declared media type.
// It fails closed on nil or short buffers.
func Validate(data []byte, declaredMediaType string) bool {
	if len(data) < MinimumSize {
		return false
	}

	alternatives, known := signatures[NormalizeMediaType(declaredMediaType)]
	if !known {
		return data[0] != 0 || data[1] != 0
	}
	for _, sigs := range alternatives {
		if matchAll(data, sigs) {
			return true
		}
	}
	return false
}

func matchAll(data []byte, sigs []signature) bool {
	for _, s := range sigs {
		end := s.offset + len(s.magic)
		if len(data) < end || !bytes.Equal(data[s.offset:end], s.magic) {
			return false
		}
	}
	return true
}

// Report describes an uploaded buffer for diagnostics.
type Report struct {
	Valid        bool
	Declared     string
	Detected     string
	Format       string
	Width        int
	Height       int
	DecodeFailed bool
}

// Inspect runs Validate and adds the sniffed media type and decoded dimensions.
// The verdict is always the one Validate returns.
func Inspect(data []byte, declaredMediaType string) Report {
	r := Report{
		Valid:    Validate(data, declaredMediaType),
		Declared: NormalizeMediaType(declaredMediaType),
	}
	if len(data) == 0 {
		return r
	}

	r.Detected = mimetype.Detect(data).String()

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		r.DecodeFailed = true
		return r
	}
	r.Format = format
	r.Width = cfg.Width
	r.Height = cfg.Height
	return r
}

// Mismatch reports whether the sniffed type disagrees with the declared one.
func (r Report) Mismatch() bool {
	if r.Detected == "" || r.Declared == "" {
		return false
	}
	return NormalizeMediaType(r.Detected) != r.Declared
}
