package gltfutil

import (
	"bytes"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/blezek/tga"
	_ "github.com/ftrvxmtrx/tga"
	_ "github.com/oov/psd"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/webp"
)

// ftrvxmtrx/tga registers itself with an empty magic and matches anything,
// so known signatures are checked before image.Decode.
var signatures = []struct {
	magic  string
	decode func(io.Reader) (image.Image, error)
}{
	{"\x89PNG\r\n\x1a\n", png.Decode},
	{"\xff\xd8", jpeg.Decode},
	{"GIF8", gif.Decode},
	{"BM", bmp.Decode},
}

func isWebP(data []byte) bool {
	return len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WEBP"
}

// Pixels is a decoded image as tightly packed 8-bit rows, top row first.
type Pixels struct {
	Width      int
	Height     int
	Components int // 3: RGB, 4: RGBA
	Data       []byte
}

// DecodeImage decodes any registered image format. name is only used to
// pick a fallback decoder.
func DecodeImage(data []byte, name string) (image.Image, error) {
	for _, s := range signatures {
		if bytes.HasPrefix(data, []byte(s.magic)) {
			return s.decode(bytes.NewReader(data))
		}
	}
	if isWebP(data) {
		return webp.Decode(bytes.NewReader(data))
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil && strings.ToLower(filepath.Ext(name)) == ".tga" {
		// retry
		img, err = tga.Decode(bytes.NewReader(data))
	}
	return img, err
}

// ToPixels converts img to RGB or RGBA bytes. Opaque images become RGB.
// Images larger than maxSize on either side are scaled down keeping the
// aspect ratio; maxSize 0 means unlimited.
func ToPixels(img image.Image, maxSize int) *Pixels {
	rect := img.Bounds()
	w, h := rect.Dx(), rect.Dy()
	if maxSize > 0 && (w > maxSize || h > maxSize) {
		if w >= h {
			w, h = maxSize, max1(h*maxSize/w)
		} else {
			w, h = max1(w*maxSize/h), maxSize
		}
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	if w == rect.Dx() && h == rect.Dy() {
		draw.Draw(dst, dst.Bounds(), img, rect.Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, rect, draw.Src, nil)
	}

	p := &Pixels{Width: w, Height: h, Components: 4}
	if dst.Opaque() {
		p.Components = 3
		p.Data = make([]byte, 0, w*h*3)
		for i := 0; i < len(dst.Pix); i += 4 {
			p.Data = append(p.Data, dst.Pix[i], dst.Pix[i+1], dst.Pix[i+2])
		}
	} else {
		p.Data = dst.Pix
	}
	return p
}

func max1(v int) int {
	if v < 1 {
		return 1
	}
	return v
}
