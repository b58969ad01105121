package main

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/HugoSmits86/nativewebp"
	"github.com/binzume/gltfscene/scene"
)

func toNRGBA(img *scene.Image) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, img.Width, img.Height))
	if img.Format == scene.RGBA {
		copy(dst.Pix, img.Data)
		return dst
	}
	for i, j := 0, 0; i+2 < len(img.Data); i, j = i+3, j+4 {
		dst.Pix[j] = img.Data[i]
		dst.Pix[j+1] = img.Data[i+1]
		dst.Pix[j+2] = img.Data[i+2]
		dst.Pix[j+3] = 255
	}
	return dst
}

// exportTextures writes every distinct texture image under dir as WebP.
func exportTextures(node scene.Node, dir string) (int, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, err
	}
	written := map[*scene.Texture2D]bool{}
	for _, g := range scene.Geometries(node) {
		ss := g.StateSet()
		if ss == nil {
			continue
		}
		tex := ss.TextureAttribute(0)
		if tex == nil || written[tex] || !tex.Image.Valid() {
			continue
		}
		written[tex] = true

		path := filepath.Join(dir, fmt.Sprintf("texture%03d.webp", len(written)-1))
		f, err := os.Create(path)
		if err != nil {
			return len(written) - 1, err
		}
		err = nativewebp.Encode(f, toNRGBA(tex.Image), nil)
		f.Close()
		if err != nil {
			return len(written) - 1, fmt.Errorf("WebP encode %s: %w", path, err)
		}
	}
	return len(written), nil
}
