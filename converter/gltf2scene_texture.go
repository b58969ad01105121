package converter

import (
	"github.com/binzume/gltfscene/gltfutil"
	"github.com/binzume/gltfscene/registry"
	"github.com/binzume/gltfscene/scene"
	"github.com/qmuntal/gltf"
)

var magFilters = map[gltf.MagFilter]scene.FilterMode{
	gltf.MagNearest: scene.Nearest,
	gltf.MagLinear:  scene.Linear,
}

var minFilters = map[gltf.MinFilter]scene.FilterMode{
	gltf.MinNearest:              scene.Nearest,
	gltf.MinLinear:               scene.Linear,
	gltf.MinNearestMipMapNearest: scene.NearestMipmapNearest,
	gltf.MinLinearMipMapNearest:  scene.LinearMipmapNearest,
	gltf.MinNearestMipMapLinear:  scene.NearestMipmapLinear,
	gltf.MinLinearMipMapLinear:   scene.LinearMipmapLinear,
}

var wrapModes = map[gltf.WrappingMode]scene.WrapMode{
	gltf.WrapRepeat:         scene.Repeat,
	gltf.WrapClampToEdge:    scene.ClampToEdge,
	gltf.WrapMirroredRepeat: scene.MirroredRepeat,
}

func (c *gltfToSceneState) baseColorTexture(materialIndex uint32) *scene.Texture2D {
	if int(materialIndex) >= len(c.src.Materials) {
		registry.Notify(registry.Warn).Printf("gltf: material %d out of range", materialIndex)
		return nil
	}
	mat := c.src.Materials[materialIndex]
	if mat.PBRMetallicRoughness == nil || mat.PBRMetallicRoughness.BaseColorTexture == nil {
		return nil
	}
	return c.texture(mat.PBRMetallicRoughness.BaseColorTexture.Index)
}

func (c *gltfToSceneState) texture(index uint32) *scene.Texture2D {
	if tex, ok := c.textures[index]; ok {
		return tex
	}
	if int(index) >= len(c.src.Textures) {
		registry.Notify(registry.Warn).Printf("gltf: texture %d out of range", index)
		return nil
	}
	t := c.src.Textures[index]
	tex := scene.NewTexture2D()

	if t.Sampler != nil {
		if int(*t.Sampler) < len(c.src.Samplers) {
			applySampler(tex, c.src.Samplers[*t.Sampler])
		} else {
			registry.Notify(registry.Warn).Printf("gltf: texture %d: sampler %d out of range", index, *t.Sampler)
		}
	}

	if t.Source != nil {
		if int(*t.Source) < len(c.src.Images) {
			tex.Image = c.image(c.src.Images[*t.Source])
		} else {
			registry.Notify(registry.Warn).Printf("gltf: texture %d: image %d out of range", index, *t.Source)
		}
	}
	if tex.Image == nil {
		tex.Image = &scene.Image{Format: scene.RGBA}
	}
	c.textures[index] = tex
	return tex
}

func applySampler(tex *scene.Texture2D, s *gltf.Sampler) {
	if f, ok := minFilters[s.MinFilter]; ok {
		tex.MinFilter = f
	}
	if f, ok := magFilters[s.MagFilter]; ok {
		tex.MagFilter = f
	}
	if w, ok := wrapModes[s.WrapS]; ok {
		tex.WrapS = w
	}
	if w, ok := wrapModes[s.WrapT]; ok {
		tex.WrapT = w
	}
	tex.WrapR = scene.Repeat
}

func (c *gltfToSceneState) image(img *gltf.Image) *scene.Image {
	data, err := gltfutil.ImageData(c.src, img, c.srcDir)
	if err != nil {
		registry.Notify(registry.Warn).Printf("gltf: image %q: %v", img.Name, err)
		return nil
	}
	decoded, err := gltfutil.DecodeImage(data, img.URI)
	if err != nil {
		registry.Notify(registry.Warn).Printf("gltf: image %q: %v", img.Name, err)
		return nil
	}
	p := gltfutil.ToPixels(decoded, c.MaxTextureSize)
	format := scene.RGBA
	if p.Components == 3 {
		format = scene.RGB
	}
	return &scene.Image{Width: p.Width, Height: p.Height, Format: format, Data: p.Data}
}
