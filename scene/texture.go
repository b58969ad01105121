package scene

// FilterMode values follow the GL enums so they can be handed to a renderer unchanged.
type FilterMode int

const (
	Nearest              FilterMode = 0x2600
	Linear               FilterMode = 0x2601
	NearestMipmapNearest FilterMode = 0x2700
	LinearMipmapNearest  FilterMode = 0x2701
	NearestMipmapLinear  FilterMode = 0x2702
	LinearMipmapLinear   FilterMode = 0x2703
)

type WrapMode int

const (
	Repeat         WrapMode = 0x2901
	ClampToEdge    WrapMode = 0x812F
	MirroredRepeat WrapMode = 0x8370
)

type PixelFormat int

const (
	RGB  PixelFormat = 0x1907
	RGBA PixelFormat = 0x1908
)

// Components returns the number of bytes per pixel.
func (f PixelFormat) Components() int {
	if f == RGBA {
		return 4
	}
	return 3
}

func (f PixelFormat) String() string {
	if f == RGBA {
		return "RGBA"
	}
	return "RGB"
}

// Image holds tightly packed 8-bit pixel rows, top row first.
type Image struct {
	Width  int
	Height int
	Format PixelFormat
	Data   []byte
}

func (img *Image) Valid() bool {
	return img != nil && len(img.Data) > 0 && len(img.Data) == img.Width*img.Height*img.Format.Components()
}

type Texture2D struct {
	MinFilter FilterMode
	MagFilter FilterMode
	WrapS     WrapMode
	WrapT     WrapMode
	WrapR     WrapMode
	Image     *Image
}

func NewTexture2D() *Texture2D {
	return &Texture2D{
		MinFilter: LinearMipmapLinear,
		MagFilter: Linear,
		WrapS:     Repeat,
		WrapT:     Repeat,
		WrapR:     Repeat,
	}
}

type StateValue int

const (
	Off StateValue = iota
	On
)

type TextureAttribute struct {
	Texture *Texture2D
	Value   StateValue
}

// StateSet carries render state attached to a drawable.
type StateSet struct {
	textures map[int]*TextureAttribute
}

func NewStateSet() *StateSet {
	return &StateSet{textures: map[int]*TextureAttribute{}}
}

func (s *StateSet) SetTextureAttributeAndModes(unit int, tex *Texture2D, value StateValue) {
	s.textures[unit] = &TextureAttribute{Texture: tex, Value: value}
}

// TextureAttribute returns the texture bound to unit, or nil.
func (s *StateSet) TextureAttribute(unit int) *Texture2D {
	if a, ok := s.textures[unit]; ok {
		return a.Texture
	}
	return nil
}

func (s *StateSet) TextureMode(unit int) StateValue {
	if a, ok := s.textures[unit]; ok {
		return a.Value
	}
	return Off
}
