package sky

import "github.com/Faultbox/tamriel-arena/pkg/formats"

// TextureProvider supplies decoded images by filename. Generation asks for
// single images and frame sequences; the provider decides where they come
// from (archives, loose files, or placeholders).
type TextureProvider interface {
	LoadImage(name string) (formats.Image, error)
	LoadImageSet(name string) ([]formats.Image, error)
}

// PaletteProvider resolves palette indices to ARGB colors for small stars.
type PaletteProvider interface {
	ColorARGB(index int) uint32
}
