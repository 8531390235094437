// Package render draws the blood pressure dashboard into RGB frames sized
// for a 64x64 LED matrix.
package render

import "fmt"

// Display dimensions of a Pixoo64.
const (
	DisplayWidth  = 64
	DisplayHeight = 64
)

// BytesPerPixel is the number of bytes per pixel (RGB).
const BytesPerPixel = 3

// RGB represents an RGB color with 8-bit channels.
type RGB struct {
	R, G, B uint8
}

// NewRGB creates a new RGB color.
func NewRGB(r, g, b uint8) RGB {
	return RGB{R: r, G: g, B: b}
}

// String returns a string representation of the RGB color.
func (c RGB) String() string {
	return fmt.Sprintf("RGB(%d, %d, %d)", c.R, c.G, c.B)
}

// brightness is the mean of the three channels.
func (c RGB) brightness() int {
	return (int(c.R) + int(c.G) + int(c.B)) / 3
}

// Frame is a single image as a flat array of RGB values: [r0,g0,b0, r1,g1,b1, ...].
type Frame struct {
	Width  int
	Height int
	Pixels []byte
}

// NewFrame creates a frame filled with the given color.
func NewFrame(width, height int, bg RGB) *Frame {
	f := &Frame{
		Width:  width,
		Height: height,
		Pixels: make([]byte, width*height*BytesPerPixel),
	}
	if bg != (RGB{}) {
		f.FillRect(0, 0, width, height, bg)
	}
	return f
}

// SetPixel sets a single pixel. Out of bounds coordinates are ignored.
func (f *Frame) SetPixel(x, y int, color RGB) {
	if !f.inBounds(x, y) {
		return
	}
	offset := (y*f.Width + x) * BytesPerPixel
	f.Pixels[offset] = color.R
	f.Pixels[offset+1] = color.G
	f.Pixels[offset+2] = color.B
}

// GetPixel returns the color at x,y, or nil if out of bounds.
func (f *Frame) GetPixel(x, y int) *RGB {
	if !f.inBounds(x, y) {
		return nil
	}
	offset := (y*f.Width + x) * BytesPerPixel
	return &RGB{R: f.Pixels[offset], G: f.Pixels[offset+1], B: f.Pixels[offset+2]}
}

// FillRect fills a rectangular area.
func (f *Frame) FillRect(x, y, width, height int, color RGB) {
	for dy := 0; dy < height; dy++ {
		for dx := 0; dx < width; dx++ {
			f.SetPixel(x+dx, y+dy, color)
		}
	}
}

// DrawRect draws a rectangle outline.
func (f *Frame) DrawRect(x, y, width, height int, color RGB) {
	for i := 0; i < width; i++ {
		f.SetPixel(x+i, y, color)
		f.SetPixel(x+i, y+height-1, color)
	}
	for i := 0; i < height; i++ {
		f.SetPixel(x, y+i, color)
		f.SetPixel(x+width-1, y+i, color)
	}
}

func (f *Frame) inBounds(x, y int) bool {
	return x >= 0 && x < f.Width && y >= 0 && y < f.Height
}
